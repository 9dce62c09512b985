package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ymorita/questboard/internal/testutil"
)

func TestResourceRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteResourceRepo(db)
	ctx := context.Background()

	res := testutil.NewTestResource("Go docs", "https://go.dev/doc/")
	res.Category = "reference"
	res.Tags = "go, docs"
	require.NoError(t, repo.Create(ctx, res))

	fetched, err := repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go docs", fetched.Title)
	assert.Equal(t, "reference", fetched.Category)
	assert.Equal(t, []string{"go", "docs"}, fetched.TagList())
	assert.False(t, fetched.IsFavorite)
	assert.Zero(t, fetched.ViewCount)
	assert.Nil(t, fetched.LastViewedAt)
}

func TestResourceRepo_List_Ordering(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteResourceRepo(db)
	ctx := context.Background()

	plain := testutil.NewTestResource("Plain", "https://example.com/a")
	popular := testutil.NewTestResource("Popular", "https://example.com/b")
	fav := testutil.NewTestResource("Fav", "https://example.com/c")
	fav.IsFavorite = true
	require.NoError(t, repo.Create(ctx, plain))
	require.NoError(t, repo.Create(ctx, popular))
	require.NoError(t, repo.Create(ctx, fav))
	require.NoError(t, repo.IncrementView(ctx, popular.ID))
	require.NoError(t, repo.IncrementView(ctx, popular.ID))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Fav", list[0].Title)
	assert.Equal(t, "Popular", list[1].Title)
	assert.Equal(t, "Plain", list[2].Title)
}

func TestResourceRepo_IncrementView(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteResourceRepo(db)
	ctx := context.Background()

	res := testutil.NewTestResource("Viewed", "https://example.com")
	require.NoError(t, repo.Create(ctx, res))
	require.NoError(t, repo.IncrementView(ctx, res.ID))

	fetched, err := repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fetched.ViewCount)
	assert.NotNil(t, fetched.LastViewedAt)

	assert.ErrorIs(t, repo.IncrementView(ctx, "missing"), ErrNotFound)
}

func TestResourceRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteResourceRepo(db)
	ctx := context.Background()

	res := testutil.NewTestResource("Old", "https://example.com")
	require.NoError(t, repo.Create(ctx, res))

	res.Title = "New"
	res.IsFavorite = true
	require.NoError(t, repo.Update(ctx, res))

	fetched, err := repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", fetched.Title)
	assert.True(t, fetched.IsFavorite)

	require.NoError(t, repo.Delete(ctx, res.ID))
	_, err = repo.GetByID(ctx, res.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResourceRepo_Categories(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteResourceRepo(db)
	ctx := context.Background()

	a := testutil.NewTestResource("A", "https://example.com/a")
	a.Category = "tools"
	b := testutil.NewTestResource("B", "https://example.com/b")
	b.Category = "docs"
	c := testutil.NewTestResource("C", "https://example.com/c")
	c.Category = "tools"
	d := testutil.NewTestResource("D", "https://example.com/d")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Create(ctx, c))
	require.NoError(t, repo.Create(ctx, d))

	cats, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs", "tools"}, cats)
}

func TestResourceRepo_Tags(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteResourceRepo(db)
	ctx := context.Background()

	a := testutil.NewTestResource("A", "https://example.com/a")
	a.Tags = "go, sqlite"
	b := testutil.NewTestResource("B", "https://example.com/b")
	b.Tags = "sqlite,cli"
	c := testutil.NewTestResource("C", "https://example.com/c")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Create(ctx, c))

	tags, err := repo.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cli", "go", "sqlite"}, tags)
}
