package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ymorita/questboard/internal/domain"
	"github.com/ymorita/questboard/internal/repository"
)

func newTestResourceService() ResourceService {
	return NewResourceService(repository.NewMemoryResourceRepo())
}

func TestResourceService_CreateAndView(t *testing.T) {
	svc := newTestResourceService()
	ctx := context.Background()

	r := &domain.Resource{Title: "Go blog", URL: "https://go.dev/blog", CreatedBy: "alice"}
	require.NoError(t, svc.Create(ctx, r))
	assert.NotEmpty(t, r.ID)

	viewed, err := svc.View(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, viewed.ViewCount)
	assert.NotNil(t, viewed.LastViewedAt)
}

func TestResourceService_CreateValidation(t *testing.T) {
	svc := newTestResourceService()
	ctx := context.Background()

	tests := []struct {
		name string
		res  *domain.Resource
	}{
		{"empty title", &domain.Resource{URL: "https://example.com"}},
		{"empty url", &domain.Resource{Title: "x"}},
		{"relative url", &domain.Resource{Title: "x", URL: "/just/a/path"}},
		{"missing scheme", &domain.Resource{Title: "x", URL: "example.com/page"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.Create(ctx, tt.res), domain.ErrValidation)
		})
	}
}

func TestResourceService_ToggleFavorite(t *testing.T) {
	svc := newTestResourceService()
	ctx := context.Background()

	r := &domain.Resource{Title: "Starred", URL: "https://example.com"}
	require.NoError(t, svc.Create(ctx, r))

	toggled, err := svc.ToggleFavorite(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsFavorite)

	toggled, err = svc.ToggleFavorite(ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsFavorite)
}
