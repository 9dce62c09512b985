package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ymorita/questboard/internal/domain"
	"github.com/ymorita/questboard/internal/repository"
)

func newTestCommentService() (CommentService, QuestService) {
	quests := repository.NewMemoryQuestRepo()
	comments := repository.NewMemoryCommentRepo()
	return NewCommentService(quests, comments), NewQuestService(quests, comments)
}

func TestCommentService_Add(t *testing.T) {
	commentSvc, questSvc := newTestCommentService()
	ctx := context.Background()

	q := &domain.Quest{Title: "Discussed", Creator: "bob"}
	require.NoError(t, questSvc.Create(ctx, q))

	c, err := commentSvc.Add(ctx, q.ID, "alice", "looks good", "")
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, domain.LogUser, c.LogType)

	list, err := commentSvc.ListByQuest(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "looks good", list[0].Content)
}

func TestCommentService_Add_AttachmentOnly(t *testing.T) {
	commentSvc, questSvc := newTestCommentService()
	ctx := context.Background()

	q := &domain.Quest{Title: "With file", Creator: "bob"}
	require.NoError(t, questSvc.Create(ctx, q))

	c, err := commentSvc.Add(ctx, q.ID, "alice", "", "report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", c.FilePath)
}

func TestCommentService_Add_Validation(t *testing.T) {
	commentSvc, questSvc := newTestCommentService()
	ctx := context.Background()

	q := &domain.Quest{Title: "Strict", Creator: "bob"}
	require.NoError(t, questSvc.Create(ctx, q))

	_, err := commentSvc.Add(ctx, q.ID, "", "content", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = commentSvc.Add(ctx, q.ID, "alice", "", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCommentService_Add_QuestMustExist(t *testing.T) {
	commentSvc, _ := newTestCommentService()

	_, err := commentSvc.Add(context.Background(), "missing", "alice", "hello", "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
