package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ymorita/questboard/internal/domain"
	"github.com/ymorita/questboard/internal/repository"
)

type commentService struct {
	quests   repository.QuestRepo
	comments repository.CommentRepo
	now      func() time.Time
}

func NewCommentService(quests repository.QuestRepo, comments repository.CommentRepo) CommentService {
	return &commentService{
		quests:   quests,
		comments: comments,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

func (s *commentService) Add(ctx context.Context, questID, author, content, filePath string) (*domain.Comment, error) {
	author = strings.TrimSpace(author)
	content = strings.TrimSpace(content)
	if author == "" {
		return nil, fmt.Errorf("author must not be empty: %w", domain.ErrValidation)
	}
	if content == "" && filePath == "" {
		return nil, fmt.Errorf("comment must have content or an attachment: %w", domain.ErrValidation)
	}

	// The quest must exist; a log entry on a missing quest is a bug.
	if _, err := s.quests.GetByID(ctx, questID); err != nil {
		return nil, err
	}

	c := &domain.Comment{
		ID:        uuid.New().String(),
		QuestID:   questID,
		Author:    author,
		Content:   content,
		FilePath:  filePath,
		LogType:   domain.LogUser,
		CreatedAt: s.now(),
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return c, nil
}

func (s *commentService) ListByQuest(ctx context.Context, questID string) ([]*domain.Comment, error) {
	if _, err := s.quests.GetByID(ctx, questID); err != nil {
		return nil, err
	}
	return s.comments.ListByQuest(ctx, questID)
}
