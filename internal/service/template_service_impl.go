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

type templateService struct {
	templates repository.TemplateRepo
	quests    QuestService
	now       func() time.Time
}

func NewTemplateService(templates repository.TemplateRepo, quests QuestService) TemplateService {
	return &templateService{
		templates: templates,
		quests:    quests,
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

func (s *templateService) Create(ctx context.Context, t *domain.Template) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return fmt.Errorf("template title must not be empty: %w", domain.ErrValidation)
	}
	if t.Priority == 0 {
		t.Priority = domain.DefaultPriority
	}
	if t.Priority < 1 || t.Priority > 5 {
		return fmt.Errorf("priority must be between 1 and 5, got %d: %w", t.Priority, domain.ErrValidation)
	}
	if t.EstimatedMinutes == 0 {
		t.EstimatedMinutes = domain.DefaultEstimatedMinutes
	}
	if t.EstimatedMinutes < 0 {
		return fmt.Errorf("estimated minutes must be positive, got %d: %w", t.EstimatedMinutes, domain.ErrValidation)
	}

	t.ID = uuid.New().String()
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.templates.Create(ctx, t)
}

func (s *templateService) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	return s.templates.GetByID(ctx, id)
}

func (s *templateService) List(ctx context.Context) ([]*domain.Template, error) {
	return s.templates.List(ctx)
}

func (s *templateService) Update(ctx context.Context, t *domain.Template) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return fmt.Errorf("template title must not be empty: %w", domain.ErrValidation)
	}
	t.UpdatedAt = s.now()
	return s.templates.Update(ctx, t)
}

func (s *templateService) Delete(ctx context.Context, id string) error {
	return s.templates.Delete(ctx, id)
}

func (s *templateService) Instantiate(ctx context.Context, templateID, creator string, dueDate *time.Time) (*domain.Quest, error) {
	t, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	q := &domain.Quest{
		Title:            t.Title,
		Description:      t.Description,
		Priority:         t.Priority,
		EstimatedMinutes: t.EstimatedMinutes,
		DueDate:          dueDate,
		Creator:          creator,
	}
	if err := s.quests.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}
