package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ymorita/questboard/internal/domain"
	"github.com/ymorita/questboard/internal/repository"
)

type resourceService struct {
	resources repository.ResourceRepo
	now       func() time.Time
}

func NewResourceService(resources repository.ResourceRepo) ResourceService {
	return &resourceService{
		resources: resources,
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

func validateResource(r *domain.Resource) error {
	r.Title = strings.TrimSpace(r.Title)
	r.URL = strings.TrimSpace(r.URL)
	if r.Title == "" {
		return fmt.Errorf("resource title must not be empty: %w", domain.ErrValidation)
	}
	if r.URL == "" {
		return fmt.Errorf("resource url must not be empty: %w", domain.ErrValidation)
	}
	u, err := url.Parse(r.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("resource url %q is not absolute: %w", r.URL, domain.ErrValidation)
	}
	return nil
}

func (s *resourceService) Create(ctx context.Context, r *domain.Resource) error {
	if err := validateResource(r); err != nil {
		return err
	}
	r.ID = uuid.New().String()
	now := s.now()
	r.CreatedAt = now
	r.UpdatedAt = now
	r.ViewCount = 0
	r.LastViewedAt = nil
	return s.resources.Create(ctx, r)
}

func (s *resourceService) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	return s.resources.GetByID(ctx, id)
}

func (s *resourceService) View(ctx context.Context, id string) (*domain.Resource, error) {
	if err := s.resources.IncrementView(ctx, id); err != nil {
		return nil, err
	}
	return s.resources.GetByID(ctx, id)
}

func (s *resourceService) List(ctx context.Context) ([]*domain.Resource, error) {
	return s.resources.List(ctx)
}

func (s *resourceService) Update(ctx context.Context, r *domain.Resource) error {
	if err := validateResource(r); err != nil {
		return err
	}
	r.UpdatedAt = s.now()
	return s.resources.Update(ctx, r)
}

func (s *resourceService) ToggleFavorite(ctx context.Context, id string) (*domain.Resource, error) {
	r, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.IsFavorite = !r.IsFavorite
	r.UpdatedAt = s.now()
	if err := s.resources.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *resourceService) Delete(ctx context.Context, id string) error {
	return s.resources.Delete(ctx, id)
}

func (s *resourceService) Categories(ctx context.Context) ([]string, error) {
	return s.resources.Categories(ctx)
}

func (s *resourceService) Tags(ctx context.Context) ([]string, error) {
	return s.resources.Tags(ctx)
}
