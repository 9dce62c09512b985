package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ymorita/questboard/internal/domain"
)

// MemoryTemplateRepo is an in-memory TemplateRepo.
type MemoryTemplateRepo struct {
	mu        sync.RWMutex
	templates map[string]*domain.Template
}

// NewMemoryTemplateRepo creates an empty in-memory template store.
func NewMemoryTemplateRepo() *MemoryTemplateRepo {
	return &MemoryTemplateRepo{templates: make(map[string]*domain.Template)}
}

func (r *MemoryTemplateRepo) Create(ctx context.Context, t *domain.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *t
	r.templates[t.ID] = &clone
	return nil
}

func (r *MemoryTemplateRepo) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[id]
	if !ok {
		return nil, fmt.Errorf("template: %w", ErrNotFound)
	}
	clone := *t
	return &clone, nil
}

func (r *MemoryTemplateRepo) List(ctx context.Context) ([]*domain.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Template
	for _, t := range r.templates {
		clone := *t
		out = append(out, &clone)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryTemplateRepo) Update(ctx context.Context, t *domain.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[t.ID]; !ok {
		return fmt.Errorf("template: %w", ErrNotFound)
	}
	clone := *t
	r.templates[t.ID] = &clone
	return nil
}

func (r *MemoryTemplateRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[id]; !ok {
		return fmt.Errorf("template: %w", ErrNotFound)
	}
	delete(r.templates, id)
	return nil
}
