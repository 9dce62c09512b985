package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ymorita/questboard/internal/domain"
)

// MemoryResourceRepo is an in-memory ResourceRepo.
type MemoryResourceRepo struct {
	mu        sync.RWMutex
	resources map[string]*domain.Resource
}

// NewMemoryResourceRepo creates an empty in-memory resource store.
func NewMemoryResourceRepo() *MemoryResourceRepo {
	return &MemoryResourceRepo{resources: make(map[string]*domain.Resource)}
}

func cloneResource(res *domain.Resource) *domain.Resource {
	c := *res
	if res.LastViewedAt != nil {
		t := *res.LastViewedAt
		c.LastViewedAt = &t
	}
	return &c
}

func (r *MemoryResourceRepo) Create(ctx context.Context, res *domain.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resources[res.ID] = cloneResource(res)
	return nil
}

func (r *MemoryResourceRepo) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resources[id]
	if !ok {
		return nil, fmt.Errorf("resource: %w", ErrNotFound)
	}
	return cloneResource(res), nil
}

func (r *MemoryResourceRepo) List(ctx context.Context) ([]*domain.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Resource
	for _, res := range r.resources {
		out = append(out, cloneResource(res))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsFavorite != out[j].IsFavorite {
			return out[i].IsFavorite
		}
		if out[i].ViewCount != out[j].ViewCount {
			return out[i].ViewCount > out[j].ViewCount
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryResourceRepo) Update(ctx context.Context, res *domain.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.resources[res.ID]
	if !ok {
		return fmt.Errorf("resource: %w", ErrNotFound)
	}
	clone := cloneResource(res)
	// View stats are owned by IncrementView, not the general update path.
	clone.ViewCount = existing.ViewCount
	clone.LastViewedAt = existing.LastViewedAt
	r.resources[res.ID] = clone
	return nil
}

func (r *MemoryResourceRepo) IncrementView(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.resources[id]
	if !ok {
		return fmt.Errorf("resource: %w", ErrNotFound)
	}
	res.ViewCount++
	now := time.Now().UTC().Truncate(time.Second)
	res.LastViewedAt = &now
	return nil
}

func (r *MemoryResourceRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resources[id]; !ok {
		return fmt.Errorf("resource: %w", ErrNotFound)
	}
	delete(r.resources, id)
	return nil
}

func (r *MemoryResourceRepo) Tags(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	var tags []string
	for _, res := range r.resources {
		for _, t := range res.TagList() {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

func (r *MemoryResourceRepo) Categories(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, res := range r.resources {
		if res.Category == "" || seen[res.Category] {
			continue
		}
		seen[res.Category] = true
		out = append(out, res.Category)
	}
	sort.Strings(out)
	return out, nil
}
