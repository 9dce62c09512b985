package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/ymorita/questboard/internal/domain"
)

// MemoryCommentRepo is an in-memory CommentRepo.
type MemoryCommentRepo struct {
	mu       sync.RWMutex
	comments map[string]*domain.Comment
}

// NewMemoryCommentRepo creates an empty in-memory comment store.
func NewMemoryCommentRepo() *MemoryCommentRepo {
	return &MemoryCommentRepo{comments: make(map[string]*domain.Comment)}
}

func (r *MemoryCommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *c
	r.comments[c.ID] = &clone
	return nil
}

func (r *MemoryCommentRepo) ListByQuest(ctx context.Context, questID string) ([]*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Comment
	for _, c := range r.comments {
		if c.QuestID == questID {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryCommentRepo) DeleteByQuest(ctx context.Context, questID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.comments {
		if c.QuestID == questID {
			delete(r.comments, id)
		}
	}
	return nil
}
