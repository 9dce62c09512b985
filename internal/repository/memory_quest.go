package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ymorita/questboard/internal/domain"
	"github.com/ymorita/questboard/internal/recurrence"
)

// MemoryQuestRepo is an in-memory QuestRepo. It mirrors the SQLite adapter's
// ordering and not-found semantics so the engine behaves identically on
// either backend.
type MemoryQuestRepo struct {
	mu     sync.RWMutex
	quests map[string]*domain.Quest
}

// NewMemoryQuestRepo creates an empty in-memory quest store.
func NewMemoryQuestRepo() *MemoryQuestRepo {
	return &MemoryQuestRepo{quests: make(map[string]*domain.Quest)}
}

func cloneQuest(q *domain.Quest) *domain.Quest {
	c := *q
	if q.DueDate != nil {
		d := *q.DueDate
		c.DueDate = &d
	}
	if q.Recurrence.EndDate != nil {
		d := *q.Recurrence.EndDate
		c.Recurrence.EndDate = &d
	}
	if q.Recurrence.Weekdays != nil {
		c.Recurrence.Weekdays = append([]int(nil), q.Recurrence.Weekdays...)
	}
	return &c
}

func (r *MemoryQuestRepo) Create(ctx context.Context, q *domain.Quest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.quests[q.ID]; exists {
		return fmt.Errorf("quest %s already exists", q.ID)
	}
	r.quests[q.ID] = cloneQuest(q)
	return nil
}

func (r *MemoryQuestRepo) GetByID(ctx context.Context, id string) (*domain.Quest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.quests[id]
	if !ok {
		return nil, fmt.Errorf("quest: %w", ErrNotFound)
	}
	return cloneQuest(q), nil
}

func (r *MemoryQuestRepo) List(ctx context.Context, f QuestFilter) ([]*domain.Quest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Quest
	for _, q := range r.quests {
		if matchesFilter(q, f) {
			out = append(out, cloneQuest(q))
		}
	}
	sortQuests(out)
	return out, nil
}

func matchesFilter(q *domain.Quest, f QuestFilter) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if q.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(f.Priorities) > 0 {
		found := false
		for _, p := range f.Priorities {
			if q.Priority == p {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Unassigned && q.Assignee != "" {
		return false
	}
	if f.Assignee != "" && !strings.Contains(strings.ToLower(q.Assignee), strings.ToLower(f.Assignee)) {
		return false
	}
	return true
}

func sortQuests(qs []*domain.Quest) {
	sort.SliceStable(qs, func(i, j int) bool {
		if qs[i].Priority != qs[j].Priority {
			return qs[i].Priority > qs[j].Priority
		}
		return qs[i].CreatedAt.After(qs[j].CreatedAt)
	})
}

func (r *MemoryQuestRepo) UpdateFields(ctx context.Context, id string, u domain.QuestUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quests[id]
	if !ok {
		return fmt.Errorf("quest: %w", ErrNotFound)
	}
	u.Apply(q, time.Now().UTC().Truncate(time.Second))
	return nil
}

func (r *MemoryQuestRepo) ClearRecurrence(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quests[id]
	if !ok {
		return fmt.Errorf("quest: %w", ErrNotFound)
	}
	root := q.Recurrence.LineageRootID
	q.Recurrence = domain.Recurrence{Type: domain.RecurNone, LineageRootID: root}
	q.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	return nil
}

func (r *MemoryQuestRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quests[id]; !ok {
		return fmt.Errorf("quest: %w", ErrNotFound)
	}
	delete(r.quests, id)
	return nil
}

func (r *MemoryQuestRepo) CountActive(ctx context.Context, assignee string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, q := range r.quests {
		if q.Status == domain.StatusInProgress && q.Assignee == assignee {
			count++
		}
	}
	return count, nil
}

func (r *MemoryQuestRepo) FindOccurrence(ctx context.Context, rootID string, dueDate time.Time) (*domain.Quest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	day := recurrence.DateOnly(dueDate)
	for _, q := range r.quests {
		if q.Recurrence.LineageRootID != rootID || q.DueDate == nil {
			continue
		}
		if recurrence.DateOnly(*q.DueDate).Equal(day) {
			return cloneQuest(q), nil
		}
	}
	return nil, fmt.Errorf("quest: %w", ErrNotFound)
}

func (r *MemoryQuestRepo) CountByStatus(ctx context.Context) (map[domain.QuestStatus]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[domain.QuestStatus]int)
	for _, q := range r.quests {
		counts[q.Status]++
	}
	return counts, nil
}

func (r *MemoryQuestRepo) ActiveCountsByAssignee(ctx context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[string]int)
	for _, q := range r.quests {
		if q.Status == domain.StatusDone {
			continue
		}
		counts[q.Assignee]++
	}
	return counts, nil
}

func (r *MemoryQuestRepo) ListOverdue(ctx context.Context, today time.Time) ([]*domain.Quest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	day := recurrence.DateOnly(today)
	var out []*domain.Quest
	for _, q := range r.quests {
		if q.Status == domain.StatusDone || q.DueDate == nil {
			continue
		}
		if recurrence.DateOnly(*q.DueDate).Before(day) {
			out = append(out, cloneQuest(q))
		}
	}
	sortQuests(out)
	return out, nil
}

func (r *MemoryQuestRepo) ListDoneByAssignee(ctx context.Context, assignee string) ([]*domain.Quest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Quest
	for _, q := range r.quests {
		if q.Status == domain.StatusDone && q.Assignee == assignee {
			out = append(out, cloneQuest(q))
		}
	}
	sortQuests(out)
	return out, nil
}
