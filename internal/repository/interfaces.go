package repository

import (
	"context"
	"time"

	"github.com/ymorita/questboard/internal/domain"
)

// QuestFilter narrows a quest listing. Zero-value fields are ignored.
type QuestFilter struct {
	Statuses   []domain.QuestStatus
	Priorities []int
	Assignee   string // case-insensitive substring match
	Unassigned bool   // only quests with no assignee
}

// QuestRepo is the storage port for quests. Every read reflects all prior
// committed writes from the same process; the engine holds no cache and
// treats each read as authoritative at call time.
type QuestRepo interface {
	Create(ctx context.Context, q *domain.Quest) error
	GetByID(ctx context.Context, id string) (*domain.Quest, error)
	// List returns quests matching the filter, ordered by priority
	// descending then creation time descending.
	List(ctx context.Context, f QuestFilter) ([]*domain.Quest, error)
	// UpdateFields applies the present fields of u and refreshes
	// updated_at. Returns ErrNotFound if the quest does not exist.
	UpdateFields(ctx context.Context, id string, u domain.QuestUpdate) error
	// ClearRecurrence resets the quest's recurrence rule to none. The
	// lineage root reference is kept so the instance stays attributable
	// to its chain.
	ClearRecurrence(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error

	// CountActive returns the number of quests In Progress and assigned to
	// the given actor, read fresh from storage.
	CountActive(ctx context.Context, assignee string) (int, error)
	// FindOccurrence looks up the quest, if any, in the given lineage with
	// the given due date. This is the scheduler's idempotency read.
	FindOccurrence(ctx context.Context, rootID string, dueDate time.Time) (*domain.Quest, error)

	CountByStatus(ctx context.Context) (map[domain.QuestStatus]int, error)
	// ActiveCountsByAssignee returns, per assignee, the number of quests
	// not yet Done. Unassigned quests group under the empty string.
	ActiveCountsByAssignee(ctx context.Context) (map[string]int, error)
	ListOverdue(ctx context.Context, today time.Time) ([]*domain.Quest, error)
	ListDoneByAssignee(ctx context.Context, assignee string) ([]*domain.Quest, error)
}

type CommentRepo interface {
	Create(ctx context.Context, c *domain.Comment) error
	// ListByQuest returns a quest's log entries oldest first.
	ListByQuest(ctx context.Context, questID string) ([]*domain.Comment, error)
	DeleteByQuest(ctx context.Context, questID string) error
}

type TemplateRepo interface {
	Create(ctx context.Context, t *domain.Template) error
	GetByID(ctx context.Context, id string) (*domain.Template, error)
	List(ctx context.Context) ([]*domain.Template, error)
	Update(ctx context.Context, t *domain.Template) error
	Delete(ctx context.Context, id string) error
}

type ResourceRepo interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	// List returns resources ordered favorites first, then by view count
	// and creation time descending.
	List(ctx context.Context) ([]*domain.Resource, error)
	Update(ctx context.Context, r *domain.Resource) error
	// IncrementView bumps the view counter and stamps last_viewed_at.
	IncrementView(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
	// Tags returns the distinct tags across all resources, sorted.
	Tags(ctx context.Context) ([]string, error)
}
