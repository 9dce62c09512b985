package service

import (
	"context"
	"time"

	"github.com/ymorita/questboard/internal/domain"
	"github.com/ymorita/questboard/internal/repository"
)

// StatusChange is the result of a status transition, including any reward
// granted and any recurrence successor materialized by the transition.
type StatusChange struct {
	Quest     *domain.Quest
	OldStatus domain.QuestStatus
	NewStatus domain.QuestStatus
	// EarnedEXP is non-zero only on a transition into Done.
	EarnedEXP int
	// Spawned is the successor quest created by the recurrence engine, if
	// the completed quest carried an active rule.
	Spawned *domain.Quest
}

// ActorProgress summarizes an actor's accumulated reward.
type ActorProgress struct {
	Assignee  string
	TotalEXP  int
	Level     int
	DoneCount int
}

// BoardSummary aggregates the board for the dashboard view.
type BoardSummary struct {
	StatusCounts   map[domain.QuestStatus]int
	AssigneeCounts map[string]int
	Overdue        []*domain.Quest
}

type QuestService interface {
	// Create validates and stores a new quest, applying defaults for
	// priority, estimate, and status.
	Create(ctx context.Context, q *domain.Quest) error
	GetByID(ctx context.Context, id string) (*domain.Quest, error)
	List(ctx context.Context, f repository.QuestFilter) ([]*domain.Quest, error)
	// Update applies a partial update and records a system log entry
	// describing the change.
	Update(ctx context.Context, id string, u domain.QuestUpdate, actor string) (*domain.Quest, error)
	// Delete removes the quest and its log entries.
	Delete(ctx context.Context, id string) error

	// Accept moves a Backlog quest to In Progress for the actor, enforcing
	// the MaxActiveQuests cap with a fresh count read.
	Accept(ctx context.Context, id, actor string) (*domain.Quest, error)
	// SetStatus transitions a quest. A transition into Done grants EXP and
	// runs the recurrence engine synchronously before returning.
	SetStatus(ctx context.Context, id string, status domain.QuestStatus, actor string) (*StatusChange, error)
	// Reassign hands the quest to a different actor; an empty assignee
	// unassigns it.
	Reassign(ctx context.Context, id, assignee, actor string) (*domain.Quest, error)

	Overdue(ctx context.Context, today time.Time) ([]*domain.Quest, error)
	Summary(ctx context.Context, today time.Time) (*BoardSummary, error)
	Progress(ctx context.Context, assignee string) (*ActorProgress, error)
}

type CommentService interface {
	// Add records a user log entry on a quest.
	Add(ctx context.Context, questID, author, content, filePath string) (*domain.Comment, error)
	ListByQuest(ctx context.Context, questID string) ([]*domain.Comment, error)
}

type TemplateService interface {
	Create(ctx context.Context, t *domain.Template) error
	GetByID(ctx context.Context, id string) (*domain.Template, error)
	List(ctx context.Context) ([]*domain.Template, error)
	Update(ctx context.Context, t *domain.Template) error
	Delete(ctx context.Context, id string) error
	// Instantiate creates a new Backlog quest from a template.
	Instantiate(ctx context.Context, templateID, creator string, dueDate *time.Time) (*domain.Quest, error)
}

type ResourceService interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	// View returns the resource after bumping its view counter.
	View(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context) ([]*domain.Resource, error)
	Update(ctx context.Context, r *domain.Resource) error
	ToggleFavorite(ctx context.Context, id string) (*domain.Resource, error)
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
	Tags(ctx context.Context) ([]string, error)
}
