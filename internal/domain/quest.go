package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultPriority         = 3
	DefaultEstimatedMinutes = 30
)

// Quest is a trackable unit of work with a lifecycle status.
type Quest struct {
	ID          string
	Title       string
	Description string
	Status      QuestStatus
	Priority    int // 1-5, drives reward and default sort order
	// EstimatedMinutes is the rough effort estimate; feeds the reward score.
	EstimatedMinutes int
	DueDate          *time.Time // calendar date, no time component
	Assignee         string     // empty means unassigned
	Creator          string
	Recurrence       Recurrence
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Recurrence describes how a completed quest spawns a future quest.
// LineageRootID points at the quest that started the chain; every generated
// successor references the root directly so duplicate detection never walks
// a chain. Empty on a first-generation quest (it is its own root).
type Recurrence struct {
	Type          RecurrenceType
	EndDate       *time.Time
	Weekdays      []int // 0-6, Monday = 0; weekly only
	LineageRootID string
}

// IsRecurring reports whether completing this quest should be followed by
// materializing a successor.
func (r Recurrence) IsRecurring() bool {
	return r.Type != "" && r.Type != RecurNone
}

// ValidateNew checks the creation-time invariants. The engine applies
// defaults (priority 3, estimate 30, status Backlog) before calling this.
func (q *Quest) ValidateNew() error {
	if strings.TrimSpace(q.Title) == "" {
		return fmt.Errorf("title must not be empty: %w", ErrValidation)
	}
	if strings.TrimSpace(q.Creator) == "" {
		return fmt.Errorf("creator must not be empty: %w", ErrValidation)
	}
	if q.Priority < 1 || q.Priority > 5 {
		return fmt.Errorf("priority must be between 1 and 5, got %d: %w", q.Priority, ErrValidation)
	}
	if q.EstimatedMinutes <= 0 {
		return fmt.Errorf("estimated minutes must be positive, got %d: %w", q.EstimatedMinutes, ErrValidation)
	}
	if !q.Status.Valid() {
		return fmt.Errorf("invalid status %q: %w", q.Status, ErrValidation)
	}
	if !q.Recurrence.Type.Valid() {
		return fmt.Errorf("invalid recurrence type %q: %w", q.Recurrence.Type, ErrValidation)
	}
	if q.Recurrence.Type == RecurWeekly && len(q.Recurrence.Weekdays) == 0 {
		return fmt.Errorf("weekly recurrence requires at least one weekday: %w", ErrValidation)
	}
	for _, d := range q.Recurrence.Weekdays {
		if d < 0 || d > 6 {
			return fmt.Errorf("weekday %d out of range 0-6: %w", d, ErrValidation)
		}
	}
	return nil
}

// LineageRoot resolves the id all occurrences of this quest's chain share:
// the stored root reference, or the quest itself on first generation.
func (q *Quest) LineageRoot() string {
	if q.Recurrence.LineageRootID != "" {
		return q.Recurrence.LineageRootID
	}
	return q.ID
}

// QuestUpdate is a typed partial update: only non-nil fields are applied.
// This replaces the original open-ended field map so the allowed-field set
// is enforced at compile time.
type QuestUpdate struct {
	Title            *string
	Description      *string
	Status           *QuestStatus
	Priority         *int
	EstimatedMinutes *int
	DueDate          *time.Time
	ClearDueDate     bool
	Assignee         *string // empty string unassigns
}

// Empty reports whether the update would change nothing.
func (u QuestUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil &&
		u.Priority == nil && u.EstimatedMinutes == nil &&
		u.DueDate == nil && !u.ClearDueDate && u.Assignee == nil
}

// Validate rejects updates that would break quest invariants.
func (u QuestUpdate) Validate() error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return fmt.Errorf("title must not be empty: %w", ErrValidation)
	}
	if u.Status != nil && !u.Status.Valid() {
		return fmt.Errorf("invalid status %q: %w", *u.Status, ErrValidation)
	}
	if u.Priority != nil && (*u.Priority < 1 || *u.Priority > 5) {
		return fmt.Errorf("priority must be between 1 and 5, got %d: %w", *u.Priority, ErrValidation)
	}
	if u.EstimatedMinutes != nil && *u.EstimatedMinutes <= 0 {
		return fmt.Errorf("estimated minutes must be positive, got %d: %w", *u.EstimatedMinutes, ErrValidation)
	}
	return nil
}

// Apply writes the present fields onto q. Persistence adapters use this to
// keep in-memory and SQL behavior identical.
func (u QuestUpdate) Apply(q *Quest, now time.Time) {
	if u.Title != nil {
		q.Title = strings.TrimSpace(*u.Title)
	}
	if u.Description != nil {
		q.Description = *u.Description
	}
	if u.Status != nil {
		q.Status = *u.Status
	}
	if u.Priority != nil {
		q.Priority = *u.Priority
	}
	if u.EstimatedMinutes != nil {
		q.EstimatedMinutes = *u.EstimatedMinutes
	}
	if u.ClearDueDate {
		q.DueDate = nil
	} else if u.DueDate != nil {
		d := *u.DueDate
		q.DueDate = &d
	}
	if u.Assignee != nil {
		q.Assignee = strings.TrimSpace(*u.Assignee)
	}
	q.UpdatedAt = now
}
