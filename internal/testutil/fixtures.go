package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/ymorita/questboard/internal/domain"
)

// Quest options
type QuestOption func(*domain.Quest)

func WithStatus(s domain.QuestStatus) QuestOption {
	return func(q *domain.Quest) {
		q.Status = s
	}
}

func WithPriority(p int) QuestOption {
	return func(q *domain.Quest) {
		q.Priority = p
	}
}

func WithEstimate(minutes int) QuestOption {
	return func(q *domain.Quest) {
		q.EstimatedMinutes = minutes
	}
}

func WithDueDate(d time.Time) QuestOption {
	return func(q *domain.Quest) {
		q.DueDate = &d
	}
}

func WithAssignee(name string) QuestOption {
	return func(q *domain.Quest) {
		q.Assignee = name
	}
}

func WithCreator(name string) QuestOption {
	return func(q *domain.Quest) {
		q.Creator = name
	}
}

func WithRecurrence(r domain.Recurrence) QuestOption {
	return func(q *domain.Quest) {
		q.Recurrence = r
	}
}

func WithDaily() QuestOption {
	return func(q *domain.Quest) {
		q.Recurrence.Type = domain.RecurDaily
	}
}

func WithWeekly(weekdays ...int) QuestOption {
	return func(q *domain.Quest) {
		q.Recurrence.Type = domain.RecurWeekly
		q.Recurrence.Weekdays = weekdays
	}
}

func WithMonthly() QuestOption {
	return func(q *domain.Quest) {
		q.Recurrence.Type = domain.RecurMonthly
	}
}

func WithRecurrenceEnd(d time.Time) QuestOption {
	return func(q *domain.Quest) {
		q.Recurrence.EndDate = &d
	}
}

func WithLineageRoot(id string) QuestOption {
	return func(q *domain.Quest) {
		q.Recurrence.LineageRootID = id
	}
}

func WithCreatedAt(t time.Time) QuestOption {
	return func(q *domain.Quest) {
		q.CreatedAt = t
		q.UpdatedAt = t
	}
}

func NewTestQuest(title string, opts ...QuestOption) *domain.Quest {
	now := time.Now().UTC().Truncate(time.Second)
	q := &domain.Quest{
		ID:               uuid.New().String(),
		Title:            title,
		Status:           domain.StatusBacklog,
		Priority:         domain.DefaultPriority,
		EstimatedMinutes: domain.DefaultEstimatedMinutes,
		Creator:          "tester",
		Recurrence:       domain.Recurrence{Type: domain.RecurNone},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Comment options
type CommentOption func(*domain.Comment)

func WithLogType(lt domain.LogType) CommentOption {
	return func(c *domain.Comment) {
		c.LogType = lt
	}
}

func WithFilePath(p string) CommentOption {
	return func(c *domain.Comment) {
		c.FilePath = p
	}
}

func NewTestComment(questID, author, content string, opts ...CommentOption) *domain.Comment {
	c := &domain.Comment{
		ID:        uuid.New().String(),
		QuestID:   questID,
		Author:    author,
		Content:   content,
		LogType:   domain.LogUser,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewTestTemplate(title string) *domain.Template {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Template{
		ID:               uuid.New().String(),
		Title:            title,
		Priority:         domain.DefaultPriority,
		EstimatedMinutes: domain.DefaultEstimatedMinutes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func NewTestResource(title, url string) *domain.Resource {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Resource{
		ID:        uuid.New().String(),
		Title:     title,
		URL:       url,
		CreatedBy: "tester",
		CreatedAt: now,
		UpdatedAt: now,
	}
}
