package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuest() *Quest {
	return &Quest{
		Title:            "Patrol the walls",
		Status:           StatusBacklog,
		Priority:         3,
		EstimatedMinutes: 30,
		Creator:          "guildmaster",
		Recurrence:       Recurrence{Type: RecurNone},
	}
}

func TestQuest_ValidateNew(t *testing.T) {
	require.NoError(t, validQuest().ValidateNew())

	tests := []struct {
		name   string
		mutate func(*Quest)
	}{
		{"blank title", func(q *Quest) { q.Title = "  " }},
		{"blank creator", func(q *Quest) { q.Creator = "" }},
		{"priority zero", func(q *Quest) { q.Priority = 0 }},
		{"priority six", func(q *Quest) { q.Priority = 6 }},
		{"zero estimate", func(q *Quest) { q.EstimatedMinutes = 0 }},
		{"bad status", func(q *Quest) { q.Status = "Cancelled" }},
		{"bad recurrence type", func(q *Quest) { q.Recurrence.Type = "yearly" }},
		{"weekly without weekdays", func(q *Quest) { q.Recurrence = Recurrence{Type: RecurWeekly} }},
		{"weekday out of range", func(q *Quest) {
			q.Recurrence = Recurrence{Type: RecurWeekly, Weekdays: []int{0, 7}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuest()
			tt.mutate(q)
			assert.ErrorIs(t, q.ValidateNew(), ErrValidation)
		})
	}
}

func TestQuest_LineageRoot(t *testing.T) {
	q := validQuest()
	q.ID = "first-gen"
	assert.Equal(t, "first-gen", q.LineageRoot())

	q.Recurrence.LineageRootID = "the-root"
	assert.Equal(t, "the-root", q.LineageRoot())
}

func TestRecurrence_IsRecurring(t *testing.T) {
	assert.False(t, Recurrence{}.IsRecurring())
	assert.False(t, Recurrence{Type: RecurNone}.IsRecurring())
	assert.True(t, Recurrence{Type: RecurDaily}.IsRecurring())
	assert.True(t, Recurrence{Type: RecurMonthly}.IsRecurring())
}

func TestQuestUpdate_Empty(t *testing.T) {
	assert.True(t, QuestUpdate{}.Empty())

	title := "x"
	assert.False(t, QuestUpdate{Title: &title}.Empty())
	assert.False(t, QuestUpdate{ClearDueDate: true}.Empty())
}

func TestQuestUpdate_Validate(t *testing.T) {
	blank := "  "
	bad := QuestUpdate{Title: &blank}
	assert.ErrorIs(t, bad.Validate(), ErrValidation)

	prio := 0
	assert.ErrorIs(t, QuestUpdate{Priority: &prio}.Validate(), ErrValidation)

	est := -1
	assert.ErrorIs(t, QuestUpdate{EstimatedMinutes: &est}.Validate(), ErrValidation)

	status := QuestStatus("Paused")
	assert.ErrorIs(t, QuestUpdate{Status: &status}.Validate(), ErrValidation)
}

func TestQuestUpdate_Apply(t *testing.T) {
	q := validQuest()
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	q.DueDate = &due

	title := "  Renamed  "
	status := StatusReview
	assignee := " alice "
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

	u := QuestUpdate{Title: &title, Status: &status, Assignee: &assignee, ClearDueDate: true}
	u.Apply(q, now)

	assert.Equal(t, "Renamed", q.Title)
	assert.Equal(t, StatusReview, q.Status)
	assert.Equal(t, "alice", q.Assignee)
	assert.Nil(t, q.DueDate)
	assert.Equal(t, now, q.UpdatedAt)
}

func TestParseQuestStatus(t *testing.T) {
	for _, s := range AllQuestStatuses() {
		got, err := ParseQuestStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseQuestStatus("backlog") // literals are case-sensitive
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResource_TagList(t *testing.T) {
	r := &Resource{Tags: " go , docs ,, sqlite "}
	assert.Equal(t, []string{"go", "docs", "sqlite"}, r.TagList())

	assert.Empty(t, (&Resource{}).TagList())
}
