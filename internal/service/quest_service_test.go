package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ymorita/questboard/internal/domain"
	"github.com/ymorita/questboard/internal/repository"
)

func newTestQuestService(opts ...QuestServiceOption) (QuestService, *repository.MemoryQuestRepo, *repository.MemoryCommentRepo) {
	quests := repository.NewMemoryQuestRepo()
	comments := repository.NewMemoryCommentRepo()
	return NewQuestService(quests, comments, opts...), quests, comments
}

func fixedClock(t time.Time) QuestServiceOption {
	return WithClock(func() time.Time { return t })
}

func TestQuestService_Create_AppliesDefaults(t *testing.T) {
	svc, _, _ := newTestQuestService()
	ctx := context.Background()

	q := &domain.Quest{Title: "  First quest  ", Creator: "alice"}
	require.NoError(t, svc.Create(ctx, q))

	assert.NotEmpty(t, q.ID)
	assert.Equal(t, "First quest", q.Title)
	assert.Equal(t, domain.StatusBacklog, q.Status)
	assert.Equal(t, domain.DefaultPriority, q.Priority)
	assert.Equal(t, domain.DefaultEstimatedMinutes, q.EstimatedMinutes)
	assert.Equal(t, domain.RecurNone, q.Recurrence.Type)

	fetched, err := svc.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Title, fetched.Title)
}

func TestQuestService_Create_Validation(t *testing.T) {
	svc, _, _ := newTestQuestService()
	ctx := context.Background()

	tests := []struct {
		name  string
		quest *domain.Quest
	}{
		{"empty title", &domain.Quest{Title: "   ", Creator: "alice"}},
		{"empty creator", &domain.Quest{Title: "Quest"}},
		{"priority too high", &domain.Quest{Title: "Quest", Creator: "a", Priority: 6}},
		{"negative estimate", &domain.Quest{Title: "Quest", Creator: "a", EstimatedMinutes: -5}},
		{"weekly without weekdays", &domain.Quest{Title: "Quest", Creator: "a",
			Recurrence: domain.Recurrence{Type: domain.RecurWeekly}}},
		{"weekday out of range", &domain.Quest{Title: "Quest", Creator: "a",
			Recurrence: domain.Recurrence{Type: domain.RecurWeekly, Weekdays: []int{7}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(ctx, tt.quest)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestQuestService_Accept(t *testing.T) {
	svc, _, comments := newTestQuestService()
	ctx := context.Background()

	q := &domain.Quest{Title: "Take me", Creator: "bob"}
	require.NoError(t, svc.Create(ctx, q))

	accepted, err := svc.Accept(ctx, q.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, accepted.Status)
	assert.Equal(t, "alice", accepted.Assignee)

	log, err := comments.ListByQuest(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, domain.LogSystem, log[0].LogType)
}

func TestQuestService_Accept_NotBacklog(t *testing.T) {
	svc, _, _ := newTestQuestService()
	ctx := context.Background()

	q := &domain.Quest{Title: "Claimed", Creator: "bob"}
	require.NoError(t, svc.Create(ctx, q))
	_, err := svc.Accept(ctx, q.ID, "alice")
	require.NoError(t, err)

	// A second accept finds the quest already In Progress.
	_, err = svc.Accept(ctx, q.ID, "carol")
	assert.ErrorIs(t, err, ErrNotAcceptable)
}

func TestQuestService_Accept_CapacityCap(t *testing.T) {
	svc, _, _ := newTestQuestService()
	ctx := context.Background()

	for i := 0; i < MaxActiveQuests; i++ {
		q := &domain.Quest{Title: "Busy work", Creator: "bob"}
		require.NoError(t, svc.Create(ctx, q))
		_, err := svc.Accept(ctx, q.ID, "alice")
		require.NoError(t, err)
	}

	extra := &domain.Quest{Title: "One too many", Creator: "bob"}
	require.NoError(t, svc.Create(ctx, extra))
	_, err := svc.Accept(ctx, extra.ID, "alice")
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// The failed accept must leave the quest untouched.
	fetched, err := svc.GetByID(ctx, extra.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBacklog, fetched.Status)
	assert.Empty(t, fetched.Assignee)

	// A different actor still has room.
	got, err := svc.Accept(ctx, extra.ID, "carol")
	require.NoError(t, err)
	assert.Equal(t, "carol", got.Assignee)
}

func TestQuestService_Accept_CapCountsOnlyInProgress(t *testing.T) {
	svc, _, _ := newTestQuestService()
	ctx := context.Background()

	// Fill the cap, then complete one quest to free a slot.
	var ids []string
	for i := 0; i < MaxActiveQuests; i++ {
		q := &domain.Quest{Title: "Work", Creator: "bob"}
		require.NoError(t, svc.Create(ctx, q))
		_, err := svc.Accept(ctx, q.ID, "alice")
		require.NoError(t, err)
		ids = append(ids, q.ID)
	}
	_, err := svc.SetStatus(ctx, ids[0], domain.StatusDone, "alice")
	require.NoError(t, err)

	next := &domain.Quest{Title: "Freed slot", Creator: "bob"}
	require.NoError(t, svc.Create(ctx, next))
	_, err = svc.Accept(ctx, next.ID, "alice")
	assert.NoError(t, err)
}

func TestQuestService_SetStatus_DoneGrantsEXP(t *testing.T) {
	svc, _, _ := newTestQuestService()
	ctx := context.Background()

	q := &domain.Quest{Title: "Rewarding", Creator: "bob", Priority: 3, EstimatedMinutes: 30}
	require.NoError(t, svc.Create(ctx, q))

	change, err := svc.SetStatus(ctx, q.ID, domain.StatusDone, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBacklog, change.OldStatus)
	assert.Equal(t, domain.StatusDone, change.NewStatus)
	assert.Equal(t, 63, change.EarnedEXP) // 3*20 + 30/10
	assert.Nil(t, change.Spawned)
}

func TestQuestService_SetStatus_SameStatusIsNoop(t *testing.T) {
	svc, _, comments := newTestQuestService()
	ctx := context.Background()

	q := &domain.Quest{Title: "Idle", Creator: "bob"}
	require.NoError(t, svc.Create(ctx, q))

	change, err := svc.SetStatus(ctx, q.ID, domain.StatusBacklog, "alice")
	require.NoError(t, err)
	assert.Zero(t, change.EarnedEXP)

	log, err := comments.ListByQuest(ctx, q.ID)
	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestQuestService_SetStatus_InvalidStatus(t *testing.T) {
	svc, _, _ := newTestQuestService()
	ctx := context.Background()

	q := &domain.Quest{Title: "Quest", Creator: "bob"}
	require.NoError(t, svc.Create(ctx, q))

	_, err := svc.SetStatus(ctx, q.ID, "Cancelled", "alice")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestQuestService_Update_WritesSystemLog(t *testing.T) {
	svc, _, comments := newTestQuestService()
	ctx := context.Background()

	q := &domain.Quest{Title: "Before", Creator: "bob"}
	require.NoError(t, svc.Create(ctx, q))

	title := "After"
	prio := 5
	updated, err := svc.Update(ctx, q.ID, domain.QuestUpdate{Title: &title, Priority: &prio}, "alice")
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, 5, updated.Priority)

	log, err := comments.ListByQuest(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Contains(t, log[0].Content, `title to "After"`)
	assert.Contains(t, log[0].Content, "priority to 5")
}

func TestQuestService_Update_EmptyUpdateIsNoop(t *testing.T) {
	svc, _, comments := newTestQuestService()
	ctx := context.Background()

	q := &domain.Quest{Title: "Stable", Creator: "bob"}
	require.NoError(t, svc.Create(ctx, q))

	got, err := svc.Update(ctx, q.ID, domain.QuestUpdate{}, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Stable", got.Title)

	log, err := comments.ListByQuest(ctx, q.ID)
	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestQuestService_Delete_RemovesLog(t *testing.T) {
	svc, _, comments := newTestQuestService()
	ctx := context.Background()

	q := &domain.Quest{Title: "Doomed", Creator: "bob"}
	require.NoError(t, svc.Create(ctx, q))
	_, err := svc.Accept(ctx, q.ID, "alice") // writes a system log entry
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, q.ID))

	_, err = svc.GetByID(ctx, q.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	log, err := comments.ListByQuest(ctx, q.ID)
	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestQuestService_Reassign(t *testing.T) {
	svc, _, comments := newTestQuestService()
	ctx := context.Background()

	q := &domain.Quest{Title: "Handover", Creator: "bob", Assignee: "alice"}
	require.NoError(t, svc.Create(ctx, q))

	got, err := svc.Reassign(ctx, q.ID, "carol", "bob")
	require.NoError(t, err)
	assert.Equal(t, "carol", got.Assignee)

	// Empty assignee unassigns.
	got, err = svc.Reassign(ctx, q.ID, "", "bob")
	require.NoError(t, err)
	assert.Empty(t, got.Assignee)

	log, err := comments.ListByQuest(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, log, 2)
	var contents []string
	for _, c := range log {
		contents = append(contents, c.Content)
	}
	assert.Contains(t, contents, "reassigned from alice to carol")
	assert.Contains(t, contents, "unassigned (was carol)")
}

func TestQuestService_Progress(t *testing.T) {
	svc, _, _ := newTestQuestService()
	ctx := context.Background()

	specs := []struct {
		priority, estimate int
	}{
		{5, 120}, // 112 EXP
		{1, 10},  // 21 EXP
	}
	for _, spec := range specs {
		q := &domain.Quest{Title: "Job", Creator: "bob",
			Priority: spec.priority, EstimatedMinutes: spec.estimate, Assignee: "alice"}
		require.NoError(t, svc.Create(ctx, q))
		_, err := svc.SetStatus(ctx, q.ID, domain.StatusDone, "alice")
		require.NoError(t, err)
	}

	progress, err := svc.Progress(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 133, progress.TotalEXP)
	assert.Equal(t, 2, progress.Level) // 133/100 + 1
	assert.Equal(t, 2, progress.DoneCount)
}

func TestQuestService_Summary(t *testing.T) {
	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	svc, _, _ := newTestQuestService(fixedClock(today))
	ctx := context.Background()

	past := today.AddDate(0, 0, -2)
	overdue := &domain.Quest{Title: "Late", Creator: "bob", DueDate: &past, Assignee: "alice"}
	require.NoError(t, svc.Create(ctx, overdue))
	done := &domain.Quest{Title: "Finished", Creator: "bob", Assignee: "alice"}
	require.NoError(t, svc.Create(ctx, done))
	_, err := svc.SetStatus(ctx, done.ID, domain.StatusDone, "alice")
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.StatusCounts[domain.StatusBacklog])
	assert.Equal(t, 1, summary.StatusCounts[domain.StatusDone])
	assert.Equal(t, 1, summary.AssigneeCounts["alice"]) // Done excluded
	require.Len(t, summary.Overdue, 1)
	assert.Equal(t, "Late", summary.Overdue[0].Title)
}
