package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ymorita/questboard/internal/domain"
	"github.com/ymorita/questboard/internal/recurrence"
	"github.com/ymorita/questboard/internal/repository"
)

// spawnSuccessor materializes the next occurrence of a completed recurring
// quest. It runs synchronously inside the Done transition.
//
// The sequence is: compute the next due date, check the lineage for an
// existing quest on that date, create the successor, then clear the rule on
// the completed source so a repeated Done transition cannot fire again.
func (s *questService) spawnSuccessor(ctx context.Context, q *domain.Quest) (*domain.Quest, error) {
	rule := q.Recurrence
	if !rule.IsRecurring() {
		return nil, nil
	}

	// A rule whose window closed before this completion spawns nothing,
	// even when the due-date-anchored next occurrence would still fall
	// inside it. Covers quests completed long after their end date.
	evalDay := recurrence.DateOnly(s.now())
	if rule.EndDate != nil && evalDay.After(recurrence.DateOnly(*rule.EndDate)) {
		return nil, s.retireRule(ctx, q.ID)
	}

	// The completed quest's own due date anchors the computation; an
	// undated quest recurs from the day it was completed.
	base := evalDay
	if q.DueDate != nil {
		base = recurrence.DateOnly(*q.DueDate)
	}

	next, ok := recurrence.NextOccurrence(rule, base)
	if !ok {
		// The next occurrence lands past the end date. The chain is
		// finished either way.
		return nil, s.retireRule(ctx, q.ID)
	}

	root := q.LineageRoot()

	// Idempotency read: if the lineage already holds a quest due on the
	// computed date, a successor was already materialized.
	existing, err := s.quests.FindOccurrence(ctx, root, next)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking for existing occurrence: %w", err)
	}
	if existing != nil {
		return nil, nil
	}

	now := s.now()
	successor := &domain.Quest{
		ID:               uuid.New().String(),
		Title:            q.Title,
		Description:      q.Description,
		Status:           domain.StatusBacklog,
		Priority:         q.Priority,
		EstimatedMinutes: q.EstimatedMinutes,
		DueDate:          &next,
		Creator:          q.Creator,
		Recurrence: domain.Recurrence{
			Type:          rule.Type,
			EndDate:       rule.EndDate,
			Weekdays:      append([]int(nil), rule.Weekdays...),
			LineageRootID: root,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.quests.Create(ctx, successor); err != nil {
		return nil, fmt.Errorf("creating successor quest: %w", err)
	}
	s.logSystem(ctx, successor.ID, "", fmt.Sprintf("spawned from recurring quest, due %s", next.Format("2006-01-02")))

	// The rule now lives on the successor only. Clearing it on the source
	// makes a second Done transition on the same quest a no-op.
	if err := s.quests.ClearRecurrence(ctx, q.ID); err != nil {
		return nil, fmt.Errorf("clearing recurrence on completed quest: %w", err)
	}
	return successor, nil
}

// retireRule clears the recurrence rule on a finished chain and leaves a
// system log entry so the quest reads as a plain completed quest.
func (s *questService) retireRule(ctx context.Context, id string) error {
	if err := s.quests.ClearRecurrence(ctx, id); err != nil {
		return fmt.Errorf("retiring recurrence rule: %w", err)
	}
	s.logSystem(ctx, id, "", "recurrence ended, no further occurrence")
	return nil
}
