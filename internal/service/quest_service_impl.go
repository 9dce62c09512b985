package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ymorita/questboard/internal/domain"
	"github.com/ymorita/questboard/internal/repository"
	"github.com/ymorita/questboard/internal/reward"
)

type questService struct {
	quests   repository.QuestRepo
	comments repository.CommentRepo
	obs      UseCaseObserver
	now      func() time.Time
}

// QuestServiceOption configures optional quest service behavior.
type QuestServiceOption func(*questService)

// WithClock overrides the service clock. Tests use this to pin the
// recurrence evaluation date.
func WithClock(now func() time.Time) QuestServiceOption {
	return func(s *questService) {
		s.now = now
	}
}

// WithObserver attaches a use-case observer.
func WithObserver(obs UseCaseObserver) QuestServiceOption {
	return func(s *questService) {
		if obs != nil {
			s.obs = obs
		}
	}
}

func NewQuestService(quests repository.QuestRepo, comments repository.CommentRepo, opts ...QuestServiceOption) QuestService {
	s := &questService{
		quests:   quests,
		comments: comments,
		obs:      NoopUseCaseObserver{},
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *questService) Create(ctx context.Context, q *domain.Quest) error {
	return observeUseCase(ctx, s.obs, "quest.create", map[string]any{"title": q.Title}, func() error {
		q.Title = strings.TrimSpace(q.Title)
		if q.Status == "" {
			q.Status = domain.StatusBacklog
		}
		if q.Priority == 0 {
			q.Priority = domain.DefaultPriority
		}
		if q.EstimatedMinutes == 0 {
			q.EstimatedMinutes = domain.DefaultEstimatedMinutes
		}
		if q.Recurrence.Type == "" {
			q.Recurrence.Type = domain.RecurNone
		}
		if err := q.ValidateNew(); err != nil {
			return err
		}

		q.ID = uuid.New().String()
		now := s.now()
		q.CreatedAt = now
		q.UpdatedAt = now
		if err := s.quests.Create(ctx, q); err != nil {
			return fmt.Errorf("creating quest: %w", err)
		}
		return nil
	})
}

func (s *questService) GetByID(ctx context.Context, id string) (*domain.Quest, error) {
	return s.quests.GetByID(ctx, id)
}

func (s *questService) List(ctx context.Context, f repository.QuestFilter) ([]*domain.Quest, error) {
	return s.quests.List(ctx, f)
}

func (s *questService) Update(ctx context.Context, id string, u domain.QuestUpdate, actor string) (*domain.Quest, error) {
	var updated *domain.Quest
	err := observeUseCase(ctx, s.obs, "quest.update", map[string]any{"quest_id": id}, func() error {
		if u.Empty() {
			var err error
			updated, err = s.quests.GetByID(ctx, id)
			return err
		}
		if err := u.Validate(); err != nil {
			return err
		}
		if err := s.quests.UpdateFields(ctx, id, u); err != nil {
			return err
		}
		s.logSystem(ctx, id, actor, describeUpdate(u))

		var err error
		updated, err = s.quests.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *questService) Delete(ctx context.Context, id string) error {
	return observeUseCase(ctx, s.obs, "quest.delete", map[string]any{"quest_id": id}, func() error {
		if _, err := s.quests.GetByID(ctx, id); err != nil {
			return err
		}
		// The SQL backend cascades via foreign key; deleting explicitly
		// keeps the in-memory backend in step.
		if err := s.comments.DeleteByQuest(ctx, id); err != nil {
			return fmt.Errorf("deleting quest log: %w", err)
		}
		return s.quests.Delete(ctx, id)
	})
}

func (s *questService) Accept(ctx context.Context, id, actor string) (*domain.Quest, error) {
	var accepted *domain.Quest
	err := observeUseCase(ctx, s.obs, "quest.accept", map[string]any{"quest_id": id, "actor": actor}, func() error {
		actor = strings.TrimSpace(actor)
		if actor == "" {
			return fmt.Errorf("actor must not be empty: %w", domain.ErrValidation)
		}

		q, err := s.quests.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if q.Status != domain.StatusBacklog {
			return fmt.Errorf("quest %s is %s: %w", id, q.Status, ErrNotAcceptable)
		}

		// Fresh count every attempt; the cap is checked against storage,
		// never a cached value.
		active, err := s.quests.CountActive(ctx, actor)
		if err != nil {
			return fmt.Errorf("counting active quests: %w", err)
		}
		if active >= MaxActiveQuests {
			return fmt.Errorf("%s already has %d active quests: %w", actor, active, ErrCapacityExceeded)
		}

		status := domain.StatusInProgress
		if err := s.quests.UpdateFields(ctx, id, domain.QuestUpdate{
			Status:   &status,
			Assignee: &actor,
		}); err != nil {
			return err
		}
		s.logSystem(ctx, id, actor, fmt.Sprintf("%s accepted the quest", actor))

		accepted, err = s.quests.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

func (s *questService) SetStatus(ctx context.Context, id string, status domain.QuestStatus, actor string) (*StatusChange, error) {
	var change *StatusChange
	err := observeUseCase(ctx, s.obs, "quest.set_status", map[string]any{"quest_id": id, "status": string(status)}, func() error {
		if !status.Valid() {
			return fmt.Errorf("invalid status %q: %w", status, domain.ErrValidation)
		}

		q, err := s.quests.GetByID(ctx, id)
		if err != nil {
			return err
		}
		old := q.Status
		if old == status {
			change = &StatusChange{Quest: q, OldStatus: old, NewStatus: status}
			return nil
		}

		if err := s.quests.UpdateFields(ctx, id, domain.QuestUpdate{Status: &status}); err != nil {
			return err
		}
		s.logSystem(ctx, id, actor, fmt.Sprintf("status changed from %s to %s", old, status))

		change = &StatusChange{OldStatus: old, NewStatus: status}

		// Reward and recurrence fire only on the transition into Done;
		// a quest already Done stays inert.
		if status == domain.StatusDone {
			change.EarnedEXP = reward.Score(q.Priority, q.EstimatedMinutes)
			spawned, err := s.spawnSuccessor(ctx, q)
			if err != nil {
				return err
			}
			change.Spawned = spawned
		}

		change.Quest, err = s.quests.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return change, nil
}

func (s *questService) Reassign(ctx context.Context, id, assignee, actor string) (*domain.Quest, error) {
	var updated *domain.Quest
	err := observeUseCase(ctx, s.obs, "quest.reassign", map[string]any{"quest_id": id, "assignee": assignee}, func() error {
		q, err := s.quests.GetByID(ctx, id)
		if err != nil {
			return err
		}

		assignee = strings.TrimSpace(assignee)
		if err := s.quests.UpdateFields(ctx, id, domain.QuestUpdate{Assignee: &assignee}); err != nil {
			return err
		}
		if assignee == "" {
			s.logSystem(ctx, id, actor, fmt.Sprintf("unassigned (was %s)", orUnassigned(q.Assignee)))
		} else {
			s.logSystem(ctx, id, actor, fmt.Sprintf("reassigned from %s to %s", orUnassigned(q.Assignee), assignee))
		}

		updated, err = s.quests.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *questService) Overdue(ctx context.Context, today time.Time) ([]*domain.Quest, error) {
	return s.quests.ListOverdue(ctx, today)
}

func (s *questService) Summary(ctx context.Context, today time.Time) (*BoardSummary, error) {
	statusCounts, err := s.quests.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting quests by status: %w", err)
	}
	assigneeCounts, err := s.quests.ActiveCountsByAssignee(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting quests by assignee: %w", err)
	}
	overdue, err := s.quests.ListOverdue(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("listing overdue quests: %w", err)
	}
	return &BoardSummary{
		StatusCounts:   statusCounts,
		AssigneeCounts: assigneeCounts,
		Overdue:        overdue,
	}, nil
}

func (s *questService) Progress(ctx context.Context, assignee string) (*ActorProgress, error) {
	done, err := s.quests.ListDoneByAssignee(ctx, assignee)
	if err != nil {
		return nil, fmt.Errorf("listing completed quests: %w", err)
	}
	total := 0
	for _, q := range done {
		total += reward.Score(q.Priority, q.EstimatedMinutes)
	}
	return &ActorProgress{
		Assignee:  assignee,
		TotalEXP:  total,
		Level:     reward.Level(total),
		DoneCount: len(done),
	}, nil
}

// logSystem appends a system log entry to a quest. Log failures are
// swallowed: the primary mutation already committed and the log is advisory.
func (s *questService) logSystem(ctx context.Context, questID, actor, content string) {
	author := strings.TrimSpace(actor)
	if author == "" {
		author = "system"
	}
	_ = s.comments.Create(ctx, &domain.Comment{
		ID:        uuid.New().String(),
		QuestID:   questID,
		Author:    author,
		Content:   content,
		LogType:   domain.LogSystem,
		CreatedAt: s.now(),
	})
}

func describeUpdate(u domain.QuestUpdate) string {
	var parts []string
	if u.Title != nil {
		parts = append(parts, fmt.Sprintf("title to %q", strings.TrimSpace(*u.Title)))
	}
	if u.Description != nil {
		parts = append(parts, "description")
	}
	if u.Status != nil {
		parts = append(parts, fmt.Sprintf("status to %s", *u.Status))
	}
	if u.Priority != nil {
		parts = append(parts, fmt.Sprintf("priority to %d", *u.Priority))
	}
	if u.EstimatedMinutes != nil {
		parts = append(parts, fmt.Sprintf("estimate to %dmin", *u.EstimatedMinutes))
	}
	if u.ClearDueDate {
		parts = append(parts, "cleared due date")
	} else if u.DueDate != nil {
		parts = append(parts, fmt.Sprintf("due date to %s", u.DueDate.Format("2006-01-02")))
	}
	if u.Assignee != nil {
		parts = append(parts, fmt.Sprintf("assignee to %s", orUnassigned(strings.TrimSpace(*u.Assignee))))
	}
	return "updated " + strings.Join(parts, ", ")
}

func orUnassigned(s string) string {
	if s == "" {
		return "unassigned"
	}
	return s
}
