package domain

import "fmt"

type QuestStatus string

const (
	StatusBacklog    QuestStatus = "Backlog"
	StatusInProgress QuestStatus = "In Progress"
	StatusReview     QuestStatus = "Review"
	StatusDone       QuestStatus = "Done"
)

// questStatuses is the canonical ordered set of accepted status literals.
var questStatuses = []QuestStatus{StatusBacklog, StatusInProgress, StatusReview, StatusDone}

// AllQuestStatuses returns the status literals in board order.
func AllQuestStatuses() []QuestStatus {
	out := make([]QuestStatus, len(questStatuses))
	copy(out, questStatuses)
	return out
}

// ParseQuestStatus validates a raw status string against the four accepted
// literals. Any other value is rejected.
func ParseQuestStatus(s string) (QuestStatus, error) {
	for _, st := range questStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status %q: %w", s, ErrValidation)
}

func (s QuestStatus) Valid() bool {
	for _, st := range questStatuses {
		if st == s {
			return true
		}
	}
	return false
}

type RecurrenceType string

const (
	RecurNone    RecurrenceType = "none"
	RecurDaily   RecurrenceType = "daily"
	RecurWeekly  RecurrenceType = "weekly"
	RecurMonthly RecurrenceType = "monthly"
)

func (t RecurrenceType) Valid() bool {
	switch t {
	case RecurNone, RecurDaily, RecurWeekly, RecurMonthly:
		return true
	}
	return false
}

type LogType string

const (
	LogUser   LogType = "user"
	LogSystem LogType = "system"
)
