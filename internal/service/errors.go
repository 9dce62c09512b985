package service

import "errors"

// MaxActiveQuests caps how many quests an actor may have In Progress at once.
const MaxActiveQuests = 3

var (
	// ErrCapacityExceeded is returned when accepting a quest would push an
	// actor past MaxActiveQuests.
	ErrCapacityExceeded = errors.New("active quest capacity exceeded")

	// ErrNotAcceptable is returned when accepting a quest that is not in the
	// Backlog.
	ErrNotAcceptable = errors.New("quest is not acceptable")
)
