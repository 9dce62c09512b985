// Package reward computes the EXP score awarded for completing a quest.
package reward

// Score maps a quest's priority and effort estimate to EXP: 20 points per
// priority level plus one point per started 10-minute block (floor).
//
// The score is never persisted; callers recompute it from the quest's stored
// priority and estimate on demand. There is no formula versioning, so a
// constant change here shifts historical totals as well.
func Score(priority, estimatedMinutes int) int {
	return priority*20 + estimatedMinutes/10
}

// Level derives an adventurer level from accumulated EXP: one level per
// 100 EXP, starting at level 1.
func Level(totalEXP int) int {
	return totalEXP/100 + 1
}

// LevelProgress returns EXP accumulated within the current level and the
// EXP needed to finish it.
func LevelProgress(totalEXP int) (current, needed int) {
	return totalEXP % 100, 100
}
