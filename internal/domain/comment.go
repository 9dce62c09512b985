package domain

import "time"

// Comment is an append-only log entry belonging to exactly one quest.
// LogType separates system-generated transition notices from user
// annotations; FilePath optionally points at an attachment on disk.
type Comment struct {
	ID        string
	QuestID   string
	Author    string
	Content   string
	FilePath  string
	LogType   LogType
	CreatedAt time.Time
}
