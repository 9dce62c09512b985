package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS quests (
		id                  TEXT PRIMARY KEY,
		title               TEXT NOT NULL,
		description         TEXT NOT NULL DEFAULT '',
		status              TEXT NOT NULL DEFAULT 'Backlog'
		                    CHECK(status IN ('Backlog','In Progress','Review','Done')),
		priority            INTEGER NOT NULL DEFAULT 3,
		estimated_minutes   INTEGER NOT NULL DEFAULT 30,
		due_date            TEXT,
		assignee            TEXT,
		creator             TEXT NOT NULL,
		recurrence_type     TEXT NOT NULL DEFAULT 'none'
		                    CHECK(recurrence_type IN ('none','daily','weekly','monthly')),
		recurrence_end_date TEXT,
		recurrence_weekdays TEXT NOT NULL DEFAULT '',
		lineage_root_id     TEXT,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_quests_status ON quests(status)`,
	`CREATE INDEX IF NOT EXISTS idx_quests_assignee ON quests(assignee)`,

	// The duplicate-occurrence guard is a read before write, deliberately
	// not a unique constraint; this index only keeps that read O(1).
	`CREATE INDEX IF NOT EXISTS idx_quests_lineage ON quests(lineage_root_id, due_date)`,

	`CREATE TABLE IF NOT EXISTS comments (
		id         TEXT PRIMARY KEY,
		quest_id   TEXT NOT NULL REFERENCES quests(id) ON DELETE CASCADE,
		author     TEXT NOT NULL,
		content    TEXT NOT NULL,
		file_path  TEXT NOT NULL DEFAULT '',
		log_type   TEXT NOT NULL DEFAULT 'user'
		           CHECK(log_type IN ('user','system')),
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_comments_quest ON comments(quest_id)`,

	`CREATE TABLE IF NOT EXISTS quest_templates (
		id                TEXT PRIMARY KEY,
		title             TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		priority          INTEGER NOT NULL DEFAULT 3,
		estimated_minutes INTEGER NOT NULL DEFAULT 30,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS resources (
		id             TEXT PRIMARY KEY,
		title          TEXT NOT NULL,
		url            TEXT NOT NULL,
		category       TEXT NOT NULL DEFAULT 'general',
		tags           TEXT NOT NULL DEFAULT '',
		memo           TEXT NOT NULL DEFAULT '',
		is_favorite    INTEGER NOT NULL DEFAULT 0,
		view_count     INTEGER NOT NULL DEFAULT 0,
		last_viewed_at TEXT,
		created_by     TEXT NOT NULL,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_resources_category ON resources(category)`,
}
