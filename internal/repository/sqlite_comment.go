package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ymorita/questboard/internal/domain"
)

const commentColumns = `id, quest_id, author, content, file_path, log_type, created_at`

// SQLiteCommentRepo implements CommentRepo using a SQLite database.
type SQLiteCommentRepo struct {
	db *sql.DB
}

// NewSQLiteCommentRepo creates a new SQLiteCommentRepo.
func NewSQLiteCommentRepo(db *sql.DB) *SQLiteCommentRepo {
	return &SQLiteCommentRepo{db: db}
}

func (r *SQLiteCommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	query := `INSERT INTO comments (` + commentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.QuestID,
		c.Author,
		c.Content,
		c.FilePath,
		string(c.LogType),
		c.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting comment: %w", err)
	}
	return nil
}

func (r *SQLiteCommentRepo) ListByQuest(ctx context.Context, questID string) ([]*domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE quest_id = ? ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, questID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		var c domain.Comment
		var logTypeStr, createdAtStr string
		if err := rows.Scan(&c.ID, &c.QuestID, &c.Author, &c.Content, &c.FilePath, &logTypeStr, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		c.LogType = domain.LogType(logTypeStr)
		c.CreatedAt, err = time.Parse(timeLayout, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing comment created_at: %w", err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}
	return comments, nil
}

func (r *SQLiteCommentRepo) DeleteByQuest(ctx context.Context, questID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE quest_id = ?`, questID); err != nil {
		return fmt.Errorf("deleting comments: %w", err)
	}
	return nil
}
