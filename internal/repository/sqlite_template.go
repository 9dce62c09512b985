package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ymorita/questboard/internal/domain"
)

const templateColumns = `id, title, description, priority, estimated_minutes, created_at, updated_at`

// SQLiteTemplateRepo implements TemplateRepo using a SQLite database.
type SQLiteTemplateRepo struct {
	db *sql.DB
}

// NewSQLiteTemplateRepo creates a new SQLiteTemplateRepo.
func NewSQLiteTemplateRepo(db *sql.DB) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{db: db}
}

func (r *SQLiteTemplateRepo) Create(ctx context.Context, t *domain.Template) error {
	query := `INSERT INTO quest_templates (` + templateColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		t.Priority,
		t.EstimatedMinutes,
		t.CreatedAt.Format(timeLayout),
		t.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM quest_templates WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanTemplate(row.Scan)
}

func (r *SQLiteTemplateRepo) List(ctx context.Context) ([]*domain.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM quest_templates ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var templates []*domain.Template
	for rows.Next() {
		t, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return templates, nil
}

func (r *SQLiteTemplateRepo) Update(ctx context.Context, t *domain.Template) error {
	query := `UPDATE quest_templates
		SET title = ?, description = ?, priority = ?, estimated_minutes = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title, t.Description, t.Priority, t.EstimatedMinutes,
		t.UpdatedAt.Format(timeLayout), t.ID)
	if err != nil {
		return fmt.Errorf("updating template: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking template update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("template: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteTemplateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quest_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking template delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("template: %w", ErrNotFound)
	}
	return nil
}

func scanTemplate(scan func(...interface{}) error) (*domain.Template, error) {
	var t domain.Template
	var createdAtStr, updatedAtStr string
	err := scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.EstimatedMinutes,
		&createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("template: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning template: %w", err)
	}
	if t.CreatedAt, err = time.Parse(timeLayout, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing template created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(timeLayout, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing template updated_at: %w", err)
	}
	return &t, nil
}
