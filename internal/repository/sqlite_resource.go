package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/ymorita/questboard/internal/domain"
)

const resourceColumns = `id, title, url, category, tags, memo, is_favorite, view_count, last_viewed_at, created_by, created_at, updated_at`

// SQLiteResourceRepo implements ResourceRepo using a SQLite database.
type SQLiteResourceRepo struct {
	db *sql.DB
}

// NewSQLiteResourceRepo creates a new SQLiteResourceRepo.
func NewSQLiteResourceRepo(db *sql.DB) *SQLiteResourceRepo {
	return &SQLiteResourceRepo{db: db}
}

func (r *SQLiteResourceRepo) Create(ctx context.Context, res *domain.Resource) error {
	query := `INSERT INTO resources (` + resourceColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		res.ID,
		res.Title,
		res.URL,
		res.Category,
		res.Tags,
		res.Memo,
		boolToInt(res.IsFavorite),
		res.ViewCount,
		nullableTimeToString(res.LastViewedAt, timeLayout),
		res.CreatedBy,
		res.CreatedAt.Format(timeLayout),
		res.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting resource: %w", err)
	}
	return nil
}

func (r *SQLiteResourceRepo) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanResource(row.Scan)
}

func (r *SQLiteResourceRepo) List(ctx context.Context) ([]*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources
		ORDER BY is_favorite DESC, view_count DESC, created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	defer rows.Close()

	var resources []*domain.Resource
	for rows.Next() {
		res, err := scanResource(rows.Scan)
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resources: %w", err)
	}
	return resources, nil
}

func (r *SQLiteResourceRepo) Update(ctx context.Context, res *domain.Resource) error {
	query := `UPDATE resources
		SET title = ?, url = ?, category = ?, tags = ?, memo = ?, is_favorite = ?, updated_at = ?
		WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		res.Title, res.URL, res.Category, res.Tags, res.Memo,
		boolToInt(res.IsFavorite), res.UpdatedAt.Format(timeLayout), res.ID)
	if err != nil {
		return fmt.Errorf("updating resource: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking resource update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("resource: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteResourceRepo) IncrementView(ctx context.Context, id string) error {
	query := `UPDATE resources SET view_count = view_count + 1, last_viewed_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("incrementing resource views: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking resource view update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("resource: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteResourceRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting resource: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking resource delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("resource: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteResourceRepo) Categories(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT category FROM resources WHERE category != '' ORDER BY category`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing resource categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return categories, nil
}

func (r *SQLiteResourceRepo) Tags(ctx context.Context) ([]string, error) {
	// Tags are comma-joined in a single column; splitting happens here
	// rather than in SQL.
	rows, err := r.db.QueryContext(ctx, `SELECT tags FROM resources WHERE tags != ''`)
	if err != nil {
		return nil, fmt.Errorf("listing resource tags: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var tags []string
	for rows.Next() {
		var joined string
		if err := rows.Scan(&joined); err != nil {
			return nil, fmt.Errorf("scanning tags: %w", err)
		}
		res := domain.Resource{Tags: joined}
		for _, t := range res.TagList() {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	sort.Strings(tags)
	return tags, nil
}

func scanResource(scan func(...interface{}) error) (*domain.Resource, error) {
	var res domain.Resource
	var favInt int
	var lastViewed sql.NullString
	var createdAtStr, updatedAtStr string
	err := scan(&res.ID, &res.Title, &res.URL, &res.Category, &res.Tags, &res.Memo,
		&favInt, &res.ViewCount, &lastViewed, &res.CreatedBy, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("resource: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning resource: %w", err)
	}
	res.IsFavorite = intToBool(favInt)
	res.LastViewedAt = parseNullableTime(lastViewed, timeLayout)
	if res.CreatedAt, err = time.Parse(timeLayout, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing resource created_at: %w", err)
	}
	if res.UpdatedAt, err = time.Parse(timeLayout, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing resource updated_at: %w", err)
	}
	return &res, nil
}
