package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ymorita/questboard/internal/domain"
	"github.com/ymorita/questboard/internal/recurrence"
)

// questColumns is the canonical SELECT column list for quests.
const questColumns = `id, title, description, status, priority, estimated_minutes,
		due_date, assignee, creator,
		recurrence_type, recurrence_end_date, recurrence_weekdays, lineage_root_id,
		created_at, updated_at`

// SQLiteQuestRepo implements QuestRepo using a SQLite database.
type SQLiteQuestRepo struct {
	db *sql.DB
}

// NewSQLiteQuestRepo creates a new SQLiteQuestRepo.
func NewSQLiteQuestRepo(db *sql.DB) *SQLiteQuestRepo {
	return &SQLiteQuestRepo{db: db}
}

func (r *SQLiteQuestRepo) Create(ctx context.Context, q *domain.Quest) error {
	query := `INSERT INTO quests (` + questColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		q.ID,
		q.Title,
		q.Description,
		string(q.Status),
		q.Priority,
		q.EstimatedMinutes,
		nullableTimeToString(q.DueDate, dateLayout),
		nullableString(q.Assignee),
		q.Creator,
		string(q.Recurrence.Type),
		nullableTimeToString(q.Recurrence.EndDate, dateLayout),
		recurrence.FormatWeekdays(q.Recurrence.Weekdays),
		nullableString(q.Recurrence.LineageRootID),
		q.CreatedAt.Format(timeLayout),
		q.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting quest: %w", err)
	}
	return nil
}

func (r *SQLiteQuestRepo) GetByID(ctx context.Context, id string) (*domain.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanQuest(row)
}

func (r *SQLiteQuestRepo) List(ctx context.Context, f QuestFilter) ([]*domain.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests`
	where, args := buildQuestFilter(f)
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY priority DESC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing quests: %w", err)
	}
	defer rows.Close()
	return scanQuests(rows)
}

func buildQuestFilter(f QuestFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if len(f.Statuses) > 0 {
		placeholders := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			placeholders[i] = "?"
			args = append(args, string(s))
		}
		conds = append(conds, "status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if len(f.Priorities) > 0 {
		placeholders := make([]string, len(f.Priorities))
		for i, p := range f.Priorities {
			placeholders[i] = "?"
			args = append(args, p)
		}
		conds = append(conds, "priority IN ("+strings.Join(placeholders, ", ")+")")
	}
	if f.Unassigned {
		conds = append(conds, "(assignee IS NULL OR assignee = '')")
	} else if f.Assignee != "" {
		conds = append(conds, "LOWER(COALESCE(assignee, '')) LIKE '%' || LOWER(?) || '%'")
		args = append(args, f.Assignee)
	}

	return strings.Join(conds, " AND "), args
}

func (r *SQLiteQuestRepo) UpdateFields(ctx context.Context, id string, u domain.QuestUpdate) error {
	if err := u.Validate(); err != nil {
		return err
	}

	var sets []string
	var args []interface{}

	if u.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, strings.TrimSpace(*u.Title))
	}
	if u.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *u.Description)
	}
	if u.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*u.Status))
	}
	if u.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *u.Priority)
	}
	if u.EstimatedMinutes != nil {
		sets = append(sets, "estimated_minutes = ?")
		args = append(args, *u.EstimatedMinutes)
	}
	if u.ClearDueDate {
		sets = append(sets, "due_date = NULL")
	} else if u.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, u.DueDate.Format(dateLayout))
	}
	if u.Assignee != nil {
		sets = append(sets, "assignee = ?")
		args = append(args, nullableString(strings.TrimSpace(*u.Assignee)))
	}
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, nowUTC(), id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE quests SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("updating quest: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking quest update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("quest: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteQuestRepo) ClearRecurrence(ctx context.Context, id string) error {
	query := `UPDATE quests
		SET recurrence_type = 'none', recurrence_end_date = NULL,
		    recurrence_weekdays = '', updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("clearing recurrence: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking recurrence clear: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("quest: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteQuestRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting quest: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking quest delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("quest: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteQuestRepo) CountActive(ctx context.Context, assignee string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM quests WHERE status = ? AND assignee = ?`,
		string(domain.StatusInProgress), assignee).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting active quests: %w", err)
	}
	return count, nil
}

func (r *SQLiteQuestRepo) FindOccurrence(ctx context.Context, rootID string, dueDate time.Time) (*domain.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests
		WHERE lineage_root_id = ? AND due_date = ?`
	row := r.db.QueryRowContext(ctx, query, rootID, dueDate.Format(dateLayout))
	return scanQuest(row)
}

func (r *SQLiteQuestRepo) CountByStatus(ctx context.Context) (map[domain.QuestStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM quests GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting quests by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.QuestStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scanning status count: %w", err)
		}
		counts[domain.QuestStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status counts: %w", err)
	}
	return counts, nil
}

func (r *SQLiteQuestRepo) ActiveCountsByAssignee(ctx context.Context) (map[string]int, error) {
	query := `SELECT COALESCE(assignee, ''), COUNT(*)
		FROM quests WHERE status != ? GROUP BY COALESCE(assignee, '')`
	rows, err := r.db.QueryContext(ctx, query, string(domain.StatusDone))
	if err != nil {
		return nil, fmt.Errorf("counting active quests by assignee: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var assignee string
		var count int
		if err := rows.Scan(&assignee, &count); err != nil {
			return nil, fmt.Errorf("scanning assignee count: %w", err)
		}
		counts[assignee] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignee counts: %w", err)
	}
	return counts, nil
}

func (r *SQLiteQuestRepo) ListOverdue(ctx context.Context, today time.Time) ([]*domain.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests
		WHERE due_date IS NOT NULL AND due_date < ? AND status != ?
		ORDER BY due_date`
	rows, err := r.db.QueryContext(ctx, query,
		today.Format(dateLayout), string(domain.StatusDone))
	if err != nil {
		return nil, fmt.Errorf("listing overdue quests: %w", err)
	}
	defer rows.Close()
	return scanQuests(rows)
}

func (r *SQLiteQuestRepo) ListDoneByAssignee(ctx context.Context, assignee string) ([]*domain.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests
		WHERE status = ? AND assignee = ? ORDER BY updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query, string(domain.StatusDone), assignee)
	if err != nil {
		return nil, fmt.Errorf("listing completed quests: %w", err)
	}
	defer rows.Close()
	return scanQuests(rows)
}

// scanQuest scans a single quest from a *sql.Row.
func scanQuest(row *sql.Row) (*domain.Quest, error) {
	var q domain.Quest
	var statusStr, recurTypeStr, weekdaysStr string
	var dueDateStr, endDateStr, assigneeStr, rootIDStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&q.ID, &q.Title, &q.Description, &statusStr, &q.Priority, &q.EstimatedMinutes,
		&dueDateStr, &assigneeStr, &q.Creator,
		&recurTypeStr, &endDateStr, &weekdaysStr, &rootIDStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("quest: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning quest: %w", err)
	}
	return populateQuest(&q, statusStr, recurTypeStr, weekdaysStr,
		dueDateStr, endDateStr, assigneeStr, rootIDStr, createdAtStr, updatedAtStr)
}

// scanQuests scans multiple quests from *sql.Rows.
func scanQuests(rows *sql.Rows) ([]*domain.Quest, error) {
	var quests []*domain.Quest
	for rows.Next() {
		var q domain.Quest
		var statusStr, recurTypeStr, weekdaysStr string
		var dueDateStr, endDateStr, assigneeStr, rootIDStr sql.NullString
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&q.ID, &q.Title, &q.Description, &statusStr, &q.Priority, &q.EstimatedMinutes,
			&dueDateStr, &assigneeStr, &q.Creator,
			&recurTypeStr, &endDateStr, &weekdaysStr, &rootIDStr,
			&createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning quest row: %w", err)
		}
		quest, err := populateQuest(&q, statusStr, recurTypeStr, weekdaysStr,
			dueDateStr, endDateStr, assigneeStr, rootIDStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		quests = append(quests, quest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quests: %w", err)
	}
	return quests, nil
}

// populateQuest fills in parsed fields on a Quest after scanning raw values.
func populateQuest(
	q *domain.Quest,
	statusStr, recurTypeStr, weekdaysStr string,
	dueDateStr, endDateStr, assigneeStr, rootIDStr sql.NullString,
	createdAtStr, updatedAtStr string,
) (*domain.Quest, error) {
	q.Status = domain.QuestStatus(statusStr)
	q.DueDate = parseNullableTime(dueDateStr, dateLayout)
	if assigneeStr.Valid {
		q.Assignee = assigneeStr.String
	}
	q.Recurrence = domain.Recurrence{
		Type:     domain.RecurrenceType(recurTypeStr),
		EndDate:  parseNullableTime(endDateStr, dateLayout),
		Weekdays: recurrence.ParseWeekdays(weekdaysStr),
	}
	if rootIDStr.Valid {
		q.Recurrence.LineageRootID = rootIDStr.String
	}

	var parseErr error
	q.CreatedAt, parseErr = time.Parse(timeLayout, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	q.UpdatedAt, parseErr = time.Parse(timeLayout, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return q, nil
}
