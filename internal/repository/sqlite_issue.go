package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
)

// SQLiteIssueRepo implements IssueRepo using a SQLite database.
type SQLiteIssueRepo struct {
	db db.DBTX
}

// NewSQLiteIssueRepo creates a new SQLiteIssueRepo.
func NewSQLiteIssueRepo(dbtx db.DBTX) *SQLiteIssueRepo {
	return &SQLiteIssueRepo{db: dbtx}
}

const issueColumns = `id, board_id, sprint_id, title, description, item_type, priority, position, start_date, end_date, checklist, created_at, updated_at`

func (r *SQLiteIssueRepo) Create(ctx context.Context, i *domain.Issue) error {
	checklist, err := marshalJSON(i.Checklist)
	if err != nil {
		return err
	}
	query := `INSERT INTO issues (` + issueColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		i.ID,
		i.BoardID,
		nullableString(i.SprintID),
		i.Title,
		i.Description,
		string(i.Type),
		string(i.Priority),
		i.Position,
		nullableTimeToString(i.StartDate, dateLayout),
		nullableTimeToString(i.EndDate, dateLayout),
		checklist,
		i.CreatedAt.Format(time.RFC3339),
		i.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting issue: %w", err)
	}
	return nil
}

func (r *SQLiteIssueRepo) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	i, err := scanIssue(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("issue %s: %w", id, ErrNotFound)
	}
	return i, err
}

func (r *SQLiteIssueRepo) ListScope(ctx context.Context, boardID string, sprintID *string) ([]*domain.Issue, error) {
	var query string
	var args []any
	if sprintID == nil {
		query = `SELECT ` + issueColumns + ` FROM issues
			WHERE board_id = ? AND sprint_id IS NULL ORDER BY position, created_at`
		args = []any{boardID}
	} else {
		query = `SELECT ` + issueColumns + ` FROM issues
			WHERE board_id = ? AND sprint_id = ? ORDER BY position, created_at`
		args = []any{boardID, *sprintID}
	}
	return r.queryIssues(ctx, query, args...)
}

func (r *SQLiteIssueRepo) ListByBoard(ctx context.Context, boardID string) ([]*domain.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE board_id = ? ORDER BY position, created_at`
	return r.queryIssues(ctx, query, boardID)
}

func (r *SQLiteIssueRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.Issue, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + issueColumns + ` FROM issues WHERE id IN (` + inPlaceholders(len(ids)) + `)`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return r.queryIssues(ctx, query, args...)
}

func (r *SQLiteIssueRepo) Update(ctx context.Context, i *domain.Issue) error {
	checklist, err := marshalJSON(i.Checklist)
	if err != nil {
		return err
	}
	query := `UPDATE issues SET title = ?, description = ?, item_type = ?, priority = ?,
		start_date = ?, end_date = ?, checklist = ?, updated_at = ? WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		i.Title,
		i.Description,
		string(i.Type),
		string(i.Priority),
		nullableTimeToString(i.StartDate, dateLayout),
		nullableTimeToString(i.EndDate, dateLayout),
		checklist,
		i.UpdatedAt.Format(time.RFC3339),
		i.ID,
	)
	if err != nil {
		return fmt.Errorf("updating issue: %w", err)
	}
	return nil
}

func (r *SQLiteIssueRepo) UpdatePosition(ctx context.Context, id string, position int) error {
	query := `UPDATE issues SET position = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, position, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating issue position: %w", err)
	}
	return nil
}

// UpdateScope rehomes an issue to a new sprint (or the backlog, with a nil
// sprintID) at the given position. Only the link synchronizer calls this.
func (r *SQLiteIssueRepo) UpdateScope(ctx context.Context, id string, sprintID *string, position int) error {
	query := `UPDATE issues SET sprint_id = ?, position = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, nullableString(sprintID), position, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating issue scope: %w", err)
	}
	return nil
}

func (r *SQLiteIssueRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM issues WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting issue: %w", err)
	}
	return nil
}

func (r *SQLiteIssueRepo) queryIssues(ctx context.Context, query string, args ...any) ([]*domain.Issue, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	defer rows.Close()

	var issues []*domain.Issue
	for rows.Next() {
		i, err := scanIssue(rows.Scan)
		if err != nil {
			return nil, err
		}
		issues = append(issues, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating issues: %w", err)
	}
	return issues, nil
}

func scanIssue(scan func(dest ...any) error) (*domain.Issue, error) {
	var i domain.Issue
	var typeStr, priorityStr, checklistStr string
	var createdAtStr, updatedAtStr string
	var sprintIDStr, startDateStr, endDateStr sql.NullString

	err := scan(
		&i.ID, &i.BoardID, &sprintIDStr, &i.Title, &i.Description,
		&typeStr, &priorityStr, &i.Position,
		&startDateStr, &endDateStr, &checklistStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning issue: %w", err)
	}

	if sprintIDStr.Valid {
		s := sprintIDStr.String
		i.SprintID = &s
	}
	i.Type = domain.ItemType(typeStr)
	i.Priority = domain.Priority(priorityStr)
	if err := unmarshalJSON(checklistStr, &i.Checklist); err != nil {
		return nil, err
	}
	i.StartDate = parseNullableTime(startDateStr, dateLayout)
	i.EndDate = parseNullableTime(endDateStr, dateLayout)

	var parseErr error
	i.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	i.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &i, nil
}
