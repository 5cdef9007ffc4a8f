package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
)

// SQLiteSprintRepo implements SprintRepo using a SQLite database.
type SQLiteSprintRepo struct {
	db db.DBTX
}

// NewSQLiteSprintRepo creates a new SQLiteSprintRepo.
func NewSQLiteSprintRepo(dbtx db.DBTX) *SQLiteSprintRepo {
	return &SQLiteSprintRepo{db: dbtx}
}

const sprintColumns = `id, board_id, owner_id, name, objective, status, start_date, end_date, issues, created_at, updated_at`

func (r *SQLiteSprintRepo) Create(ctx context.Context, s *domain.Sprint) error {
	issues, err := marshalJSON(s.Issues)
	if err != nil {
		return err
	}
	query := `INSERT INTO sprints (` + sprintColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.BoardID,
		s.OwnerID,
		s.Name,
		s.Objective,
		string(s.Status),
		nullableTimeToString(s.StartDate, dateLayout),
		nullableTimeToString(s.EndDate, dateLayout),
		issues,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting sprint: %w", err)
	}
	return nil
}

func (r *SQLiteSprintRepo) GetByID(ctx context.Context, id string) (*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	s, err := scanSprint(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sprint %s: %w", id, ErrNotFound)
	}
	return s, err
}

func (r *SQLiteSprintRepo) ListByBoard(ctx context.Context, boardID string) ([]*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE board_id = ? ORDER BY created_at`
	return r.querySprints(ctx, query, boardID)
}

func (r *SQLiteSprintRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE owner_id = ? ORDER BY created_at`
	return r.querySprints(ctx, query, ownerID)
}

// ListContainingIssue finds every sprint whose issue list references issueID.
// The JSON list is stored as TEXT, so this matches on the quoted id; sprint
// ids and issue ids are UUIDs, which cannot collide on substrings.
func (r *SQLiteSprintRepo) ListContainingIssue(ctx context.Context, issueID string) ([]*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE issues LIKE ? ORDER BY created_at`
	return r.querySprints(ctx, query, `%"`+issueID+`"%`)
}

func (r *SQLiteSprintRepo) Update(ctx context.Context, s *domain.Sprint) error {
	issues, err := marshalJSON(s.Issues)
	if err != nil {
		return err
	}
	query := `UPDATE sprints SET name = ?, objective = ?, status = ?, start_date = ?, end_date = ?,
		issues = ?, updated_at = ? WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		s.Name,
		s.Objective,
		string(s.Status),
		nullableTimeToString(s.StartDate, dateLayout),
		nullableTimeToString(s.EndDate, dateLayout),
		issues,
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating sprint: %w", err)
	}
	return nil
}

func (r *SQLiteSprintRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sprints WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting sprint: %w", err)
	}
	return nil
}

func (r *SQLiteSprintRepo) querySprints(ctx context.Context, query string, args ...any) ([]*domain.Sprint, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sprints: %w", err)
	}
	defer rows.Close()

	var sprints []*domain.Sprint
	for rows.Next() {
		s, err := scanSprint(rows.Scan)
		if err != nil {
			return nil, err
		}
		sprints = append(sprints, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sprints: %w", err)
	}
	return sprints, nil
}

func scanSprint(scan func(dest ...any) error) (*domain.Sprint, error) {
	var s domain.Sprint
	var statusStr, issuesStr string
	var createdAtStr, updatedAtStr string
	var startDateStr, endDateStr sql.NullString

	err := scan(
		&s.ID, &s.BoardID, &s.OwnerID, &s.Name, &s.Objective,
		&statusStr, &startDateStr, &endDateStr, &issuesStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning sprint: %w", err)
	}

	s.Status = domain.SprintStatus(statusStr)
	if err := unmarshalJSON(issuesStr, &s.Issues); err != nil {
		return nil, err
	}
	s.StartDate = parseNullableTime(startDateStr, dateLayout)
	s.EndDate = parseNullableTime(endDateStr, dateLayout)

	var parseErr error
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &s, nil
}
