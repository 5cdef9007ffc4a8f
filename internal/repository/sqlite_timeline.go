package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
)

// SQLiteTimelineRepo implements TimelineRepo using a SQLite database.
type SQLiteTimelineRepo struct {
	db db.DBTX
}

// NewSQLiteTimelineRepo creates a new SQLiteTimelineRepo.
func NewSQLiteTimelineRepo(dbtx db.DBTX) *SQLiteTimelineRepo {
	return &SQLiteTimelineRepo{db: dbtx}
}

const timelineColumns = `id, board_id, owner_id, name, data, selected_sprints, selected_issues, snapshot_date, version, is_published, created_at, updated_at`

func (r *SQLiteTimelineRepo) Create(ctx context.Context, t *domain.Timeline) error {
	data, err := marshalJSON(t.Data)
	if err != nil {
		return err
	}
	sprints, err := marshalNullableStrings(t.SelectedSprints)
	if err != nil {
		return err
	}
	issues, err := marshalNullableStrings(t.SelectedIssues)
	if err != nil {
		return err
	}
	query := `INSERT INTO timelines (` + timelineColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		t.ID,
		t.BoardID,
		t.OwnerID,
		t.Name,
		data,
		sprints,
		issues,
		t.SnapshotDate.Format(time.RFC3339),
		t.Version,
		boolToInt(t.IsPublished),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting timeline: %w", err)
	}
	return nil
}

func (r *SQLiteTimelineRepo) GetByID(ctx context.Context, id string) (*domain.Timeline, error) {
	query := `SELECT ` + timelineColumns + ` FROM timelines WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	t, err := scanTimeline(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("timeline %s: %w", id, ErrNotFound)
	}
	return t, err
}

func (r *SQLiteTimelineRepo) ListByBoard(ctx context.Context, boardID, ownerID string) ([]*domain.Timeline, error) {
	query := `SELECT ` + timelineColumns + ` FROM timelines
		WHERE board_id = ? AND owner_id = ? ORDER BY snapshot_date DESC, created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, boardID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing timelines: %w", err)
	}
	defer rows.Close()

	var timelines []*domain.Timeline
	for rows.Next() {
		t, err := scanTimeline(rows.Scan)
		if err != nil {
			return nil, err
		}
		timelines = append(timelines, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timelines: %w", err)
	}
	return timelines, nil
}

func (r *SQLiteTimelineRepo) Update(ctx context.Context, t *domain.Timeline) error {
	data, err := marshalJSON(t.Data)
	if err != nil {
		return err
	}
	sprints, err := marshalNullableStrings(t.SelectedSprints)
	if err != nil {
		return err
	}
	issues, err := marshalNullableStrings(t.SelectedIssues)
	if err != nil {
		return err
	}
	query := `UPDATE timelines SET name = ?, data = ?, selected_sprints = ?, selected_issues = ?,
		snapshot_date = ?, version = ?, is_published = ?, updated_at = ? WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		t.Name,
		data,
		sprints,
		issues,
		t.SnapshotDate.Format(time.RFC3339),
		t.Version,
		boolToInt(t.IsPublished),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating timeline: %w", err)
	}
	return nil
}

func (r *SQLiteTimelineRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM timelines WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting timeline: %w", err)
	}
	return nil
}

func scanTimeline(scan func(dest ...any) error) (*domain.Timeline, error) {
	var t domain.Timeline
	var dataStr, snapshotStr, createdAtStr, updatedAtStr string
	var sprintsStr, issuesStr sql.NullString
	var published int

	err := scan(
		&t.ID, &t.BoardID, &t.OwnerID, &t.Name, &dataStr,
		&sprintsStr, &issuesStr, &snapshotStr, &t.Version, &published,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning timeline: %w", err)
	}

	if err := unmarshalJSON(dataStr, &t.Data); err != nil {
		return nil, err
	}
	if t.SelectedSprints, err = unmarshalNullableStrings(sprintsStr); err != nil {
		return nil, err
	}
	if t.SelectedIssues, err = unmarshalNullableStrings(issuesStr); err != nil {
		return nil, err
	}
	t.IsPublished = intToBool(published)

	var parseErr error
	t.SnapshotDate, parseErr = time.Parse(time.RFC3339, snapshotStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing snapshot_date: %w", parseErr)
	}
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &t, nil
}
