package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
)

// SQLiteCardRepo implements CardRepo using a SQLite database.
type SQLiteCardRepo struct {
	db db.DBTX
}

// NewSQLiteCardRepo creates a new SQLiteCardRepo.
func NewSQLiteCardRepo(dbtx db.DBTX) *SQLiteCardRepo {
	return &SQLiteCardRepo{db: dbtx}
}

const cardColumns = `id, board_id, column_id, title, description, priority, item_type, position, labels, assignees, due_date, created_at, updated_at`

func (r *SQLiteCardRepo) Create(ctx context.Context, c *domain.Card) error {
	labels, err := marshalJSON(c.Labels)
	if err != nil {
		return err
	}
	assignees, err := marshalJSON(c.Assignees)
	if err != nil {
		return err
	}
	query := `INSERT INTO cards (` + cardColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		c.ID,
		c.BoardID,
		c.ColumnID,
		c.Title,
		c.Description,
		string(c.Priority),
		string(c.Type),
		c.Position,
		labels,
		assignees,
		nullableTimeToString(c.DueDate, dateLayout),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting card: %w", err)
	}
	return nil
}

func (r *SQLiteCardRepo) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	c, err := scanCard(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("card %s: %w", id, ErrNotFound)
	}
	return c, err
}

func (r *SQLiteCardRepo) ListScope(ctx context.Context, boardID, columnID string) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards
		WHERE board_id = ? AND column_id = ? ORDER BY position, created_at`
	rows, err := r.db.QueryContext(ctx, query, boardID, columnID)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	defer rows.Close()

	var cards []*domain.Card
	for rows.Next() {
		c, err := scanCard(rows.Scan)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cards: %w", err)
	}
	return cards, nil
}

func (r *SQLiteCardRepo) CountScope(ctx context.Context, boardID, columnID string) (int, error) {
	query := `SELECT COUNT(*) FROM cards WHERE board_id = ? AND column_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, query, boardID, columnID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cards: %w", err)
	}
	return n, nil
}

func (r *SQLiteCardRepo) Update(ctx context.Context, c *domain.Card) error {
	labels, err := marshalJSON(c.Labels)
	if err != nil {
		return err
	}
	assignees, err := marshalJSON(c.Assignees)
	if err != nil {
		return err
	}
	query := `UPDATE cards SET title = ?, description = ?, priority = ?, item_type = ?,
		labels = ?, assignees = ?, due_date = ?, updated_at = ? WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		c.Title,
		c.Description,
		string(c.Priority),
		string(c.Type),
		labels,
		assignees,
		nullableTimeToString(c.DueDate, dateLayout),
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating card: %w", err)
	}
	return nil
}

func (r *SQLiteCardRepo) UpdatePosition(ctx context.Context, id string, position int) error {
	query := `UPDATE cards SET position = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, position, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating card position: %w", err)
	}
	return nil
}

// UpdatePlacement rehomes a card to a new column at the given position.
// Used by cross-column moves; same-column moves use UpdatePosition.
func (r *SQLiteCardRepo) UpdatePlacement(ctx context.Context, id, columnID string, position int) error {
	query := `UPDATE cards SET column_id = ?, position = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, columnID, position, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating card placement: %w", err)
	}
	return nil
}

func (r *SQLiteCardRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM cards WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting card: %w", err)
	}
	return nil
}

func scanCard(scan func(dest ...any) error) (*domain.Card, error) {
	var c domain.Card
	var priorityStr, typeStr, labelsStr, assigneesStr string
	var createdAtStr, updatedAtStr string
	var dueDateStr sql.NullString

	err := scan(
		&c.ID, &c.BoardID, &c.ColumnID, &c.Title, &c.Description,
		&priorityStr, &typeStr, &c.Position,
		&labelsStr, &assigneesStr, &dueDateStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning card: %w", err)
	}

	c.Priority = domain.Priority(priorityStr)
	c.Type = domain.ItemType(typeStr)
	if err := unmarshalJSON(labelsStr, &c.Labels); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(assigneesStr, &c.Assignees); err != nil {
		return nil, err
	}
	c.DueDate = parseNullableTime(dueDateStr, dateLayout)

	var parseErr error
	c.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	c.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &c, nil
}
