package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
)

// SQLiteColumnRepo implements ColumnRepo using a SQLite database.
type SQLiteColumnRepo struct {
	db db.DBTX
}

// NewSQLiteColumnRepo creates a new SQLiteColumnRepo.
func NewSQLiteColumnRepo(dbtx db.DBTX) *SQLiteColumnRepo {
	return &SQLiteColumnRepo{db: dbtx}
}

const columnColumns = `id, board_id, key, title, wip_limit, ord, created_at, updated_at`

func (r *SQLiteColumnRepo) Create(ctx context.Context, c *domain.Column) error {
	query := `INSERT INTO columns (` + columnColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.BoardID,
		c.Key,
		c.Title,
		c.WIPLimit,
		c.Order,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting column: %w", err)
	}
	return nil
}

func (r *SQLiteColumnRepo) GetByID(ctx context.Context, id string) (*domain.Column, error) {
	query := `SELECT ` + columnColumns + ` FROM columns WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	c, err := scanColumn(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("column %s: %w", id, ErrNotFound)
	}
	return c, err
}

func (r *SQLiteColumnRepo) GetByKey(ctx context.Context, boardID, key string) (*domain.Column, error) {
	query := `SELECT ` + columnColumns + ` FROM columns WHERE board_id = ? AND key = ?`
	row := r.db.QueryRowContext(ctx, query, boardID, key)
	c, err := scanColumn(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("column %s: %w", key, ErrNotFound)
	}
	return c, err
}

func (r *SQLiteColumnRepo) ListByBoard(ctx context.Context, boardID string) ([]*domain.Column, error) {
	query := `SELECT ` + columnColumns + ` FROM columns WHERE board_id = ? ORDER BY ord, created_at`
	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("listing columns: %w", err)
	}
	defer rows.Close()

	var columns []*domain.Column
	for rows.Next() {
		c, err := scanColumn(rows.Scan)
		if err != nil {
			return nil, err
		}
		columns = append(columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns: %w", err)
	}
	return columns, nil
}

func (r *SQLiteColumnRepo) Update(ctx context.Context, c *domain.Column) error {
	query := `UPDATE columns SET key = ?, title = ?, wip_limit = ?, ord = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		c.Key,
		c.Title,
		c.WIPLimit,
		c.Order,
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating column: %w", err)
	}
	return nil
}

func (r *SQLiteColumnRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM columns WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting column: %w", err)
	}
	return nil
}

func scanColumn(scan func(dest ...any) error) (*domain.Column, error) {
	var c domain.Column
	var createdAtStr, updatedAtStr string

	err := scan(&c.ID, &c.BoardID, &c.Key, &c.Title, &c.WIPLimit, &c.Order, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning column: %w", err)
	}

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
