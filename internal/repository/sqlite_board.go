package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
)

// SQLiteBoardRepo implements BoardRepo using a SQLite database.
type SQLiteBoardRepo struct {
	db db.DBTX
}

// NewSQLiteBoardRepo creates a new SQLiteBoardRepo.
func NewSQLiteBoardRepo(dbtx db.DBTX) *SQLiteBoardRepo {
	return &SQLiteBoardRepo{db: dbtx}
}

const boardColumns = `id, name, owner_id, created_at, updated_at`

func (r *SQLiteBoardRepo) Create(ctx context.Context, b *domain.Board) error {
	query := `INSERT INTO boards (` + boardColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.Name,
		b.OwnerID,
		b.CreatedAt.Format(time.RFC3339),
		b.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting board: %w", err)
	}
	return nil
}

func (r *SQLiteBoardRepo) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	b, err := scanBoard(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("board %s: %w", id, ErrNotFound)
	}
	return b, err
}

func (r *SQLiteBoardRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards WHERE owner_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}
	defer rows.Close()

	var boards []*domain.Board
	for rows.Next() {
		b, err := scanBoard(rows.Scan)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating boards: %w", err)
	}
	return boards, nil
}

func (r *SQLiteBoardRepo) Update(ctx context.Context, b *domain.Board) error {
	query := `UPDATE boards SET name = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		b.Name,
		b.UpdatedAt.Format(time.RFC3339),
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating board: %w", err)
	}
	return nil
}

func (r *SQLiteBoardRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM boards WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting board: %w", err)
	}
	return nil
}

func scanBoard(scan func(dest ...any) error) (*domain.Board, error) {
	var b domain.Board
	var createdAtStr, updatedAtStr string

	err := scan(&b.ID, &b.Name, &b.OwnerID, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning board: %w", err)
	}

	var parseErr error
	b.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	b.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &b, nil
}
