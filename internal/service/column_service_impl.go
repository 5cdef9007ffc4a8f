package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
)

type columnService struct {
	columns repository.ColumnRepo
	boards  repository.BoardRepo
	uow     db.UnitOfWork
}

func NewColumnService(columns repository.ColumnRepo, boards repository.BoardRepo, uow db.UnitOfWork) ColumnService {
	return &columnService{columns: columns, boards: boards, uow: uow}
}

func (s *columnService) Create(ctx context.Context, c *domain.Column) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txBoards := repository.NewSQLiteBoardRepo(tx)
		txColumns := repository.NewSQLiteColumnRepo(tx)

		if _, err := txBoards.GetByID(ctx, c.BoardID); err != nil {
			return err
		}
		if existing, err := txColumns.GetByKey(ctx, c.BoardID, c.Key); err == nil {
			return errConflict("column key %q already used by column %s", c.Key, existing.ID)
		} else if !isNotFound(err) {
			return err
		}
		return txColumns.Create(ctx, c)
	})
}

func (s *columnService) GetByID(ctx context.Context, id string) (*domain.Column, error) {
	return s.columns.GetByID(ctx, id)
}

func (s *columnService) ListByBoard(ctx context.Context, boardID string) ([]*domain.Column, error) {
	return s.columns.ListByBoard(ctx, boardID)
}

func (s *columnService) Update(ctx context.Context, c *domain.Column) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txColumns := repository.NewSQLiteColumnRepo(tx)

		current, err := txColumns.GetByID(ctx, c.ID)
		if err != nil {
			return err
		}
		if c.Key != current.Key {
			if existing, err := txColumns.GetByKey(ctx, current.BoardID, c.Key); err == nil {
				return errConflict("column key %q already used by column %s", c.Key, existing.ID)
			} else if !isNotFound(err) {
				return err
			}
		}
		c.BoardID = current.BoardID
		c.UpdatedAt = time.Now().UTC()
		return txColumns.Update(ctx, c)
	})
}

// Delete removes the column; its cards go with it via ON DELETE CASCADE.
func (s *columnService) Delete(ctx context.Context, id string) error {
	if _, err := s.columns.GetByID(ctx, id); err != nil {
		return err
	}
	return s.columns.Delete(ctx, id)
}
