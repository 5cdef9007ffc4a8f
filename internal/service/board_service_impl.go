package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
)

type boardService struct {
	boards repository.BoardRepo
	uow    db.UnitOfWork
}

func NewBoardService(boards repository.BoardRepo, uow db.UnitOfWork) BoardService {
	return &boardService{boards: boards, uow: uow}
}

func (s *boardService) Create(ctx context.Context, b *domain.Board) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	return s.boards.Create(ctx, b)
}

func (s *boardService) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	return s.boards.GetByID(ctx, id)
}

func (s *boardService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Board, error) {
	return s.boards.ListByOwner(ctx, ownerID)
}

func (s *boardService) Rename(ctx context.Context, id, name string) (*domain.Board, error) {
	b, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Name = name
	b.UpdatedAt = time.Now().UTC()
	if err := s.boards.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes the board. Columns, cards, issues, sprints and timelines all
// reference the board with ON DELETE CASCADE, so containment cleanup happens
// in the same statement.
func (s *boardService) Delete(ctx context.Context, id string) error {
	if _, err := s.boards.GetByID(ctx, id); err != nil {
		return err
	}
	return s.boards.Delete(ctx, id)
}
