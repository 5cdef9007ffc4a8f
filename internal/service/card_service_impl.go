package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/ordering"
	"github.com/alexanderramin/gantry/internal/repository"
)

type cardService struct {
	cards   repository.CardRepo
	columns repository.ColumnRepo
	uow     db.UnitOfWork
}

func NewCardService(cards repository.CardRepo, columns repository.ColumnRepo, uow db.UnitOfWork) CardService {
	return &cardService{cards: cards, columns: columns, uow: uow}
}

// Create appends the card to its column's scope: position is the scope size
// at insert time, keeping positions contiguous without re-indexing anyone.
func (s *cardService) Create(ctx context.Context, c *domain.Card) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Priority == "" {
		c.Priority = domain.PriorityMedium
	}
	if c.Type == "" {
		c.Type = domain.TypeTask
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCards := repository.NewSQLiteCardRepo(tx)
		txColumns := repository.NewSQLiteColumnRepo(tx)

		col, err := txColumns.GetByID(ctx, c.ColumnID)
		if err != nil {
			return err
		}
		if col.BoardID != c.BoardID {
			return errScopeMismatch("column %s belongs to board %s, not %s", col.ID, col.BoardID, c.BoardID)
		}

		size, err := txCards.CountScope(ctx, c.BoardID, c.ColumnID)
		if err != nil {
			return err
		}
		c.Position = size
		return txCards.Create(ctx, c)
	})
}

func (s *cardService) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	return s.cards.GetByID(ctx, id)
}

func (s *cardService) ListColumn(ctx context.Context, boardID, columnID string) ([]*domain.Card, error) {
	return s.cards.ListScope(ctx, boardID, columnID)
}

// Update edits card fields. Position and column are never touched here;
// scope changes go through Move.
func (s *cardService) Update(ctx context.Context, c *domain.Card) (*domain.Card, error) {
	current, err := s.cards.GetByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.BoardID = current.BoardID
	c.ColumnID = current.ColumnID
	c.Position = current.Position
	c.UpdatedAt = time.Now().UTC()
	if err := s.cards.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.cards.GetByID(ctx, c.ID)
}

// Move places the card at toPosition in toColumnID. A same-column move
// re-indexes one scope; a cross-column move closes the gap in the source
// scope and splices into the destination, all in one transaction.
func (s *cardService) Move(ctx context.Context, cardID, toColumnID string, toPosition int) (*domain.Card, error) {
	var moved *domain.Card
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCards := repository.NewSQLiteCardRepo(tx)
		txColumns := repository.NewSQLiteColumnRepo(tx)

		card, err := txCards.GetByID(ctx, cardID)
		if err != nil {
			return err
		}
		dest, err := txColumns.GetByID(ctx, toColumnID)
		if err != nil {
			return err
		}
		if dest.BoardID != card.BoardID {
			return errScopeMismatch("column %s belongs to board %s, not %s", dest.ID, dest.BoardID, card.BoardID)
		}

		if card.ColumnID == toColumnID {
			members, err := txCards.ListScope(ctx, card.BoardID, card.ColumnID)
			if err != nil {
				return err
			}
			changes := ordering.Insert(cardMembers(members), cardID, toPosition)
			if err := applyCardPlacements(ctx, txCards, changes); err != nil {
				return err
			}
		} else {
			source, err := txCards.ListScope(ctx, card.BoardID, card.ColumnID)
			if err != nil {
				return err
			}
			if err := applyCardPlacements(ctx, txCards, ordering.Remove(cardMembers(source), cardID)); err != nil {
				return err
			}

			destMembers, err := txCards.ListScope(ctx, card.BoardID, toColumnID)
			if err != nil {
				return err
			}
			for _, c := range ordering.Insert(cardMembers(destMembers), cardID, toPosition) {
				if c.ID == cardID {
					err = txCards.UpdatePlacement(ctx, cardID, toColumnID, c.Position)
				} else {
					err = txCards.UpdatePosition(ctx, c.ID, c.Position)
				}
				if err != nil {
					return err
				}
			}
		}

		moved, err = txCards.GetByID(ctx, cardID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// Delete removes the card and compacts the vacated scope: a move-out with no
// move-in.
func (s *cardService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCards := repository.NewSQLiteCardRepo(tx)

		card, err := txCards.GetByID(ctx, id)
		if err != nil {
			return err
		}
		members, err := txCards.ListScope(ctx, card.BoardID, card.ColumnID)
		if err != nil {
			return err
		}
		if err := txCards.Delete(ctx, id); err != nil {
			return err
		}
		return applyCardPlacements(ctx, txCards, ordering.Remove(cardMembers(members), id))
	})
}
