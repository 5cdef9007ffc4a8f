package repository

import (
	"context"

	"github.com/alexanderramin/gantry/internal/domain"
)

// BoardRepo manages board persistence.
type BoardRepo interface {
	Create(ctx context.Context, b *domain.Board) error
	GetByID(ctx context.Context, id string) (*domain.Board, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Board, error)
	Update(ctx context.Context, b *domain.Board) error
	Delete(ctx context.Context, id string) error
}

// ColumnRepo manages column persistence.
type ColumnRepo interface {
	Create(ctx context.Context, c *domain.Column) error
	GetByID(ctx context.Context, id string) (*domain.Column, error)
	GetByKey(ctx context.Context, boardID, key string) (*domain.Column, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Column, error)
	Update(ctx context.Context, c *domain.Column) error
	Delete(ctx context.Context, id string) error
}

// CardRepo manages card persistence. ListScope returns a column's cards in
// scope order: position ascending, creation time breaking ties.
type CardRepo interface {
	Create(ctx context.Context, c *domain.Card) error
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	ListScope(ctx context.Context, boardID, columnID string) ([]*domain.Card, error)
	CountScope(ctx context.Context, boardID, columnID string) (int, error)
	Update(ctx context.Context, c *domain.Card) error
	UpdatePosition(ctx context.Context, id string, position int) error
	UpdatePlacement(ctx context.Context, id, columnID string, position int) error
	Delete(ctx context.Context, id string) error
}

// IssueRepo manages issue persistence. ListScope returns a sprint's (or, with
// a nil sprintID, the backlog's) issues in scope order.
type IssueRepo interface {
	Create(ctx context.Context, i *domain.Issue) error
	GetByID(ctx context.Context, id string) (*domain.Issue, error)
	ListScope(ctx context.Context, boardID string, sprintID *string) ([]*domain.Issue, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Issue, error)
	ListByIDs(ctx context.Context, ids []string) ([]*domain.Issue, error)
	Update(ctx context.Context, i *domain.Issue) error
	UpdatePosition(ctx context.Context, id string, position int) error
	UpdateScope(ctx context.Context, id string, sprintID *string, position int) error
	Delete(ctx context.Context, id string) error
}

// SprintRepo manages sprint persistence. ListContainingIssue finds every
// sprint whose issue list references the given issue, regardless of what the
// issue's own sprint pointer says; the link synchronizer uses it to heal
// drifted state.
type SprintRepo interface {
	Create(ctx context.Context, s *domain.Sprint) error
	GetByID(ctx context.Context, id string) (*domain.Sprint, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Sprint, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Sprint, error)
	ListContainingIssue(ctx context.Context, issueID string) ([]*domain.Sprint, error)
	Update(ctx context.Context, s *domain.Sprint) error
	Delete(ctx context.Context, id string) error
}

// TimelineRepo manages timeline snapshot persistence.
type TimelineRepo interface {
	Create(ctx context.Context, t *domain.Timeline) error
	GetByID(ctx context.Context, id string) (*domain.Timeline, error)
	ListByBoard(ctx context.Context, boardID, ownerID string) ([]*domain.Timeline, error)
	Update(ctx context.Context, t *domain.Timeline) error
	Delete(ctx context.Context, id string) error
}
