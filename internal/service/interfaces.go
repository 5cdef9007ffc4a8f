package service

import (
	"context"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
)

// BoardService manages boards. Deleting a board cascades to its columns,
// cards, issues, sprints and timelines.
type BoardService interface {
	Create(ctx context.Context, b *domain.Board) error
	GetByID(ctx context.Context, id string) (*domain.Board, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Board, error)
	Rename(ctx context.Context, id, name string) (*domain.Board, error)
	Delete(ctx context.Context, id string) error
}

// ColumnService manages columns. Column keys are unique within a board;
// creating a duplicate key fails with ErrConflict.
type ColumnService interface {
	Create(ctx context.Context, c *domain.Column) error
	GetByID(ctx context.Context, id string) (*domain.Column, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Column, error)
	Update(ctx context.Context, c *domain.Column) error
	Delete(ctx context.Context, id string) error
}

// CardService manages cards and their ordering within columns. Create appends
// to the column's scope; Move and Delete keep every touched scope gap-free.
type CardService interface {
	Create(ctx context.Context, c *domain.Card) error
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	ListColumn(ctx context.Context, boardID, columnID string) ([]*domain.Card, error)
	Update(ctx context.Context, c *domain.Card) (*domain.Card, error)
	Move(ctx context.Context, cardID, toColumnID string, toPosition int) (*domain.Card, error)
	Delete(ctx context.Context, id string) error
}

// IssueService manages issues and their ordering within sprint-or-backlog
// scopes. Scope membership changes (sprint assignment) always flow through
// the link synchronizer so that Issue.SprintID and Sprint.Issues agree.
type IssueService interface {
	Create(ctx context.Context, i *domain.Issue) error
	GetByID(ctx context.Context, id string) (*domain.Issue, error)
	ListScope(ctx context.Context, boardID string, sprintID *string) ([]*domain.Issue, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Issue, error)
	Update(ctx context.Context, i *domain.Issue) (*domain.Issue, error)
	SetDates(ctx context.Context, id string, start, end *time.Time) (*domain.Issue, error)
	Reorder(ctx context.Context, boardID string, sprintID *string, issueID string, toPosition int) (*domain.Issue, error)
	MoveToSprint(ctx context.Context, issueID, boardID string, sprintID *string, toPosition int) (*domain.Issue, error)
	Delete(ctx context.Context, id string) error
}

// UpdateSprintInput carries the optional fields of a sprint update. A non-nil
// Issues list is authoritative: the issue side is reconciled to match it,
// including clearing the sprint assignment of issues dropped from the list.
type UpdateSprintInput struct {
	Name      *string
	Objective *string
	StartDate *time.Time
	EndDate   *time.Time
	Issues    *[]string
}

// SprintService manages sprints, their lifecycle and their issue membership.
type SprintService interface {
	Create(ctx context.Context, s *domain.Sprint) error
	GetByID(ctx context.Context, id string) (*domain.Sprint, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Sprint, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Sprint, error)
	Update(ctx context.Context, id string, in UpdateSprintInput) (*domain.Sprint, error)
	Start(ctx context.Context, id string) (*domain.Sprint, error)
	Close(ctx context.Context, id string, endDate *time.Time) (*domain.Sprint, error)
	Reopen(ctx context.Context, id string) (*domain.Sprint, error)
	Delete(ctx context.Context, id string) error
}

// ComputeTimelineInput describes a snapshot request. Nil selections mean
// "everything the board owns"; non-nil empty selections mean "nothing".
type ComputeTimelineInput struct {
	BoardID         string
	OwnerID         string
	Name            string
	SelectedSprints *[]string
	SelectedIssues  *[]string
}

// UpdateTimelineInput carries optional snapshot metadata edits. Non-nil
// selection fields replace the stored selection used by later refreshes.
type UpdateTimelineInput struct {
	Name            *string
	IsPublished     *bool
	SelectedSprints *[]string
	SelectedIssues  *[]string
}

// TimelineService derives versioned snapshots of the sprint/issue hierarchy.
// Snapshots only read Sprint/Issue state, never write it.
type TimelineService interface {
	Compute(ctx context.Context, in ComputeTimelineInput) (*domain.Timeline, error)
	GetByID(ctx context.Context, id string) (*domain.Timeline, error)
	ListByBoard(ctx context.Context, boardID, ownerID string) ([]*domain.Timeline, error)
	Refresh(ctx context.Context, id string) (*domain.Timeline, error)
	UpdateMeta(ctx context.Context, id string, in UpdateTimelineInput) (*domain.Timeline, error)
	Delete(ctx context.Context, id string) error
}
