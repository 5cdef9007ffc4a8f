package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/ordering"
	"github.com/alexanderramin/gantry/internal/repository"
)

type issueService struct {
	issues  repository.IssueRepo
	sprints repository.SprintRepo
	uow     db.UnitOfWork
}

func NewIssueService(issues repository.IssueRepo, sprints repository.SprintRepo, uow db.UnitOfWork) IssueService {
	return &issueService{issues: issues, sprints: sprints, uow: uow}
}

// appendEnd is a target index past any scope's size; the sequencer clamps it
// to "insert at the end".
const appendEnd = 1 << 30

// Create appends the issue to its scope (sprint or backlog). An initial
// sprint assignment goes through the link synchronizer like any other.
func (s *issueService) Create(ctx context.Context, i *domain.Issue) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.Priority == "" {
		i.Priority = domain.PriorityMedium
	}
	if i.Type == "" {
		i.Type = domain.TypeTask
	}
	now := time.Now().UTC()
	i.CreatedAt = now
	i.UpdatedAt = now

	sprintID := i.SprintID
	i.SprintID = nil

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txIssues := repository.NewSQLiteIssueRepo(tx)
		txSprints := repository.NewSQLiteSprintRepo(tx)

		if sprintID != nil {
			sprint, err := txSprints.GetByID(ctx, *sprintID)
			if err != nil {
				return err
			}
			if sprint.BoardID != i.BoardID {
				return errScopeMismatch("sprint %s belongs to board %s, not %s", sprint.ID, sprint.BoardID, i.BoardID)
			}
		}

		scope, err := txIssues.ListScope(ctx, i.BoardID, sprintID)
		if err != nil {
			return err
		}
		i.Position = len(scope)

		// The row is born in the backlog, then handed to the link
		// synchronizer so both sides of the sprint link change together.
		if err := txIssues.Create(ctx, i); err != nil {
			return err
		}
		if sprintID != nil {
			sync := newLinkSync(txIssues, txSprints)
			if err := sync.Assign(ctx, i.ID, sprintID, i.Position); err != nil {
				return err
			}
			i.SprintID = sprintID
		}
		return nil
	})
}

func (s *issueService) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	return s.issues.GetByID(ctx, id)
}

func (s *issueService) ListScope(ctx context.Context, boardID string, sprintID *string) ([]*domain.Issue, error) {
	return s.issues.ListScope(ctx, boardID, sprintID)
}

func (s *issueService) ListByBoard(ctx context.Context, boardID string) ([]*domain.Issue, error) {
	return s.issues.ListByBoard(ctx, boardID)
}

// Update edits issue fields. A changed sprint pointer is treated as a move to
// the end of the new scope; everything else never touches position or scope.
func (s *issueService) Update(ctx context.Context, i *domain.Issue) (*domain.Issue, error) {
	current, err := s.issues.GetByID(ctx, i.ID)
	if err != nil {
		return nil, err
	}

	if i.SprintIDOrEmpty() != current.SprintIDOrEmpty() {
		if _, err := s.MoveToSprint(ctx, i.ID, current.BoardID, i.SprintID, appendEnd); err != nil {
			return nil, err
		}
	}

	i.BoardID = current.BoardID
	i.UpdatedAt = time.Now().UTC()
	if err := s.issues.Update(ctx, i); err != nil {
		return nil, err
	}
	return s.issues.GetByID(ctx, i.ID)
}

// SetDates updates the issue's timeline dates only.
func (s *issueService) SetDates(ctx context.Context, id string, start, end *time.Time) (*domain.Issue, error) {
	issue, err := s.issues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	issue.StartDate = start
	issue.EndDate = end
	issue.UpdatedAt = time.Now().UTC()
	if err := s.issues.Update(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

// Reorder moves an issue within one scope (sprint or backlog).
func (s *issueService) Reorder(ctx context.Context, boardID string, sprintID *string, issueID string, toPosition int) (*domain.Issue, error) {
	var moved *domain.Issue
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txIssues := repository.NewSQLiteIssueRepo(tx)
		txSprints := repository.NewSQLiteSprintRepo(tx)

		if err := validateIssueScope(ctx, txSprints, boardID, sprintID); err != nil {
			return err
		}
		members, err := txIssues.ListScope(ctx, boardID, sprintID)
		if err != nil {
			return err
		}
		found := false
		for _, m := range members {
			if m.ID == issueID {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("issue %s not in scope: %w", issueID, repository.ErrNotFound)
		}

		changes := ordering.Insert(issueMembers(members), issueID, toPosition)
		if err := applyIssuePlacements(ctx, txIssues, changes); err != nil {
			return err
		}
		moved, err = txIssues.GetByID(ctx, issueID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// MoveToSprint moves an issue between scopes: the source scope closes its
// gap, the link synchronizer flips the sprint pointer and both sprint lists,
// and the issue lands at toPosition in the destination. All in one
// transaction; a failure at any step leaves both scopes untouched.
func (s *issueService) MoveToSprint(ctx context.Context, issueID, boardID string, sprintID *string, toPosition int) (*domain.Issue, error) {
	var moved *domain.Issue
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txIssues := repository.NewSQLiteIssueRepo(tx)
		txSprints := repository.NewSQLiteSprintRepo(tx)

		issue, err := txIssues.GetByID(ctx, issueID)
		if err != nil {
			return err
		}
		if issue.BoardID != boardID {
			return errForbidden("issue %s belongs to board %s, not %s", issueID, issue.BoardID, boardID)
		}
		if err := validateIssueScope(ctx, txSprints, boardID, sprintID); err != nil {
			return err
		}

		source := ordering.IssueScope{BoardID: boardID, SprintID: issue.SprintID}
		dest := ordering.IssueScope{BoardID: boardID, SprintID: sprintID}

		if source.Key() == dest.Key() {
			members, err := txIssues.ListScope(ctx, boardID, sprintID)
			if err != nil {
				return err
			}
			changes := ordering.Insert(issueMembers(members), issueID, toPosition)
			if err := applyIssuePlacements(ctx, txIssues, changes); err != nil {
				return err
			}
		} else {
			sourceMembers, err := txIssues.ListScope(ctx, boardID, issue.SprintID)
			if err != nil {
				return err
			}
			if err := applyIssuePlacements(ctx, txIssues, ordering.Remove(issueMembers(sourceMembers), issueID)); err != nil {
				return err
			}

			destMembers, err := txIssues.ListScope(ctx, boardID, sprintID)
			if err != nil {
				return err
			}
			sync := newLinkSync(txIssues, txSprints)
			for _, c := range ordering.Insert(issueMembers(destMembers), issueID, toPosition) {
				if c.ID == issueID {
					err = sync.Assign(ctx, issueID, sprintID, c.Position)
				} else {
					err = txIssues.UpdatePosition(ctx, c.ID, c.Position)
				}
				if err != nil {
					return err
				}
			}
		}

		moved, err = txIssues.GetByID(ctx, issueID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// Delete removes the issue, pulls its id from any sprint list holding it and
// compacts the vacated scope.
func (s *issueService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txIssues := repository.NewSQLiteIssueRepo(tx)
		txSprints := repository.NewSQLiteSprintRepo(tx)

		issue, err := txIssues.GetByID(ctx, id)
		if err != nil {
			return err
		}
		members, err := txIssues.ListScope(ctx, issue.BoardID, issue.SprintID)
		if err != nil {
			return err
		}

		sync := newLinkSync(txIssues, txSprints)
		if err := sync.Release(ctx, id); err != nil {
			return err
		}
		if err := txIssues.Delete(ctx, id); err != nil {
			return err
		}
		return applyIssuePlacements(ctx, txIssues, ordering.Remove(issueMembers(members), id))
	})
}

// validateIssueScope checks that a non-backlog scope's sprint exists and
// belongs to the claimed board.
func validateIssueScope(ctx context.Context, sprints repository.SprintRepo, boardID string, sprintID *string) error {
	if sprintID == nil {
		return nil
	}
	sprint, err := sprints.GetByID(ctx, *sprintID)
	if err != nil {
		return err
	}
	if sprint.BoardID != boardID {
		return errScopeMismatch("sprint %s belongs to board %s, not %s", sprint.ID, sprint.BoardID, boardID)
	}
	return nil
}
