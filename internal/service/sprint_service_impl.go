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

type sprintService struct {
	sprints repository.SprintRepo
	issues  repository.IssueRepo
	boards  repository.BoardRepo
	uow     db.UnitOfWork
}

func NewSprintService(sprints repository.SprintRepo, issues repository.IssueRepo, boards repository.BoardRepo, uow db.UnitOfWork) SprintService {
	return &sprintService{sprints: sprints, issues: issues, boards: boards, uow: uow}
}

// Create inserts the sprint. A non-empty initial issue list is authoritative:
// the listed issues are reconciled onto this sprint before the transaction
// commits.
func (s *sprintService) Create(ctx context.Context, sp *domain.Sprint) error {
	if sp.ID == "" {
		sp.ID = uuid.New().String()
	}
	if sp.Status == "" {
		sp.Status = domain.SprintPlanned
	}
	now := time.Now().UTC()
	sp.CreatedAt = now
	sp.UpdatedAt = now

	wanted := sp.Issues
	sp.Issues = nil

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		txIssues := repository.NewSQLiteIssueRepo(tx)
		txBoards := repository.NewSQLiteBoardRepo(tx)

		if _, err := txBoards.GetByID(ctx, sp.BoardID); err != nil {
			return err
		}
		if err := txSprints.Create(ctx, sp); err != nil {
			return err
		}
		if len(wanted) > 0 {
			sync := newLinkSync(txIssues, txSprints)
			if err := sync.Reconcile(ctx, sp, wanted); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *sprintService) GetByID(ctx context.Context, id string) (*domain.Sprint, error) {
	return s.sprints.GetByID(ctx, id)
}

func (s *sprintService) ListByBoard(ctx context.Context, boardID string) ([]*domain.Sprint, error) {
	return s.sprints.ListByBoard(ctx, boardID)
}

func (s *sprintService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Sprint, error) {
	return s.sprints.ListByOwner(ctx, ownerID)
}

// Update applies the given field edits. A non-nil Issues list triggers
// sprint-authoritative reconciliation: issues gain or lose their sprint
// assignment to match the list, wherever they were before.
func (s *sprintService) Update(ctx context.Context, id string, in UpdateSprintInput) (*domain.Sprint, error) {
	var updated *domain.Sprint
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		txIssues := repository.NewSQLiteIssueRepo(tx)

		sp, err := txSprints.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			sp.Name = *in.Name
		}
		if in.Objective != nil {
			sp.Objective = *in.Objective
		}
		if in.StartDate != nil {
			sp.StartDate = in.StartDate
		}
		if in.EndDate != nil {
			sp.EndDate = in.EndDate
		}
		sp.UpdatedAt = time.Now().UTC()
		if err := txSprints.Update(ctx, sp); err != nil {
			return err
		}

		if in.Issues != nil {
			sync := newLinkSync(txIssues, txSprints)
			if err := sync.Reconcile(ctx, sp, *in.Issues); err != nil {
				return err
			}
		}
		updated, err = txSprints.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Start moves a planned sprint to active, stamping the start date if unset.
func (s *sprintService) Start(ctx context.Context, id string) (*domain.Sprint, error) {
	return s.transition(ctx, id, func(sp *domain.Sprint) error {
		if sp.Status != domain.SprintPlanned {
			return errConflict("cannot start a %s sprint", sp.Status)
		}
		sp.Status = domain.SprintActive
		if sp.StartDate == nil {
			now := time.Now().UTC()
			sp.StartDate = &now
		}
		return nil
	})
}

// Close moves an active sprint to completed. The end date may be supplied
// explicitly; otherwise it is stamped if unset. Closing a sprint that was
// never started is rejected.
func (s *sprintService) Close(ctx context.Context, id string, endDate *time.Time) (*domain.Sprint, error) {
	return s.transition(ctx, id, func(sp *domain.Sprint) error {
		if sp.Status != domain.SprintActive {
			if sp.Status == domain.SprintPlanned {
				return errConflict("cannot close a sprint that was never started")
			}
			return errConflict("cannot close a %s sprint", sp.Status)
		}
		sp.Status = domain.SprintCompleted
		if endDate != nil {
			sp.EndDate = endDate
		} else if sp.EndDate == nil {
			now := time.Now().UTC()
			sp.EndDate = &now
		}
		return nil
	})
}

// Reopen moves a completed sprint back to planned.
func (s *sprintService) Reopen(ctx context.Context, id string) (*domain.Sprint, error) {
	return s.transition(ctx, id, func(sp *domain.Sprint) error {
		if sp.Status != domain.SprintCompleted {
			return errConflict("cannot reopen a %s sprint", sp.Status)
		}
		sp.Status = domain.SprintPlanned
		return nil
	})
}

func (s *sprintService) transition(ctx context.Context, id string, apply func(*domain.Sprint) error) (*domain.Sprint, error) {
	sp, err := s.sprints.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(sp); err != nil {
		return nil, err
	}
	sp.UpdatedAt = time.Now().UTC()
	if err := s.sprints.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// Delete clears the sprint link of every issue the sprint holds (they return
// to the backlog), removes the sprint, then compacts the backlog.
func (s *sprintService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		txIssues := repository.NewSQLiteIssueRepo(tx)

		sp, err := txSprints.GetByID(ctx, id)
		if err != nil {
			return err
		}

		// Every issue pointing at this sprint goes back to the backlog, not
		// just the listed ones, so drifted rows cannot keep a dangling
		// reference.
		sync := newLinkSync(txIssues, txSprints)
		if err := sync.ClearSprint(ctx, sp); err != nil {
			return err
		}

		if err := txSprints.Delete(ctx, id); err != nil {
			return err
		}
		return compactIssueScope(ctx, txIssues, ordering.IssueScope{BoardID: sp.BoardID})
	})
}
