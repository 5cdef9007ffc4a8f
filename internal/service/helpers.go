package service

import (
	"context"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/ordering"
	"github.com/alexanderramin/gantry/internal/repository"
)

func cardMembers(cards []*domain.Card) []ordering.Member {
	ms := make([]ordering.Member, len(cards))
	for i, c := range cards {
		ms[i] = ordering.Member{ID: c.ID, Position: c.Position}
	}
	return ms
}

func issueMembers(issues []*domain.Issue) []ordering.Member {
	ms := make([]ordering.Member, len(issues))
	for i, is := range issues {
		ms[i] = ordering.Member{ID: is.ID, Position: is.Position}
	}
	return ms
}

func applyCardPlacements(ctx context.Context, repo repository.CardRepo, changes []ordering.Placement) error {
	for _, c := range changes {
		if err := repo.UpdatePosition(ctx, c.ID, c.Position); err != nil {
			return err
		}
	}
	return nil
}

func applyIssuePlacements(ctx context.Context, repo repository.IssueRepo, changes []ordering.Placement) error {
	for _, c := range changes {
		if err := repo.UpdatePosition(ctx, c.ID, c.Position); err != nil {
			return err
		}
	}
	return nil
}

// compactIssueScope renumbers a scope to 0..n-1 in its current order.
// Used after bulk membership changes (sprint reconciliation, sprint delete).
func compactIssueScope(ctx context.Context, repo repository.IssueRepo, scope ordering.IssueScope) error {
	members, err := repo.ListScope(ctx, scope.BoardID, scope.SprintID)
	if err != nil {
		return err
	}
	return applyIssuePlacements(ctx, repo, ordering.Compact(issueMembers(members)))
}
