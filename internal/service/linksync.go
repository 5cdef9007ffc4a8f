package service

import (
	"context"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/ordering"
	"github.com/alexanderramin/gantry/internal/repository"
)

// linkSync is the only component that writes Issue.SprintID or Sprint.Issues.
// It keeps the two sides of the sprint/issue link in agreement:
//
//	issue.SprintID == sprint.ID  <=>  issue.ID in sprint.Issues
//
// and no issue id appears in two sprints' lists. It is always constructed
// over tx-scoped repositories; every sequence here must commit atomically
// with the position writes around it.
type linkSync struct {
	issues  repository.IssueRepo
	sprints repository.SprintRepo
}

func newLinkSync(issues repository.IssueRepo, sprints repository.SprintRepo) *linkSync {
	return &linkSync{issues: issues, sprints: sprints}
}

// Assign points an issue at a sprint (or the backlog, with a nil sprintID) at
// the given position. Before adding to the target, the issue id is pulled
// from every other sprint's list that contains it, whatever the issue's own
// sprint pointer says; this heals drift left by prior inconsistent state.
func (l *linkSync) Assign(ctx context.Context, issueID string, sprintID *string, position int) error {
	if err := l.pullFromOtherSprints(ctx, issueID, sprintID); err != nil {
		return err
	}

	if sprintID != nil {
		target, err := l.sprints.GetByID(ctx, *sprintID)
		if err != nil {
			return err
		}
		if target.AddIssue(issueID) {
			target.UpdatedAt = time.Now().UTC()
			if err := l.sprints.Update(ctx, target); err != nil {
				return err
			}
		}
	}

	return l.issues.UpdateScope(ctx, issueID, sprintID, position)
}

// Release pulls the issue id from every sprint list that contains it, without
// touching the issue row. Used before deleting the issue.
func (l *linkSync) Release(ctx context.Context, issueID string) error {
	return l.pullFromOtherSprints(ctx, issueID, nil)
}

// Reconcile makes the issue side match an authoritative list for the sprint.
// Issues in the list are pulled from any other sprint and pointed at this
// one, positioned by their index in the list; issues dropped from the list
// move to the board's backlog. Every scope that lost or gained members is
// re-compacted so positions stay gap-free.
func (l *linkSync) Reconcile(ctx context.Context, sprint *domain.Sprint, issueIDs []string) error {
	// The list is an ordered set: a repeated id keeps its first slot. Without
	// the dedupe, position-by-index would leave gaps in the sprint's scope.
	inList := make(map[string]bool, len(issueIDs))
	deduped := make([]string, 0, len(issueIDs))
	for _, id := range issueIDs {
		if inList[id] {
			continue
		}
		inList[id] = true
		deduped = append(deduped, id)
	}
	issueIDs = deduped

	// Scopes needing compaction afterwards, keyed by scope identity. The
	// target sprint's scope is excluded: its positions are assigned directly
	// from list order below.
	affected := make(map[string]ordering.IssueScope)
	markAffected := func(scope ordering.IssueScope) {
		if scope.SprintID != nil && *scope.SprintID == sprint.ID {
			return
		}
		affected[scope.Key()] = scope
	}

	for idx, id := range issueIDs {
		issue, err := l.issues.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if issue.BoardID != sprint.BoardID {
			return errScopeMismatch("issue %s belongs to board %s, not %s", id, issue.BoardID, sprint.BoardID)
		}

		if issue.SprintIDOrEmpty() != sprint.ID {
			markAffected(ordering.IssueScope{BoardID: issue.BoardID, SprintID: issue.SprintID})
		}
		if err := l.pullFromOtherSprints(ctx, id, &sprint.ID); err != nil {
			return err
		}
		if err := l.issues.UpdateScope(ctx, id, &sprint.ID, idx); err != nil {
			return err
		}
	}

	// Issues the sprint used to hold but the new list dropped go back to the
	// backlog; the compaction pass below renumbers them.
	for _, id := range sprint.Issues {
		if inList[id] {
			continue
		}
		issue, err := l.issues.GetByID(ctx, id)
		if err != nil {
			// A dangling id in the old list has nothing to clear.
			if isNotFound(err) {
				continue
			}
			return err
		}
		if issue.SprintIDOrEmpty() == sprint.ID {
			if err := l.issues.UpdateScope(ctx, id, nil, issue.Position); err != nil {
				return err
			}
			markAffected(ordering.IssueScope{BoardID: issue.BoardID})
		}
	}

	sprint.Issues = append([]string(nil), issueIDs...)
	sprint.UpdatedAt = time.Now().UTC()
	if err := l.sprints.Update(ctx, sprint); err != nil {
		return err
	}

	for _, scope := range affected {
		if err := compactIssueScope(ctx, l.issues, scope); err != nil {
			return err
		}
	}
	return nil
}

// ClearSprint returns every issue scoped to the sprint to the board's
// backlog, whatever the sprint's own list says. Positions are kept as-is; the
// caller compacts the backlog afterwards.
func (l *linkSync) ClearSprint(ctx context.Context, sprint *domain.Sprint) error {
	scoped, err := l.issues.ListScope(ctx, sprint.BoardID, &sprint.ID)
	if err != nil {
		return err
	}
	for _, issue := range scoped {
		if err := l.issues.UpdateScope(ctx, issue.ID, nil, issue.Position); err != nil {
			return err
		}
	}
	return nil
}

// pullFromOtherSprints removes issueID from every sprint list containing it,
// except the sprint named by keepID (nil keeps none).
func (l *linkSync) pullFromOtherSprints(ctx context.Context, issueID string, keepID *string) error {
	holders, err := l.sprints.ListContainingIssue(ctx, issueID)
	if err != nil {
		return err
	}
	for _, s := range holders {
		if keepID != nil && s.ID == *keepID {
			continue
		}
		if s.RemoveIssue(issueID) {
			s.UpdatedAt = time.Now().UTC()
			if err := l.sprints.Update(ctx, s); err != nil {
				return err
			}
		}
	}
	return nil
}
