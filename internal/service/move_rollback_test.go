package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/gantry/internal/repository"
	"github.com/alexanderramin/gantry/internal/testutil"
)

// Failure injection mid-move: the source scope has already been compacted
// inside the transaction when the mover's own write fails. Rollback must
// restore both scopes exactly.

func TestCardMove_RollbackOnFailureLeavesScopesUntouched(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	todo := env.seedColumn(t, board.ID, "todo")
	done := env.seedColumn(t, board.ID, "done")
	cards := env.seedCards(t, board.ID, todo.ID, "A", "B", "C")
	ctx := context.Background()

	boom := errors.New("boom")
	// Moving A out of [A,B,C] compacts B and C first (two writes); the third
	// write places the mover in the destination.
	failing := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 3, Err: boom}
	svc := NewCardService(repository.NewSQLiteCardRepo(env.db), repository.NewSQLiteColumnRepo(env.db), failing)

	_, err := svc.Move(ctx, cards[0].ID, done.ID, 0)
	require.ErrorIs(t, err, boom)

	assert.Equal(t, []string{"A", "B", "C"}, env.columnOrder(t, board.ID, todo.ID))
	assert.Empty(t, env.columnOrder(t, board.ID, done.ID))
}

func TestIssueMoveToSprint_RollbackOnFailureLeavesLinksUntouched(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	sprint := testutil.NewTestSprint(board.ID, "Sprint 1")
	require.NoError(t, env.sprints.Create(context.Background(), sprint))
	issues := env.seedBacklog(t, board.ID, "A", "B", "C")
	ctx := context.Background()

	boom := errors.New("boom")
	// Moving A out of the backlog compacts B and C (two writes), then the
	// synchronizer updates the sprint's list (third) and flips the issue's
	// scope (fourth). Fail the flip: the sprint-list write must roll back too.
	failing := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 4, Err: boom}
	svc := NewIssueService(repository.NewSQLiteIssueRepo(env.db), repository.NewSQLiteSprintRepo(env.db), failing)

	_, err := svc.MoveToSprint(ctx, issues[0].ID, board.ID, &sprint.ID, 0)
	require.ErrorIs(t, err, boom)

	assert.Equal(t, []string{"A", "B", "C"}, env.scopeOrder(t, board.ID, nil))
	assert.Empty(t, env.scopeOrder(t, board.ID, &sprint.ID))

	s, err := env.sprints.GetByID(ctx, sprint.ID)
	require.NoError(t, err)
	assert.Empty(t, s.Issues, "partially written sprint list must roll back")
	env.assertLinkAgreement(t, board.ID)
}
