package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/testutil"
)

func TestSprintCreate_WithInitialIssuesReconciles(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	issues := env.seedBacklog(t, board.ID, "A", "B", "C")
	ctx := context.Background()

	s := &domain.Sprint{
		BoardID: board.ID,
		OwnerID: "test-owner",
		Name:    "Sprint 1",
		Issues:  []string{issues[1].ID, issues[0].ID},
	}
	require.NoError(t, env.sprintSvc.Create(ctx, s))

	// Sprint order follows the given list, backlog compacts to the leftover.
	assert.Equal(t, []string{"B", "A"}, env.scopeOrder(t, board.ID, &s.ID))
	assert.Equal(t, []string{"C"}, env.scopeOrder(t, board.ID, nil))
	env.assertLinkAgreement(t, board.ID)
}

func TestSprintUpdate_AuthoritativeListStealsFromOtherSprint(t *testing.T) {
	// S1 holds I; updating S2 with a list including I moves it: I ends up
	// only in S2 and its pointer follows.
	env := newTestEnv(t)
	board := env.seedBoard(t)
	issues := env.seedBacklog(t, board.ID, "I", "J")
	ctx := context.Background()

	s1 := &domain.Sprint{BoardID: board.ID, OwnerID: "test-owner", Name: "S1", Issues: []string{issues[0].ID}}
	require.NoError(t, env.sprintSvc.Create(ctx, s1))
	s2 := &domain.Sprint{BoardID: board.ID, OwnerID: "test-owner", Name: "S2"}
	require.NoError(t, env.sprintSvc.Create(ctx, s2))

	list := []string{issues[0].ID}
	updated, err := env.sprintSvc.Update(ctx, s2.ID, UpdateSprintInput{Issues: &list})
	require.NoError(t, err)
	assert.Equal(t, []string{issues[0].ID}, updated.Issues)

	former, err := env.sprints.GetByID(ctx, s1.ID)
	require.NoError(t, err)
	assert.Empty(t, former.Issues, "issue should be pulled from its former sprint")

	moved, err := env.issues.GetByID(ctx, issues[0].ID)
	require.NoError(t, err)
	require.NotNil(t, moved.SprintID)
	assert.Equal(t, s2.ID, *moved.SprintID)
	env.assertLinkAgreement(t, board.ID)
}

func TestSprintUpdate_DuplicateIDsCollapse(t *testing.T) {
	// The issue list is an ordered set: a repeated id keeps its first slot,
	// and positions stay 0..n-1.
	env := newTestEnv(t)
	board := env.seedBoard(t)
	issues := env.seedBacklog(t, board.ID, "A", "B")
	ctx := context.Background()

	s := &domain.Sprint{BoardID: board.ID, OwnerID: "test-owner", Name: "Sprint 1"}
	require.NoError(t, env.sprintSvc.Create(ctx, s))

	list := []string{issues[0].ID, issues[0].ID, issues[1].ID, issues[0].ID}
	updated, err := env.sprintSvc.Update(ctx, s.ID, UpdateSprintInput{Issues: &list})
	require.NoError(t, err)

	assert.Equal(t, []string{issues[0].ID, issues[1].ID}, updated.Issues)
	assert.Equal(t, []string{"A", "B"}, env.scopeOrder(t, board.ID, &s.ID))
	env.assertLinkAgreement(t, board.ID)
}

func TestSprintCreate_DuplicateInitialIDsCollapse(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	issues := env.seedBacklog(t, board.ID, "A")
	ctx := context.Background()

	s := &domain.Sprint{
		BoardID: board.ID, OwnerID: "test-owner", Name: "Sprint 1",
		Issues: []string{issues[0].ID, issues[0].ID},
	}
	require.NoError(t, env.sprintSvc.Create(ctx, s))

	fetched, err := env.sprints.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{issues[0].ID}, fetched.Issues)
	assert.Equal(t, []string{"A"}, env.scopeOrder(t, board.ID, &s.ID))
	env.assertLinkAgreement(t, board.ID)
}

func TestSprintUpdate_DroppedIssuesReturnToBacklog(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	issues := env.seedBacklog(t, board.ID, "A", "B", "C")
	ctx := context.Background()

	s := &domain.Sprint{
		BoardID: board.ID, OwnerID: "test-owner", Name: "Sprint 1",
		Issues: []string{issues[0].ID, issues[1].ID},
	}
	require.NoError(t, env.sprintSvc.Create(ctx, s))

	list := []string{issues[1].ID}
	_, err := env.sprintSvc.Update(ctx, s.ID, UpdateSprintInput{Issues: &list})
	require.NoError(t, err)

	assert.Equal(t, []string{"B"}, env.scopeOrder(t, board.ID, &s.ID))
	assert.Equal(t, []string{"C", "A"}, env.scopeOrder(t, board.ID, nil))
	env.assertLinkAgreement(t, board.ID)
}

func TestSprintUpdate_FieldEditsOnly(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	ctx := context.Background()

	s := &domain.Sprint{BoardID: board.ID, OwnerID: "test-owner", Name: "Sprint 1"}
	require.NoError(t, env.sprintSvc.Create(ctx, s))

	name := "Renamed"
	objective := "Ship the tracker"
	updated, err := env.sprintSvc.Update(ctx, s.ID, UpdateSprintInput{Name: &name, Objective: &objective})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "Ship the tracker", updated.Objective)
	assert.Empty(t, updated.Issues, "nil Issues input must not touch membership")
}

func TestSprintLifecycle_HappyPath(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	ctx := context.Background()

	s := &domain.Sprint{BoardID: board.ID, OwnerID: "test-owner", Name: "Sprint 1"}
	require.NoError(t, env.sprintSvc.Create(ctx, s))

	started, err := env.sprintSvc.Start(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SprintActive, started.Status)
	assert.NotNil(t, started.StartDate, "starting stamps the start date")

	closed, err := env.sprintSvc.Close(ctx, s.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.SprintCompleted, closed.Status)
	assert.NotNil(t, closed.EndDate, "closing stamps the end date")

	reopened, err := env.sprintSvc.Reopen(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SprintPlanned, reopened.Status)
}

func TestSprintLifecycle_Guards(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	ctx := context.Background()

	newSprint := func(status domain.SprintStatus) string {
		s := testutil.NewTestSprint(board.ID, "Guarded", testutil.WithSprintStatus(status))
		require.NoError(t, env.sprints.Create(ctx, s))
		return s.ID
	}

	t.Run("start active", func(t *testing.T) {
		_, err := env.sprintSvc.Start(ctx, newSprint(domain.SprintActive))
		require.ErrorIs(t, err, ErrConflict)
	})
	t.Run("start completed", func(t *testing.T) {
		_, err := env.sprintSvc.Start(ctx, newSprint(domain.SprintCompleted))
		require.ErrorIs(t, err, ErrConflict)
	})
	t.Run("close planned", func(t *testing.T) {
		// A sprint that was never started cannot be closed.
		_, err := env.sprintSvc.Close(ctx, newSprint(domain.SprintPlanned), nil)
		require.ErrorIs(t, err, ErrConflict)
		assert.Contains(t, err.Error(), "never started")
	})
	t.Run("close completed", func(t *testing.T) {
		_, err := env.sprintSvc.Close(ctx, newSprint(domain.SprintCompleted), nil)
		require.ErrorIs(t, err, ErrConflict)
	})
	t.Run("reopen planned", func(t *testing.T) {
		_, err := env.sprintSvc.Reopen(ctx, newSprint(domain.SprintPlanned))
		require.ErrorIs(t, err, ErrConflict)
	})
	t.Run("reopen active", func(t *testing.T) {
		_, err := env.sprintSvc.Reopen(ctx, newSprint(domain.SprintActive))
		require.ErrorIs(t, err, ErrConflict)
	})
}

func TestSprintClose_ExplicitEndDateWins(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	ctx := context.Background()

	s := testutil.NewTestSprint(board.ID, "Sprint 1", testutil.WithSprintStatus(domain.SprintActive))
	require.NoError(t, env.sprints.Create(ctx, s))

	end := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	closed, err := env.sprintSvc.Close(ctx, s.ID, &end)
	require.NoError(t, err)
	require.NotNil(t, closed.EndDate)
	assert.Equal(t, "2026-08-28", closed.EndDate.Format("2006-01-02"))
}

func TestSprintDelete_ReturnsIssuesToBacklog(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	issues := env.seedBacklog(t, board.ID, "A", "B", "C")
	ctx := context.Background()

	s := &domain.Sprint{
		BoardID: board.ID, OwnerID: "test-owner", Name: "Doomed",
		Issues: []string{issues[0].ID, issues[2].ID},
	}
	require.NoError(t, env.sprintSvc.Create(ctx, s))
	require.NoError(t, env.sprintSvc.Delete(ctx, s.ID))

	backlog := env.scopeOrder(t, board.ID, nil)
	assert.Len(t, backlog, 3, "all issues return to the backlog")
	for _, is := range issues {
		fetched, err := env.issues.GetByID(ctx, is.ID)
		require.NoError(t, err)
		assert.Nil(t, fetched.SprintID)
	}
}
