package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/testutil"
)

func TestTimelineCompute_FullBoard(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	issues := env.seedBacklog(t, board.ID, "A", "B", "C")
	ctx := context.Background()

	sprint := testutil.NewTestSprint(board.ID, "Sprint 1")
	require.NoError(t, env.sprints.Create(ctx, sprint))
	_, err := env.issueSvc.MoveToSprint(ctx, issues[0].ID, board.ID, &sprint.ID, 0)
	require.NoError(t, err)

	tl, err := env.timelineSvc.Compute(ctx, ComputeTimelineInput{
		BoardID: board.ID,
		OwnerID: "test-owner",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, tl.Version)
	assert.True(t, tl.IsPublished)
	assert.Equal(t, "Timeline snapshot", tl.Name, "empty name gets the default")
	assert.Nil(t, tl.SelectedSprints)
	assert.Nil(t, tl.SelectedIssues)

	require.Len(t, tl.Data.Sprints, 1)
	assert.Equal(t, sprint.ID, tl.Data.Sprints[0].Sprint.ID)
	require.Len(t, tl.Data.Sprints[0].Issues, 1)
	assert.Equal(t, "A", tl.Data.Sprints[0].Issues[0].Title)

	backlog := make([]string, len(tl.Data.Backlog))
	for i, is := range tl.Data.Backlog {
		backlog[i] = is.Title
	}
	assert.ElementsMatch(t, []string{"B", "C"}, backlog)
}

func TestTimelineCompute_EmptySprintSelectionMeansNone(t *testing.T) {
	// An explicit empty list selects zero sprints. It must not fall back to
	// "all sprints" the way an absent selection does.
	env := newTestEnv(t)
	board := env.seedBoard(t)
	issues := env.seedBacklog(t, board.ID, "A", "B")
	ctx := context.Background()

	sprint := testutil.NewTestSprint(board.ID, "Sprint 1")
	require.NoError(t, env.sprints.Create(ctx, sprint))
	_, err := env.issueSvc.MoveToSprint(ctx, issues[0].ID, board.ID, &sprint.ID, 0)
	require.NoError(t, err)

	none := []string{}
	tl, err := env.timelineSvc.Compute(ctx, ComputeTimelineInput{
		BoardID:         board.ID,
		OwnerID:         "test-owner",
		SelectedSprints: &none,
	})
	require.NoError(t, err)

	assert.Empty(t, tl.Data.Sprints)
	// Only the true backlog remains; the sprint's issue is left out entirely.
	require.Len(t, tl.Data.Backlog, 1)
	assert.Equal(t, "B", tl.Data.Backlog[0].Title)
	require.NotNil(t, tl.SelectedSprints)
	assert.Empty(t, *tl.SelectedSprints)
}

func TestTimelineCompute_SprintSelectionExcludesOtherSprints(t *testing.T) {
	// Two sprints, one selected. The unselected sprint's issues do not leak
	// into the backlog band; they are simply absent from the snapshot.
	env := newTestEnv(t)
	board := env.seedBoard(t)
	issues := env.seedBacklog(t, board.ID, "A", "B", "C")
	ctx := context.Background()

	s1 := testutil.NewTestSprint(board.ID, "S1")
	s2 := testutil.NewTestSprint(board.ID, "S2")
	require.NoError(t, env.sprints.Create(ctx, s1))
	require.NoError(t, env.sprints.Create(ctx, s2))
	_, err := env.issueSvc.MoveToSprint(ctx, issues[0].ID, board.ID, &s1.ID, 0)
	require.NoError(t, err)
	_, err = env.issueSvc.MoveToSprint(ctx, issues[1].ID, board.ID, &s2.ID, 0)
	require.NoError(t, err)

	sel := []string{s1.ID}
	tl, err := env.timelineSvc.Compute(ctx, ComputeTimelineInput{
		BoardID:         board.ID,
		OwnerID:         "test-owner",
		SelectedSprints: &sel,
	})
	require.NoError(t, err)

	require.Len(t, tl.Data.Sprints, 1)
	assert.Equal(t, s1.ID, tl.Data.Sprints[0].Sprint.ID)
	require.Len(t, tl.Data.Sprints[0].Issues, 1)
	assert.Equal(t, "A", tl.Data.Sprints[0].Issues[0].Title)

	require.Len(t, tl.Data.Backlog, 1)
	assert.Equal(t, "C", tl.Data.Backlog[0].Title, "only the true backlog shows")
}

func TestTimelineCompute_IssueSelectionDerivesBacklog(t *testing.T) {
	// With an explicit issue selection, a selected issue whose sprint is not
	// among the fetched sprints counts as backlog for this snapshot.
	env := newTestEnv(t)
	board := env.seedBoard(t)
	issues := env.seedBacklog(t, board.ID, "A", "B")
	ctx := context.Background()

	sprint := testutil.NewTestSprint(board.ID, "Sprint 1")
	require.NoError(t, env.sprints.Create(ctx, sprint))
	_, err := env.issueSvc.MoveToSprint(ctx, issues[0].ID, board.ID, &sprint.ID, 0)
	require.NoError(t, err)

	noSprints := []string{}
	sel := []string{issues[0].ID, issues[1].ID}
	tl, err := env.timelineSvc.Compute(ctx, ComputeTimelineInput{
		BoardID:         board.ID,
		OwnerID:         "test-owner",
		SelectedSprints: &noSprints,
		SelectedIssues:  &sel,
	})
	require.NoError(t, err)

	assert.Empty(t, tl.Data.Sprints)
	backlog := make([]string, len(tl.Data.Backlog))
	for i, is := range tl.Data.Backlog {
		backlog[i] = is.Title
	}
	assert.ElementsMatch(t, []string{"A", "B"}, backlog)
}

func TestTimelineCompute_IssueSelection(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	issues := env.seedBacklog(t, board.ID, "A", "B", "C")
	ctx := context.Background()

	sel := []string{issues[0].ID, issues[2].ID}
	tl, err := env.timelineSvc.Compute(ctx, ComputeTimelineInput{
		BoardID:        board.ID,
		OwnerID:        "test-owner",
		SelectedIssues: &sel,
	})
	require.NoError(t, err)

	backlog := make([]string, len(tl.Data.Backlog))
	for i, is := range tl.Data.Backlog {
		backlog[i] = is.Title
	}
	assert.ElementsMatch(t, []string{"A", "C"}, backlog)
}

func TestTimelineCompute_ForeignBoardForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	board := testutil.NewTestBoard("Theirs", testutil.WithBoardOwner("someone-else"))
	require.NoError(t, env.boards.Create(ctx, board))

	_, err := env.timelineSvc.Compute(ctx, ComputeTimelineInput{
		BoardID: board.ID,
		OwnerID: "test-owner",
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestTimelineRefresh_BumpsVersionWithoutTouchingSources(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	env.seedBacklog(t, board.ID, "A")
	ctx := context.Background()

	tl, err := env.timelineSvc.Compute(ctx, ComputeTimelineInput{
		BoardID: board.ID,
		OwnerID: "test-owner",
	})
	require.NoError(t, err)
	require.Len(t, tl.Data.Backlog, 1)

	// The board changes after the snapshot was taken.
	later := &domain.Issue{BoardID: board.ID, Title: "B"}
	require.NoError(t, env.issueSvc.Create(ctx, later))

	refreshed, err := env.timelineSvc.Refresh(ctx, tl.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, refreshed.Version)
	assert.Len(t, refreshed.Data.Backlog, 2, "refresh picks up current board state")

	// Refresh reads sprints and issues; it never writes them.
	assert.Equal(t, []string{"A", "B"}, env.scopeOrder(t, board.ID, nil))
}

func TestTimelineUpdateMeta(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	ctx := context.Background()

	tl, err := env.timelineSvc.Compute(ctx, ComputeTimelineInput{
		BoardID: board.ID,
		OwnerID: "test-owner",
		Name:    "Before",
	})
	require.NoError(t, err)

	name := "After"
	published := false
	updated, err := env.timelineSvc.UpdateMeta(ctx, tl.ID, UpdateTimelineInput{
		Name:        &name,
		IsPublished: &published,
	})
	require.NoError(t, err)

	assert.Equal(t, "After", updated.Name)
	assert.False(t, updated.IsPublished)
	assert.Equal(t, 1, updated.Version, "metadata edits do not reversion the snapshot")
}

func TestTimelineDelete(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	ctx := context.Background()

	tl, err := env.timelineSvc.Compute(ctx, ComputeTimelineInput{
		BoardID: board.ID,
		OwnerID: "test-owner",
	})
	require.NoError(t, err)

	require.NoError(t, env.timelineSvc.Delete(ctx, tl.ID))
	_, err = env.timelineSvc.GetByID(ctx, tl.ID)
	assert.True(t, isNotFound(err))
}
