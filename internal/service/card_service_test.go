package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/testutil"
)

func TestCardCreate_AppendsToColumn(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	col := env.seedColumn(t, board.ID, "todo")
	env.seedCards(t, board.ID, col.ID, "A", "B")
	ctx := context.Background()

	c := &domain.Card{BoardID: board.ID, ColumnID: col.ID, Title: "C"}
	require.NoError(t, env.cardSvc.Create(ctx, c))

	assert.Equal(t, 2, c.Position, "new cards append to the end of the column")
	assert.Equal(t, []string{"A", "B", "C"}, env.columnOrder(t, board.ID, col.ID))
}

func TestCardCreate_RejectsColumnFromOtherBoard(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	other := env.seedBoard(t)
	col := env.seedColumn(t, other.ID, "todo")

	c := &domain.Card{BoardID: board.ID, ColumnID: col.ID, Title: "Stray"}
	err := env.cardSvc.Create(context.Background(), c)
	require.ErrorIs(t, err, ErrScopeMismatch)
}

func TestCardMove_WithinColumnToFront(t *testing.T) {
	// Column holds [A,B,C] at [0,1,2]; moving B to 0 yields [B,A,C].
	env := newTestEnv(t)
	board := env.seedBoard(t)
	col := env.seedColumn(t, board.ID, "todo")
	cards := env.seedCards(t, board.ID, col.ID, "A", "B", "C")
	ctx := context.Background()

	moved, err := env.cardSvc.Move(ctx, cards[1].ID, col.ID, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, moved.Position)
	assert.Equal(t, []string{"B", "A", "C"}, env.columnOrder(t, board.ID, col.ID))
}

func TestCardMove_AcrossColumns(t *testing.T) {
	// C leaves a three-card column for an empty one; the source compacts.
	env := newTestEnv(t)
	board := env.seedBoard(t)
	todo := env.seedColumn(t, board.ID, "todo")
	done := env.seedColumn(t, board.ID, "done")
	cards := env.seedCards(t, board.ID, todo.ID, "A", "B", "C")
	ctx := context.Background()

	moved, err := env.cardSvc.Move(ctx, cards[2].ID, done.ID, 0)
	require.NoError(t, err)

	assert.Equal(t, done.ID, moved.ColumnID)
	assert.Equal(t, 0, moved.Position)
	assert.Equal(t, []string{"A", "B"}, env.columnOrder(t, board.ID, todo.ID))
	assert.Equal(t, []string{"C"}, env.columnOrder(t, board.ID, done.ID))
}

func TestCardMove_SamePositionIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	col := env.seedColumn(t, board.ID, "todo")
	cards := env.seedCards(t, board.ID, col.ID, "A", "B", "C")
	ctx := context.Background()

	moved, err := env.cardSvc.Move(ctx, cards[1].ID, col.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, moved.Position)
	assert.Equal(t, []string{"A", "B", "C"}, env.columnOrder(t, board.ID, col.ID))
}

func TestCardMove_ClampsOutOfRangeTargets(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	col := env.seedColumn(t, board.ID, "todo")
	cards := env.seedCards(t, board.ID, col.ID, "A", "B", "C")
	ctx := context.Background()

	moved, err := env.cardSvc.Move(ctx, cards[0].ID, col.ID, 99)
	require.NoError(t, err)
	assert.Equal(t, 2, moved.Position, "past-the-end target appends")
	assert.Equal(t, []string{"B", "C", "A"}, env.columnOrder(t, board.ID, col.ID))

	moved, err = env.cardSvc.Move(ctx, cards[0].ID, col.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, moved.Position, "negative target inserts at the front")
	assert.Equal(t, []string{"A", "B", "C"}, env.columnOrder(t, board.ID, col.ID))
}

func TestCardMove_RejectsColumnFromOtherBoard(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	other := env.seedBoard(t)
	col := env.seedColumn(t, board.ID, "todo")
	foreign := env.seedColumn(t, other.ID, "done")
	cards := env.seedCards(t, board.ID, col.ID, "A")

	_, err := env.cardSvc.Move(context.Background(), cards[0].ID, foreign.ID, 0)
	require.ErrorIs(t, err, ErrScopeMismatch)
}

func TestCardMove_UnknownCard(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	col := env.seedColumn(t, board.ID, "todo")

	_, err := env.cardSvc.Move(context.Background(), "missing", col.ID, 0)
	require.Error(t, err)
	assert.True(t, isNotFound(err))
}

func TestCardDelete_CompactsScope(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	col := env.seedColumn(t, board.ID, "todo")
	cards := env.seedCards(t, board.ID, col.ID, "A", "B", "C")
	ctx := context.Background()

	require.NoError(t, env.cardSvc.Delete(ctx, cards[0].ID))

	assert.Equal(t, []string{"B", "C"}, env.columnOrder(t, board.ID, col.ID))
}

func TestCardUpdate_NeverTouchesPositionOrScope(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	col := env.seedColumn(t, board.ID, "todo")
	cards := env.seedCards(t, board.ID, col.ID, "A", "B")
	ctx := context.Background()

	edit := *cards[1]
	edit.Title = "B renamed"
	edit.Priority = domain.PriorityHigh
	edit.Position = 0  // ignored
	edit.ColumnID = "" // ignored

	updated, err := env.cardSvc.Update(ctx, &edit)
	require.NoError(t, err)

	assert.Equal(t, "B renamed", updated.Title)
	assert.Equal(t, domain.PriorityHigh, updated.Priority)
	assert.Equal(t, 1, updated.Position)
	assert.Equal(t, col.ID, updated.ColumnID)
}

func TestColumnCreate_DuplicateKeyConflicts(t *testing.T) {
	env := newTestEnv(t)
	board := env.seedBoard(t)
	env.seedColumn(t, board.ID, "todo")

	dup := testutil.NewTestColumn(board.ID, "todo")
	dup.ID = ""
	err := env.columnSvc.Create(context.Background(), dup)
	require.ErrorIs(t, err, ErrConflict)
}
