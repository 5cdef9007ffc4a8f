package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/testutil"
)

func seedBoardAndColumn(t *testing.T, db *SQLiteBoardRepo, columns *SQLiteColumnRepo) (*domain.Board, *domain.Column) {
	t.Helper()
	ctx := context.Background()
	board := testutil.NewTestBoard("Tracker")
	require.NoError(t, db.Create(ctx, board))
	col := testutil.NewTestColumn(board.ID, "todo")
	require.NoError(t, columns.Create(ctx, col))
	return board, col
}

func TestCardRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	boards := NewSQLiteBoardRepo(db)
	columns := NewSQLiteColumnRepo(db)
	cards := NewSQLiteCardRepo(db)
	ctx := context.Background()

	board, col := seedBoardAndColumn(t, boards, columns)

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	card := testutil.NewTestCard(board.ID, col.ID, "Fix login",
		testutil.WithCardPriority(domain.PriorityHigh),
		testutil.WithCardType(domain.TypeBug),
		testutil.WithLabels("auth", "urgent"),
		testutil.WithDueDate(due),
	)
	require.NoError(t, cards.Create(ctx, card))

	fetched, err := cards.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fix login", fetched.Title)
	assert.Equal(t, domain.PriorityHigh, fetched.Priority)
	assert.Equal(t, domain.TypeBug, fetched.Type)
	assert.Equal(t, []string{"auth", "urgent"}, fetched.Labels)
	require.NotNil(t, fetched.DueDate)
	assert.Equal(t, "2026-09-15", fetched.DueDate.Format("2006-01-02"))
}

func TestCardRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	cards := NewSQLiteCardRepo(db)

	_, err := cards.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCardRepo_ListScope_OrderedByPosition(t *testing.T) {
	db := testutil.NewTestDB(t)
	boards := NewSQLiteBoardRepo(db)
	columns := NewSQLiteColumnRepo(db)
	cards := NewSQLiteCardRepo(db)
	ctx := context.Background()

	board, col := seedBoardAndColumn(t, boards, columns)

	for i, title := range []string{"C", "A", "B"} {
		pos := []int{2, 0, 1}[i]
		require.NoError(t, cards.Create(ctx, testutil.NewTestCard(board.ID, col.ID, title, testutil.WithCardPosition(pos))))
	}

	scope, err := cards.ListScope(ctx, board.ID, col.ID)
	require.NoError(t, err)
	require.Len(t, scope, 3)
	assert.Equal(t, "A", scope[0].Title)
	assert.Equal(t, "B", scope[1].Title)
	assert.Equal(t, "C", scope[2].Title)
}

func TestCardRepo_UpdatePlacement(t *testing.T) {
	db := testutil.NewTestDB(t)
	boards := NewSQLiteBoardRepo(db)
	columns := NewSQLiteColumnRepo(db)
	cards := NewSQLiteCardRepo(db)
	ctx := context.Background()

	board, col := seedBoardAndColumn(t, boards, columns)
	done := testutil.NewTestColumn(board.ID, "done")
	require.NoError(t, columns.Create(ctx, done))

	card := testutil.NewTestCard(board.ID, col.ID, "Ship it")
	require.NoError(t, cards.Create(ctx, card))

	require.NoError(t, cards.UpdatePlacement(ctx, card.ID, done.ID, 3))

	fetched, err := cards.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, done.ID, fetched.ColumnID)
	assert.Equal(t, 3, fetched.Position)
}

func TestCardRepo_DeleteCascadesWithColumn(t *testing.T) {
	db := testutil.NewTestDB(t)
	boards := NewSQLiteBoardRepo(db)
	columns := NewSQLiteColumnRepo(db)
	cards := NewSQLiteCardRepo(db)
	ctx := context.Background()

	board, col := seedBoardAndColumn(t, boards, columns)
	card := testutil.NewTestCard(board.ID, col.ID, "Orphan")
	require.NoError(t, cards.Create(ctx, card))

	require.NoError(t, columns.Delete(ctx, col.ID))

	_, err := cards.GetByID(ctx, card.ID)
	require.ErrorIs(t, err, ErrNotFound, "cards should be deleted with their column")
}
