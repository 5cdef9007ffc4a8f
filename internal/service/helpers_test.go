package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
	"github.com/alexanderramin/gantry/internal/testutil"
)

// testEnv wires every repository and service against one in-memory database.
type testEnv struct {
	db        *sql.DB
	boards    repository.BoardRepo
	columns   repository.ColumnRepo
	cards     repository.CardRepo
	issues    repository.IssueRepo
	sprints   repository.SprintRepo
	timelines repository.TimelineRepo

	boardSvc    BoardService
	columnSvc   ColumnService
	cardSvc     CardService
	issueSvc    IssueService
	sprintSvc   SprintService
	timelineSvc TimelineService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	env := &testEnv{
		db:        database,
		boards:    repository.NewSQLiteBoardRepo(database),
		columns:   repository.NewSQLiteColumnRepo(database),
		cards:     repository.NewSQLiteCardRepo(database),
		issues:    repository.NewSQLiteIssueRepo(database),
		sprints:   repository.NewSQLiteSprintRepo(database),
		timelines: repository.NewSQLiteTimelineRepo(database),
	}
	env.boardSvc = NewBoardService(env.boards, uow)
	env.columnSvc = NewColumnService(env.columns, env.boards, uow)
	env.cardSvc = NewCardService(env.cards, env.columns, uow)
	env.issueSvc = NewIssueService(env.issues, env.sprints, uow)
	env.sprintSvc = NewSprintService(env.sprints, env.issues, env.boards, uow)
	env.timelineSvc = NewTimelineService(env.timelines, env.sprints, env.issues, env.boards, uow)
	return env
}

func (e *testEnv) seedBoard(t *testing.T) *domain.Board {
	t.Helper()
	board := testutil.NewTestBoard("Tracker")
	require.NoError(t, e.boards.Create(context.Background(), board))
	return board
}

func (e *testEnv) seedColumn(t *testing.T, boardID, key string) *domain.Column {
	t.Helper()
	col := testutil.NewTestColumn(boardID, key)
	require.NoError(t, e.columns.Create(context.Background(), col))
	return col
}

// seedCards creates cards titled by the given names at positions 0..n-1.
func (e *testEnv) seedCards(t *testing.T, boardID, columnID string, titles ...string) []*domain.Card {
	t.Helper()
	out := make([]*domain.Card, len(titles))
	for i, title := range titles {
		c := testutil.NewTestCard(boardID, columnID, title, testutil.WithCardPosition(i))
		require.NoError(t, e.cards.Create(context.Background(), c))
		out[i] = c
	}
	return out
}

// seedBacklog creates backlog issues at positions 0..n-1.
func (e *testEnv) seedBacklog(t *testing.T, boardID string, titles ...string) []*domain.Issue {
	t.Helper()
	out := make([]*domain.Issue, len(titles))
	for i, title := range titles {
		is := testutil.NewTestIssue(boardID, title, testutil.WithIssuePosition(i))
		require.NoError(t, e.issues.Create(context.Background(), is))
		out[i] = is
	}
	return out
}

// columnOrder returns the card titles of a column in scope order, asserting
// the gap-free ordering invariant along the way.
func (e *testEnv) columnOrder(t *testing.T, boardID, columnID string) []string {
	t.Helper()
	cards, err := e.cards.ListScope(context.Background(), boardID, columnID)
	require.NoError(t, err)
	titles := make([]string, len(cards))
	for i, c := range cards {
		assert.Equal(t, i, c.Position, "positions must be 0..n-1 with no gaps")
		titles[i] = c.Title
	}
	return titles
}

// scopeOrder returns issue titles in scope order, asserting gap-free
// positions.
func (e *testEnv) scopeOrder(t *testing.T, boardID string, sprintID *string) []string {
	t.Helper()
	issues, err := e.issues.ListScope(context.Background(), boardID, sprintID)
	require.NoError(t, err)
	titles := make([]string, len(issues))
	for i, is := range issues {
		assert.Equal(t, i, is.Position, "positions must be 0..n-1 with no gaps")
		titles[i] = is.Title
	}
	return titles
}

// assertLinkAgreement checks that every issue/sprint link agrees in both
// directions and that no issue id appears in two sprint lists.
func (e *testEnv) assertLinkAgreement(t *testing.T, boardID string) {
	t.Helper()
	ctx := context.Background()

	sprints, err := e.sprints.ListByBoard(ctx, boardID)
	require.NoError(t, err)
	issues, err := e.issues.ListByBoard(ctx, boardID)
	require.NoError(t, err)

	holder := make(map[string]string)
	for _, s := range sprints {
		for _, id := range s.Issues {
			prev, dup := holder[id]
			assert.False(t, dup, "issue %s appears in sprints %s and %s", id, prev, s.ID)
			holder[id] = s.ID
		}
	}
	for _, is := range issues {
		assert.Equal(t, is.SprintIDOrEmpty(), holder[is.ID],
			"issue %s sprint pointer disagrees with sprint lists", is.ID)
	}
}
