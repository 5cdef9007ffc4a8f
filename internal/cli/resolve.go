package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveID matches input against a set of ids: exact match first, then
// unique prefix. Ambiguous prefixes are rejected rather than guessed.
func resolveID(kind, input string, ids []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}
	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveBoardID(ctx context.Context, app *App, input string) (string, error) {
	boards, err := app.Boards.ListByOwner(ctx, app.Owner)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(boards))
	for i, b := range boards {
		ids[i] = b.ID
	}
	return resolveID("board", input, ids)
}

// resolveColumnID accepts a column key or an id (or id prefix) within a board.
func resolveColumnID(ctx context.Context, app *App, boardID, input string) (string, error) {
	columns, err := app.Columns.ListByBoard(ctx, boardID)
	if err != nil {
		return "", err
	}
	for _, c := range columns {
		if strings.EqualFold(c.Key, input) {
			return c.ID, nil
		}
	}
	ids := make([]string, len(columns))
	for i, c := range columns {
		ids[i] = c.ID
	}
	return resolveID("column", input, ids)
}

func resolveSprintID(ctx context.Context, app *App, boardID, input string) (string, error) {
	sprints, err := app.Sprints.ListByBoard(ctx, boardID)
	if err != nil {
		return "", err
	}
	for _, s := range sprints {
		if strings.EqualFold(s.Name, input) {
			return s.ID, nil
		}
	}
	ids := make([]string, len(sprints))
	for i, s := range sprints {
		ids[i] = s.ID
	}
	return resolveID("sprint", input, ids)
}
