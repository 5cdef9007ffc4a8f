package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/domain"
)

func newIssueCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Manage backlog and sprint issues",
	}

	cmd.AddCommand(
		newIssueAddCmd(app),
		newIssueListCmd(app),
		newIssueMoveCmd(app),
		newIssueReorderCmd(app),
		newIssueDatesCmd(app),
		newIssueRemoveCmd(app),
	)

	return cmd
}

// issueScope resolves the --sprint flag into a scope pointer: empty means the
// backlog.
func issueScope(ctx context.Context, app *App, boardID, sprint string) (*string, error) {
	if sprint == "" {
		return nil, nil
	}
	sprintID, err := resolveSprintID(ctx, app, boardID, sprint)
	if err != nil {
		return nil, err
	}
	return &sprintID, nil
}

func newIssueAddCmd(app *App) *cobra.Command {
	var board, sprint, title, description, priority, itemType string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an issue to the backlog or a sprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			scope, err := issueScope(ctx, app, boardID, sprint)
			if err != nil {
				return err
			}
			if priority != "" && !domain.ValidPriorities[priority] {
				return fmt.Errorf("invalid priority %q (Low, Medium, High)", priority)
			}
			if itemType != "" && !domain.ValidItemTypes[itemType] {
				return fmt.Errorf("invalid type %q (Bug, Feature, Task)", itemType)
			}
			i := &domain.Issue{
				BoardID:     boardID,
				SprintID:    scope,
				Title:       title,
				Description: description,
				Priority:    domain.Priority(priority),
				Type:        domain.ItemType(itemType),
			}
			if err := app.Issues.Create(ctx, i); err != nil {
				return err
			}
			fmt.Printf("Added issue %s (%s) at position %d\n", i.Title, shortID(i.ID), i.Position)
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board ID or prefix")
	cmd.Flags().StringVar(&sprint, "sprint", "", "Sprint name or ID (omit for backlog)")
	cmd.Flags().StringVar(&title, "title", "", "Issue title")
	cmd.Flags().StringVar(&description, "desc", "", "Issue description")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (Low, Medium, High)")
	cmd.Flags().StringVar(&itemType, "type", "", "Type (Bug, Feature, Task)")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newIssueListCmd(app *App) *cobra.Command {
	var board, sprint string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a scope's issues in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			scope, err := issueScope(ctx, app, boardID, sprint)
			if err != nil {
				return err
			}
			issues, err := app.Issues.ListScope(ctx, boardID, scope)
			if err != nil {
				return err
			}
			if len(issues) == 0 {
				fmt.Println(formatter.Dim("No issues in this scope."))
				return nil
			}
			rows := make([][]string, len(issues))
			for i, is := range issues {
				dates := formatter.Dim("-")
				if is.StartDate != nil && is.EndDate != nil {
					dates = is.StartDate.Format("2006-01-02") + " → " + is.EndDate.Format("2006-01-02")
				}
				rows[i] = []string{
					strconv.Itoa(is.Position),
					shortID(is.ID),
					is.Title,
					formatter.TypeLabel(is.Type),
					formatter.PriorityLabel(is.Priority),
					dates,
				}
			}
			fmt.Print(formatter.RenderTable([]string{"#", "ID", "TITLE", "TYPE", "PRIORITY", "DATES"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board ID or prefix")
	cmd.Flags().StringVar(&sprint, "sprint", "", "Sprint name or ID (omit for backlog)")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func newIssueMoveCmd(app *App) *cobra.Command {
	var board, sprint string
	var toPosition int

	cmd := &cobra.Command{
		Use:   "move <issue-id>",
		Short: "Move an issue to a sprint or back to the backlog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			scope, err := issueScope(ctx, app, boardID, sprint)
			if err != nil {
				return err
			}
			moved, err := app.Issues.MoveToSprint(ctx, args[0], boardID, scope, toPosition)
			if err != nil {
				return err
			}
			where := "backlog"
			if moved.SprintID != nil {
				where = "sprint " + shortID(*moved.SprintID)
			}
			fmt.Printf("Moved issue %s to %s position %d\n", moved.Title, where, moved.Position)
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board ID or prefix")
	cmd.Flags().StringVar(&sprint, "sprint", "", "Destination sprint name or ID (omit for backlog)")
	cmd.Flags().IntVar(&toPosition, "pos", 0, "Destination position (clamped to the scope size)")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func newIssueReorderCmd(app *App) *cobra.Command {
	var board, sprint string
	var toPosition int

	cmd := &cobra.Command{
		Use:   "reorder <issue-id>",
		Short: "Reorder an issue within its scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			scope, err := issueScope(ctx, app, boardID, sprint)
			if err != nil {
				return err
			}
			moved, err := app.Issues.Reorder(ctx, boardID, scope, args[0], toPosition)
			if err != nil {
				return err
			}
			fmt.Printf("Moved issue %s to position %d\n", moved.Title, moved.Position)
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board ID or prefix")
	cmd.Flags().StringVar(&sprint, "sprint", "", "Sprint name or ID (omit for backlog)")
	cmd.Flags().IntVar(&toPosition, "pos", 0, "Target position")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func newIssueDatesCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "dates <issue-id>",
		Short: "Set an issue's timeline dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var startDate, endDate *time.Time
			if start != "" {
				d, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				startDate = &d
			}
			if end != "" {
				d, err := time.Parse("2006-01-02", end)
				if err != nil {
					return fmt.Errorf("invalid end date %q: %w", end, err)
				}
				endDate = &d
			}
			issue, err := app.Issues.SetDates(context.Background(), args[0], startDate, endDate)
			if err != nil {
				return err
			}
			fmt.Printf("Updated dates for issue %s\n", issue.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")

	return cmd
}

func newIssueRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <issue-id>",
		Short: "Delete an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Issues.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted issue %s\n", shortID(args[0]))
			return nil
		},
	}
}
