package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/service"
)

func newSprintCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprint",
		Short: "Manage sprints",
	}

	cmd.AddCommand(
		newSprintCreateCmd(app),
		newSprintListCmd(app),
		newSprintStartCmd(app),
		newSprintCloseCmd(app),
		newSprintReopenCmd(app),
		newSprintAssignCmd(app),
		newSprintRemoveCmd(app),
	)

	return cmd
}

func newSprintCreateCmd(app *App) *cobra.Command {
	var board, name, objective string
	var issues []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a sprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			s := &domain.Sprint{
				BoardID:   boardID,
				OwnerID:   app.Owner,
				Name:      name,
				Objective: objective,
				Issues:    issues,
			}
			if err := app.Sprints.Create(ctx, s); err != nil {
				return err
			}
			fmt.Printf("Created sprint %s (%s)\n", s.Name, shortID(s.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board ID or prefix")
	cmd.Flags().StringVar(&name, "name", "", "Sprint name")
	cmd.Flags().StringVar(&objective, "objective", "", "Sprint objective")
	cmd.Flags().StringSliceVar(&issues, "issue", nil, "Issue IDs to assign (repeatable; order becomes sprint order)")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSprintListCmd(app *App) *cobra.Command {
	var board string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a board's sprints",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			sprints, err := app.Sprints.ListByBoard(ctx, boardID)
			if err != nil {
				return err
			}
			if len(sprints) == 0 {
				fmt.Println(formatter.Dim("No sprints yet."))
				return nil
			}
			rows := make([][]string, len(sprints))
			for i, s := range sprints {
				dates := formatter.Dim("-")
				if s.StartDate != nil {
					end := "?"
					if s.EndDate != nil {
						end = s.EndDate.Format("2006-01-02")
					}
					dates = s.StartDate.Format("2006-01-02") + " → " + end
				}
				rows[i] = []string{
					shortID(s.ID),
					s.Name,
					formatter.SprintStatusIndicator(s.Status),
					strconv.Itoa(len(s.Issues)),
					dates,
				}
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "NAME", "STATUS", "ISSUES", "DATES"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board ID or prefix")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func sprintTransition(app *App, use, short string, run func(ctx context.Context, id string) (*domain.Sprint, error)) *cobra.Command {
	var board string

	cmd := &cobra.Command{
		Use:   use + " <sprint>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			sprintID, err := resolveSprintID(ctx, app, boardID, args[0])
			if err != nil {
				return err
			}
			s, err := run(ctx, sprintID)
			if err != nil {
				return err
			}
			fmt.Printf("Sprint %s is now %s\n", s.Name, s.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board ID or prefix")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func newSprintStartCmd(app *App) *cobra.Command {
	return sprintTransition(app, "start", "Start a planned sprint", func(ctx context.Context, id string) (*domain.Sprint, error) {
		return app.Sprints.Start(ctx, id)
	})
}

func newSprintCloseCmd(app *App) *cobra.Command {
	var board, end string

	cmd := &cobra.Command{
		Use:   "close <sprint>",
		Short: "Close an active sprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			sprintID, err := resolveSprintID(ctx, app, boardID, args[0])
			if err != nil {
				return err
			}
			var endDate *time.Time
			if end != "" {
				d, err := time.Parse("2006-01-02", end)
				if err != nil {
					return fmt.Errorf("invalid end date %q: %w", end, err)
				}
				endDate = &d
			}
			s, err := app.Sprints.Close(ctx, sprintID, endDate)
			if err != nil {
				return err
			}
			fmt.Printf("Sprint %s is now %s\n", s.Name, s.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board ID or prefix")
	cmd.Flags().StringVar(&end, "end", "", "End date override (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func newSprintReopenCmd(app *App) *cobra.Command {
	return sprintTransition(app, "reopen", "Reopen a completed sprint", func(ctx context.Context, id string) (*domain.Sprint, error) {
		return app.Sprints.Reopen(ctx, id)
	})
}

func newSprintAssignCmd(app *App) *cobra.Command {
	var board string
	var issues []string

	cmd := &cobra.Command{
		Use:   "assign <sprint>",
		Short: "Replace a sprint's issue list (the list is authoritative)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			sprintID, err := resolveSprintID(ctx, app, boardID, args[0])
			if err != nil {
				return err
			}
			s, err := app.Sprints.Update(ctx, sprintID, service.UpdateSprintInput{Issues: &issues})
			if err != nil {
				return err
			}
			fmt.Printf("Sprint %s now holds %d issues\n", s.Name, len(s.Issues))
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board ID or prefix")
	cmd.Flags().StringSliceVar(&issues, "issue", nil, "Issue IDs (repeatable; order becomes sprint order; empty clears)")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func newSprintRemoveCmd(app *App) *cobra.Command {
	var board string

	cmd := &cobra.Command{
		Use:   "rm <sprint>",
		Short: "Delete a sprint, returning its issues to the backlog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			sprintID, err := resolveSprintID(ctx, app, boardID, args[0])
			if err != nil {
				return err
			}
			if err := app.Sprints.Delete(ctx, sprintID); err != nil {
				return err
			}
			fmt.Printf("Deleted sprint %s\n", shortID(sprintID))
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board ID or prefix")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}
