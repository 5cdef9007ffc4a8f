package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/service"
)

func newTimelineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Manage timeline snapshots",
	}

	cmd.AddCommand(
		newTimelineSnapshotCmd(app),
		newTimelineListCmd(app),
		newTimelineShowCmd(app),
		newTimelineRefreshCmd(app),
		newTimelineRemoveCmd(app),
	)

	return cmd
}

func newTimelineSnapshotCmd(app *App) *cobra.Command {
	var board, name string
	var sprints, issues []string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Compute a new timeline snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			in := service.ComputeTimelineInput{
				BoardID: boardID,
				OwnerID: app.Owner,
				Name:    name,
			}
			// Distinguish "flag absent" (everything) from an explicit,
			// possibly empty, selection.
			if cmd.Flags().Changed("sprints") {
				in.SelectedSprints = &sprints
			}
			if cmd.Flags().Changed("issues") {
				in.SelectedIssues = &issues
			}
			t, err := app.Timelines.Compute(ctx, in)
			if err != nil {
				return err
			}
			fmt.Printf("Snapshot %s (%s) v%d: %d sprints, %d backlog issues\n",
				t.Name, shortID(t.ID), t.Version, len(t.Data.Sprints), len(t.Data.Backlog))
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board ID or prefix")
	cmd.Flags().StringVar(&name, "name", "", "Snapshot name")
	cmd.Flags().StringSliceVar(&sprints, "sprints", nil, "Sprint IDs to include (explicit selection)")
	cmd.Flags().StringSliceVar(&issues, "issues", nil, "Issue IDs to include (explicit selection)")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func newTimelineListCmd(app *App) *cobra.Command {
	var board string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a board's snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			timelines, err := app.Timelines.ListByBoard(ctx, boardID, app.Owner)
			if err != nil {
				return err
			}
			if len(timelines) == 0 {
				fmt.Println(formatter.Dim("No snapshots yet."))
				return nil
			}
			rows := make([][]string, len(timelines))
			for i, t := range timelines {
				published := formatter.StyleGreen.Render("yes")
				if !t.IsPublished {
					published = formatter.Dim("no")
				}
				rows[i] = []string{
					shortID(t.ID),
					t.Name,
					"v" + strconv.Itoa(t.Version),
					t.SnapshotDate.Format("2006-01-02 15:04"),
					published,
				}
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "NAME", "VERSION", "SNAPSHOT", "PUBLISHED"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board ID or prefix")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func newTimelineShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <timeline-id>",
		Short: "Show a snapshot's sprints and backlog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Timelines.GetByID(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(formatter.Header(fmt.Sprintf("%s v%d", t.Name, t.Version)))
			for _, st := range t.Data.Sprints {
				fmt.Printf("%s %s (%d issues)\n",
					formatter.SprintStatusIndicator(st.Sprint.Status),
					formatter.Bold(st.Sprint.Name),
					len(st.Issues))
				for _, is := range st.Issues {
					fmt.Printf("  %d. %s\n", is.Position, is.Title)
				}
			}
			fmt.Println(formatter.Bold("Backlog"))
			for _, is := range t.Data.Backlog {
				fmt.Printf("  %d. %s\n", is.Position, is.Title)
			}
			return nil
		},
	}
}

func newTimelineRefreshCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh <timeline-id>",
		Short: "Recompute a snapshot from current state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Timelines.Refresh(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Refreshed snapshot %s to v%d\n", t.Name, t.Version)
			return nil
		},
	}
}

func newTimelineRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <timeline-id>",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Timelines.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted snapshot %s\n", shortID(args[0]))
			return nil
		},
	}
}
