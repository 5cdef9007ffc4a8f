package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/domain"
)

func newBoardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards",
	}

	cmd.AddCommand(
		newBoardCreateCmd(app),
		newBoardListCmd(app),
		newBoardRenameCmd(app),
		newBoardRemoveCmd(app),
	)

	return cmd
}

func newBoardCreateCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new board",
		RunE: func(cmd *cobra.Command, args []string) error {
			b := &domain.Board{
				Name:    name,
				OwnerID: app.Owner,
			}
			if err := app.Boards.Create(context.Background(), b); err != nil {
				return err
			}
			fmt.Printf("Created board %s (%s)\n", b.Name, shortID(b.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Board name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newBoardListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			boards, err := app.Boards.ListByOwner(context.Background(), app.Owner)
			if err != nil {
				return err
			}
			if len(boards) == 0 {
				fmt.Println(formatter.Dim("No boards yet."))
				return nil
			}
			rows := make([][]string, len(boards))
			for i, b := range boards {
				rows[i] = []string{shortID(b.ID), b.Name, b.CreatedAt.Format("2006-01-02")}
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "NAME", "CREATED"}, rows))
			return nil
		},
	}
}

func newBoardRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <board>",
		Short: "Rename a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			b, err := app.Boards.Rename(ctx, boardID, name)
			if err != nil {
				return err
			}
			fmt.Printf("Renamed board %s to %s\n", shortID(b.ID), b.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New board name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newBoardRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <board>",
		Short: "Delete a board and everything on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Boards.Delete(ctx, boardID); err != nil {
				return err
			}
			fmt.Printf("Deleted board %s\n", shortID(boardID))
			return nil
		},
	}
}

// shortID abbreviates a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
