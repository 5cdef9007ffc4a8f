package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/domain"
)

func newColumnCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Manage board columns",
	}

	cmd.AddCommand(
		newColumnAddCmd(app),
		newColumnListCmd(app),
		newColumnRemoveCmd(app),
	)

	return cmd
}

func newColumnAddCmd(app *App) *cobra.Command {
	var board, key, title string
	var wip, order int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a column to a board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			if title == "" {
				title = key
			}
			c := &domain.Column{
				BoardID:  boardID,
				Key:      key,
				Title:    title,
				WIPLimit: wip,
				Order:    order,
			}
			if err := app.Columns.Create(ctx, c); err != nil {
				return err
			}
			fmt.Printf("Added column %s (%s)\n", c.Key, shortID(c.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board ID or prefix")
	cmd.Flags().StringVar(&key, "key", "", "Column key, unique within the board")
	cmd.Flags().StringVar(&title, "title", "", "Column title (defaults to key)")
	cmd.Flags().IntVar(&wip, "wip", 0, "WIP limit (0 = none)")
	cmd.Flags().IntVar(&order, "order", 0, "Display order")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func newColumnListCmd(app *App) *cobra.Command {
	var board string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a board's columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			columns, err := app.Columns.ListByBoard(ctx, boardID)
			if err != nil {
				return err
			}
			if len(columns) == 0 {
				fmt.Println(formatter.Dim("No columns yet."))
				return nil
			}
			rows := make([][]string, len(columns))
			for i, c := range columns {
				wip := formatter.Dim("-")
				if c.WIPLimit > 0 {
					wip = strconv.Itoa(c.WIPLimit)
				}
				rows[i] = []string{shortID(c.ID), c.Key, c.Title, wip}
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "KEY", "TITLE", "WIP"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board ID or prefix")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func newColumnRemoveCmd(app *App) *cobra.Command {
	var board string

	cmd := &cobra.Command{
		Use:   "rm <column>",
		Short: "Delete a column and its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			columnID, err := resolveColumnID(ctx, app, boardID, args[0])
			if err != nil {
				return err
			}
			if err := app.Columns.Delete(ctx, columnID); err != nil {
				return err
			}
			fmt.Printf("Deleted column %s\n", shortID(columnID))
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board ID or prefix")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}
