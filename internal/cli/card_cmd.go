package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/domain"
)

func newCardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage cards",
	}

	cmd.AddCommand(
		newCardAddCmd(app),
		newCardListCmd(app),
		newCardMoveCmd(app),
		newCardRemoveCmd(app),
	)

	return cmd
}

func newCardAddCmd(app *App) *cobra.Command {
	var board, column, title, description, priority, itemType string
	var labels []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a card to a column",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			columnID, err := resolveColumnID(ctx, app, boardID, column)
			if err != nil {
				return err
			}
			if priority != "" && !domain.ValidPriorities[priority] {
				return fmt.Errorf("invalid priority %q (Low, Medium, High)", priority)
			}
			if itemType != "" && !domain.ValidItemTypes[itemType] {
				return fmt.Errorf("invalid type %q (Bug, Feature, Task)", itemType)
			}
			c := &domain.Card{
				BoardID:     boardID,
				ColumnID:    columnID,
				Title:       title,
				Description: description,
				Priority:    domain.Priority(priority),
				Type:        domain.ItemType(itemType),
				Labels:      labels,
			}
			if err := app.Cards.Create(ctx, c); err != nil {
				return err
			}
			fmt.Printf("Added card %s (%s) at position %d\n", c.Title, shortID(c.ID), c.Position)
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board ID or prefix")
	cmd.Flags().StringVar(&column, "column", "", "Column key or ID")
	cmd.Flags().StringVar(&title, "title", "", "Card title")
	cmd.Flags().StringVar(&description, "desc", "", "Card description")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (Low, Medium, High)")
	cmd.Flags().StringVar(&itemType, "type", "", "Type (Bug, Feature, Task)")
	cmd.Flags().StringSliceVar(&labels, "label", nil, "Labels (repeatable)")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("column")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newCardListCmd(app *App) *cobra.Command {
	var board, column string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a column's cards in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			columnID, err := resolveColumnID(ctx, app, boardID, column)
			if err != nil {
				return err
			}
			cards, err := app.Cards.ListColumn(ctx, boardID, columnID)
			if err != nil {
				return err
			}
			if len(cards) == 0 {
				fmt.Println(formatter.Dim("No cards in this column."))
				return nil
			}
			rows := make([][]string, len(cards))
			for i, c := range cards {
				rows[i] = []string{
					strconv.Itoa(c.Position),
					shortID(c.ID),
					c.Title,
					formatter.TypeLabel(c.Type),
					formatter.PriorityLabel(c.Priority),
					formatter.Dim(strings.Join(c.Labels, ",")),
				}
			}
			fmt.Print(formatter.RenderTable([]string{"#", "ID", "TITLE", "TYPE", "PRIORITY", "LABELS"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board ID or prefix")
	cmd.Flags().StringVar(&column, "column", "", "Column key or ID")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

func newCardMoveCmd(app *App) *cobra.Command {
	var board, toColumn string
	var toPosition int

	cmd := &cobra.Command{
		Use:   "move <card>",
		Short: "Move a card to a column position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			columnID, err := resolveColumnID(ctx, app, boardID, toColumn)
			if err != nil {
				return err
			}
			moved, err := app.Cards.Move(ctx, args[0], columnID, toPosition)
			if err != nil {
				return err
			}
			fmt.Printf("Moved card %s to position %d\n", moved.Title, moved.Position)
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board ID or prefix")
	cmd.Flags().StringVar(&toColumn, "to", "", "Destination column key or ID")
	cmd.Flags().IntVar(&toPosition, "pos", 0, "Destination position (clamped to the column size)")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newCardRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <card-id>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Cards.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted card %s\n", shortID(args[0]))
			return nil
		},
	}
}
