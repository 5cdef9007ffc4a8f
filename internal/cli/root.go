package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/gantry/internal/service"
)

// App holds references to all service interfaces used by CLI commands, plus
// the acting owner id resolved from configuration.
type App struct {
	Boards    service.BoardService
	Columns   service.ColumnService
	Cards     service.CardService
	Issues    service.IssueService
	Sprints   service.SprintService
	Timelines service.TimelineService

	Owner string
}

// NewRootCmd creates the top-level "gantry" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "gantry",
		Short: "Board, sprint and timeline tracker",
	}

	root.AddCommand(
		newBoardCmd(app),
		newColumnCmd(app),
		newCardCmd(app),
		newIssueCmd(app),
		newSprintCmd(app),
		newTimelineCmd(app),
	)

	return root
}
