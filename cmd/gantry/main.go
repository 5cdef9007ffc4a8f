package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"

	"github.com/alexanderramin/gantry/internal/cli"
	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/repository"
	"github.com/alexanderramin/gantry/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	v := viper.New()
	v.SetEnvPrefix("gantry")
	v.AutomaticEnv()

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}
	v.SetDefault("db", filepath.Join(home, ".gantry", "gantry.db"))
	v.SetDefault("owner", "local")

	// Optional config file at ~/.gantry/config.yaml; env vars win.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(home, ".gantry"))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	// lipgloss honors NO_COLOR; piped output stays plain.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		os.Setenv("NO_COLOR", "1")
	}

	database, err := db.OpenDB(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	boardRepo := repository.NewSQLiteBoardRepo(database)
	columnRepo := repository.NewSQLiteColumnRepo(database)
	cardRepo := repository.NewSQLiteCardRepo(database)
	issueRepo := repository.NewSQLiteIssueRepo(database)
	sprintRepo := repository.NewSQLiteSprintRepo(database)
	timelineRepo := repository.NewSQLiteTimelineRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Boards:    service.NewBoardService(boardRepo, uow),
		Columns:   service.NewColumnService(columnRepo, boardRepo, uow),
		Cards:     service.NewCardService(cardRepo, columnRepo, uow),
		Issues:    service.NewIssueService(issueRepo, sprintRepo, uow),
		Sprints:   service.NewSprintService(sprintRepo, issueRepo, boardRepo, uow),
		Timelines: service.NewTimelineService(timelineRepo, sprintRepo, issueRepo, boardRepo, uow),
		Owner:     v.GetString("owner"),
	}

	return cli.NewRootCmd(app).Execute()
}
