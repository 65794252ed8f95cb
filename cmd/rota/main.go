package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/rota/internal/cli"
	"github.com/alexanderramin/rota/internal/config"
	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/repository"
	"github.com/alexanderramin/rota/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Variables already in the environment win over .env.
	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	cfg := config.LoadConfig()

	// Open the snapshot archive
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	snapshotRepo := repository.NewSQLiteSnapshotRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	workspace := service.NewWorkspaceService(service.WorkspaceOptions{
		Policy: service.Policy{
			DefaultCode: cfg.DefaultCode,
			StrictCodes: cfg.StrictCodes,
			StrictRange: cfg.StrictRange,
		},
		Title:       cfg.Title,
		WindowDays:  cfg.WindowDays,
		ArchiveKeep: cfg.ArchiveKeep,
	}, snapshotRepo, uow, observers...)

	app := &cli.App{
		Config:    cfg,
		Workspace: workspace,
	}

	// Prompts and the editor need a terminal on both ends.
	app.IsInteractive = func() bool {
		in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		return in && out
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
