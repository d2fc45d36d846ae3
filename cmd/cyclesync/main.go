package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/vncsmyrnk/bookclub/internal/adapters/clock"
	"github.com/vncsmyrnk/bookclub/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/bookclub/internal/config"
	"github.com/vncsmyrnk/bookclub/internal/core/services"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		slog.Error("failed to load environment", "error", err)
		os.Exit(1)
	}

	dbCfg, logCfg, err := config.LoadDatabase(flag.CommandLine, os.Args[1:])
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logCfg.Install(os.Stdout)

	// Use a timeout for the job execution to prevent it from hanging indefinitely
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := postgres.Connect(ctx, dbCfg.DSN())
	if err != nil {
		slog.Error("failed to connect", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	syncService := services.NewCycleSyncService(postgres.NewCycleRepository(db), clock.System{})

	slog.Info("starting voting cycle status sync")

	changed, err := syncService.SyncAll(ctx)
	if err != nil {
		slog.Error("voting cycle status sync failed", "error", err)
		os.Exit(1)
	}

	slog.Info("voting cycle status sync completed", "updated", changed)
}
