package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/vncsmyrnk/bookclub/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/bookclub/internal/config"
)

const usage = `usage: migrations [db flags] <command> [args]

commands:
  up                 apply all pending migrations
  up-by-one          apply the next pending migration
  down               roll back the latest migration
  status             print the status of every migration
  version            print the current schema version
  create <name>      write a new sql migration file
`

func main() {
	if err := run(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}

	var dir string
	var db config.Database
	var logCfg config.Log
	config.BindDatabaseFlags(flag.CommandLine, &db)
	config.BindLogFlags(flag.CommandLine, &logCfg)
	flag.StringVar(&dir, "dir", filepath.Join("internal", "adapters", "repository", "postgres", "migrations"), "Migrations directory, used by create")
	flag.Parse()
	logCfg.Install(os.Stderr)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("a command is required")
	}
	command, rest := args[0], args[1:]

	if command == "create" {
		if len(rest) == 0 {
			return fmt.Errorf("a migration name is required")
		}
		goose.SetSequential(true)
		return goose.Create(nil, dir, rest[0], "sql")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	conn, err := postgres.Connect(ctx, db.DSN())
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := postgres.RunMigrationCommand(ctx, conn, command, rest...); err != nil {
		return err
	}

	slog.Info("migration command finished", "command", command)
	return nil
}
