package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/vncsmyrnk/bookclub/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/bookclub/internal/config"
	"github.com/vncsmyrnk/bookclub/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		slog.Error("failed to promote user", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: makeadmin [db flags] <email>")
		flag.PrintDefaults()
	}
	dbCfg, logCfg, err := config.LoadDatabase(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}
	logCfg.Install(os.Stderr)

	if flag.NArg() != 1 {
		flag.Usage()
		return fmt.Errorf("exactly one email is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := postgres.Connect(ctx, dbCfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := services.NewUserService(postgres.NewUserRepository(db)).PromoteToAdmin(ctx, flag.Arg(0))
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s) is now an admin\n", user.Username, user.Email)
	return nil
}
