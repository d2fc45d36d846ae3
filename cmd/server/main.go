package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vncsmyrnk/bookclub/internal/adapters/cache/memory"
	"github.com/vncsmyrnk/bookclub/internal/adapters/cache/rediscache"
	"github.com/vncsmyrnk/bookclub/internal/adapters/clock"
	"github.com/vncsmyrnk/bookclub/internal/adapters/handler/http"
	"github.com/vncsmyrnk/bookclub/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/bookclub/internal/config"
	"github.com/vncsmyrnk/bookclub/internal/core/ports"
	"github.com/vncsmyrnk/bookclub/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.Log.Install(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
	}

	systemClock := clock.System{}

	var resultsCache ports.ResultsCache
	if cfg.RedisURL != "" {
		rdb, err := rediscache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		resultsCache = rediscache.NewResultsCache(rdb, cfg.ResultsCacheTTL)
		slog.Info("using redis results cache")
	} else {
		lruCache, err := memory.NewResultsCache(cfg.ResultsCacheSize, cfg.ResultsCacheTTL, systemClock)
		if err != nil {
			return err
		}
		resultsCache = lruCache
	}

	// Repositories
	cycleRepo := postgres.NewCycleRepository(db)
	suggestionRepo := postgres.NewSuggestionRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, systemClock, services.AuthConfig{
		JWTSecret:          cfg.JWTSecret,
		TokenTTL:           cfg.JWTTTL,
		RegistrationSecret: cfg.RegistrationSecret,
	})
	userService := services.NewUserService(userRepo)
	cycleService := services.NewCycleService(cycleRepo, systemClock)
	suggestionService := services.NewSuggestionService(suggestionRepo, cycleRepo, systemClock)
	voteService := services.NewVoteService(voteRepo, cycleRepo, suggestionRepo, resultsCache, systemClock)

	handler := http.NewHandler(http.Handlers{
		Auth:       http.NewAuthHandler(authService, cfg.CookieDomain, cfg.CookieSecure, cfg.JWTTTL),
		User:       http.NewUserHandler(userService),
		Cycle:      http.NewCycleHandler(cycleService),
		Suggestion: http.NewSuggestionHandler(suggestionService),
		Vote:       http.NewVoteHandler(voteService),
		Health:     http.NewHealthHandler(db),
	}, authService, cfg.CORSAllowedOrigins)

	server := &stdhttp.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           otelhttp.NewHandler(handler, "bookclub"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}
	slog.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
