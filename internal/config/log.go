package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type Log struct {
	Level  string
	Format string
}

func (l Log) validate() error {
	if _, err := l.level(); err != nil {
		return err
	}
	switch strings.ToLower(l.Format) {
	case "", "json", "text":
		return nil
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q, expected json or text", l.Format)
	}
}

func (l Log) level() (slog.Level, error) {
	var level slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", l.Level, err)
	}
	return level, nil
}

// NewLogger builds the process logger. Unknown levels fall back to info.
func (l Log) NewLogger(w io.Writer) *slog.Logger {
	level, err := l.level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(l.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Install sets the logger as the slog default.
func (l Log) Install(w io.Writer) *slog.Logger {
	logger := l.NewLogger(w)
	slog.SetDefault(logger)
	return logger
}
