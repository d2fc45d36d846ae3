package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/vncsmyrnk/bookclub/internal/core/domain"
)

const resultsPrefix = "bookclub:results:"

// NewClient parses a redis:// URL and pings the server.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

// ResultsCache shares completed cycle tallies between server replicas.
// Redis failures degrade to cache misses.
type ResultsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewResultsCache(rdb *redis.Client, ttl time.Duration) *ResultsCache {
	return &ResultsCache{rdb: rdb, ttl: ttl}
}

func (c *ResultsCache) Get(ctx context.Context, cycleID uuid.UUID) ([]domain.VoteResult, bool) {
	raw, err := c.rdb.Get(ctx, resultsPrefix+cycleID.String()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "results cache read failed", "cycle_id", cycleID, "error", err)
		}
		return nil, false
	}

	var results []domain.VoteResult
	if err := json.Unmarshal(raw, &results); err != nil {
		slog.WarnContext(ctx, "results cache entry is corrupt", "cycle_id", cycleID, "error", err)
		return nil, false
	}
	return results, true
}

func (c *ResultsCache) Set(ctx context.Context, cycleID uuid.UUID, results []domain.VoteResult) {
	raw, err := json.Marshal(results)
	if err != nil {
		slog.WarnContext(ctx, "failed to encode results for cache", "cycle_id", cycleID, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, resultsPrefix+cycleID.String(), raw, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "results cache write failed", "cycle_id", cycleID, "error", err)
	}
}
