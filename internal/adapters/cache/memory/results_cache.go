package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vncsmyrnk/bookclub/internal/core/domain"
	"github.com/vncsmyrnk/bookclub/internal/core/ports"
)

// CacheItem wraps cached results with their expiry.
type CacheItem struct {
	Data      []domain.VoteResult
	ExpiresAt time.Time
}

// ResultsCache is an in-process LRU of completed cycle tallies.
type ResultsCache struct {
	lruCache *lru.Cache[uuid.UUID, CacheItem]
	ttl      time.Duration
	clock    ports.Clock
}

func NewResultsCache(size int, ttl time.Duration, clock ports.Clock) (*ResultsCache, error) {
	l, err := lru.New[uuid.UUID, CacheItem](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}
	return &ResultsCache{
		lruCache: l,
		ttl:      ttl,
		clock:    clock,
	}, nil
}

// Get returns the cached results, dropping the entry once it has expired.
func (c *ResultsCache) Get(ctx context.Context, cycleID uuid.UUID) ([]domain.VoteResult, bool) {
	item, ok := c.lruCache.Get(cycleID)
	if !ok {
		return nil, false
	}

	if c.clock.Now().After(item.ExpiresAt) {
		c.lruCache.Remove(cycleID)
		return nil, false
	}

	return item.Data, true
}

func (c *ResultsCache) Set(ctx context.Context, cycleID uuid.UUID, results []domain.VoteResult) {
	c.lruCache.Add(cycleID, CacheItem{
		Data:      results,
		ExpiresAt: c.clock.Now().Add(c.ttl),
	})
}
