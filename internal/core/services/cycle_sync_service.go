package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/vncsmyrnk/bookclub/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

const syncConcurrency = 8

type cycleSyncService struct {
	repo  ports.CycleRepository
	clock ports.Clock
}

func NewCycleSyncService(repo ports.CycleRepository, clock ports.Clock) ports.CycleSyncService {
	return &cycleSyncService{
		repo:  repo,
		clock: clock,
	}
}

func (s *cycleSyncService) SyncAll(ctx context.Context) (int, error) {
	cycles, err := s.repo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch active cycles: %w", err)
	}

	now := s.clock.Now()
	var changed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(syncConcurrency)

	for _, cycle := range cycles {
		phase := cycle.Phase(now)
		if phase == cycle.Status {
			continue
		}

		g.Go(func() error {
			if err := s.repo.UpdateStatus(gctx, cycle.ID, phase); err != nil {
				return fmt.Errorf("failed to sync cycle %s: %w", cycle.ID, err)
			}
			slog.InfoContext(gctx, "cycle status synced", "cycle_id", cycle.ID, "from", cycle.Status, "to", phase)
			changed.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(changed.Load()), err
	}
	return int(changed.Load()), nil
}
