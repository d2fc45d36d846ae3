package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookclub/internal/core/domain"
)

type Clock interface {
	Now() time.Time
}

// ResultsCache holds tallies of completed cycles, which never change.
type ResultsCache interface {
	Get(ctx context.Context, cycleID uuid.UUID) ([]domain.VoteResult, bool)
	Set(ctx context.Context, cycleID uuid.UUID, results []domain.VoteResult)
}
