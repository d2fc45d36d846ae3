package ports

import (
	"context"
)

type CycleSyncService interface {
	// SyncAll refreshes the stored status of every non-completed cycle and
	// returns how many rows changed.
	SyncAll(ctx context.Context) (int, error)
}
