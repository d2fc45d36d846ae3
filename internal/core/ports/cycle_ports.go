package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookclub/internal/core/domain"
)

type CycleRepository interface {
	Create(ctx context.Context, cycle *domain.VotingCycle) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.VotingCycle, error)
	// GetActive returns the cycle whose stored status is not completed.
	GetActive(ctx context.Context) (*domain.VotingCycle, error)
	GetLatest(ctx context.Context) (*domain.VotingCycle, error)
	List(ctx context.Context) ([]domain.VotingCycle, error)
	ListActive(ctx context.Context) ([]domain.VotingCycle, error)
	Update(ctx context.Context, cycle *domain.VotingCycle) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CycleStatus) error
}

type CreateCycleInput struct {
	SuggestionDeadline time.Time
	VotingDeadline     time.Time
	VotingMode         domain.VotingMode
}

// UpdateCycleInput applies only the non-nil fields.
type UpdateCycleInput struct {
	SuggestionDeadline *time.Time
	VotingDeadline     *time.Time
	VotingMode         *domain.VotingMode
}

type CycleService interface {
	Create(ctx context.Context, input CreateCycleInput) (*domain.VotingCycle, error)
	Update(ctx context.Context, id string, input UpdateCycleInput) (*domain.VotingCycle, error)
	Complete(ctx context.Context, id string) (*domain.VotingCycle, error)
	GetByID(ctx context.Context, id string) (*domain.VotingCycle, error)
	GetCurrent(ctx context.Context) (*domain.VotingCycle, error)
	List(ctx context.Context) ([]domain.VotingCycle, error)
}
