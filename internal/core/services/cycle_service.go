package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookclub/internal/core/domain"
	"github.com/vncsmyrnk/bookclub/internal/core/ports"
)

type cycleService struct {
	repo  ports.CycleRepository
	clock ports.Clock
}

func NewCycleService(repo ports.CycleRepository, clock ports.Clock) ports.CycleService {
	return &cycleService{
		repo:  repo,
		clock: clock,
	}
}

func (s *cycleService) Create(ctx context.Context, input ports.CreateCycleInput) (*domain.VotingCycle, error) {
	if input.SuggestionDeadline.IsZero() || input.VotingDeadline.IsZero() || input.VotingMode == "" {
		return nil, domain.ErrDeadlinesRequired
	}
	if !input.VotingMode.Valid() {
		return nil, domain.ErrInvalidVotingMode
	}

	now := s.clock.Now()

	active, err := s.repo.GetActive(ctx)
	switch {
	case err == nil:
		if active.Phase(now) != domain.CycleCompleted {
			return nil, domain.ErrActiveCycleExists
		}
		// deadlines ran out without anyone touching the row
		if err := s.repo.UpdateStatus(ctx, active.ID, domain.CycleCompleted); err != nil {
			return nil, err
		}
	case !errors.Is(err, domain.ErrNoActiveCycle):
		return nil, err
	}

	if !input.SuggestionDeadline.After(now) {
		return nil, domain.ErrSuggestionInPast
	}
	if !input.VotingDeadline.After(input.SuggestionDeadline) {
		return nil, domain.ErrDeadlineOrder
	}

	cycle := &domain.VotingCycle{
		SuggestionDeadline: input.SuggestionDeadline,
		VotingDeadline:     input.VotingDeadline,
		Status:             domain.CycleSuggesting,
		VotingMode:         input.VotingMode,
	}
	if err := s.repo.Create(ctx, cycle); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "voting cycle created",
		"cycle_id", cycle.ID,
		"voting_mode", cycle.VotingMode,
		"suggestion_deadline", cycle.SuggestionDeadline,
		"voting_deadline", cycle.VotingDeadline,
	)
	return cycle, nil
}

// Update allows a suggestion deadline in the past so admins can close the
// suggesting window early.
func (s *cycleService) Update(ctx context.Context, id string, input ports.UpdateCycleInput) (*domain.VotingCycle, error) {
	cycle, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if cycle.Phase(now) == domain.CycleCompleted {
		return nil, domain.ErrCycleCompleted
	}

	if input.SuggestionDeadline != nil {
		cycle.SuggestionDeadline = *input.SuggestionDeadline
	}
	if input.VotingDeadline != nil {
		cycle.VotingDeadline = *input.VotingDeadline
	}
	if input.VotingMode != nil {
		if !input.VotingMode.Valid() {
			return nil, domain.ErrInvalidVotingMode
		}
		cycle.VotingMode = *input.VotingMode
	}

	if !cycle.VotingDeadline.After(cycle.SuggestionDeadline) {
		return nil, domain.ErrDeadlineOrder
	}

	cycle.Status = cycle.Phase(now)
	if err := s.repo.Update(ctx, cycle); err != nil {
		return nil, err
	}
	return cycle, nil
}

func (s *cycleService) Complete(ctx context.Context, id string) (*domain.VotingCycle, error) {
	cycle, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if cycle.Status == domain.CycleCompleted {
		return nil, domain.ErrCycleAlreadyClosed
	}

	if err := s.repo.UpdateStatus(ctx, cycle.ID, domain.CycleCompleted); err != nil {
		return nil, err
	}
	cycle.Status = domain.CycleCompleted
	cycle.UpdatedAt = s.clock.Now()

	slog.InfoContext(ctx, "voting cycle completed manually", "cycle_id", cycle.ID)
	return cycle, nil
}

func (s *cycleService) GetByID(ctx context.Context, id string) (*domain.VotingCycle, error) {
	cycle, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	refreshStatus(ctx, s.repo, cycle, s.clock.Now())
	return cycle, nil
}

func (s *cycleService) GetCurrent(ctx context.Context) (*domain.VotingCycle, error) {
	cycle, err := s.repo.GetLatest(ctx)
	if err != nil {
		return nil, err
	}
	refreshStatus(ctx, s.repo, cycle, s.clock.Now())
	return cycle, nil
}

func (s *cycleService) List(ctx context.Context) ([]domain.VotingCycle, error) {
	cycles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	for i := range cycles {
		cycles[i].Status = cycles[i].Phase(now)
	}
	return cycles, nil
}

func (s *cycleService) load(ctx context.Context, id string) (*domain.VotingCycle, error) {
	cycleID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrCycleNotFound
	}
	return s.repo.GetByID(ctx, cycleID)
}

// refreshStatus stores the derived phase when it drifted from the persisted
// one. The stored column is only a cache, so a failed write is logged and
// otherwise ignored.
func refreshStatus(ctx context.Context, repo ports.CycleRepository, cycle *domain.VotingCycle, now time.Time) {
	phase := cycle.Phase(now)
	if phase == cycle.Status {
		return
	}

	if err := repo.UpdateStatus(ctx, cycle.ID, phase); err != nil {
		slog.WarnContext(ctx, "failed to refresh cycle status",
			"cycle_id", cycle.ID,
			"from", cycle.Status,
			"to", phase,
			"error", err,
		)
	} else {
		cycle.UpdatedAt = now
	}
	cycle.Status = phase
}
