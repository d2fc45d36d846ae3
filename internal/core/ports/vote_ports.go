package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookclub/internal/core/domain"
)

type VoteRepository interface {
	// ReplaceBallot deletes the voter's rows for the cycle and inserts the
	// entries in one transaction.
	ReplaceBallot(ctx context.Context, userID, cycleID uuid.UUID, entries []domain.BallotEntry) ([]domain.Vote, error)
	ListByUserAndCycle(ctx context.Context, userID, cycleID uuid.UUID) ([]domain.Vote, error)
	Results(ctx context.Context, cycleID uuid.UUID) ([]domain.VoteResult, error)
}

// SubmitBallotInput carries the raw ids from the caller. A nil slice means
// the field was absent; an empty one means it was sent empty.
type SubmitBallotInput struct {
	BookSuggestionIDs []string
	OrderedBookIDs    []string
}

type VoteService interface {
	Submit(ctx context.Context, userID uuid.UUID, input SubmitBallotInput) ([]domain.Vote, error)
	ListOwn(ctx context.Context, userID uuid.UUID, cycleID string) ([]domain.Vote, error)
	Results(ctx context.Context, cycleID string) ([]domain.VoteResult, error)
	Leaderboard(ctx context.Context, cycleID string) ([]domain.LeaderboardEntry, error)
}
