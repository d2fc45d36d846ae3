package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookclub/internal/core/domain"
	"github.com/vncsmyrnk/bookclub/internal/core/ports"
)

type voteService struct {
	votes       ports.VoteRepository
	cycles      ports.CycleRepository
	suggestions ports.SuggestionRepository
	cache       ports.ResultsCache
	clock       ports.Clock
}

// NewVoteService builds the tally engine. cache may be nil.
func NewVoteService(votes ports.VoteRepository, cycles ports.CycleRepository, suggestions ports.SuggestionRepository, cache ports.ResultsCache, clock ports.Clock) ports.VoteService {
	return &voteService{
		votes:       votes,
		cycles:      cycles,
		suggestions: suggestions,
		cache:       cache,
		clock:       clock,
	}
}

func (s *voteService) Submit(ctx context.Context, userID uuid.UUID, input ports.SubmitBallotInput) ([]domain.Vote, error) {
	cycle, err := s.cycles.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if err := cycle.AcceptsBallots(s.clock.Now()); err != nil {
		return nil, err
	}

	var ballot domain.Ballot
	switch cycle.VotingMode {
	case domain.VotingModeRanked:
		ballot, err = s.rankedBallot(ctx, userID, cycle.ID, input.OrderedBookIDs)
	default:
		ballot, err = s.approvalBallot(ctx, cycle.ID, input.BookSuggestionIDs)
	}
	if err != nil {
		return nil, err
	}

	votes, err := s.votes.ReplaceBallot(ctx, userID, cycle.ID, ballot.Entries())
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "ballot replaced",
		"cycle_id", cycle.ID,
		"user_id", userID,
		"mode", ballot.Mode(),
		"rows", len(votes),
	)
	return votes, nil
}

// approvalBallot accepts any subset of the cycle's suggestions, including
// none. The voter's own suggestion is not rejected here.
func (s *voteService) approvalBallot(ctx context.Context, cycleID uuid.UUID, rawIDs []string) (domain.Ballot, error) {
	if rawIDs == nil {
		return nil, domain.ErrApprovalIDsRequired
	}
	if len(rawIDs) == 0 {
		return domain.ApprovalBallot{}, nil
	}

	suggestions, err := s.suggestions.ListByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	inCycle := make(map[uuid.UUID]bool, len(suggestions))
	for _, sg := range suggestions {
		inCycle[sg.ID] = true
	}

	approved, err := parseBallotIDs(rawIDs, inCycle)
	if err != nil {
		return nil, err
	}
	return domain.ApprovalBallot{Approved: approved}, nil
}

// rankedBallot requires a full ordering of every suggestion except the
// voter's own.
func (s *voteService) rankedBallot(ctx context.Context, userID, cycleID uuid.UUID, rawIDs []string) (domain.Ballot, error) {
	if rawIDs == nil {
		return nil, domain.ErrRankingIDsRequired
	}

	suggestions, err := s.suggestions.ListByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	own := make(map[uuid.UUID]bool)
	eligible := make(map[uuid.UUID]bool, len(suggestions))
	for _, sg := range suggestions {
		if sg.UserID == userID {
			own[sg.ID] = true
			continue
		}
		eligible[sg.ID] = true
	}

	for _, raw := range rawIDs {
		if id, err := parseCanonicalID(raw); err == nil && own[id] {
			return nil, domain.ErrOwnSuggestionInRanking
		}
	}

	if len(rawIDs) != len(eligible) {
		return nil, domain.RankingLengthError(len(eligible), len(rawIDs))
	}

	ranking, err := parseBallotIDs(rawIDs, eligible)
	if err != nil {
		return nil, err
	}
	return domain.RankedBallot{Ranking: ranking}, nil
}

func (s *voteService) ListOwn(ctx context.Context, userID uuid.UUID, cycleID string) ([]domain.Vote, error) {
	id, err := uuid.Parse(cycleID)
	if err != nil {
		return nil, domain.ErrCycleNotFound
	}
	return s.votes.ListByUserAndCycle(ctx, userID, id)
}

// Results reads the stored status, not the derived phase: tallies are only
// served once a cycle has been frozen as completed.
func (s *voteService) Results(ctx context.Context, cycleID string) ([]domain.VoteResult, error) {
	id, err := parseCanonicalID(cycleID)
	if err != nil {
		return nil, domain.ErrCycleNotFound
	}
	return s.results(ctx, id)
}

func (s *voteService) results(ctx context.Context, id uuid.UUID) ([]domain.VoteResult, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, id); ok {
			return cached, nil
		}
	}

	cycle, err := s.cycles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cycle.Status != domain.CycleCompleted {
		return nil, domain.ErrResultsNotAvailable
	}

	results, err := s.votes.Results(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, id, results)
	}
	return results, nil
}

func (s *voteService) Leaderboard(ctx context.Context, cycleID string) ([]domain.LeaderboardEntry, error) {
	id, err := parseCanonicalID(cycleID)
	if err != nil {
		return nil, domain.ErrCycleNotFound
	}

	results, err := s.results(ctx, id)
	if err != nil {
		return nil, err
	}

	suggestions, err := s.suggestions.ListByCycle(ctx, id)
	if err != nil {
		return nil, err
	}
	return domain.Leaderboard(suggestions, results), nil
}

// parseBallotIDs parses every raw id and requires it to be allowed and not
// repeated. Any failure yields the single combined validation error.
func parseBallotIDs(rawIDs []string, allowed map[uuid.UUID]bool) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(rawIDs))
	seen := make(map[uuid.UUID]bool, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := parseCanonicalID(raw)
		if err != nil || !allowed[id] || seen[id] {
			return nil, domain.ErrInvalidSuggestionIDs
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// parseCanonicalID only accepts the canonical hyphenated form.
func parseCanonicalID(raw string) (uuid.UUID, error) {
	if len(raw) != 36 {
		return uuid.Nil, domain.ErrInvalidSuggestionIDs
	}
	return uuid.Parse(raw)
}
