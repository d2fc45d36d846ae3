package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type Vote struct {
	ID               uuid.UUID `db:"id" json:"id"`
	UserID           uuid.UUID `db:"user_id" json:"userId"`
	VotingCycleID    uuid.UUID `db:"voting_cycle_id" json:"votingCycleId"`
	BookSuggestionID uuid.UUID `db:"book_suggestion_id" json:"bookSuggestionId"`
	Points           int       `db:"points" json:"points"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// VoteResult is one row of the raw tally. VoteCount is the summed points.
type VoteResult struct {
	BookSuggestionID uuid.UUID `db:"book_suggestion_id" json:"bookSuggestionId"`
	Title            string    `db:"title" json:"title"`
	Author           string    `db:"author" json:"author"`
	VoteCount        int       `db:"vote_count" json:"voteCount"`
}

type BallotEntry struct {
	SuggestionID uuid.UUID
	Points       int
}

// Ballot is a voter's complete choice for one cycle. The concrete types are
// ApprovalBallot and RankedBallot.
type Ballot interface {
	Mode() VotingMode
	Entries() []BallotEntry
}

type ApprovalBallot struct {
	Approved []uuid.UUID
}

func (b ApprovalBallot) Mode() VotingMode { return VotingModeApproval }

func (b ApprovalBallot) Entries() []BallotEntry {
	entries := make([]BallotEntry, 0, len(b.Approved))
	for _, id := range b.Approved {
		entries = append(entries, BallotEntry{SuggestionID: id, Points: 1})
	}
	return entries
}

// RankedBallot lists every eligible suggestion, best first.
type RankedBallot struct {
	Ranking []uuid.UUID
}

func (b RankedBallot) Mode() VotingMode { return VotingModeRanked }

func (b RankedBallot) Entries() []BallotEntry {
	n := len(b.Ranking)
	entries := make([]BallotEntry, 0, n)
	for i, id := range b.Ranking {
		entries = append(entries, BallotEntry{SuggestionID: id, Points: RankedPoints(n, i)})
	}
	return entries
}

// RankedPoints is the score for position i (0 = best) in a ranking of n.
func RankedPoints(n, i int) int {
	return n - 1 - i
}

type LeaderboardEntry struct {
	BookSuggestionID uuid.UUID `json:"bookSuggestionId"`
	Title            string    `json:"title"`
	Author           string    `json:"author"`
	Points           int       `json:"points"`
	Rank             int       `json:"rank"`
}

// Leaderboard zero-fills the raw tally against every suggestion of the cycle
// and orders it for display: points desc, then title, then id. Entries that
// share a point total share a rank.
func Leaderboard(suggestions []Suggestion, results []VoteResult) []LeaderboardEntry {
	points := make(map[uuid.UUID]int, len(results))
	for _, r := range results {
		points[r.BookSuggestionID] = r.VoteCount
	}

	board := make([]LeaderboardEntry, 0, len(suggestions))
	for _, s := range suggestions {
		board = append(board, LeaderboardEntry{
			BookSuggestionID: s.ID,
			Title:            s.Title,
			Author:           s.Author,
			Points:           points[s.ID],
		})
	}

	sort.SliceStable(board, func(i, j int) bool {
		a, b := board[i], board[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.BookSuggestionID.String() < b.BookSuggestionID.String()
	})

	for i := range board {
		if i > 0 && board[i].Points == board[i-1].Points {
			board[i].Rank = board[i-1].Rank
			continue
		}
		board[i].Rank = i + 1
	}
	return board
}
