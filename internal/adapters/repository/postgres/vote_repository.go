package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/vncsmyrnk/bookclub/internal/core/domain"
	"github.com/vncsmyrnk/bookclub/internal/core/ports"
)

type voteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// ReplaceBallot swaps every vote row of (user, cycle) for entries in one
// transaction. Submissions for the same (user, cycle) are serialized on a
// transaction-scoped advisory lock, so concurrent calls never merge ballots.
func (r *voteRepository) ReplaceBallot(ctx context.Context, userID, cycleID uuid.UUID, entries []domain.BallotEntry) ([]domain.Vote, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text || ':' || $2::text, 0))`, userID, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock ballot: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM votes WHERE user_id = $1 AND voting_cycle_id = $2`, userID, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete previous votes: %w", err)
	}

	votes := []domain.Vote{}
	if len(entries) > 0 {
		suggestionIDs := make([]string, len(entries))
		points := make([]int64, len(entries))
		for i, e := range entries {
			suggestionIDs[i] = e.SuggestionID.String()
			points[i] = int64(e.Points)
		}

		query := `
			INSERT INTO votes (user_id, voting_cycle_id, book_suggestion_id, points)
			SELECT $1, $2, e.suggestion_id, e.points
			FROM unnest($3::uuid[], $4::integer[]) WITH ORDINALITY AS e(suggestion_id, points, position)
			ORDER BY e.position
			RETURNING id, user_id, voting_cycle_id, book_suggestion_id, points, created_at
		`
		err = tx.SelectContext(ctx, &votes, query, userID, cycleID, pq.Array(suggestionIDs), pq.Array(points))
		if err != nil {
			if uniqueViolationOn(err) == "user_vote_once_per_suggestion" {
				return nil, domain.ErrInvalidSuggestionIDs
			}
			return nil, fmt.Errorf("failed to insert votes: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return votes, nil
}

func (r *voteRepository) ListByUserAndCycle(ctx context.Context, userID, cycleID uuid.UUID) ([]domain.Vote, error) {
	query := `
		SELECT id, user_id, voting_cycle_id, book_suggestion_id, points, created_at
		FROM votes
		WHERE user_id = $1 AND voting_cycle_id = $2
		ORDER BY created_at ASC, points DESC
	`
	votes := []domain.Vote{}
	if err := r.db.SelectContext(ctx, &votes, query, userID, cycleID); err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return votes, nil
}

// Results sums points per suggestion. Suggestions without any vote row are
// left out.
func (r *voteRepository) Results(ctx context.Context, cycleID uuid.UUID) ([]domain.VoteResult, error) {
	query := `
		SELECT bs.id AS book_suggestion_id, bs.title, bs.author, SUM(v.points) AS vote_count
		FROM votes v
		JOIN book_suggestions bs ON bs.id = v.book_suggestion_id
		WHERE v.voting_cycle_id = $1
		GROUP BY bs.id, bs.title, bs.author
		ORDER BY vote_count DESC, bs.title ASC
	`
	results := []domain.VoteResult{}
	if err := r.db.SelectContext(ctx, &results, query, cycleID); err != nil {
		return nil, fmt.Errorf("failed to fetch vote results for cycle %s: %w", cycleID, err)
	}
	return results, nil
}
