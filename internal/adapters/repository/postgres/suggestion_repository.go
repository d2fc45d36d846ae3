package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/vncsmyrnk/bookclub/internal/core/domain"
	"github.com/vncsmyrnk/bookclub/internal/core/ports"
)

const suggestionColumns = `id, user_id, voting_cycle_id, title, author, year, page_count, link, misc_info, created_at, updated_at`

type suggestionRepository struct {
	db *sqlx.DB
}

func NewSuggestionRepository(db *sqlx.DB) ports.SuggestionRepository {
	return &suggestionRepository{
		db: db,
	}
}

func (r *suggestionRepository) Create(ctx context.Context, s *domain.Suggestion) error {
	query := `
		INSERT INTO book_suggestions (user_id, voting_cycle_id, title, author, year, page_count, link, misc_info)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		s.UserID, s.VotingCycleID, s.Title, s.Author, s.Year, s.PageCount, s.Link, s.MiscInfo,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if uniqueViolationOn(err) == "user_one_suggestion_per_cycle" {
			return domain.ErrDuplicateSuggestion
		}
		return fmt.Errorf("failed to insert book suggestion: %w", err)
	}
	return nil
}

func (r *suggestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM book_suggestions WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *suggestionRepository) GetByUserAndCycle(ctx context.Context, userID, cycleID uuid.UUID) (*domain.Suggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM book_suggestions WHERE user_id = $1 AND voting_cycle_id = $2`
	return r.getOne(ctx, query, userID, cycleID)
}

func (r *suggestionRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Suggestion, error) {
	var s domain.Suggestion
	if err := r.db.GetContext(ctx, &s, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSuggestionNotFound
		}
		return nil, fmt.Errorf("failed to get book suggestion: %w", err)
	}
	return &s, nil
}

func (r *suggestionRepository) ListByCycle(ctx context.Context, cycleID uuid.UUID) ([]domain.Suggestion, error) {
	query := `
		SELECT ` + suggestionColumns + `
		FROM book_suggestions
		WHERE voting_cycle_id = $1
		ORDER BY created_at ASC, id ASC
	`
	suggestions := []domain.Suggestion{}
	if err := r.db.SelectContext(ctx, &suggestions, query, cycleID); err != nil {
		return nil, fmt.Errorf("failed to list book suggestions: %w", err)
	}
	return suggestions, nil
}

func (r *suggestionRepository) Update(ctx context.Context, s *domain.Suggestion) error {
	query := `
		UPDATE book_suggestions
		SET title = $2, author = $3, year = $4, page_count = $5, link = $6, misc_info = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		s.ID, s.Title, s.Author, s.Year, s.PageCount, s.Link, s.MiscInfo,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrSuggestionNotFound
		}
		return fmt.Errorf("failed to update book suggestion: %w", err)
	}
	return nil
}
