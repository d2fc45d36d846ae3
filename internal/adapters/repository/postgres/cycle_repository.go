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

const cycleColumns = `id, suggestion_deadline, voting_deadline, status, voting_mode, created_at, updated_at`

type cycleRepository struct {
	db *sqlx.DB
}

func NewCycleRepository(db *sqlx.DB) ports.CycleRepository {
	return &cycleRepository{
		db: db,
	}
}

func (r *cycleRepository) Create(ctx context.Context, cycle *domain.VotingCycle) error {
	query := `
		INSERT INTO voting_cycles (suggestion_deadline, voting_deadline, status, voting_mode)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		cycle.SuggestionDeadline, cycle.VotingDeadline, cycle.Status, cycle.VotingMode,
	).Scan(&cycle.ID, &cycle.CreatedAt, &cycle.UpdatedAt)
	if err != nil {
		if uniqueViolationOn(err) == "one_active_voting_cycle" {
			return domain.ErrActiveCycleExists
		}
		return fmt.Errorf("failed to insert voting cycle: %w", err)
	}
	return nil
}

func (r *cycleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.VotingCycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM voting_cycles WHERE id = $1`
	return r.getOne(ctx, domain.ErrCycleNotFound, query, id)
}

func (r *cycleRepository) GetActive(ctx context.Context) (*domain.VotingCycle, error) {
	query := `
		SELECT ` + cycleColumns + `
		FROM voting_cycles
		WHERE status <> 'completed'
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.getOne(ctx, domain.ErrNoActiveCycle, query)
}

func (r *cycleRepository) GetLatest(ctx context.Context) (*domain.VotingCycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM voting_cycles ORDER BY created_at DESC LIMIT 1`
	return r.getOne(ctx, domain.ErrCycleNotFound, query)
}

func (r *cycleRepository) getOne(ctx context.Context, notFound error, query string, args ...any) (*domain.VotingCycle, error) {
	var cycle domain.VotingCycle
	if err := r.db.GetContext(ctx, &cycle, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to get voting cycle: %w", err)
	}
	return &cycle, nil
}

func (r *cycleRepository) List(ctx context.Context) ([]domain.VotingCycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM voting_cycles ORDER BY created_at DESC`
	cycles := []domain.VotingCycle{}
	if err := r.db.SelectContext(ctx, &cycles, query); err != nil {
		return nil, fmt.Errorf("failed to list voting cycles: %w", err)
	}
	return cycles, nil
}

func (r *cycleRepository) ListActive(ctx context.Context) ([]domain.VotingCycle, error) {
	query := `
		SELECT ` + cycleColumns + `
		FROM voting_cycles
		WHERE status <> 'completed'
		ORDER BY created_at DESC
	`
	cycles := []domain.VotingCycle{}
	if err := r.db.SelectContext(ctx, &cycles, query); err != nil {
		return nil, fmt.Errorf("failed to list active voting cycles: %w", err)
	}
	return cycles, nil
}

func (r *cycleRepository) Update(ctx context.Context, cycle *domain.VotingCycle) error {
	query := `
		UPDATE voting_cycles
		SET suggestion_deadline = $2, voting_deadline = $3, status = $4, voting_mode = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		cycle.ID, cycle.SuggestionDeadline, cycle.VotingDeadline, cycle.Status, cycle.VotingMode,
	).Scan(&cycle.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrCycleNotFound
		}
		if uniqueViolationOn(err) == "one_active_voting_cycle" {
			return domain.ErrActiveCycleExists
		}
		return fmt.Errorf("failed to update voting cycle: %w", err)
	}
	return nil
}

func (r *cycleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CycleStatus) error {
	query := `UPDATE voting_cycles SET status = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update voting cycle status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update voting cycle status: %w", err)
	}
	if n == 0 {
		return domain.ErrCycleNotFound
	}
	return nil
}
