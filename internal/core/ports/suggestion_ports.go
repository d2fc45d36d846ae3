package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookclub/internal/core/domain"
)

type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *domain.Suggestion) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error)
	GetByUserAndCycle(ctx context.Context, userID, cycleID uuid.UUID) (*domain.Suggestion, error)
	ListByCycle(ctx context.Context, cycleID uuid.UUID) ([]domain.Suggestion, error)
	Update(ctx context.Context, suggestion *domain.Suggestion) error
}

type CreateSuggestionInput struct {
	Title     string
	Author    string
	Year      *int
	PageCount *int
	Link      *string
	MiscInfo  *string
}

// UpdateSuggestionInput applies only the non-nil fields.
type UpdateSuggestionInput struct {
	Title     *string
	Author    *string
	Year      *int
	PageCount *int
	Link      *string
	MiscInfo  *string
}

type SuggestionService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateSuggestionInput) (*domain.Suggestion, error)
	Update(ctx context.Context, userID uuid.UUID, id string, input UpdateSuggestionInput) (*domain.Suggestion, error)
	ListByCycle(ctx context.Context, cycleID string) ([]domain.Suggestion, error)
	GetOwn(ctx context.Context, userID uuid.UUID, cycleID string) (*domain.Suggestion, error)
}
