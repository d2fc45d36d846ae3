package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookclub/internal/core/domain"
)

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	PromoteToAdmin(ctx context.Context, email string) (*domain.User, error)
}
