package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookclub/internal/core/domain"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	SetAdmin(ctx context.Context, email string, isAdmin bool) (*domain.User, error)
}
