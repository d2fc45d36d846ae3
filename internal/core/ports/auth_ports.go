package ports

import (
	"context"

	"github.com/vncsmyrnk/bookclub/internal/core/domain"
)

type RegisterInput struct {
	Username string
	Password string
	Email    string
	Secret   string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input LoginInput) (string, *domain.User, error) // returns token, user, error
	// Authenticate verifies a token and returns the identity it carries.
	Authenticate(ctx context.Context, token string) (*domain.Identity, error)
}
