package ports

import (
	"context"

	"github.com/mithaighar/sweetshop-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID resolves a token subject to a live account. Returns
	// domain.ErrUserNotFound when the account no longer exists.
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
