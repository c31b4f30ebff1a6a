package ports

import (
	"context"

	"github.com/mithaighar/sweetshop-api/internal/core/domain"
)

// RegisterInput carries a registration request. There is no role field;
// public registration always produces a customer account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns a signed bearer token and the user's role. Unknown email
	// and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (token string, role string, err error)
}
