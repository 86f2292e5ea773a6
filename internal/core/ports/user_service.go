package ports

import (
	"context"

	"github.com/b5commerce/accounts-api/internal/core/domain"
)

// CreateUserInput carries all data needed to create a new account.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Role      string
	Username  string
	Password  string
}

// UpdateProfileInput carries the full profile for an update. The operation is
// a full replace: fields left at their zero value are written as-is.
type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Role      string
	Username  string
	IsActive  bool
}

// UserService defines the account use-case operations.
type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	// Login verifies credentials and returns a signed access token.
	Login(ctx context.Context, username, password string) (string, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	UpdateUserByID(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error)
	ResetPassword(ctx context.Context, userID, newPassword string) error
}
