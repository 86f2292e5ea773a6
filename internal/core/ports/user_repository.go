package ports

import (
	"context"

	"github.com/b5commerce/accounts-api/internal/core/domain"
)

// ProfileReplacement carries the full set of mutable profile fields for an
// update. Every field is written unconditionally: the update operation is a
// full replace, not a patch, so zero values clear the stored ones. The admin
// flag and password are deliberately absent — they are immutable here.
type ProfileReplacement struct {
	FirstName string
	LastName  string
	Role      string
	Username  string
	IsActive  bool
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Exists reports whether a username is already taken, without fetching
	// the full document.
	Exists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	// Replace overwrites all mutable profile fields of the account and
	// returns the updated record.
	Replace(ctx context.Context, id string, fields ProfileReplacement) (*domain.User, error)
	// UpdatePassword overwrites only the stored password hash.
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
