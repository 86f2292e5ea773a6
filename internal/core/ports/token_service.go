package ports

import "github.com/b5commerce/accounts-api/internal/core/domain"

// Identity is the decoded content of a verified access token.
type Identity struct {
	ID       string
	Username string
	IsAdmin  bool
}

// TokenService issues and verifies signed, time-limited access tokens.
// Tokens carry no revocation state: once issued, a token stays valid for its
// full lifetime regardless of later account changes.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	// Verify checks signature and expiry. It returns domain.ErrTokenExpired
	// for expired tokens and domain.ErrTokenInvalid for anything else wrong
	// with the token.
	Verify(token string) (*Identity, error)
}
