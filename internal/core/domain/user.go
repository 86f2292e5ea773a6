package domain

import (
	"strings"
	"time"
)

const minPasswordLength = 8

// User models an account in the credential store. PasswordHash is never
// serialized; response projections live in the transport layer.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         string    `json:"role"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidUsername reports whether a username satisfies the account naming rule:
// non-empty and containing a "." separator (e.g. "jane.doe").
func ValidUsername(username string) bool {
	return username != "" && strings.Contains(username, ".")
}

// ValidPassword reports whether a plaintext password meets the minimum length.
func ValidPassword(password string) bool {
	return len(password) >= minPasswordLength
}
