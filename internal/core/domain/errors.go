package domain

import "errors"

// Sentinel errors returned by services and repositories. The API layer maps
// each to a deterministic HTTP status in its central error handler.
var (
	ErrInvalidUsername    = errors.New("username invalid")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("username and password do not match")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrTokenExpired       = errors.New("token is expired")
	ErrTokenInvalid       = errors.New("token is invalid")
)
