package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/b5commerce/accounts-api/internal/core/domain"
	"github.com/b5commerce/accounts-api/internal/core/ports"
)

// ProfileCache abstracts the profile read-through cache (Redis). A miss is
// (nil, nil); cache failures must never fail the operation.
type ProfileCache interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, id string) error
}

// UserService implements account creation, login, profile retrieval, profile
// update, and admin password reset.
type UserService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
	cache  ProfileCache
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, tokens ports.TokenService, cache ProfileCache, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, tokens: tokens, cache: cache, log: log}
}

// CreateUser validates input, checks for a duplicate username, hashes the
// password (bcrypt, cost 10) and persists the new account. The store's unique
// index on username backstops the pre-check under concurrent creates.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if !domain.ValidUsername(input.Username) {
		return nil, domain.ErrInvalidUsername
	}
	if !domain.ValidPassword(input.Password) {
		return nil, domain.ErrPasswordTooShort
	}

	// Pre-check before hashing so duplicates never pay the bcrypt cost.
	taken, err := s.repo.Exists(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
		Username:     input.Username,
		PasswordHash: string(hash),
		IsAdmin:      false,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("user_id", created.ID).Msg("user created")
	return created, nil
}

// Login verifies credentials against the stored hash and returns a signed
// access token. Deactivated accounts are rejected even with a correct
// password.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	if !domain.ValidUsername(username) {
		return "", domain.ErrInvalidUsername
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if !user.IsActive {
		return "", domain.ErrAccountDeactivated
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Info().Str("username", username).Msg("login rejected: bad password")
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("username", username).Msg("login succeeded")
	return token, nil
}

// GetProfile returns the caller's own record, consulting the profile cache
// before the store.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	if cached, err := s.cache.Get(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("profile cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, user); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("profile cache write failed")
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateUserByID overwrites all mutable profile fields with the supplied
// values. This is a deliberate full-replace contract: callers that omit a
// field clear it. The admin flag and password are untouched.
func (s *UserService) UpdateUserByID(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error) {
	updated, err := s.repo.Replace(ctx, userID, ports.ProfileReplacement{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
		Username:  input.Username,
		IsActive:  input.IsActive,
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("profile cache invalidation failed")
	}

	s.log.Info().Str("user_id", userID).Msg("profile updated")
	return updated, nil
}

// ResetPassword hashes the new password and overwrites only the stored hash.
func (s *UserService) ResetPassword(ctx context.Context, userID, newPassword string) error {
	if !domain.ValidPassword(newPassword) {
		return domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("profile cache invalidation failed")
	}

	s.log.Info().Str("user_id", userID).Msg("password reset")
	return nil
}
