package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/b5commerce/accounts-api/internal/core/domain"
	"github.com/b5commerce/accounts-api/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// accessClaims is the wire format of the access token payload.
type accessClaims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies HS256-signed access tokens.
type TokenService struct {
	secret   string
	tokenTTL time.Duration
}

// NewTokenService builds a TokenService signing with secret. A non-positive
// ttl falls back to 24 hours.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: secret, tokenTTL: ttl}
}

func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := accessClaims{
		ID:       user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

func (s *TokenService) Verify(token string) (*ports.Identity, error) {
	var claims accessClaims
	tkn, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}

	return &ports.Identity{
		ID:       claims.ID,
		Username: claims.Username,
		IsAdmin:  claims.IsAdmin,
	}, nil
}
