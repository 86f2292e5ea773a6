package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/b5commerce/accounts-api/internal/api/metrics"
	"github.com/b5commerce/accounts-api/internal/core/domain"
)

const profileTTL = 5 * time.Minute

// cachedProfile is the stored JSON shape. It deliberately excludes the
// password hash: the cache only ever serves read-side profile lookups.
type cachedProfile struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileCache provides a short-TTL read cache for user profiles backed by
// Redis. Entries are invalidated whenever the account is mutated.
type ProfileCache struct {
	client *redis.Client
}

// NewProfileCache creates a ProfileCache wrapping the given Redis client.
func NewProfileCache(client *redis.Client) *ProfileCache {
	return &ProfileCache{client: client}
}

// Get returns the cached profile for id, or (nil, nil) on a miss.
func (p *ProfileCache) Get(ctx context.Context, id string) (*domain.User, error) {
	raw, err := p.client.Get(ctx, p.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("profile cache get: %w", err)
	}

	var cp cachedProfile
	if err := json.Unmarshal(raw, &cp); err != nil {
		// A corrupt entry behaves like a miss and gets rewritten.
		metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}

	metrics.ProfileCacheTotal.WithLabelValues("hit").Inc()
	return &domain.User{
		ID:        cp.ID,
		FirstName: cp.FirstName,
		LastName:  cp.LastName,
		Role:      cp.Role,
		Username:  cp.Username,
		IsAdmin:   cp.IsAdmin,
		IsActive:  cp.IsActive,
		CreatedAt: cp.CreatedAt,
		UpdatedAt: cp.UpdatedAt,
	}, nil
}

// Set stores the profile with a short TTL.
func (p *ProfileCache) Set(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(cachedProfile{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("profile cache marshal: %w", err)
	}
	return p.client.Set(ctx, p.key(user.ID), raw, profileTTL).Err()
}

// Invalidate drops the cached profile for id.
func (p *ProfileCache) Invalidate(ctx context.Context, id string) error {
	return p.client.Del(ctx, p.key(id)).Err()
}

func (p *ProfileCache) key(id string) string {
	return "profile:" + id
}
