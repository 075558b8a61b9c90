package auth

import (
	"context"
	"encoding/json"
	"time"

	"localehub/internal/cache"
)

const tokenKeyPrefix = "auth_token:"

type tokenLookup struct {
	UserID    uint  `json:"user_id"`
	ExpiresAt int64 `json:"expires_at"`
}

// TokenStore caches token digest → user resolutions in Redis so hot tokens
// skip the database. It inherits the cache client's fail-safe behavior: when
// Redis is down every lookup is a miss and the database answers instead.
type TokenStore struct {
	cache *cache.Client
}

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// SaveLookup caches a resolution for at most ttl, clamped to the token's own
// remaining lifetime.
func (s *TokenStore) SaveLookup(ctx context.Context, digest string, userID uint, expiresAt time.Time, ttl time.Duration) {
	if remaining := time.Until(expiresAt); remaining < ttl {
		ttl = remaining
	}
	if ttl <= 0 {
		return
	}

	payload, err := json.Marshal(tokenLookup{UserID: userID, ExpiresAt: expiresAt.Unix()})
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, tokenKeyPrefix+digest, payload, ttl)
}

// Lookup returns a cached resolution, or ok=false on a miss.
func (s *TokenStore) Lookup(ctx context.Context, digest string) (userID uint, expiresAt time.Time, ok bool) {
	data, err := s.cache.Get(ctx, tokenKeyPrefix+digest)
	if err != nil || data == nil {
		return 0, time.Time{}, false
	}

	var entry tokenLookup
	if err := json.Unmarshal(data, &entry); err != nil {
		return 0, time.Time{}, false
	}
	return entry.UserID, time.Unix(entry.ExpiresAt, 0), true
}

// DeleteLookup drops a cached resolution, called on revocation.
func (s *TokenStore) DeleteLookup(ctx context.Context, digest string) {
	_ = s.cache.Delete(ctx, tokenKeyPrefix+digest)
}
