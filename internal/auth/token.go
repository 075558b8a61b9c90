package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"localehub/internal/model"
	"localehub/internal/repository"
)

// lookupCacheTTL bounds how long a token resolution may be served from Redis
// without consulting the database.
const lookupCacheTTL = 5 * time.Minute

// ErrInvalidToken is returned when a presented token is unknown, revoked or
// expired.
var ErrInvalidToken = errors.New("invalid or expired token")

// IssuerInterface defines the token issuance and verification operations.
type IssuerInterface interface {
	Issue(ctx context.Context, userID uint) (string, error)
	Authenticate(ctx context.Context, token string) (uint, error)
	Revoke(ctx context.Context, token string) error
}

// Issuer mints and verifies opaque bearer tokens. The client-facing token is
// random material with no decodable structure; only its SHA-256 digest is
// persisted, so a database leak does not leak usable credentials.
type Issuer struct {
	tokens repository.TokenRepository
	store  *TokenStore
	ttl    time.Duration
}

// Ensure Issuer implements IssuerInterface
var _ IssuerInterface = (*Issuer)(nil)

// NewIssuer creates a token issuer with the given token lifetime.
func NewIssuer(tokens repository.TokenRepository, store *TokenStore, ttl time.Duration) *Issuer {
	return &Issuer{tokens: tokens, store: store, ttl: ttl}
}

// Issue mints a fresh token bound to the user. Every call produces a new
// token; earlier tokens for the same user stay valid until revoked or expired.
func (i *Issuer) Issue(ctx context.Context, userID uint) (string, error) {
	plain, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	digest := Digest(plain)
	record := &model.AuthToken{
		Token:     digest,
		UserID:    userID,
		ExpiresAt: time.Now().Add(i.ttl),
	}
	if err := i.tokens.Create(ctx, record); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}

	i.store.SaveLookup(ctx, digest, userID, record.ExpiresAt, lookupCacheTTL)
	return plain, nil
}

// Authenticate resolves a presented token to its owning user id.
func (i *Issuer) Authenticate(ctx context.Context, token string) (uint, error) {
	digest := Digest(token)

	if userID, expiresAt, ok := i.store.Lookup(ctx, digest); ok {
		if time.Now().After(expiresAt) {
			return 0, ErrInvalidToken
		}
		return userID, nil
	}

	record, err := i.tokens.FindByDigest(ctx, digest)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrInvalidToken
		}
		return 0, fmt.Errorf("lookup token: %w", err)
	}
	if time.Now().After(record.ExpiresAt) {
		return 0, ErrInvalidToken
	}

	i.store.SaveLookup(ctx, digest, record.UserID, record.ExpiresAt, lookupCacheTTL)
	return record.UserID, nil
}

// Revoke invalidates exactly the presented token. Revoking a token that no
// longer resolves fails with ErrInvalidToken.
func (i *Issuer) Revoke(ctx context.Context, token string) error {
	digest := Digest(token)
	i.store.DeleteLookup(ctx, digest)

	if err := i.tokens.Delete(ctx, digest); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Digest returns the hex SHA-256 digest under which a token is persisted.
func Digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// generateToken produces 32 bytes of cryptographic randomness, hex encoded.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
