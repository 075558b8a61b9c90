package repository

import (
	"context"

	"gorm.io/gorm"

	"localehub/internal/model"
)

// TokenRepository defines auth token persistence operations.
type TokenRepository interface {
	Create(ctx context.Context, token *model.AuthToken) error
	FindByDigest(ctx context.Context, digest string) (*model.AuthToken, error)
	Delete(ctx context.Context, digest string) error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// Create persists a freshly minted token.
func (r *tokenRepository) Create(ctx context.Context, token *model.AuthToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// FindByDigest resolves a token row by its stored digest.
func (r *tokenRepository) FindByDigest(ctx context.Context, digest string) (*model.AuthToken, error) {
	var token model.AuthToken
	if err := r.db.WithContext(ctx).Where("token = ?", digest).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// Delete removes a token row. gorm.ErrRecordNotFound is reported when no row
// matched, so revoking an already-revoked token surfaces as a failure.
func (r *tokenRepository) Delete(ctx context.Context, digest string) error {
	res := r.db.WithContext(ctx).Where("token = ?", digest).Delete(&model.AuthToken{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
