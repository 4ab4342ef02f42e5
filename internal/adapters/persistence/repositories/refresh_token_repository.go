package repositories

import (
	"context"
	"time"

	"rewardhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetByTokenHash returns the token row, revoked or not, so callers can tell
// reuse of a rotated token apart from an unknown one
func (r *refreshTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// Revoke stamps one token as revoked at the given instant
func (r *refreshTokenRepository) Revoke(ctx context.Context, id uint, at time.Time) error {
	return r.revoke(ctx, r.db.Where("id = ? AND revoked_at IS NULL", id), at)
}

func (r *refreshTokenRepository) RevokeByTokenHash(ctx context.Context, tokenHash string, at time.Time) error {
	return r.revoke(ctx, r.db.Where("token_hash = ? AND revoked_at IS NULL", tokenHash), at)
}

// RevokeAllByUserID ends every open session of a user
func (r *refreshTokenRepository) RevokeAllByUserID(ctx context.Context, userID uint, at time.Time) error {
	return r.revoke(ctx, r.db.Where("user_id = ? AND revoked_at IS NULL", userID), at)
}

func (r *refreshTokenRepository) revoke(ctx context.Context, scope *gorm.DB, at time.Time) error {
	at = at.UTC()
	return scope.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Update("revoked_at", &at).Error
}

// DeleteExpired removes tokens that expired before the cutoff
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", before.UTC()).
		Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}
