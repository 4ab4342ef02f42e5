package repositories

import (
	"context"
	"time"

	"rewardhub/internal/adapters/persistence/models"
	"rewardhub/internal/core/domain"

	"gorm.io/gorm"
)

// userProductRepository implements UserProductRepository interface
type userProductRepository struct {
	db *gorm.DB
}

// NewUserProductRepository creates a new user product repository
func NewUserProductRepository(db *gorm.DB) UserProductRepository {
	return &userProductRepository{db: db}
}

func (r *userProductRepository) Create(ctx context.Context, up *models.UserProduct) error {
	return r.db.WithContext(ctx).Create(up).Error
}

// GetForUser gets a holding only if it belongs to userID
func (r *userProductRepository) GetForUser(ctx context.Context, id, userID uint) (*models.UserProduct, error) {
	var up models.UserProduct
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&up).Error
	if err != nil {
		return nil, err
	}
	return &up, nil
}

func (r *userProductRepository) ListByUser(ctx context.Context, userID uint) ([]*models.UserProduct, error) {
	var list []*models.UserProduct
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchase_date DESC").
		Find(&list).Error
	return list, err
}

func (r *userProductRepository) ExistsForUser(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserProduct{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

// ApplyClaim advances the window anchor and adds the payout,
// but only if nobody else claimed since expectedVersion was read
func (r *userProductRepository) ApplyClaim(ctx context.Context, id uint, expectedVersion int64, nextAnchor time.Time, amount float64) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserProduct{}).
		Where("id = ? AND version = ? AND status = ?", id, expectedVersion, string(domain.HoldingActive)).
		Updates(map[string]interface{}{
			"earn_window_start_at": nextAnchor,
			"total_earnings":       gorm.Expr("total_earnings + ?", amount),
			"version":              gorm.Expr("version + ?", 1),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrConcurrencyConflict
	}
	return nil
}

func (r *userProductRepository) MarkExpired(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.UserProduct{}).
		Where("id = ? AND status = ?", id, string(domain.HoldingActive)).
		Update("status", string(domain.HoldingExpired)).Error
}

func (r *userProductRepository) ListActive(ctx context.Context) ([]*models.UserProduct, error) {
	var list []*models.UserProduct
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.HoldingActive)).
		Find(&list).Error
	return list, err
}

func (r *userProductRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserProduct{}).
		Where("status = ?", string(domain.HoldingActive)).
		Count(&count).Error
	return count, err
}
