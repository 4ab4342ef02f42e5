package repositories

import (
	"context"
	"time"

	"rewardhub/internal/adapters/persistence/models"
	"rewardhub/internal/core/domain"

	"gorm.io/gorm"
)

// RewardField is a user timestamp guarded by the reward version
type RewardField string

const (
	RewardFieldWeekly  RewardField = "last_weekly_reward"
	RewardFieldMonthly RewardField = "last_monthly_reward"
	RewardFieldSmash   RewardField = "last_egg_smash"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByIdentifier gets a user by any login identifier (phone, NID or passport)
func (r *userRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("phone = ? OR nid = ? OR passport = ?", identifier, identifier, identifier).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByReferralCode gets a user by referral code
func (r *userRepository) GetByReferralCode(ctx context.Context, code string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("referral_code = ?", code).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update saves profile and account columns.
// Counters and reward stamps change only through the atomic methods below.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).
		Model(user).
		Select("name", "role", "is_active", "password").
		Updates(user).Error
}

// Delete soft deletes a user
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

// List lists users with pagination and optional name/phone search
func (r *userRepository) List(ctx context.Context, search string, offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := r.db.WithContext(ctx).Model(&models.User{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ? OR referral_code LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// IdentifierTaken reports whether value is already any user's phone, NID or
// passport. It checks the same columns GetByIdentifier matches on.
func (r *userRepository) IdentifierTaken(ctx context.Context, value string) (bool, error) {
	return r.exists(ctx, "phone = ? OR nid = ? OR passport = ?", value, value, value)
}

// ExistsByReferralCode checks if referral code exists
func (r *userRepository) ExistsByReferralCode(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, "referral_code = ?", code)
}

func (r *userRepository) exists(ctx context.Context, cond string, args ...interface{}) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where(cond, args...).Count(&count).Error
	return count > 0, err
}

// ListReferred lists users registered with the given referrer
func (r *userRepository) ListReferred(ctx context.Context, referrerID uint) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Where("referred_by = ?", referrerID).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

// IncrementReferrals atomically adds one to total_referrals
func (r *userRepository) IncrementReferrals(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("total_referrals", gorm.Expr("total_referrals + ?", 1)).Error
}

// SetVIPLevel persists a recomputed VIP level
func (r *userRepository) SetVIPLevel(ctx context.Context, id uint, level int) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("vip_level", level).Error
}

// ActivateIfInactive flips is_active once and stamps activated_at
func (r *userRepository) ActivateIfInactive(ctx context.Context, id uint, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND is_active = ?", id, false).
		Updates(map[string]interface{}{
			"is_active":    true,
			"activated_at": at,
		})
	return result.RowsAffected == 1, result.Error
}

// StampFirstPurchase sets first_purchase_at only when unset
func (r *userRepository) StampFirstPurchase(ctx context.Context, id uint, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND first_purchase_at IS NULL", id).
		Update("first_purchase_at", at)
	return result.RowsAffected == 1, result.Error
}

// MarkReferralBonusGranted flips the bonus flag once.
// Only the caller that gets true may pay the referrer.
func (r *userRepository) MarkReferralBonusGranted(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND referral_purchase_bonus_granted = ?", id, false).
		Update("referral_purchase_bonus_granted", true)
	return result.RowsAffected == 1, result.Error
}

// StampReward sets a reward timestamp if the reward version is unchanged
func (r *userRepository) StampReward(ctx context.Context, id uint, expectedVersion int64, field RewardField, at time.Time) error {
	switch field {
	case RewardFieldWeekly, RewardFieldMonthly, RewardFieldSmash:
	default:
		return domain.ErrInvalidInput
	}

	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND reward_version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			string(field):    at,
			"reward_version": gorm.Expr("reward_version + ?", 1),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrConcurrencyConflict
	}
	return nil
}

// Count counts users matching filter
func (r *userRepository) Count(ctx context.Context, filter UserFilter) (int64, error) {
	var count int64
	err := filter.apply(r.db.WithContext(ctx).Model(&models.User{})).Count(&count).Error
	return count, err
}
