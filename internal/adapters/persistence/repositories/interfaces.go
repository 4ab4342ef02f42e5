package repositories

import (
	"context"
	"time"

	"rewardhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// UserFilter narrows user counts; nil fields are ignored
type UserFilter struct {
	Active   *bool
	VIPLevel *int
	Since    *time.Time
}

func (f UserFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}
	if f.VIPLevel != nil {
		q = q.Where("vip_level = ?", *f.VIPLevel)
	}
	if f.Since != nil {
		q = q.Where("created_at >= ?", *f.Since)
	}
	return q
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	GetByReferralCode(ctx context.Context, code string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, search string, offset, limit int) ([]*models.User, int64, error)
	IdentifierTaken(ctx context.Context, value string) (bool, error)
	ExistsByReferralCode(ctx context.Context, code string) (bool, error)
	ListReferred(ctx context.Context, referrerID uint) ([]*models.User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)

	// Atomic state transitions; the bool reports whether this call made the change
	IncrementReferrals(ctx context.Context, id uint) error
	SetVIPLevel(ctx context.Context, id uint, level int) error
	ActivateIfInactive(ctx context.Context, id uint, at time.Time) (bool, error)
	StampFirstPurchase(ctx context.Context, id uint, at time.Time) (bool, error)
	MarkReferralBonusGranted(ctx context.Context, id uint) (bool, error)
	StampReward(ctx context.Context, id uint, expectedVersion int64, field RewardField, at time.Time) error
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint, at time.Time) error
	RevokeByTokenHash(ctx context.Context, tokenHash string, at time.Time) error
	RevokeAllByUserID(ctx context.Context, userID uint, at time.Time) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// WalletRepository defines wallet ledger access.
// Every mutation is a single atomic statement.
type WalletRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error)
	Create(ctx context.Context, wallet *models.Wallet) error
	Credit(ctx context.Context, userID uint, delta WalletDelta) error
	DebitRecharge(ctx context.Context, userID uint, amount float64) error
	DebitBalance(ctx context.Context, userID uint, amount float64) error
	RolloverDaily(ctx context.Context, at time.Time) (int64, error)
}

// ProductRepository defines product catalog access
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	SoftDelete(ctx context.Context, id uint) error
	ListAvailable(ctx context.Context) ([]*models.Product, error)
	List(ctx context.Context, offset, limit int) ([]*models.Product, int64, error)
	Count(ctx context.Context) (int64, error)
}

// UserProductRepository defines access to purchased products
type UserProductRepository interface {
	Create(ctx context.Context, up *models.UserProduct) error
	GetForUser(ctx context.Context, id, userID uint) (*models.UserProduct, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.UserProduct, error)
	ExistsForUser(ctx context.Context, userID uint) (bool, error)
	ApplyClaim(ctx context.Context, id uint, expectedVersion int64, nextAnchor time.Time, amount float64) error
	MarkExpired(ctx context.Context, id uint) error
	ListActive(ctx context.Context) ([]*models.UserProduct, error)
	CountActive(ctx context.Context) (int64, error)
}

// TransactionRepository defines ledger event access
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id uint) (*models.Transaction, error)
	List(ctx context.Context, filter TransactionFilter, offset, limit int) ([]*models.Transaction, int64, error)
	Review(ctx context.Context, id uint, status string, reviewerID uint, note string, at time.Time) error
	Count(ctx context.Context, filter TransactionFilter) (int64, error)
	Sum(ctx context.Context, filter TransactionFilter) (float64, error)
}

// SettingRepository defines access to the singleton settings row
type SettingRepository interface {
	Get(ctx context.Context) (*models.Setting, error)
	Save(ctx context.Context, setting *models.Setting) error
}
