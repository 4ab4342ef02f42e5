package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"rewardhub/internal/adapters/persistence/models"
	"rewardhub/internal/core/domain"

	"gorm.io/gorm"
)

// WalletDelta is a set of non-negative increments applied in one statement
type WalletDelta struct {
	RechargeWallet   float64
	BalanceWallet    float64
	TotalEarnings    float64
	TotalWithdrawals float64
	IncomeToday      float64
	LossToday        float64
	LossTotal        float64
}

// Earning is the delta for any payout: balance, lifetime earnings and today's income
func Earning(amount float64) WalletDelta {
	return WalletDelta{BalanceWallet: amount, TotalEarnings: amount, IncomeToday: amount}
}

func (d WalletDelta) columns() map[string]float64 {
	return map[string]float64{
		"recharge_wallet":   d.RechargeWallet,
		"balance_wallet":    d.BalanceWallet,
		"total_earnings":    d.TotalEarnings,
		"total_withdrawals": d.TotalWithdrawals,
		"income_today":      d.IncomeToday,
		"loss_today":        d.LossToday,
		"loss_total":        d.LossTotal,
	}
}

func (d WalletDelta) validate() error {
	for _, v := range d.columns() {
		if v < 0 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// seed builds a fresh wallet whose starting values are the delta itself
func (d WalletDelta) seed(userID uint) *models.Wallet {
	return &models.Wallet{
		UserID:           userID,
		RechargeWallet:   d.RechargeWallet,
		BalanceWallet:    d.BalanceWallet,
		TotalEarnings:    d.TotalEarnings,
		TotalWithdrawals: d.TotalWithdrawals,
		IncomeToday:      d.IncomeToday,
		LossToday:        d.LossToday,
		LossTotal:        d.LossTotal,
	}
}

// walletRepository implements WalletRepository interface
type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

// GetByUserID gets a wallet by its owner
func (r *walletRepository) GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Create creates a new wallet
func (r *walletRepository) Create(ctx context.Context, wallet *models.Wallet) error {
	return r.db.WithContext(ctx).Create(wallet).Error
}

// Credit atomically increments wallet columns.
// A missing wallet is created with the delta as its initial values.
func (r *walletRepository) Credit(ctx context.Context, userID uint, delta WalletDelta) error {
	if err := delta.validate(); err != nil {
		return err
	}

	updated, err := r.increment(ctx, userID, delta)
	if err != nil || updated {
		return err
	}

	err = r.db.WithContext(ctx).Create(delta.seed(userID)).Error
	if err == nil {
		return nil
	}
	if !isDuplicate(err) {
		return err
	}

	// lost a create race; the row exists now
	updated, err = r.increment(ctx, userID, delta)
	if err != nil {
		return err
	}
	if !updated {
		return domain.ErrConcurrencyConflict
	}
	return nil
}

func (r *walletRepository) increment(ctx context.Context, userID uint, delta WalletDelta) (bool, error) {
	updates := make(map[string]interface{})
	for col, v := range delta.columns() {
		if v != 0 {
			updates[col] = gorm.Expr(col+" + ?", v)
		}
	}
	if len(updates) == 0 {
		var count int64
		err := r.db.WithContext(ctx).Model(&models.Wallet{}).Where("user_id = ?", userID).Count(&count).Error
		return count > 0, err
	}

	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Updates(updates)
	return result.RowsAffected > 0, result.Error
}

// DebitRecharge atomically takes amount from the recharge wallet
func (r *walletRepository) DebitRecharge(ctx context.Context, userID uint, amount float64) error {
	return r.debit(ctx, userID, "recharge_wallet", amount)
}

// DebitBalance atomically takes amount from the balance wallet
func (r *walletRepository) DebitBalance(ctx context.Context, userID uint, amount float64) error {
	return r.debit(ctx, userID, "balance_wallet", amount)
}

func (r *walletRepository) debit(ctx context.Context, userID uint, column string, amount float64) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}

	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("user_id = ? AND "+column+" >= ?", userID, amount).
		Update(column, gorm.Expr(column+" - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}

// rolloverSQL assigns income_yesterday before income_today is cleared.
// MySQL applies single-table SET clauses left to right.
const rolloverSQL = "UPDATE wallets SET income_yesterday = income_today, income_today = 0, loss_today = 0, updated_at = ?"

// RolloverDaily moves today's income to yesterday and clears the daily counters
func (r *walletRepository) RolloverDaily(ctx context.Context, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Exec(rolloverSQL, at.UTC())
	return result.RowsAffected, result.Error
}

// isDuplicate reports a unique or primary key violation
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
