package repositories

import (
	"context"
	"time"

	"rewardhub/internal/adapters/persistence/models"
	"rewardhub/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionFilter narrows ledger queries; zero fields are ignored
type TransactionFilter struct {
	UserID uint
	Type   string
	Status string
	Since  *time.Time
}

func (f TransactionFilter) apply(q *gorm.DB) *gorm.DB {
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Since != nil {
		q = q.Where("created_at >= ?", *f.Since)
	}
	return q
}

// transactionRepository implements TransactionRepository interface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Create appends a ledger event, assigning a reference when missing
func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	if tx.Reference == "" {
		tx.Reference = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// List lists transactions newest first
func (r *transactionRepository) List(ctx context.Context, filter TransactionFilter, offset, limit int) ([]*models.Transaction, int64, error) {
	var list []*models.Transaction
	var total int64

	query := filter.apply(r.db.WithContext(ctx).Model(&models.Transaction{}))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Review moves a pending transaction to status exactly once
func (r *transactionRepository) Review(ctx context.Context, id uint, status string, reviewerID uint, note string, at time.Time) error {
	updates := map[string]interface{}{
		"status":      status,
		"reviewed_by": reviewerID,
		"reviewed_at": at,
	}
	if note != "" {
		updates["note"] = note
	}

	result := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, string(domain.TxPending)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrTransactionSettled
	}
	return nil
}

// Count counts matching transactions
func (r *transactionRepository) Count(ctx context.Context, filter TransactionFilter) (int64, error) {
	var count int64
	err := filter.apply(r.db.WithContext(ctx).Model(&models.Transaction{})).Count(&count).Error
	return count, err
}

// Sum totals the amount of matching transactions
func (r *transactionRepository) Sum(ctx context.Context, filter TransactionFilter) (float64, error) {
	var total float64
	err := filter.apply(r.db.WithContext(ctx).Model(&models.Transaction{})).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
