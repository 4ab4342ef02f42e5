package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles every repository over one connection or transaction
type Store struct {
	db            *gorm.DB
	Users         UserRepository
	RefreshTokens RefreshTokenRepository
	Wallets       WalletRepository
	Products      ProductRepository
	UserProducts  UserProductRepository
	Transactions  TransactionRepository
	Settings      SettingRepository
}

// NewStore creates repositories bound to db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Users:         NewUserRepository(db),
		RefreshTokens: NewRefreshTokenRepository(db),
		Wallets:       NewWalletRepository(db),
		Products:      NewProductRepository(db),
		UserProducts:  NewUserProductRepository(db),
		Transactions:  NewTransactionRepository(db),
		Settings:      NewSettingRepository(db),
	}
}

// Transaction runs fn against a store bound to a single database transaction.
// Returning an error from fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
