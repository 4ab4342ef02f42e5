package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"rewardhub/internal/adapters/persistence/models"
	"rewardhub/internal/adapters/persistence/repositories"
	"rewardhub/internal/config"
	"rewardhub/internal/core/domain"
	"rewardhub/internal/pkg/clock"
	"rewardhub/internal/pkg/password"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	password.Cost = bcrypt.MinCost
}

var t0 = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	db    *gorm.DB
	store *repositories.Store
	clock *clock.Mock
	cfg   *config.Config
	seq   int
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	db, err := config.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Rewards: config.RewardsConfig{Timezone: "UTC", Location: time.UTC, DefaultReferralBonus: 200},
	}
	return &testEnv{db: db, store: repositories.NewStore(db), clock: clock.NewMock(t0), cfg: cfg}
}

// user creates a consumer with an empty wallet, registered at the mock time
func (e *testEnv) user(t *testing.T, referredBy *uint) *models.User {
	t.Helper()
	e.seq++
	u := &models.User{
		Name:         fmt.Sprintf("user %d", e.seq),
		Phone:        fmt.Sprintf("0171%07d", e.seq),
		Password:     "x",
		Role:         string(domain.RoleConsumer),
		ReferralCode: fmt.Sprintf("CODE%04d", e.seq),
		ReferredBy:   referredBy,
		CreatedAt:    e.clock.Now(),
	}
	require.NoError(t, e.store.Users.Create(context.Background(), u))
	require.NoError(t, e.store.Wallets.Create(context.Background(), &models.Wallet{UserID: u.ID}))
	return u
}

func (e *testEnv) fund(t *testing.T, userID uint, delta repositories.WalletDelta) {
	t.Helper()
	require.NoError(t, e.store.Wallets.Credit(context.Background(), userID, delta))
}

func (e *testEnv) product(t *testing.T, price, earn, limit float64, validityDays int) *models.Product {
	t.Helper()
	p := &models.Product{Name: fmt.Sprintf("Plan %.0f", price), Price: price, EarnAmount: earn, TotalEarning: limit, ValidityDays: validityDays}
	require.NoError(t, e.store.Products.Create(context.Background(), p))
	return p
}

func (e *testEnv) wallet(t *testing.T, userID uint) *models.Wallet {
	t.Helper()
	w, err := e.store.Wallets.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	return w
}

func (e *testEnv) setReferrals(t *testing.T, userID uint, n int) {
	t.Helper()
	require.NoError(t, e.db.Model(&models.User{}).Where("id = ?", userID).Update("total_referrals", n).Error)
}

func (e *testEnv) countTx(t *testing.T, userID uint, txType domain.TransactionType) int64 {
	t.Helper()
	_, total, err := e.store.Transactions.List(context.Background(), repositories.TransactionFilter{UserID: userID, Type: string(txType)}, 0, 1)
	require.NoError(t, err)
	return total
}

func (e *testEnv) purchase(t *testing.T, userID, productID uint) *PurchaseResult {
	t.Helper()
	res, err := NewPurchaseService(e.store, e.clock, e.cfg).PurchaseProduct(context.Background(), userID, productID)
	require.NoError(t, err)
	return res
}

// recordingNotifier captures admin notifications
type recordingNotifier struct {
	mu        sync.Mutex
	recharges []string
	withdraws []string
}

func (n *recordingNotifier) NotifyRecharge(_ context.Context, _ *models.User, tx *models.Transaction) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.recharges = append(n.recharges, tx.Reference)
}

func (n *recordingNotifier) NotifyWithdraw(_ context.Context, _ *models.User, tx *models.Transaction) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.withdraws = append(n.withdraws, tx.Reference)
}
