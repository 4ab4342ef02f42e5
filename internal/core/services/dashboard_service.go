package services

import (
	"context"
	"time"

	"rewardhub/internal/adapters/persistence/repositories"
	"rewardhub/internal/core/domain"
	"rewardhub/internal/pkg/clock"
)

// DashboardService handles dashboard operations
type DashboardService struct {
	store *repositories.Store
	clock clock.Clock
	loc   *time.Location
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store *repositories.Store, clk clock.Clock, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardService{store: store, clock: clk, loc: loc}
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// Users
	TotalUsers     int64 `json:"total_users"`
	ActiveUsers    int64 `json:"active_users"`
	NewUsersToday  int64 `json:"new_users_today"`
	VIP1Users      int64 `json:"vip1_users"`
	VIP2Users      int64 `json:"vip2_users"`
	TotalProducts  int64 `json:"total_products"`
	ActiveHoldings int64 `json:"active_holdings"`

	// Pending reviews
	PendingRecharges   int64   `json:"pending_recharges"`
	PendingRechargeSum float64 `json:"pending_recharge_sum"`
	PendingWithdrawals int64   `json:"pending_withdrawals"`
	PendingWithdrawSum float64 `json:"pending_withdraw_sum"`

	// Money movement
	ApprovedRecharges  float64 `json:"approved_recharges"`
	ApprovedWithdrawal float64 `json:"approved_withdrawals"`
	PurchaseVolume     float64 `json:"purchase_volume"`
	EarningsPaid       float64 `json:"earnings_paid"`
	BonusesPaid        float64 `json:"bonuses_paid"`
	PrizesPaid         float64 `json:"prizes_paid"`

	// Today
	PurchasesToday float64 `json:"purchases_today"`
	EarningsToday  float64 `json:"earnings_today"`

	RecentTransactions []TransactionSummary `json:"recent_transactions"`
}

// TransactionSummary represents a recent ledger event
type TransactionSummary struct {
	ID        uint      `json:"id"`
	Reference string    `json:"reference"`
	UserID    uint      `json:"user_id"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}
	midnight := clock.StartOfDay(s.clock.Now(), s.loc).UTC()
	active := true
	vip1, vip2 := 1, 2

	users := []struct {
		dest   *int64
		filter repositories.UserFilter
	}{
		{&data.TotalUsers, repositories.UserFilter{}},
		{&data.ActiveUsers, repositories.UserFilter{Active: &active}},
		{&data.NewUsersToday, repositories.UserFilter{Since: &midnight}},
		{&data.VIP1Users, repositories.UserFilter{VIPLevel: &vip1}},
		{&data.VIP2Users, repositories.UserFilter{VIPLevel: &vip2}},
	}
	for _, u := range users {
		n, err := s.store.Users.Count(ctx, u.filter)
		if err != nil {
			return nil, err
		}
		*u.dest = n
	}

	var err error
	if data.TotalProducts, err = s.store.Products.Count(ctx); err != nil {
		return nil, err
	}
	if data.ActiveHoldings, err = s.store.UserProducts.CountActive(ctx); err != nil {
		return nil, err
	}
	if data.PendingRecharges, err = s.store.Transactions.Count(ctx, txFilter(domain.TxRecharge, domain.TxPending, nil)); err != nil {
		return nil, err
	}
	if data.PendingWithdrawals, err = s.store.Transactions.Count(ctx, txFilter(domain.TxWithdraw, domain.TxPending, nil)); err != nil {
		return nil, err
	}

	sums := []struct {
		dest   *float64
		filter repositories.TransactionFilter
	}{
		{&data.PendingRechargeSum, txFilter(domain.TxRecharge, domain.TxPending, nil)},
		{&data.PendingWithdrawSum, txFilter(domain.TxWithdraw, domain.TxPending, nil)},
		{&data.ApprovedRecharges, txFilter(domain.TxRecharge, domain.TxApproved, nil)},
		{&data.ApprovedWithdrawal, txFilter(domain.TxWithdraw, domain.TxApproved, nil)},
		{&data.PurchaseVolume, txFilter(domain.TxPurchase, domain.TxCompleted, nil)},
		{&data.EarningsPaid, txFilter(domain.TxEarn, domain.TxCompleted, nil)},
		{&data.BonusesPaid, txFilter(domain.TxReferralPurchaseBonus, domain.TxCompleted, nil)},
		{&data.PrizesPaid, txFilter(domain.TxPrizeSmash, domain.TxCompleted, nil)},
		{&data.PurchasesToday, txFilter(domain.TxPurchase, domain.TxCompleted, &midnight)},
		{&data.EarningsToday, txFilter(domain.TxEarn, domain.TxCompleted, &midnight)},
	}
	for _, sm := range sums {
		total, err := s.store.Transactions.Sum(ctx, sm.filter)
		if err != nil {
			return nil, err
		}
		*sm.dest = total
	}

	recent, _, err := s.store.Transactions.List(ctx, repositories.TransactionFilter{}, 0, 10)
	if err != nil {
		return nil, err
	}
	data.RecentTransactions = make([]TransactionSummary, len(recent))
	for i, t := range recent {
		data.RecentTransactions[i] = TransactionSummary{
			ID:        t.ID,
			Reference: t.Reference,
			UserID:    t.UserID,
			Type:      t.Type,
			Amount:    t.Amount,
			Status:    t.Status,
			CreatedAt: t.CreatedAt,
		}
	}

	return data, nil
}

func txFilter(t domain.TransactionType, st domain.TransactionStatus, since *time.Time) repositories.TransactionFilter {
	return repositories.TransactionFilter{Type: string(t), Status: string(st), Since: since}
}
