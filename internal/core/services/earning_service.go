package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"rewardhub/internal/adapters/persistence/models"
	"rewardhub/internal/adapters/persistence/repositories"
	"rewardhub/internal/core/domain"
	"rewardhub/internal/core/rewards"
	"rewardhub/internal/pkg/clock"
)

// EarningService runs the daily earning window of purchased products
type EarningService struct {
	store *repositories.Store
	clock clock.Clock
}

// NewEarningService creates a new earning service
func NewEarningService(store *repositories.Store, clk clock.Clock) *EarningService {
	return &EarningService{store: store, clock: clk}
}

// EarnWindowView is a holding together with its live window status
type EarnWindowView struct {
	UserProductID uint                 `json:"user_product_id"`
	ProductName   string               `json:"product_name"`
	EarnAmount    float64              `json:"earn_amount"`
	TotalEarnings float64              `json:"total_earnings"`
	EarningCap    float64              `json:"earning_cap"`
	ExpiresAt     time.Time            `json:"expires_at"`
	Window        rewards.WindowStatus `json:"window"`
}

// HoldingView is a purchased product as shown to its owner
type HoldingView struct {
	*models.UserProduct
	ExpiresAt time.Time            `json:"expires_at"`
	Window    rewards.WindowStatus `json:"window"`
}

// ClaimResult is a successful earning claim
type ClaimResult struct {
	UserProductID  uint      `json:"user_product_id"`
	AmountCredited float64   `json:"amount_credited"`
	TotalEarnings  float64   `json:"total_earnings"`
	NextWindowAt   time.Time `json:"next_window_at"`
	Reference      string    `json:"reference"`
}

// GetEarnWindowStatus reports where now falls in the holding's earning cycle
func (s *EarningService) GetEarnWindowStatus(ctx context.Context, userID, userProductID uint) (*EarnWindowView, error) {
	up, err := s.store.UserProducts.GetForUser(ctx, userProductID, userID)
	if err != nil {
		return nil, notFound(err)
	}

	sched := up.Schedule()
	return &EarnWindowView{
		UserProductID: up.ID,
		ProductName:   up.ProductName,
		EarnAmount:    up.EarnAmount,
		TotalEarnings: up.TotalEarnings,
		EarningCap:    up.EarningCap,
		ExpiresAt:     sched.Expiry,
		Window:        sched.Status(s.clock.Now()),
	}, nil
}

// ClaimEarnWindow pays the holding's earn amount for the open window.
// The anchor advance, wallet credit and ledger entry commit together,
// and the version guard lets only one of two concurrent claims through.
func (s *EarningService) ClaimEarnWindow(ctx context.Context, userID, userProductID uint) (*ClaimResult, error) {
	now := s.clock.Now()
	var result *ClaimResult

	err := s.store.Transaction(ctx, func(st *repositories.Store) error {
		up, err := st.UserProducts.GetForUser(ctx, userProductID, userID)
		if err != nil {
			return notFound(err)
		}
		if up.Status == string(domain.HoldingExpired) {
			return domain.ErrProductExpired
		}

		claim, err := rewards.PlanClaim(up.Schedule(), now)
		if err != nil {
			return err
		}

		if err := st.UserProducts.ApplyClaim(ctx, up.ID, up.Version, claim.NextAnchor, claim.Amount); err != nil {
			return err
		}
		if err := st.Wallets.Credit(ctx, userID, repositories.Earning(claim.Amount)); err != nil {
			return err
		}

		upID := up.ID
		tx := &models.Transaction{
			UserID:        userID,
			Type:          string(domain.TxEarn),
			Amount:        claim.Amount,
			Status:        string(domain.TxCompleted),
			UserProductID: &upID,
			Note:          fmt.Sprintf("%s daily earning", up.ProductName),
			CreatedAt:     now,
		}
		if err := st.Transactions.Create(ctx, tx); err != nil {
			return err
		}

		result = &ClaimResult{
			UserProductID:  up.ID,
			AmountCredited: claim.Amount,
			TotalEarnings:  up.TotalEarnings + claim.Amount,
			NextWindowAt:   claim.NextAnchor,
			Reference:      tx.Reference,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("💰 Earn claimed: user %d holding %d amount %.2f", userID, userProductID, result.AmountCredited)
	return result, nil
}

// ListMyProducts lists the user's holdings, marking any that have run out
func (s *EarningService) ListMyProducts(ctx context.Context, userID uint) ([]*HoldingView, error) {
	list, err := s.store.UserProducts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	views := make([]*HoldingView, 0, len(list))
	for _, up := range list {
		sched := up.Schedule()
		if up.Status == string(domain.HoldingActive) && sched.Expired(now) {
			if err := s.store.UserProducts.MarkExpired(ctx, up.ID); err != nil {
				return nil, err
			}
			up.Status = string(domain.HoldingExpired)
		}
		views = append(views, &HoldingView{
			UserProduct: up,
			ExpiresAt:   sched.Expiry,
			Window:      sched.Status(now),
		})
	}
	return views, nil
}

// ExpireHoldings marks every active holding past its validity as expired
func (s *EarningService) ExpireHoldings(ctx context.Context) (int, error) {
	list, err := s.store.UserProducts.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	expired := 0
	for _, up := range list {
		if !up.Schedule().Expired(now) {
			continue
		}
		if err := s.store.UserProducts.MarkExpired(ctx, up.ID); err != nil {
			return expired, err
		}
		expired++
	}

	if expired > 0 {
		log.Printf("⏰ Expired %d holdings", expired)
	}
	return expired, nil
}
