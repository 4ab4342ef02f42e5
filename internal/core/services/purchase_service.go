package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"rewardhub/internal/adapters/persistence/models"
	"rewardhub/internal/adapters/persistence/repositories"
	"rewardhub/internal/config"
	"rewardhub/internal/core/domain"
	"rewardhub/internal/core/rewards"
	"rewardhub/internal/pkg/clock"
	"rewardhub/internal/pkg/money"

	"gorm.io/gorm"
)

// PurchaseService turns recharge funds into an earning product
type PurchaseService struct {
	store    *repositories.Store
	clock    clock.Clock
	defaults models.Setting
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(store *repositories.Store, clk clock.Clock, cfg *config.Config) *PurchaseService {
	return &PurchaseService{
		store:    store,
		clock:    clk,
		defaults: models.DefaultSettings(cfg.Rewards.DefaultReferralBonus),
	}
}

// PurchaseResult is the outcome of a purchase
type PurchaseResult struct {
	UserProductID     uint                `json:"user_product_id"`
	AccountActivated  bool                `json:"account_activated"`
	FirstPurchase     bool                `json:"first_purchase"`
	ReferralBonusPaid bool                `json:"referral_bonus_paid"`
	UserProduct       *models.UserProduct `json:"user_product"`
}

// PurchaseProduct buys a product with the recharge wallet.
//
// The debit, activation, holding, ledger entries and the referrer's one-time
// bonus commit in a single database transaction; any failure leaves nothing
// behind.
func (s *PurchaseService) PurchaseProduct(ctx context.Context, userID, productID uint) (*PurchaseResult, error) {
	now := s.clock.Now()
	result := &PurchaseResult{}

	err := s.store.Transaction(ctx, func(st *repositories.Store) error {
		// 1. Product must be on offer
		product, err := st.Products.GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProductUnavailable
			}
			return err
		}
		if product.Deleted {
			return domain.ErrProductUnavailable
		}
		validity := rewards.ValidityDays(product.ValidityDays, product.ValidateDate, now)
		if validity <= 0 {
			return domain.ErrProductUnavailable
		}

		// 2. Enough recharge funds
		wallet, err := st.Wallets.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrInsufficientBalance
			}
			return err
		}
		if money.Less(wallet.RechargeWallet, product.Price) {
			return domain.ErrInsufficientBalance
		}

		user, err := st.Users.GetByID(ctx, userID)
		if err != nil {
			return notFound(err)
		}

		// 3. First purchase?
		owned, err := st.UserProducts.ExistsForUser(ctx, userID)
		if err != nil {
			return err
		}
		result.FirstPurchase = !owned

		// 4. Debit
		if product.Price > 0 {
			if err := st.Wallets.DebitRecharge(ctx, userID, product.Price); err != nil {
				return err
			}
		}

		// 5-6. Activation and first purchase stamp
		if result.FirstPurchase {
			activated, err := st.Users.ActivateIfInactive(ctx, userID, now)
			if err != nil {
				return err
			}
			result.AccountActivated = activated

			if _, err := st.Users.StampFirstPurchase(ctx, userID, now); err != nil {
				return err
			}
		}

		// 7. Holding
		up := &models.UserProduct{
			UserID:            userID,
			ProductID:         product.ID,
			ProductName:       product.Name,
			Price:             product.Price,
			Description:       product.Description,
			ImageURL:          product.ImageURL,
			PurchaseDate:      now,
			Status:            string(domain.HoldingActive),
			ValidityDays:      validity,
			ValidateDate:      product.ValidateDate,
			EarnAmount:        product.EarnAmount,
			EarningCap:        product.TotalEarning,
			EarnWindowStartAt: &now,
			CreatedAt:         now,
		}
		if err := st.UserProducts.Create(ctx, up); err != nil {
			return err
		}
		result.UserProductID = up.ID
		result.UserProduct = up

		// 8. Ledger
		upID := up.ID
		if err := st.Transactions.Create(ctx, &models.Transaction{
			UserID:        userID,
			Type:          string(domain.TxPurchase),
			Amount:        product.Price,
			Status:        string(domain.TxCompleted),
			UserProductID: &upID,
			Note:          product.Name,
			CreatedAt:     now,
		}); err != nil {
			return err
		}

		// 9. Referral bonus, at most once per referred user
		if user.ReferredBy != nil && result.FirstPurchase && !user.ReferralPurchaseBonusGranted {
			paid, err := s.payReferralBonus(ctx, st, user)
			if err != nil {
				return err
			}
			result.ReferralBonusPaid = paid
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🛒 Purchase: user %d product %d holding %d (first=%t, activated=%t)",
		userID, productID, result.UserProductID, result.FirstPurchase, result.AccountActivated)
	return result, nil
}

// payReferralBonus credits the referrer if this call flips the granted flag
func (s *PurchaseService) payReferralBonus(ctx context.Context, st *repositories.Store, user *models.User) (bool, error) {
	granted, err := st.Users.MarkReferralBonusGranted(ctx, user.ID)
	if err != nil || !granted {
		return false, err
	}

	bonus := loadSettings(ctx, st.Settings, s.defaults).ReferralBonus
	if bonus <= 0 {
		return false, nil
	}

	referrerID := *user.ReferredBy
	if err := st.Wallets.Credit(ctx, referrerID, repositories.Earning(bonus)); err != nil {
		return false, err
	}

	relatedID := user.ID
	if err := st.Transactions.Create(ctx, &models.Transaction{
		UserID:        referrerID,
		Type:          string(domain.TxReferralPurchaseBonus),
		Amount:        bonus,
		Status:        string(domain.TxCompleted),
		RelatedUserID: &relatedID,
		Note:          fmt.Sprintf("first purchase by %s", user.Name),
		CreatedAt:     s.clock.Now(),
	}); err != nil {
		return false, err
	}

	log.Printf("🎁 Referral bonus %.2f paid to user %d for user %d", bonus, referrerID, user.ID)
	return true, nil
}
