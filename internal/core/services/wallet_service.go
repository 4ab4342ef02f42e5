package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"rewardhub/internal/adapters/persistence/models"
	"rewardhub/internal/adapters/persistence/repositories"
	"rewardhub/internal/config"
	"rewardhub/internal/core/domain"
	"rewardhub/internal/pkg/clock"
	"rewardhub/internal/pkg/money"
	"rewardhub/internal/pkg/pagination"

	"gorm.io/gorm"
)

// WalletService handles wallet balances, recharges and withdrawals
type WalletService struct {
	store    *repositories.Store
	clock    clock.Clock
	notifier AdminNotifier
	defaults models.Setting
}

// NewWalletService creates a new wallet service
func NewWalletService(store *repositories.Store, clk clock.Clock, notifier AdminNotifier, cfg *config.Config) *WalletService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &WalletService{
		store:    store,
		clock:    clk,
		notifier: notifier,
		defaults: models.DefaultSettings(cfg.Rewards.DefaultReferralBonus),
	}
}

// RechargeInput represents a recharge request
type RechargeInput struct {
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	AccountNumber string  `json:"account_number"`
	ProofImageURL string  `json:"proof_image_url"`
}

// WithdrawInput represents a withdrawal request
type WithdrawInput struct {
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	AccountNumber string  `json:"account_number"`
}

// ReviewInput represents an admin decision on a pending transaction
type ReviewInput struct {
	Note string `json:"note"`
}

// TransactionList is a page of ledger events
type TransactionList struct {
	Transactions []*models.Transaction `json:"transactions"`
	Meta         *pagination.Meta      `json:"meta"`
}

// GetWallet returns the user's wallet; a missing wallet reads as zeros
func (s *WalletService) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	wallet, err := s.store.Wallets.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Wallet{UserID: userID}, nil
		}
		return nil, err
	}
	return wallet, nil
}

// ListTransactions lists the ledger events of one user
func (s *WalletService) ListTransactions(ctx context.Context, userID uint, txType string, params *pagination.Params) (*TransactionList, error) {
	return s.list(ctx, repositories.TransactionFilter{UserID: userID, Type: txType}, params)
}

// ListAllTransactions lists ledger events for admins
func (s *WalletService) ListAllTransactions(ctx context.Context, filter repositories.TransactionFilter, params *pagination.Params) (*TransactionList, error) {
	return s.list(ctx, filter, params)
}

func (s *WalletService) list(ctx context.Context, filter repositories.TransactionFilter, params *pagination.Params) (*TransactionList, error) {
	if filter.Type != "" && !domain.TransactionType(filter.Type).Valid() {
		return nil, domain.ErrInvalidInput
	}

	list, total, err := s.store.Transactions.List(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}
	return &TransactionList{Transactions: list, Meta: pagination.GetMeta(params, total)}, nil
}

// RequestRecharge records a pending recharge for admin approval
func (s *WalletService) RequestRecharge(ctx context.Context, userID uint, input *RechargeInput) (*models.Transaction, error) {
	settings := loadSettings(ctx, s.store.Settings, s.defaults)

	amount := money.Round2(input.Amount)
	if amount <= 0 || strings.TrimSpace(input.Method) == "" {
		return nil, domain.ErrInvalidInput
	}
	if money.Less(amount, settings.MinRecharge) {
		return nil, domain.ErrBelowMinimum
	}

	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}

	tx := &models.Transaction{
		UserID:        userID,
		Type:          string(domain.TxRecharge),
		Amount:        amount,
		Status:        string(domain.TxPending),
		Method:        strings.TrimSpace(input.Method),
		AccountNumber: strings.TrimSpace(input.AccountNumber),
		ProofImageURL: strings.TrimSpace(input.ProofImageURL),
		CreatedAt:     s.clock.Now(),
	}
	if err := s.store.Transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	log.Printf("💰 Recharge requested: user %d amount %.2f ref %s", userID, amount, tx.Reference)
	s.notifier.NotifyRecharge(ctx, user, tx)
	return tx, nil
}

// RequestWithdraw debits the balance wallet and records a pending withdrawal.
// VAT is withheld from the amount paid out.
func (s *WalletService) RequestWithdraw(ctx context.Context, userID uint, input *WithdrawInput) (*models.Transaction, error) {
	settings := loadSettings(ctx, s.store.Settings, s.defaults)

	amount := money.Round2(input.Amount)
	if amount <= 0 || strings.TrimSpace(input.Method) == "" || strings.TrimSpace(input.AccountNumber) == "" {
		return nil, domain.ErrInvalidInput
	}
	if money.Less(amount, settings.MinWithdraw) {
		return nil, domain.ErrBelowMinimum
	}

	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}

	vat, net := money.VAT(amount, settings.WithdrawVatPercent)
	tx := &models.Transaction{
		UserID:        userID,
		Type:          string(domain.TxWithdraw),
		Amount:        amount,
		Status:        string(domain.TxPending),
		VatTax:        vat,
		NetAmount:     net,
		Method:        strings.TrimSpace(input.Method),
		AccountNumber: strings.TrimSpace(input.AccountNumber),
		CreatedAt:     s.clock.Now(),
	}

	err = s.store.Transaction(ctx, func(st *repositories.Store) error {
		if err := st.Wallets.DebitBalance(ctx, userID, amount); err != nil {
			return err
		}
		return st.Transactions.Create(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("💰 Withdraw requested: user %d amount %.2f (vat %.2f) ref %s", userID, amount, vat, tx.Reference)
	s.notifier.NotifyWithdraw(ctx, user, tx)
	return tx, nil
}

// Approve settles a pending recharge or withdrawal
func (s *WalletService) Approve(ctx context.Context, adminID, txID uint, input *ReviewInput) (*models.Transaction, error) {
	return s.review(ctx, adminID, txID, domain.TxApproved, input)
}

// Reject declines a pending recharge or withdrawal; withdrawals are refunded
func (s *WalletService) Reject(ctx context.Context, adminID, txID uint, input *ReviewInput) (*models.Transaction, error) {
	return s.review(ctx, adminID, txID, domain.TxRejected, input)
}

func (s *WalletService) review(ctx context.Context, adminID, txID uint, status domain.TransactionStatus, input *ReviewInput) (*models.Transaction, error) {
	now := s.clock.Now()
	var reviewed *models.Transaction

	err := s.store.Transaction(ctx, func(st *repositories.Store) error {
		tx, err := st.Transactions.GetByID(ctx, txID)
		if err != nil {
			return notFound(err)
		}
		if !tx.IsPending() {
			return domain.ErrTransactionSettled
		}

		switch domain.TransactionType(tx.Type) {
		case domain.TxRecharge:
			if status == domain.TxApproved {
				err = st.Wallets.Credit(ctx, tx.UserID, repositories.WalletDelta{RechargeWallet: tx.Amount})
			}
		case domain.TxWithdraw:
			if status == domain.TxApproved {
				err = st.Wallets.Credit(ctx, tx.UserID, repositories.WalletDelta{TotalWithdrawals: tx.Amount})
			} else {
				err = st.Wallets.Credit(ctx, tx.UserID, repositories.WalletDelta{BalanceWallet: tx.Amount})
			}
		default:
			return fmt.Errorf("%w: %s transactions are not reviewable", domain.ErrInvalidInput, tx.Type)
		}
		if err != nil {
			return err
		}

		note := ""
		if input != nil {
			note = strings.TrimSpace(input.Note)
		}
		if err := st.Transactions.Review(ctx, tx.ID, string(status), adminID, note, now); err != nil {
			return err
		}

		reviewed, err = st.Transactions.GetByID(ctx, tx.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Transaction %s %s by admin %d (%s %.2f)", reviewed.Reference, status, adminID, reviewed.Type, reviewed.Amount)
	return reviewed, nil
}

// RolloverDaily shifts today's income into yesterday for every wallet
func (s *WalletService) RolloverDaily(ctx context.Context) (int64, error) {
	n, err := s.store.Wallets.RolloverDaily(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}
	log.Printf("🔄 Daily wallet rollover: %d wallets", n)
	return n, nil
}

// notFound maps a missing row to the domain error
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
