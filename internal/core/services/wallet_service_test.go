package services

import (
	"context"
	"testing"

	"rewardhub/internal/adapters/persistence/repositories"
	"rewardhub/internal/core/domain"
	"rewardhub/internal/pkg/pagination"

	"github.com/stretchr/testify/require"
)

func TestRechargeApproveCreditsOnce(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	notifier := &recordingNotifier{}
	svc := NewWalletService(e.store, e.clock, notifier, e.cfg)

	u := e.user(t, nil)
	admin := e.user(t, nil)

	_, err := svc.RequestRecharge(ctx, u.ID, &RechargeInput{Amount: 50, Method: "bkash"})
	require.ErrorIs(t, err, domain.ErrBelowMinimum)

	_, err = svc.RequestRecharge(ctx, u.ID, &RechargeInput{Amount: 500})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	tx, err := svc.RequestRecharge(ctx, u.ID, &RechargeInput{Amount: 500, Method: "bkash", AccountNumber: "01700000000"})
	require.NoError(t, err)
	require.Equal(t, string(domain.TxPending), tx.Status)
	require.NotEmpty(t, tx.Reference)
	require.Equal(t, []string{tx.Reference}, notifier.recharges)

	// pending recharges do not move money
	require.Zero(t, e.wallet(t, u.ID).RechargeWallet)

	approved, err := svc.Approve(ctx, admin.ID, tx.ID, &ReviewInput{Note: " ok "})
	require.NoError(t, err)
	require.Equal(t, string(domain.TxApproved), approved.Status)
	require.Equal(t, "ok", approved.Note)
	require.NotNil(t, approved.ReviewedBy)
	require.Equal(t, admin.ID, *approved.ReviewedBy)
	require.Equal(t, 500.0, e.wallet(t, u.ID).RechargeWallet)

	_, err = svc.Approve(ctx, admin.ID, tx.ID, nil)
	require.ErrorIs(t, err, domain.ErrTransactionSettled)
	_, err = svc.Reject(ctx, admin.ID, tx.ID, nil)
	require.ErrorIs(t, err, domain.ErrTransactionSettled)
	require.Equal(t, 500.0, e.wallet(t, u.ID).RechargeWallet)
}

func TestRechargeRejectLeavesWallet(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewWalletService(e.store, e.clock, nil, e.cfg)

	u := e.user(t, nil)
	tx, err := svc.RequestRecharge(ctx, u.ID, &RechargeInput{Amount: 100, Method: "nagad"})
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, 1, tx.ID, &ReviewInput{Note: "no proof"})
	require.NoError(t, err)
	require.Equal(t, string(domain.TxRejected), rejected.Status)
	require.Zero(t, e.wallet(t, u.ID).RechargeWallet)
}

func TestWithdrawWithholdsVAT(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	notifier := &recordingNotifier{}
	svc := NewWalletService(e.store, e.clock, notifier, e.cfg)

	u := e.user(t, nil)
	e.fund(t, u.ID, repositories.Earning(1000))

	tx, err := svc.RequestWithdraw(ctx, u.ID, &WithdrawInput{Amount: 250, Method: "bkash", AccountNumber: "01700000000"})
	require.NoError(t, err)
	require.Equal(t, 25.0, tx.VatTax)
	require.Equal(t, 225.0, tx.NetAmount)
	require.Len(t, notifier.withdraws, 1)

	// debited up front
	require.Equal(t, 750.0, e.wallet(t, u.ID).BalanceWallet)

	_, err = svc.Approve(ctx, 1, tx.ID, nil)
	require.NoError(t, err)
	w := e.wallet(t, u.ID)
	require.Equal(t, 750.0, w.BalanceWallet)
	require.Equal(t, 250.0, w.TotalWithdrawals)
}

func TestWithdrawRejectRefunds(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewWalletService(e.store, e.clock, nil, e.cfg)

	u := e.user(t, nil)
	e.fund(t, u.ID, repositories.Earning(300))

	tx, err := svc.RequestWithdraw(ctx, u.ID, &WithdrawInput{Amount: 300, Method: "bkash", AccountNumber: "017"})
	require.NoError(t, err)
	require.Zero(t, e.wallet(t, u.ID).BalanceWallet)

	_, err = svc.Reject(ctx, 1, tx.ID, nil)
	require.NoError(t, err)
	w := e.wallet(t, u.ID)
	require.Equal(t, 300.0, w.BalanceWallet)
	require.Zero(t, w.TotalWithdrawals)
}

func TestWithdrawInsufficientBalance(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	notifier := &recordingNotifier{}
	svc := NewWalletService(e.store, e.clock, notifier, e.cfg)

	u := e.user(t, nil)
	e.fund(t, u.ID, repositories.WalletDelta{BalanceWallet: 150, RechargeWallet: 1000})

	_, err := svc.RequestWithdraw(ctx, u.ID, &WithdrawInput{Amount: 200, Method: "bkash", AccountNumber: "017"})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	_, err = svc.RequestWithdraw(ctx, u.ID, &WithdrawInput{Amount: 99, Method: "bkash", AccountNumber: "017"})
	require.ErrorIs(t, err, domain.ErrBelowMinimum)

	require.Equal(t, 150.0, e.wallet(t, u.ID).BalanceWallet)
	require.EqualValues(t, 0, e.countTx(t, u.ID, domain.TxWithdraw))
	require.Empty(t, notifier.withdraws)
}

func TestReviewRejectsNonReviewableTypes(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewWalletService(e.store, e.clock, nil, e.cfg)

	u := e.user(t, nil)
	e.fund(t, u.ID, repositories.WalletDelta{RechargeWallet: 100})
	p := e.product(t, 100, 10, 100, 10)
	res := e.purchase(t, u.ID, p.ID)

	list, _, err := e.store.Transactions.List(ctx, repositories.TransactionFilter{UserID: u.ID, Type: string(domain.TxPurchase)}, 0, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, res.UserProductID, *list[0].UserProductID)

	_, err = svc.Approve(ctx, 1, list[0].ID, nil)
	require.ErrorIs(t, err, domain.ErrTransactionSettled)

	_, err = svc.Approve(ctx, 1, 9999, nil)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetWalletAndListTransactions(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewWalletService(e.store, e.clock, nil, e.cfg)

	w, err := svc.GetWallet(ctx, 777)
	require.NoError(t, err)
	require.Zero(t, w.BalanceWallet)

	u := e.user(t, nil)
	for i := 0; i < 3; i++ {
		_, err := svc.RequestRecharge(ctx, u.ID, &RechargeInput{Amount: 100, Method: "bkash"})
		require.NoError(t, err)
	}

	page, err := svc.ListTransactions(ctx, u.ID, "", pagination.NewParams(1, 2))
	require.NoError(t, err)
	require.Len(t, page.Transactions, 2)
	require.EqualValues(t, 3, page.Meta.Total)

	_, err = svc.ListTransactions(ctx, u.ID, "bogus", pagination.NewParams(1, 2))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRolloverDailyMovesIncome(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewWalletService(e.store, e.clock, nil, e.cfg)

	u := e.user(t, nil)
	e.fund(t, u.ID, repositories.Earning(40))

	n, err := svc.RolloverDaily(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	w := e.wallet(t, u.ID)
	require.Zero(t, w.IncomeToday)
	require.Equal(t, 40.0, w.IncomeYesterday)
	require.Equal(t, 40.0, w.BalanceWallet)
}
