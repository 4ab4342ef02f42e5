package services

import (
	"context"
	"testing"

	"rewardhub/internal/adapters/persistence/repositories"
	"rewardhub/internal/core/domain"

	"github.com/stretchr/testify/require"
)

func TestSettingsDefaultsAndUpdate(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewSettingsService(e.store, e.cfg)

	s, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, 200.0, s.ReferralBonus)
	require.Equal(t, 10.0, s.WithdrawVatPercent)

	vat := 5.0
	currency := " usd "
	updated, err := svc.Update(ctx, &UpdateSettingsInput{WithdrawVatPercent: &vat, Currency: &currency})
	require.NoError(t, err)
	require.Equal(t, "USD", updated.Currency)
	require.Equal(t, 200.0, updated.ReferralBonus)

	s, err = svc.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, 5.0, s.WithdrawVatPercent)

	bad := 101.0
	_, err = svc.Update(ctx, &UpdateSettingsInput{WithdrawVatPercent: &bad})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	negative := -1.0
	_, err = svc.Update(ctx, &UpdateSettingsInput{ReferralBonus: &negative})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWithdrawUsesSavedVAT(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	vat := 20.0
	_, err := NewSettingsService(e.store, e.cfg).Update(ctx, &UpdateSettingsInput{WithdrawVatPercent: &vat})
	require.NoError(t, err)

	u := e.user(t, nil)
	e.fund(t, u.ID, repositories.Earning(500))

	tx, err := NewWalletService(e.store, e.clock, nil, e.cfg).RequestWithdraw(ctx, u.ID, &WithdrawInput{Amount: 500, Method: "nagad", AccountNumber: "018"})
	require.NoError(t, err)
	require.Equal(t, 100.0, tx.VatTax)
	require.Equal(t, 400.0, tx.NetAmount)
}
