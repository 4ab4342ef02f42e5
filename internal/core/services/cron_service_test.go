package services

import (
	"context"
	"testing"
	"time"

	"rewardhub/internal/adapters/persistence/repositories"
	"rewardhub/internal/core/domain"

	"github.com/stretchr/testify/require"
)

func TestCronServiceRegistersJobs(t *testing.T) {
	e := setup(t)
	wallets := NewWalletService(e.store, e.clock, nil, e.cfg)
	earnings := NewEarningService(e.store, e.clock)

	svc := NewCronService(e.store, e.clock, wallets, earnings, time.UTC)
	require.NoError(t, svc.Register())
	require.Len(t, svc.Entries(), 3)
}

func TestCronJobsRun(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	wallets := NewWalletService(e.store, e.clock, nil, e.cfg)
	earnings := NewEarningService(e.store, e.clock)
	svc := NewCronService(e.store, e.clock, wallets, earnings, time.UTC)

	u := e.user(t, nil)
	e.fund(t, u.ID, repositories.WalletDelta{RechargeWallet: 200})
	short := e.product(t, 100, 10, 1000, 1)
	long := e.product(t, 100, 10, 1000, 30)
	expiring := e.purchase(t, u.ID, short.ID).UserProduct
	e.purchase(t, u.ID, long.ID)
	e.fund(t, u.ID, repositories.Earning(30))

	e.clock.Advance(25 * time.Hour)
	require.NoError(t, svc.RunExpirySweep(ctx))

	up, err := e.store.UserProducts.GetForUser(ctx, expiring.ID, u.ID)
	require.NoError(t, err)
	require.Equal(t, string(domain.HoldingExpired), up.Status)

	active, err := e.store.UserProducts.CountActive(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, active)

	require.NoError(t, svc.RunDailyRollover(ctx))
	w := e.wallet(t, u.ID)
	require.Zero(t, w.IncomeToday)
	require.Equal(t, 30.0, w.IncomeYesterday)

	require.NoError(t, svc.RunTokenCleanup(ctx))
}

func TestCronTokenCleanupUsesClock(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	auth := NewAuthService(e.store, e.clock, e.cfg)
	svc := NewCronService(e.store, e.clock, NewWalletService(e.store, e.clock, nil, e.cfg), NewEarningService(e.store, e.clock), time.UTC)

	old := register(t, auth, "01711111111", "")

	// tokens live RefreshTokenDays from issue
	e.clock.Advance(8 * 24 * time.Hour)
	fresh, err := auth.Login(ctx, &LoginInput{Identifier: "01711111111", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.RunTokenCleanup(ctx))

	_, err = auth.RefreshToken(ctx, old.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = auth.RefreshToken(ctx, fresh.RefreshToken)
	require.NoError(t, err)
}
