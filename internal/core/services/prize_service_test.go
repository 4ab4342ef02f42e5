package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"rewardhub/internal/adapters/persistence/models"
	"rewardhub/internal/adapters/persistence/repositories"
	"rewardhub/internal/core/domain"
	"rewardhub/internal/core/rewards"

	"github.com/stretchr/testify/require"
)

func fixedDraw(v int) rewards.Draw {
	return func(int) (int, error) { return v, nil }
}

// referAndBuy registers n users under referrerID at the mock time and has
// each make a first purchase
func (e *testEnv) referAndBuy(t *testing.T, referrerID uint, n int) []*models.User {
	t.Helper()
	p := e.product(t, 100, 10, 1000, 30)
	users := make([]*models.User, n)
	for i := range users {
		users[i] = e.user(t, &referrerID)
		e.fund(t, users[i].ID, repositories.WalletDelta{RechargeWallet: 100})
		e.purchase(t, users[i].ID, p.ID)
	}
	return users
}

func TestSmashPrizeLockedBelowThreshold(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewPrizeService(e.store, e.clock, time.UTC, fixedDraw(0))

	referrer := e.user(t, nil)
	e.referAndBuy(t, referrer.ID, 2)

	// registered today but never purchased
	e.user(t, &referrer.ID)

	el, err := svc.GetPrizeEligibility(ctx, referrer.ID)
	require.NoError(t, err)
	require.Equal(t, 2, el.SuccessfulReferrals)
	require.False(t, el.Unlocked)
	require.Len(t, el.Prizes, len(rewards.DefaultPrizeTable))

	_, err = svc.SmashPrize(ctx, referrer.ID)
	require.ErrorIs(t, err, domain.ErrPrizeLocked)
	require.EqualValues(t, 0, e.countTx(t, referrer.ID, domain.TxPrizeSmash))
}

func TestSmashPrizeOncePerDay(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewPrizeService(e.store, e.clock, time.UTC, fixedDraw(80))

	referrer := e.user(t, nil)
	e.referAndBuy(t, referrer.ID, 3)

	el, err := svc.GetPrizeEligibility(ctx, referrer.ID)
	require.NoError(t, err)
	require.True(t, el.CanSmash)

	// three referral bonuses of 200 already landed
	before := e.wallet(t, referrer.ID)
	require.Equal(t, 600.0, before.BalanceWallet)

	res, err := svc.SmashPrize(ctx, referrer.ID)
	require.NoError(t, err)
	require.Equal(t, 20.0, res.Amount)
	require.Equal(t, "cash", res.Type)
	require.NotEmpty(t, res.Reference)

	w := e.wallet(t, referrer.ID)
	require.Equal(t, 620.0, w.BalanceWallet)
	require.Equal(t, before.TotalEarnings, w.TotalEarnings)
	require.EqualValues(t, 1, e.countTx(t, referrer.ID, domain.TxPrizeSmash))

	e.clock.Advance(2 * time.Hour)
	_, err = svc.SmashPrize(ctx, referrer.ID)
	var cooldown *domain.PrizeCooldownError
	require.True(t, errors.As(err, &cooldown))
	require.ErrorIs(t, err, domain.ErrPrizeAlreadySmashed)
	require.WithinDuration(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), cooldown.NextAt, 0)
	require.Equal(t, 13, cooldown.Remaining.Hours)

	require.Equal(t, 620.0, e.wallet(t, referrer.ID).BalanceWallet)
}

func TestSmashPrizeResetsAtMidnightButNeedsFreshReferrals(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewPrizeService(e.store, e.clock, time.UTC, fixedDraw(0))

	referrer := e.user(t, nil)
	e.referAndBuy(t, referrer.ID, 3)

	_, err := svc.SmashPrize(ctx, referrer.ID)
	require.NoError(t, err)

	// yesterday's referrals do not carry over
	e.clock.Set(time.Date(2026, 10, 20, 0, 1, 0, 0, time.UTC))
	_, err = svc.SmashPrize(ctx, referrer.ID)
	require.ErrorIs(t, err, domain.ErrPrizeLocked)

	e.referAndBuy(t, referrer.ID, 3)
	res, err := svc.SmashPrize(ctx, referrer.ID)
	require.NoError(t, err)
	require.Equal(t, 5.0, res.Amount)
	require.EqualValues(t, 2, e.countTx(t, referrer.ID, domain.TxPrizeSmash))
}

func TestSmashPrizeIgnoresReferralsRegisteredYesterday(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewPrizeService(e.store, e.clock, time.UTC, fixedDraw(0))

	referrer := e.user(t, nil)

	e.clock.Set(time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC))
	late := e.user(t, &referrer.ID)

	e.clock.Set(t0)
	p := e.product(t, 100, 10, 1000, 30)
	e.fund(t, late.ID, repositories.WalletDelta{RechargeWallet: 100})
	e.purchase(t, late.ID, p.ID)
	e.referAndBuy(t, referrer.ID, 2)

	el, err := svc.GetPrizeEligibility(ctx, referrer.ID)
	require.NoError(t, err)
	require.Equal(t, 2, el.SuccessfulReferrals)

	_, err = svc.SmashPrize(ctx, referrer.ID)
	require.ErrorIs(t, err, domain.ErrPrizeLocked)
}

func TestSmashPrizeTryAgainStillUsesTheDay(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewPrizeService(e.store, e.clock, time.UTC, fixedDraw(99))

	referrer := e.user(t, nil)
	e.referAndBuy(t, referrer.ID, 3)

	res, err := svc.SmashPrize(ctx, referrer.ID)
	require.NoError(t, err)
	require.Zero(t, res.Amount)
	require.Equal(t, "try_again", res.Type)
	require.Empty(t, res.Reference)
	require.EqualValues(t, 0, e.countTx(t, referrer.ID, domain.TxPrizeSmash))

	_, err = svc.SmashPrize(ctx, referrer.ID)
	require.ErrorIs(t, err, domain.ErrPrizeAlreadySmashed)
}

func TestSmashPrizeUnknownUser(t *testing.T) {
	e := setup(t)
	_, err := NewPrizeService(e.store, e.clock, time.UTC, nil).SmashPrize(context.Background(), 999)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
