package rewards

import (
	"errors"
	"testing"
	"time"

	"rewardhub/internal/core/domain"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func TestEvaluateWindowStates(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		state     WindowState
		canEarn   bool
		start     time.Time
		remaining time.Duration
	}{
		{"before anchor", t0.Add(-2 * time.Hour), WindowCooldown, false, t0, 2 * time.Hour},
		{"at anchor", t0, WindowOpen, true, t0, 3 * time.Hour},
		{"inside window", t0.Add(90 * time.Minute), WindowOpen, true, t0, 90 * time.Minute},
		{"window end inclusive", t0.Add(3 * time.Hour), WindowOpen, true, t0, 0},
		{"just after end", t0.Add(3*time.Hour + time.Second), WindowMissed, false, t0, 21*time.Hour - time.Second},
		{"next cycle open", t0.Add(25 * time.Hour), WindowOpen, true, t0.Add(24 * time.Hour), 2 * time.Hour},
		{"third cycle missed", t0.Add(52 * time.Hour), WindowMissed, false, t0.Add(48 * time.Hour), 20 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := EvaluateWindow(t0, tt.now)
			require.Equal(t, tt.state, st.State)
			require.Equal(t, tt.canEarn, st.CanEarn)
			require.Equal(t, tt.start, st.WindowStart)
			require.Equal(t, tt.start.Add(EarnWindow), st.WindowEnd)
			require.Equal(t, tt.remaining.Milliseconds(), st.Remaining.Millis)
		})
	}
}

func TestEvaluateWindowMonotonic(t *testing.T) {
	prev := EvaluateWindow(t0, t0)
	for now := t0; now.Before(t0.Add(10 * EarnCycle)); now = now.Add(17 * time.Minute) {
		st := EvaluateWindow(t0, now)
		require.False(t, st.WindowStart.Before(prev.WindowStart), "window start moved backwards at %s", now)
		require.False(t, st.WindowStart.After(now))
		require.True(t, now.Before(st.WindowStart.Add(EarnCycle)))
		prev = st
	}
}

func TestPlanClaimScenario(t *testing.T) {
	s := Schedule{
		Anchor:     t0,
		Expiry:     t0.Add(45 * 24 * time.Hour),
		EarnAmount: 10,
		Cap:        20,
	}

	c, err := PlanClaim(s, t0.Add(3*time.Hour))
	require.NoError(t, err)
	require.Equal(t, 10.0, c.Amount)
	require.Equal(t, t0.Add(24*time.Hour), c.NextAnchor)
	s.Anchor, s.Earned = c.NextAnchor, s.Earned+c.Amount

	c, err = PlanClaim(s, t0.Add(25*time.Hour))
	require.NoError(t, err)
	s.Anchor, s.Earned = c.NextAnchor, s.Earned+c.Amount
	require.Equal(t, 20.0, s.Earned)

	_, err = PlanClaim(s, t0.Add(49*time.Hour))
	require.ErrorIs(t, err, domain.ErrMaxEarningReached)
}

func TestPlanClaimSecondClaimInSameWindowCoolsDown(t *testing.T) {
	s := Schedule{Anchor: t0, Expiry: t0.Add(30 * 24 * time.Hour), EarnAmount: 5}

	c, err := PlanClaim(s, t0.Add(time.Hour))
	require.NoError(t, err)
	s.Anchor = c.NextAnchor

	_, err = PlanClaim(s, t0.Add(2*time.Hour))
	require.ErrorIs(t, err, domain.ErrEarningNotAvailable)

	var werr *domain.WindowError
	require.True(t, errors.As(err, &werr))
	require.Equal(t, 22, werr.Remaining.Hours)
	require.Equal(t, t0.Add(24*time.Hour), werr.NextAt)
}

func TestPlanClaimMissedCarriesNextWindow(t *testing.T) {
	s := Schedule{Anchor: t0, Expiry: t0.Add(30 * 24 * time.Hour), EarnAmount: 5}

	_, err := PlanClaim(s, t0.Add(4*time.Hour+30*time.Minute))
	require.ErrorIs(t, err, domain.ErrEarningWindowMissed)

	var werr *domain.WindowError
	require.True(t, errors.As(err, &werr))
	require.Equal(t, 19, werr.Remaining.Hours)
	require.Equal(t, 30, werr.Remaining.Minutes)
	require.Equal(t, 0, werr.Remaining.Seconds)
}

func TestPlanClaimExpiredWinsOverOpenWindow(t *testing.T) {
	s := Schedule{Anchor: t0, Expiry: t0.Add(24 * time.Hour), EarnAmount: 5}

	// t0+24h30m is inside an open window but past expiry
	_, err := PlanClaim(s, t0.Add(24*time.Hour+30*time.Minute))
	require.ErrorIs(t, err, domain.ErrProductExpired)
}

func TestCapReachedUnlimitedWhenZero(t *testing.T) {
	require.False(t, Schedule{EarnAmount: 1000, Earned: 1e9}.CapReached())
	require.False(t, Schedule{EarnAmount: 0.1, Earned: 0.2, Cap: 0.3}.CapReached())
	require.True(t, Schedule{EarnAmount: 0.2, Earned: 0.2, Cap: 0.3}.CapReached())
}

func TestValidityNormalization(t *testing.T) {
	legacy := t0.Add(36 * time.Hour)
	past := t0.Add(-time.Hour)

	require.Equal(t, 30, ValidityDays(30, &legacy, t0))
	require.Equal(t, 2, ValidityDays(0, &legacy, t0))
	require.Equal(t, 0, ValidityDays(0, &past, t0))
	require.Equal(t, DefaultValidityDays, ValidityDays(0, nil, t0))

	require.Equal(t, t0.Add(30*24*time.Hour), Expiry(t0, 30, &legacy))
	require.Equal(t, legacy, Expiry(t0, 0, &legacy))
	require.Equal(t, t0.Add(45*24*time.Hour), Expiry(t0, 0, nil))

	anchor := t0.Add(time.Hour)
	require.Equal(t, anchor, Anchor(&anchor, t0))
	require.Equal(t, t0, Anchor(nil, t0))
}

func TestScheduleStatusTerminalStates(t *testing.T) {
	s := Schedule{Anchor: t0, Expiry: t0.Add(10 * 24 * time.Hour), EarnAmount: 10, Cap: 20}

	st := s.Status(t0.Add(time.Hour))
	require.Equal(t, WindowOpen, st.State)
	require.True(t, st.CanEarn)

	s.Earned = 20
	st = s.Status(t0.Add(time.Hour))
	require.Equal(t, WindowCapped, st.State)
	require.False(t, st.CanEarn)
	require.True(t, st.Remaining.IsZero())

	s.Earned = 0
	st = s.Status(t0.Add(11 * 24 * time.Hour))
	require.Equal(t, WindowExpired, st.State)
	require.False(t, st.CanEarn)
}
