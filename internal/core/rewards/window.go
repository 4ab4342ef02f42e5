// Package rewards holds the temporal reward policies: the recurring earning
// window, the VIP tier ladder, the daily prize gate and product validity.
// Everything here is pure; callers supply the current time.
package rewards

import (
	"time"

	"rewardhub/internal/core/domain"
	"rewardhub/internal/pkg/clock"

	"github.com/shopspring/decimal"
)

const (
	// EarnCycle is the distance between two window openings
	EarnCycle = 24 * time.Hour
	// EarnWindow is how long a window stays open
	EarnWindow = 3 * time.Hour
)

// WindowState is the position of "now" relative to the current cycle
type WindowState string

const (
	WindowCooldown WindowState = "cooldown"
	WindowOpen     WindowState = "open"
	WindowMissed   WindowState = "missed"
	// terminal states reported for holdings that can no longer earn
	WindowExpired WindowState = "expired"
	WindowCapped  WindowState = "max_reached"
)

// WindowStatus describes the earning window for one holding at one instant
type WindowStatus struct {
	State       WindowState     `json:"status"`
	CanEarn     bool            `json:"can_earn"`
	WindowStart time.Time       `json:"window_start"`
	WindowEnd   time.Time       `json:"window_end"`
	NextAt      time.Time       `json:"next_at"`
	Remaining   clock.Remaining `json:"remaining"`
}

// EvaluateWindow places now inside the recurring window anchored at anchor.
//
// Cycles are counted from the anchor in whole days. A window is open for
// EarnWindow from the start of the cycle, both ends inclusive. Before the
// anchor the holding is cooling down; after the window end the cycle is
// missed and the next opportunity is the following cycle start.
func EvaluateWindow(anchor, now time.Time) WindowStatus {
	elapsed := now.Sub(anchor)
	if elapsed < 0 {
		elapsed = 0
	}
	cycles := elapsed / EarnCycle
	start := anchor.Add(cycles * EarnCycle)
	end := start.Add(EarnWindow)

	st := WindowStatus{WindowStart: start, WindowEnd: end}
	switch {
	case now.Before(start):
		st.State = WindowCooldown
		st.NextAt = start
		st.Remaining = clock.Breakdown(start.Sub(now))
	case !now.After(end):
		st.State = WindowOpen
		st.CanEarn = true
		st.NextAt = end
		st.Remaining = clock.Breakdown(end.Sub(now))
	default:
		st.State = WindowMissed
		st.NextAt = start.Add(EarnCycle)
		st.Remaining = clock.Breakdown(st.NextAt.Sub(now))
	}
	return st
}

// Schedule is the canonical earning view of a purchased product
type Schedule struct {
	Anchor     time.Time
	Expiry     time.Time
	EarnAmount float64
	Earned     float64
	Cap        float64
}

// Expired reports whether now is past the holding's validity
func (s Schedule) Expired(now time.Time) bool {
	return now.After(s.Expiry)
}

// CapReached reports whether one more payout would exceed the lifetime cap.
// A zero cap means unlimited.
func (s Schedule) CapReached() bool {
	if s.Cap <= 0 {
		return false
	}
	next := decimal.NewFromFloat(s.Earned).Add(decimal.NewFromFloat(s.EarnAmount))
	return next.GreaterThan(decimal.NewFromFloat(s.Cap))
}

// Status reports the window for display, with expiry and the lifetime cap
// taking precedence over the cycle position
func (s Schedule) Status(now time.Time) WindowStatus {
	st := EvaluateWindow(s.Anchor, now)
	switch {
	case s.Expired(now):
		st.State = WindowExpired
	case s.CapReached():
		st.State = WindowCapped
	default:
		return st
	}
	st.CanEarn = false
	st.Remaining = clock.Remaining{}
	return st
}

// Claim is an approved payout for the current window
type Claim struct {
	Amount      float64
	WindowStart time.Time
	NextAnchor  time.Time
}

// PlanClaim decides whether a claim at now is allowed.
// Checks run in order: expiry, lifetime cap, window position.
func PlanClaim(s Schedule, now time.Time) (*Claim, error) {
	if s.Expired(now) {
		return nil, domain.ErrProductExpired
	}
	if s.CapReached() {
		return nil, domain.ErrMaxEarningReached
	}

	st := EvaluateWindow(s.Anchor, now)
	switch st.State {
	case WindowCooldown:
		return nil, &domain.WindowError{Kind: domain.ErrEarningNotAvailable, Remaining: st.Remaining, NextAt: st.NextAt}
	case WindowMissed:
		return nil, &domain.WindowError{Kind: domain.ErrEarningWindowMissed, Remaining: st.Remaining, NextAt: st.NextAt}
	}

	return &Claim{
		Amount:      s.EarnAmount,
		WindowStart: st.WindowStart,
		NextAnchor:  st.WindowStart.Add(EarnCycle),
	}, nil
}
