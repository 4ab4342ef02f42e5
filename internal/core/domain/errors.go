package domain

import (
	"errors"
	"fmt"
	"time"

	"rewardhub/internal/pkg/clock"
)

// Common domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

// Wallet and purchase errors
var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrProductUnavailable  = errors.New("product unavailable")
	ErrProductExpired      = errors.New("product expired")
	ErrBelowMinimum        = errors.New("amount below minimum")
	ErrTransactionSettled  = errors.New("transaction already reviewed")
)

// Earning window errors
var (
	ErrEarningNotAvailable = errors.New("earning not available yet")
	ErrEarningWindowMissed = errors.New("earning window missed")
	ErrMaxEarningReached   = errors.New("maximum earning reached")
)

// Reward errors
var (
	ErrRewardAlreadyClaimed = errors.New("reward already claimed")
	ErrIneligibleForReward  = errors.New("not eligible for reward")
	ErrPrizeLocked          = errors.New("not enough successful referrals today")
	ErrPrizeAlreadySmashed  = errors.New("prize already smashed today")
)

// ErrConcurrencyConflict is returned when an optimistic claim lost the race
var ErrConcurrencyConflict = errors.New("concurrent update detected, please retry")

// WindowError reports a claim outside the open earning window.
// Kind is ErrEarningNotAvailable or ErrEarningWindowMissed.
type WindowError struct {
	Kind      error
	Remaining clock.Remaining
	NextAt    time.Time
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("%s: next window in %dh %dm %ds",
		e.Kind.Error(), e.Remaining.Hours, e.Remaining.Minutes, e.Remaining.Seconds)
}

func (e *WindowError) Unwrap() error {
	return e.Kind
}

// RewardClaimedError reports a VIP reward still in cooldown
type RewardClaimedError struct {
	Reward        string
	DaysRemaining int
	NextAt        time.Time
}

func (e *RewardClaimedError) Error() string {
	return fmt.Sprintf("%s reward already received, %d days remaining", e.Reward, e.DaysRemaining)
}

func (e *RewardClaimedError) Unwrap() error {
	return ErrRewardAlreadyClaimed
}

// PrizeCooldownError reports that today's smash is used up
type PrizeCooldownError struct {
	Remaining clock.Remaining
	NextAt    time.Time
}

func (e *PrizeCooldownError) Error() string {
	return fmt.Sprintf("%s: try again in %dh %dm", ErrPrizeAlreadySmashed.Error(), e.Remaining.Hours, e.Remaining.Minutes)
}

func (e *PrizeCooldownError) Unwrap() error {
	return ErrPrizeAlreadySmashed
}
