package rewards

import (
	"time"

	"rewardhub/internal/pkg/clock"
)

// VIPLevel is a tier derived from the referral count
type VIPLevel int

const (
	LevelRegular VIPLevel = 0
	LevelVIP1    VIPLevel = 1
	LevelVIP2    VIPLevel = 2
)

// Referral thresholds for each tier
const (
	VIP1Referrals = 5
	VIP2Referrals = 20
)

// VIPLevelFor maps a referral count to its tier
func VIPLevelFor(referrals int) VIPLevel {
	switch {
	case referrals >= VIP2Referrals:
		return LevelVIP2
	case referrals >= VIP1Referrals:
		return LevelVIP1
	default:
		return LevelRegular
	}
}

// ReferralsToNextLevel returns how many more referrals reach the next tier,
// or 0 at the top tier
func ReferralsToNextLevel(referrals int) int {
	switch {
	case referrals >= VIP2Referrals:
		return 0
	case referrals >= VIP1Referrals:
		return VIP2Referrals - referrals
	default:
		return VIP1Referrals - referrals
	}
}

// Name returns the display name of the level
func (l VIPLevel) Name() string {
	switch l {
	case LevelVIP2:
		return "VIP 2"
	case LevelVIP1:
		return "VIP 1"
	default:
		return "Regular"
	}
}

// RewardKind distinguishes the two recurring VIP payouts
type RewardKind string

const (
	RewardWeekly  RewardKind = "weekly"
	RewardMonthly RewardKind = "monthly"
)

// Period is the cooldown between two payouts of this kind
func (k RewardKind) Period() time.Duration {
	if k == RewardMonthly {
		return 30 * clock.Day
	}
	return 7 * clock.Day
}

type rewardTier struct {
	weekly  float64
	monthly float64
}

var rewardTable = map[VIPLevel]rewardTier{
	LevelVIP1: {weekly: 50, monthly: 0},
	LevelVIP2: {weekly: 50, monthly: 2000},
}

// RewardFor returns the payout of kind at level, 0 when the level has none
func RewardFor(level VIPLevel, kind RewardKind) float64 {
	tier, ok := rewardTable[level]
	if !ok {
		return 0
	}
	if kind == RewardMonthly {
		return tier.monthly
	}
	return tier.weekly
}

// Cooldown describes where a reward stands relative to its period
type Cooldown struct {
	Due           bool
	DaysRemaining int
	NextAt        time.Time
}

// RewardCooldown checks the last payout of a kind against its period.
// A reward never paid is due immediately.
func RewardCooldown(last *time.Time, kind RewardKind, now time.Time) Cooldown {
	if last == nil || last.IsZero() {
		return Cooldown{Due: true, NextAt: now}
	}
	next := last.Add(kind.Period())
	if !now.Before(next) {
		return Cooldown{Due: true, NextAt: next}
	}
	left := next.Sub(now)
	days := int(left / clock.Day)
	if left%clock.Day != 0 {
		days++
	}
	return Cooldown{DaysRemaining: days, NextAt: next}
}
