package rewards

import (
	"time"

	"rewardhub/internal/pkg/clock"
)

// DefaultValidityDays applies when a product carries neither validity field
const DefaultValidityDays = 45

// ValidityDays resolves the validity of a new purchase.
// An explicit day count wins; otherwise the legacy absolute expiry is turned
// into whole days from now, rounded up; otherwise the default applies.
// A legacy expiry already in the past yields 0.
func ValidityDays(explicit int, legacyExpiry *time.Time, now time.Time) int {
	if explicit > 0 {
		return explicit
	}
	if legacyExpiry != nil && !legacyExpiry.IsZero() {
		left := legacyExpiry.Sub(now)
		if left <= 0 {
			return 0
		}
		days := int(left / clock.Day)
		if left%clock.Day != 0 {
			days++
		}
		return days
	}
	return DefaultValidityDays
}

// Expiry returns the instant a holding stops earning
func Expiry(purchasedAt time.Time, validityDays int, legacyExpiry *time.Time) time.Time {
	if validityDays > 0 {
		return purchasedAt.Add(time.Duration(validityDays) * clock.Day)
	}
	if legacyExpiry != nil && !legacyExpiry.IsZero() {
		return *legacyExpiry
	}
	return purchasedAt.Add(DefaultValidityDays * clock.Day)
}

// Anchor returns the earning window anchor, falling back to the purchase time
// for holdings created before the anchor was stored
func Anchor(windowStart *time.Time, purchasedAt time.Time) time.Time {
	if windowStart != nil && !windowStart.IsZero() {
		return *windowStart
	}
	return purchasedAt
}
