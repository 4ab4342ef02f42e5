package rewards

import (
	"time"

	"rewardhub/internal/pkg/clock"
)

// ReferralActivity is what the prize gate needs to know about a referred user
type ReferralActivity struct {
	RegisteredAt    time.Time
	FirstPurchaseAt *time.Time
}

// IsSuccessfulToday reports whether the referred user both registered and
// made a first purchase on or after today's local midnight
func IsSuccessfulToday(a ReferralActivity, now time.Time, loc *time.Location) bool {
	if a.FirstPurchaseAt == nil {
		return false
	}
	midnight := clock.StartOfDay(now, loc)
	return !a.RegisteredAt.Before(midnight) && !a.FirstPurchaseAt.Before(midnight)
}

// CountSuccessfulToday counts referred users that are successful today
func CountSuccessfulToday(list []ReferralActivity, now time.Time, loc *time.Location) int {
	n := 0
	for _, a := range list {
		if IsSuccessfulToday(a, now, loc) {
			n++
		}
	}
	return n
}
