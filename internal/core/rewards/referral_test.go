package rewards

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCountSuccessfulToday(t *testing.T) {
	dhaka := time.FixedZone("BDT", 6*3600)
	// 09:00 UTC is 15:00 in Dhaka; local midnight is 18:00 UTC the day before
	now := t0
	midnight := time.Date(2026, 9, 30, 18, 0, 0, 0, time.UTC)
	bought := now.Add(-time.Hour)
	early := midnight.Add(-time.Minute)

	list := []ReferralActivity{
		{RegisteredAt: midnight, FirstPurchaseAt: &bought},
		{RegisteredAt: now.Add(-2 * time.Hour), FirstPurchaseAt: &bought},
		{RegisteredAt: early, FirstPurchaseAt: &bought},
		{RegisteredAt: now, FirstPurchaseAt: nil},
		{RegisteredAt: midnight, FirstPurchaseAt: &early},
	}

	require.Equal(t, 2, CountSuccessfulToday(list, now, dhaka))
	require.True(t, IsSuccessfulToday(list[0], now, dhaka))
	require.False(t, IsSuccessfulToday(list[2], now, dhaka))

	// in UTC the day starts at 00:00, so the 18:00 registration drops out
	require.Equal(t, 1, CountSuccessfulToday(list, now, time.UTC))
}
