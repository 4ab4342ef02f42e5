package rewards

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidityDays(t *testing.T) {
	future := t0.Add(36 * time.Hour)
	exact := t0.Add(48 * time.Hour)
	past := t0.Add(-time.Minute)

	tests := []struct {
		name     string
		explicit int
		legacy   *time.Time
		want     int
	}{
		{"explicit wins", 30, &future, 30},
		{"legacy rounds up", 0, &future, 2},
		{"legacy whole days", 0, &exact, 2},
		{"legacy in the past", 0, &past, 0},
		{"neither", 0, nil, DefaultValidityDays},
		{"zero legacy", 0, &time.Time{}, DefaultValidityDays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ValidityDays(tt.explicit, tt.legacy, t0))
		})
	}
}

func TestExpiryAndAnchor(t *testing.T) {
	legacy := t0.Add(10 * time.Hour)

	require.Equal(t, t0.Add(30*24*time.Hour), Expiry(t0, 30, &legacy))
	require.Equal(t, legacy, Expiry(t0, 0, &legacy))
	require.Equal(t, t0.Add(DefaultValidityDays*24*time.Hour), Expiry(t0, 0, nil))

	start := t0.Add(time.Hour)
	require.Equal(t, start, Anchor(&start, t0))
	require.Equal(t, t0, Anchor(nil, t0))
}
