package rewards

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultPrizeTableIsValid(t *testing.T) {
	require.NoError(t, DefaultPrizeTable.Validate())
	require.Equal(t, 100, DefaultPrizeTable.TotalWeight())

	bad := PrizeTable{{Amount: 1, Weight: 60}, {Amount: 2, Weight: 30}}
	require.Error(t, bad.Validate())
}

func TestPrizePickBuckets(t *testing.T) {
	cases := map[int]float64{
		0:  5,
		29: 5,
		30: 10,
		54: 10,
		55: 15,
		74: 15,
		75: 20,
		89: 20,
		90: 25,
		94: 25,
		95: 0,
		99: 0,
	}
	for roll, want := range cases {
		require.Equal(t, want, DefaultPrizeTable.Pick(roll).Amount, "roll %d", roll)
	}
	require.Equal(t, "try_again", DefaultPrizeTable.Pick(97).Type())
	require.Equal(t, "cash", DefaultPrizeTable.Pick(0).Type())
}

func TestPrizeRollUsesDraw(t *testing.T) {
	slot, err := DefaultPrizeTable.Roll(func(n int) (int, error) {
		require.Equal(t, 100, n)
		return 80, nil
	})
	require.NoError(t, err)
	require.Equal(t, 20.0, slot.Amount)

	_, err = DefaultPrizeTable.Roll(func(int) (int, error) { return 0, errors.New("no entropy") })
	require.Error(t, err)
}

func TestCryptoDrawInRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		v, err := CryptoDraw(100)
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 100)
	}
}

func TestEvaluateSmash(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)

	g := EvaluateSmash(2, nil, now, time.UTC)
	require.False(t, g.Unlocked)
	require.False(t, g.CanSmash)

	g = EvaluateSmash(3, nil, now, time.UTC)
	require.True(t, g.CanSmash)
	require.Nil(t, g.NextAt)

	// smashed this morning: locked until midnight
	morning := time.Date(2026, 10, 19, 1, 0, 0, 0, time.UTC)
	g = EvaluateSmash(5, &morning, now, time.UTC)
	require.True(t, g.SmashedToday)
	require.False(t, g.CanSmash)
	require.Equal(t, 9, g.Remaining.Hours)
	require.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), *g.NextAt)

	// smashed late yesterday: calendar day reset, not rolling 24h
	lateYesterday := time.Date(2026, 10, 18, 23, 59, 0, 0, time.UTC)
	g = EvaluateSmash(3, &lateYesterday, time.Date(2026, 10, 19, 0, 1, 0, 0, time.UTC), time.UTC)
	require.True(t, g.CanSmash)
}
