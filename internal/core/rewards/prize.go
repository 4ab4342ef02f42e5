package rewards

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"rewardhub/internal/pkg/clock"
)

// RequiredSuccessfulReferrals unlocks the daily prize smash
const RequiredSuccessfulReferrals = 3

// PrizeSlot is one outcome of the prize table
type PrizeSlot struct {
	Amount float64 `json:"amount"`
	Weight int     `json:"weight"`
	Label  string  `json:"label"`
}

// Type is "cash" for a paying slot and "try_again" otherwise
func (p PrizeSlot) Type() string {
	if p.Amount > 0 {
		return "cash"
	}
	return "try_again"
}

// PrizeTable is a weighted list of outcomes; weights must total 100
type PrizeTable []PrizeSlot

// DefaultPrizeTable is the production prize distribution
var DefaultPrizeTable = PrizeTable{
	{Amount: 5, Weight: 30, Label: "5"},
	{Amount: 10, Weight: 25, Label: "10"},
	{Amount: 15, Weight: 20, Label: "15"},
	{Amount: 20, Weight: 15, Label: "20"},
	{Amount: 25, Weight: 5, Label: "25"},
	{Amount: 0, Weight: 5, Label: "try again"},
}

// TotalWeight sums the slot weights
func (t PrizeTable) TotalWeight() int {
	total := 0
	for _, s := range t {
		total += s.Weight
	}
	return total
}

// Validate checks the weights describe a percentage distribution
func (t PrizeTable) Validate() error {
	for _, s := range t {
		if s.Weight < 0 {
			return fmt.Errorf("prize %q has negative weight", s.Label)
		}
	}
	if total := t.TotalWeight(); total != 100 {
		return fmt.Errorf("prize weights sum to %d, want 100", total)
	}
	return nil
}

// Pick maps a roll in [0, TotalWeight) onto its cumulative weight bucket
func (t PrizeTable) Pick(roll int) PrizeSlot {
	cumulative := 0
	for _, s := range t {
		cumulative += s.Weight
		if roll < cumulative {
			return s
		}
	}
	return t[len(t)-1]
}

// Draw returns a uniform integer in [0, n)
type Draw func(n int) (int, error)

// CryptoDraw draws from crypto/rand
func CryptoDraw(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// Roll draws one slot from the table
func (t PrizeTable) Roll(draw Draw) (PrizeSlot, error) {
	if err := t.Validate(); err != nil {
		return PrizeSlot{}, err
	}
	roll, err := draw(t.TotalWeight())
	if err != nil {
		return PrizeSlot{}, err
	}
	return t.Pick(roll), nil
}

// SmashGate is the prize eligibility of one user at one instant
type SmashGate struct {
	SuccessfulReferrals int             `json:"successful_referrals_today"`
	Required            int             `json:"required"`
	Unlocked            bool            `json:"unlocked"`
	SmashedToday        bool            `json:"smashed_today"`
	CanSmash            bool            `json:"can_smash"`
	NextAt              *time.Time      `json:"next_at,omitempty"`
	Remaining           clock.Remaining `json:"cooldown_remaining"`
}

// EvaluateSmash gates the prize on today's successful referrals and on at most
// one smash per calendar day in loc. The cooldown ends at local midnight.
func EvaluateSmash(successful int, lastSmash *time.Time, now time.Time, loc *time.Location) SmashGate {
	g := SmashGate{
		SuccessfulReferrals: successful,
		Required:            RequiredSuccessfulReferrals,
		Unlocked:            successful >= RequiredSuccessfulReferrals,
	}
	if lastSmash != nil && !lastSmash.Before(clock.StartOfDay(now, loc)) {
		g.SmashedToday = true
		next := clock.NextMidnight(now, loc)
		g.NextAt = &next
		g.Remaining = clock.Breakdown(next.Sub(now))
	}
	g.CanSmash = g.Unlocked && !g.SmashedToday
	return g
}
