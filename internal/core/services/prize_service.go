package services

import (
	"context"
	"log"
	"time"

	"rewardhub/internal/adapters/persistence/models"
	"rewardhub/internal/adapters/persistence/repositories"
	"rewardhub/internal/core/domain"
	"rewardhub/internal/core/rewards"
	"rewardhub/internal/pkg/clock"
)

// PrizeService runs the daily prize smash unlocked by same-day referrals
type PrizeService struct {
	store *repositories.Store
	clock clock.Clock
	loc   *time.Location
	table rewards.PrizeTable
	draw  rewards.Draw
}

// NewPrizeService creates a new prize service.
// A nil draw uses crypto/rand.
func NewPrizeService(store *repositories.Store, clk clock.Clock, loc *time.Location, draw rewards.Draw) *PrizeService {
	if draw == nil {
		draw = rewards.CryptoDraw
	}
	if loc == nil {
		loc = time.Local
	}
	return &PrizeService{
		store: store,
		clock: clk,
		loc:   loc,
		table: rewards.DefaultPrizeTable,
		draw:  draw,
	}
}

// PrizeEligibility is the prize gate plus the table on offer
type PrizeEligibility struct {
	rewards.SmashGate
	Prizes rewards.PrizeTable `json:"prizes"`
}

// SmashResult is the prize won by one smash
type SmashResult struct {
	Amount    float64 `json:"amount"`
	Type      string  `json:"type"`
	Label     string  `json:"label"`
	Reference string  `json:"reference,omitempty"`
}

// GetPrizeEligibility recounts today's successful referrals and reports the gate
func (s *PrizeService) GetPrizeEligibility(ctx context.Context, userID uint) (*PrizeEligibility, error) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}

	now := s.clock.Now()
	successful, err := successfulReferralsToday(ctx, s.store, userID, now, s.loc)
	if err != nil {
		return nil, err
	}

	return &PrizeEligibility{
		SmashGate: rewards.EvaluateSmash(successful, user.LastEggSmash, now, s.loc),
		Prizes:    s.table,
	}, nil
}

// SmashPrize draws a prize once per local calendar day for unlocked users.
// Cash prizes credit the balance wallet.
func (s *PrizeService) SmashPrize(ctx context.Context, userID uint) (*SmashResult, error) {
	now := s.clock.Now()
	var result *SmashResult

	err := s.store.Transaction(ctx, func(st *repositories.Store) error {
		user, err := st.Users.GetByID(ctx, userID)
		if err != nil {
			return notFound(err)
		}

		successful, err := successfulReferralsToday(ctx, st, userID, now, s.loc)
		if err != nil {
			return err
		}

		gate := rewards.EvaluateSmash(successful, user.LastEggSmash, now, s.loc)
		if !gate.Unlocked {
			return domain.ErrPrizeLocked
		}
		if gate.SmashedToday {
			return &domain.PrizeCooldownError{Remaining: gate.Remaining, NextAt: *gate.NextAt}
		}

		slot, err := s.table.Roll(s.draw)
		if err != nil {
			return err
		}

		if err := st.Users.StampReward(ctx, user.ID, user.RewardVersion, repositories.RewardFieldSmash, now); err != nil {
			return err
		}

		result = &SmashResult{Amount: slot.Amount, Type: slot.Type(), Label: slot.Label}
		if slot.Amount <= 0 {
			return nil
		}

		if err := st.Wallets.Credit(ctx, user.ID, repositories.WalletDelta{BalanceWallet: slot.Amount}); err != nil {
			return err
		}
		tx := &models.Transaction{
			UserID:    user.ID,
			Type:      string(domain.TxPrizeSmash),
			Amount:    slot.Amount,
			Status:    string(domain.TxCompleted),
			Note:      slot.Label,
			CreatedAt: now,
		}
		if err := st.Transactions.Create(ctx, tx); err != nil {
			return err
		}
		result.Reference = tx.Reference
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🎁 Prize smashed: user %d won %.2f (%s)", userID, result.Amount, result.Type)
	return result, nil
}

// successfulReferralsToday scans the user's referrals and counts those that
// registered and first purchased since local midnight
func successfulReferralsToday(ctx context.Context, st *repositories.Store, referrerID uint, now time.Time, loc *time.Location) (int, error) {
	referred, err := st.Users.ListReferred(ctx, referrerID)
	if err != nil {
		return 0, err
	}
	return rewards.CountSuccessfulToday(activities(referred), now, loc), nil
}

func activities(users []*models.User) []rewards.ReferralActivity {
	list := make([]rewards.ReferralActivity, len(users))
	for i, u := range users {
		list[i] = rewards.ReferralActivity{RegisteredAt: u.CreatedAt, FirstPurchaseAt: u.FirstPurchaseAt}
	}
	return list
}
