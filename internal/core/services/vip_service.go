package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"rewardhub/internal/adapters/persistence/models"
	"rewardhub/internal/adapters/persistence/repositories"
	"rewardhub/internal/core/domain"
	"rewardhub/internal/core/rewards"
	"rewardhub/internal/pkg/clock"
)

// VIPService distributes the weekly and monthly VIP rewards
type VIPService struct {
	store *repositories.Store
	clock clock.Clock
}

// NewVIPService creates a new VIP service
func NewVIPService(store *repositories.Store, clk clock.Clock) *VIPService {
	return &VIPService{store: store, clock: clk}
}

// VIPStatus summarizes a user's tier and reward timing
type VIPStatus struct {
	Level                int        `json:"level"`
	LevelName            string     `json:"level_name"`
	TotalReferrals       int        `json:"total_referrals"`
	NextLevelReferrals   int        `json:"next_level_referrals"`
	WeeklyReward         float64    `json:"weekly_reward"`
	MonthlyReward        float64    `json:"monthly_reward"`
	WeeklyDue            bool       `json:"weekly_due"`
	MonthlyDue           bool       `json:"monthly_due"`
	NextWeeklyAt         *time.Time `json:"next_weekly_at"`
	NextMonthlyAt        *time.Time `json:"next_monthly_at"`
	WeeklyDaysRemaining  int        `json:"weekly_days_remaining"`
	MonthlyDaysRemaining int        `json:"monthly_days_remaining"`
}

// Reward claim outcomes
const (
	RewardCredited       = "credited"
	RewardNotEligible    = "not_eligible"
	RewardAlreadyClaimed = "already_claimed"
	RewardFailed         = "failed"
)

// RewardResult is the outcome of one reward kind
type RewardResult struct {
	Kind          rewards.RewardKind `json:"kind"`
	Status        string             `json:"status"`
	Amount        float64            `json:"amount"`
	DaysRemaining int                `json:"days_remaining,omitempty"`
	NextAt        *time.Time         `json:"next_at,omitempty"`
	Message       string             `json:"message"`
}

// VIPClaimResult holds the weekly and monthly outcomes
type VIPClaimResult struct {
	Weekly  RewardResult `json:"weekly"`
	Monthly RewardResult `json:"monthly"`
}

// Credited reports whether any reward was paid
func (r *VIPClaimResult) Credited() bool {
	return r.Weekly.Status == RewardCredited || r.Monthly.Status == RewardCredited
}

// GetVIPStatus reports the user's tier and when each reward is next due
func (s *VIPService) GetVIPStatus(ctx context.Context, userID uint) (*VIPStatus, error) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}

	now := s.clock.Now()
	level := rewards.VIPLevelFor(user.TotalReferrals)
	weekly := rewards.RewardCooldown(user.LastWeeklyReward, rewards.RewardWeekly, now)
	monthly := rewards.RewardCooldown(user.LastMonthlyReward, rewards.RewardMonthly, now)

	status := &VIPStatus{
		Level:                int(level),
		LevelName:            level.Name(),
		TotalReferrals:       user.TotalReferrals,
		NextLevelReferrals:   rewards.ReferralsToNextLevel(user.TotalReferrals),
		WeeklyReward:         rewards.RewardFor(level, rewards.RewardWeekly),
		MonthlyReward:        rewards.RewardFor(level, rewards.RewardMonthly),
		WeeklyDue:            weekly.Due,
		MonthlyDue:           monthly.Due,
		WeeklyDaysRemaining:  weekly.DaysRemaining,
		MonthlyDaysRemaining: monthly.DaysRemaining,
	}
	if !weekly.Due {
		next := weekly.NextAt
		status.NextWeeklyAt = &next
	}
	if !monthly.Due {
		next := monthly.NextAt
		status.NextMonthlyAt = &next
	}
	return status, nil
}

// ClaimVIPRewards attempts the weekly and the monthly reward independently.
// Ineligible and not-yet-due rewards are reported, not returned as errors.
// A failed kind is reported as failed next to a credited one; the error is
// returned only when nothing was credited.
func (s *VIPService) ClaimVIPRewards(ctx context.Context, userID uint) (*VIPClaimResult, error) {
	weekly, weeklyErr := s.claimResult(ctx, userID, rewards.RewardWeekly)
	monthly, monthlyErr := s.claimResult(ctx, userID, rewards.RewardMonthly)
	result := &VIPClaimResult{Weekly: weekly, Monthly: monthly}

	err := errors.Join(weeklyErr, monthlyErr)
	if err != nil && !result.Credited() {
		return nil, err
	}
	if err != nil {
		log.Printf("⚠️ VIP claim partially failed for user %d: %v", userID, err)
	}
	return result, nil
}

func (s *VIPService) claimResult(ctx context.Context, userID uint, kind rewards.RewardKind) (RewardResult, error) {
	amount, err := s.ClaimReward(ctx, userID, kind)

	var claimed *domain.RewardClaimedError
	switch {
	case err == nil:
		return RewardResult{
			Kind:    kind,
			Status:  RewardCredited,
			Amount:  amount,
			Message: fmt.Sprintf("%s reward of %.2f credited", kind, amount),
		}, nil
	case errors.As(err, &claimed):
		next := claimed.NextAt
		return RewardResult{
			Kind:          kind,
			Status:        RewardAlreadyClaimed,
			DaysRemaining: claimed.DaysRemaining,
			NextAt:        &next,
			Message:       claimed.Error(),
		}, nil
	case errors.Is(err, domain.ErrIneligibleForReward):
		return RewardResult{
			Kind:    kind,
			Status:  RewardNotEligible,
			Message: fmt.Sprintf("not eligible for %s reward", kind),
		}, nil
	}
	return RewardResult{
		Kind:    kind,
		Status:  RewardFailed,
		Message: fmt.Sprintf("%s reward could not be credited", kind),
	}, err
}

// ClaimReward pays one reward kind if the user's tier grants it and its
// period has elapsed. The reward version guard allows one payout per period
// even when claims race.
func (s *VIPService) ClaimReward(ctx context.Context, userID uint, kind rewards.RewardKind) (float64, error) {
	now := s.clock.Now()
	var amount float64

	err := s.store.Transaction(ctx, func(st *repositories.Store) error {
		user, err := st.Users.GetByID(ctx, userID)
		if err != nil {
			return notFound(err)
		}

		level := rewards.VIPLevelFor(user.TotalReferrals)
		amount = rewards.RewardFor(level, kind)
		if amount <= 0 {
			return domain.ErrIneligibleForReward
		}

		last, field, txType := user.LastWeeklyReward, repositories.RewardFieldWeekly, domain.TxVIPWeeklyReward
		if kind == rewards.RewardMonthly {
			last, field, txType = user.LastMonthlyReward, repositories.RewardFieldMonthly, domain.TxVIPMonthlyReward
		}

		cd := rewards.RewardCooldown(last, kind, now)
		if !cd.Due {
			return &domain.RewardClaimedError{Reward: string(kind), DaysRemaining: cd.DaysRemaining, NextAt: cd.NextAt}
		}

		if err := st.Users.StampReward(ctx, user.ID, user.RewardVersion, field, now); err != nil {
			return err
		}
		if err := st.Wallets.Credit(ctx, user.ID, repositories.Earning(amount)); err != nil {
			return err
		}
		return st.Transactions.Create(ctx, &models.Transaction{
			UserID:    user.ID,
			Type:      string(txType),
			Amount:    amount,
			Status:    string(domain.TxCompleted),
			Note:      fmt.Sprintf("%s %s reward", level.Name(), kind),
			CreatedAt: now,
		})
	})
	if err != nil {
		return 0, err
	}

	log.Printf("🎁 VIP %s reward: user %d amount %.2f", kind, userID, amount)
	return amount, nil
}

// recomputeVIPLevel persists the level only when it differs from the stored one
func recomputeVIPLevel(ctx context.Context, st *repositories.Store, userID uint) (rewards.VIPLevel, bool, error) {
	user, err := st.Users.GetByID(ctx, userID)
	if err != nil {
		return rewards.LevelRegular, false, notFound(err)
	}

	level := rewards.VIPLevelFor(user.TotalReferrals)
	if int(level) == user.VIPLevel {
		return level, false, nil
	}
	if err := st.Users.SetVIPLevel(ctx, userID, int(level)); err != nil {
		return level, false, err
	}

	log.Printf("⭐ User %d VIP level %s -> %s", userID, rewards.VIPLevel(user.VIPLevel).Name(), level.Name())
	return level, true, nil
}
