package services

import (
	"context"
	"time"

	"rewardhub/internal/adapters/persistence/repositories"
	"rewardhub/internal/core/rewards"
	"rewardhub/internal/pkg/clock"
)

// ReferralService reports a user's referral network
type ReferralService struct {
	store *repositories.Store
	clock clock.Clock
	loc   *time.Location
}

// NewReferralService creates a new referral service
func NewReferralService(store *repositories.Store, clk clock.Clock, loc *time.Location) *ReferralService {
	if loc == nil {
		loc = time.Local
	}
	return &ReferralService{store: store, clock: clk, loc: loc}
}

// ReferredUser is one member of the referral network
type ReferredUser struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	JoinedAt        time.Time  `json:"joined_at"`
	Purchased       bool       `json:"purchased"`
	FirstPurchaseAt *time.Time `json:"first_purchase_at,omitempty"`
	SuccessfulToday bool       `json:"successful_today"`
}

// ReferralSummary is the referral page of one user
type ReferralSummary struct {
	ReferralCode             string          `json:"referral_code"`
	TotalReferrals           int             `json:"total_referrals"`
	VIPLevel                 int             `json:"vip_level"`
	VIPLevelName             string          `json:"vip_level_name"`
	SuccessfulReferralsToday int             `json:"successful_referrals_today"`
	Referred                 []*ReferredUser `json:"referred"`
}

// GetReferralSummary lists the users referred by userID
func (s *ReferralService) GetReferralSummary(ctx context.Context, userID uint) (*ReferralSummary, error) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}

	referred, err := s.store.Users.ListReferred(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	level := rewards.VIPLevelFor(user.TotalReferrals)
	summary := &ReferralSummary{
		ReferralCode:   user.ReferralCode,
		TotalReferrals: user.TotalReferrals,
		VIPLevel:       int(level),
		VIPLevelName:   level.Name(),
		Referred:       make([]*ReferredUser, 0, len(referred)),
	}

	for _, u := range referred {
		ok := rewards.IsSuccessfulToday(rewards.ReferralActivity{RegisteredAt: u.CreatedAt, FirstPurchaseAt: u.FirstPurchaseAt}, now, s.loc)
		if ok {
			summary.SuccessfulReferralsToday++
		}
		summary.Referred = append(summary.Referred, &ReferredUser{
			ID:              u.ID,
			Name:            u.Name,
			Phone:           maskPhone(u.Phone),
			JoinedAt:        u.CreatedAt,
			Purchased:       u.FirstPurchaseAt != nil,
			FirstPurchaseAt: u.FirstPurchaseAt,
			SuccessfulToday: ok,
		})
	}
	return summary, nil
}

// maskPhone hides the middle digits of a phone number
func maskPhone(phone string) string {
	if len(phone) <= 6 {
		return phone
	}
	masked := []byte(phone)
	for i := 3; i < len(masked)-3; i++ {
		masked[i] = '*'
	}
	return string(masked)
}
