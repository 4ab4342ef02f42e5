package handlers

import (
	"rewardhub/internal/core/services"
	"rewardhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RewardHandler handles VIP rewards, the daily prize and the referral page
type RewardHandler struct {
	vipService      *services.VIPService
	prizeService    *services.PrizeService
	referralService *services.ReferralService
}

// NewRewardHandler creates a new reward handler
func NewRewardHandler(vip *services.VIPService, prize *services.PrizeService, referral *services.ReferralService) *RewardHandler {
	return &RewardHandler{
		vipService:      vip,
		prizeService:    prize,
		referralService: referral,
	}
}

// GetVIPStatus returns the caller's tier and reward timers
// @Summary VIP status
// @Tags Rewards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /vip [get]
func (h *RewardHandler) GetVIPStatus(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	status, err := h.vipService.GetVIPStatus(c.Context(), userID)
	if err != nil {
		return respondError(c, err, "Failed to get VIP status")
	}
	return response.Success(c, "VIP status retrieved successfully", status)
}

// ClaimVIPRewards claims every due VIP reward
// @Summary Claim VIP rewards
// @Description Weekly and monthly rewards are attempted independently
// @Tags Rewards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /vip/claim [post]
func (h *RewardHandler) ClaimVIPRewards(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	result, err := h.vipService.ClaimVIPRewards(c.Context(), userID)
	if err != nil {
		return respondError(c, err, "Failed to claim VIP rewards")
	}

	if !result.Credited() {
		status := fiber.StatusConflict
		if result.Weekly.Status == services.RewardNotEligible && result.Monthly.Status == services.RewardNotEligible {
			status = fiber.StatusForbidden
		}
		return response.ErrorWithData(c, status, "No VIP reward available", result)
	}
	return response.Success(c, "VIP rewards claimed", result)
}

// GetPrize reports whether the daily prize is unlocked
// @Summary Prize eligibility
// @Tags Rewards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /prize [get]
func (h *RewardHandler) GetPrize(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	eligibility, err := h.prizeService.GetPrizeEligibility(c.Context(), userID)
	if err != nil {
		return respondError(c, err, "Failed to get prize status")
	}
	return response.Success(c, "Prize status retrieved successfully", eligibility)
}

// SmashPrize draws today's prize
// @Summary Smash prize
// @Tags Rewards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /prize/smash [post]
func (h *RewardHandler) SmashPrize(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	result, err := h.prizeService.SmashPrize(c.Context(), userID)
	if err != nil {
		return respondError(c, err, "Failed to smash prize")
	}
	return response.Success(c, result.Label, result)
}

// GetReferrals returns the caller's referral network
// @Summary Referral summary
// @Tags Rewards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /referrals [get]
func (h *RewardHandler) GetReferrals(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	summary, err := h.referralService.GetReferralSummary(c.Context(), userID)
	if err != nil {
		return respondError(c, err, "Failed to get referrals")
	}
	return response.Success(c, "Referrals retrieved successfully", summary)
}
