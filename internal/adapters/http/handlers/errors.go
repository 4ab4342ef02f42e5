package handlers

import (
	"errors"
	"log"
	"strconv"

	"rewardhub/internal/core/domain"
	"rewardhub/internal/core/services"
	"rewardhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto HTTP statuses.
// Unknown errors are logged and reported as 500 with the fallback message.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	var windowErr *domain.WindowError
	var claimedErr *domain.RewardClaimedError
	var cooldownErr *domain.PrizeCooldownError

	switch {
	case errors.As(err, &windowErr):
		return response.ErrorWithData(c, fiber.StatusConflict, windowErr.Error(), fiber.Map{
			"remaining": windowErr.Remaining,
			"next_at":   windowErr.NextAt,
		})
	case errors.As(err, &claimedErr):
		return response.ErrorWithData(c, fiber.StatusConflict, claimedErr.Error(), fiber.Map{
			"reward":         claimedErr.Reward,
			"days_remaining": claimedErr.DaysRemaining,
			"next_at":        claimedErr.NextAt,
		})
	case errors.As(err, &cooldownErr):
		return response.ErrorWithData(c, fiber.StatusConflict, cooldownErr.Error(), fiber.Map{
			"remaining": cooldownErr.Remaining,
			"next_at":   cooldownErr.NextAt,
		})

	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProductNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrInsufficientBalance):
		return response.PaymentRequired(c, "Insufficient balance")
	case errors.Is(err, domain.ErrProductUnavailable),
		errors.Is(err, domain.ErrProductExpired):
		return response.Gone(c, err.Error())
	case errors.Is(err, domain.ErrMaxEarningReached),
		errors.Is(err, domain.ErrTransactionSettled),
		errors.Is(err, domain.ErrConcurrencyConflict),
		errors.Is(err, services.ErrPhoneAlreadyExists),
		errors.Is(err, services.ErrNIDAlreadyExists),
		errors.Is(err, services.ErrPassportExists):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrIneligibleForReward),
		errors.Is(err, domain.ErrPrizeLocked),
		errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrBelowMinimum),
		errors.Is(err, services.ErrInvalidReferralCode),
		errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrOldPasswordWrong),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrCannotChangeOwnRole),
		errors.Is(err, services.ErrCannotDeleteSelf):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid identifier or password")
	}

	log.Printf("❌ %s: %v", fallback, err)
	return response.InternalServerError(c, fallback)
}

// currentUserID returns the authenticated user set by AuthMiddleware
func currentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("userID").(uint)
	return id, ok && id != 0
}

// paramID parses a positive numeric path parameter
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
