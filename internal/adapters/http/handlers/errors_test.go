package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rewardhub/internal/core/domain"
	"rewardhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&domain.WindowError{Kind: domain.ErrEarningNotAvailable, NextAt: time.Now()}, http.StatusConflict},
		{&domain.RewardClaimedError{Reward: "weekly", DaysRemaining: 3}, http.StatusConflict},
		{&domain.PrizeCooldownError{}, http.StatusConflict},
		{fmt.Errorf("wrapped: %w", domain.ErrInsufficientBalance), http.StatusPaymentRequired},
		{domain.ErrProductUnavailable, http.StatusGone},
		{domain.ErrProductExpired, http.StatusGone},
		{domain.ErrMaxEarningReached, http.StatusConflict},
		{domain.ErrTransactionSettled, http.StatusConflict},
		{services.ErrPhoneAlreadyExists, http.StatusConflict},
		{domain.ErrPrizeLocked, http.StatusForbidden},
		{domain.ErrIneligibleForReward, http.StatusForbidden},
		{domain.ErrBelowMinimum, http.StatusBadRequest},
		{services.ErrInvalidReferralCode, http.StatusBadRequest},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrNotFound, http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return respondError(c, tt.err, "failed")
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			require.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestParamID(t *testing.T) {
	app := fiber.New()
	app.Get("/:id", func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return c.SendStatus(http.StatusBadRequest)
		}
		return c.SendString(fmt.Sprint(id))
	})

	for path, want := range map[string]int{"/7": http.StatusOK, "/0": http.StatusBadRequest, "/abc": http.StatusBadRequest, "/-3": http.StatusBadRequest} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		require.Equal(t, want, resp.StatusCode, path)
	}
}
