package handlers

import (
	"rewardhub/internal/core/services"
	"rewardhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EarningHandler handles holdings and their daily earning windows
type EarningHandler struct {
	earningService *services.EarningService
}

// NewEarningHandler creates a new earning handler
func NewEarningHandler(earningService *services.EarningService) *EarningHandler {
	return &EarningHandler{earningService: earningService}
}

// ListMyProducts returns the caller's holdings with live window state
// @Summary List my products
// @Tags Earnings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /my-products [get]
func (h *EarningHandler) ListMyProducts(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	holdings, err := h.earningService.ListMyProducts(c.Context(), userID)
	if err != nil {
		return respondError(c, err, "Failed to list products")
	}

	return response.Success(c, "Products retrieved successfully", fiber.Map{
		"products": holdings,
	})
}

// GetWindow reports whether the holding can be claimed now
// @Summary Earning window status
// @Tags Earnings
// @Produce json
// @Security BearerAuth
// @Param id path int true "User product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /my-products/{id}/window [get]
func (h *EarningHandler) GetWindow(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid product ID")
	}

	view, err := h.earningService.GetEarnWindowStatus(c.Context(), userID, id)
	if err != nil {
		return respondError(c, err, "Failed to get earning window")
	}

	return response.Success(c, "Earning window retrieved successfully", view)
}

// Claim collects the open window's earning
// @Summary Claim earning
// @Tags Earnings
// @Produce json
// @Security BearerAuth
// @Param id path int true "User product ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 410 {object} response.Response
// @Router /my-products/{id}/claim [post]
func (h *EarningHandler) Claim(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid product ID")
	}

	result, err := h.earningService.ClaimEarnWindow(c.Context(), userID, id)
	if err != nil {
		return respondError(c, err, "Failed to claim earning")
	}

	return response.Success(c, "Earning credited", result)
}
