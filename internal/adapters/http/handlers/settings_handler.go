package handlers

import (
	"rewardhub/internal/core/services"
	"rewardhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler handles the application settings
type SettingsHandler struct {
	settingsService *services.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get returns the current settings
// @Summary Get settings
// @Description Currency, limits, VAT and payment details
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	setting, err := h.settingsService.Get(c.Context())
	if err != nil {
		return respondError(c, err, "Failed to get settings")
	}
	return response.Success(c, "Settings retrieved successfully", setting)
}

// Update changes settings; omitted fields are kept
// @Summary Update settings (Admin)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateSettingsInput true "Settings"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req services.UpdateSettingsInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	setting, err := h.settingsService.Update(c.Context(), &req)
	if err != nil {
		return respondError(c, err, "Failed to update settings")
	}
	return response.Success(c, "Settings updated successfully", setting)
}
