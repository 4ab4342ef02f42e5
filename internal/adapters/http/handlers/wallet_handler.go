package handlers

import (
	"rewardhub/internal/adapters/persistence/repositories"
	"rewardhub/internal/core/domain"
	"rewardhub/internal/core/services"
	"rewardhub/internal/pkg/pagination"
	"rewardhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// WalletHandler handles wallet and ledger endpoints
type WalletHandler struct {
	walletService *services.WalletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletService *services.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// GetWallet returns the caller's wallet
// @Summary Get wallet
// @Description Recharge and balance wallets with income counters
// @Tags Wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /wallet [get]
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	wallet, err := h.walletService.GetWallet(c.Context(), userID)
	if err != nil {
		return respondError(c, err, "Failed to get wallet")
	}

	return response.Success(c, "Wallet retrieved successfully", wallet)
}

// ListTransactions returns the caller's ledger
// @Summary List my transactions
// @Tags Wallet
// @Produce json
// @Security BearerAuth
// @Param type query string false "Transaction type"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /wallet/transactions [get]
func (h *WalletHandler) ListTransactions(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	result, err := h.walletService.ListTransactions(c.Context(), userID, c.Query("type"), pagination.GetParams(c))
	if err != nil {
		return respondError(c, err, "Failed to list transactions")
	}

	return response.Success(c, "Transactions retrieved successfully", result)
}

// Recharge submits a recharge request for admin approval
// @Summary Request recharge
// @Tags Wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RechargeInput true "Recharge request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /wallet/recharge [post]
func (h *WalletHandler) Recharge(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.RechargeInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tx, err := h.walletService.RequestRecharge(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, err, "Failed to request recharge")
	}

	return response.Created(c, "Recharge request submitted", tx)
}

// Withdraw debits the balance wallet and submits a withdrawal
// @Summary Request withdrawal
// @Tags Wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.WithdrawInput true "Withdraw request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 402 {object} response.Response
// @Router /wallet/withdraw [post]
func (h *WalletHandler) Withdraw(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.WithdrawInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tx, err := h.walletService.RequestWithdraw(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, err, "Failed to request withdrawal")
	}

	return response.Created(c, "Withdraw request submitted", tx)
}

// ListAllTransactions lists the ledger for admins
// @Summary List all transactions (Admin)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param type query string false "Transaction type"
// @Param status query string false "Transaction status"
// @Param user_id query int false "User ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /admin/transactions [get]
func (h *WalletHandler) ListAllTransactions(c *fiber.Ctx) error {
	filter := repositories.TransactionFilter{
		Type:   c.Query("type"),
		Status: c.Query("status"),
		UserID: uint(c.QueryInt("user_id", 0)),
	}

	result, err := h.walletService.ListAllTransactions(c.Context(), filter, pagination.GetParams(c))
	if err != nil {
		return respondError(c, err, "Failed to list transactions")
	}

	return response.Success(c, "Transactions retrieved successfully", result)
}

// Approve settles a pending recharge or withdrawal
// @Summary Approve transaction (Admin)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Param body body services.ReviewInput false "Review note"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/transactions/{id}/approve [put]
func (h *WalletHandler) Approve(c *fiber.Ctx) error {
	return h.review(c, domain.TxApproved)
}

// Reject declines a pending recharge or withdrawal
// @Summary Reject transaction (Admin)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Param body body services.ReviewInput false "Review note"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/transactions/{id}/reject [put]
func (h *WalletHandler) Reject(c *fiber.Ctx) error {
	return h.review(c, domain.TxRejected)
}

func (h *WalletHandler) review(c *fiber.Ctx, status domain.TransactionStatus) error {
	adminID, _ := currentUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid transaction ID")
	}

	var req services.ReviewInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	review := h.walletService.Approve
	if status == domain.TxRejected {
		review = h.walletService.Reject
	}

	tx, err := review(c.Context(), adminID, id, &req)
	if err != nil {
		return respondError(c, err, "Failed to review transaction")
	}

	return response.Success(c, "Transaction "+string(status), tx)
}
