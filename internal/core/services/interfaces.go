package services

import (
	"context"

	"rewardhub/internal/adapters/persistence/models"
)

// AdminNotifier receives alerts about requests that need admin review.
// Implementations must not fail the caller.
type AdminNotifier interface {
	NotifyRecharge(ctx context.Context, user *models.User, tx *models.Transaction)
	NotifyWithdraw(ctx context.Context, user *models.User, tx *models.Transaction)
}

// nopNotifier is used when no notifier is configured
type nopNotifier struct{}

func (nopNotifier) NotifyRecharge(context.Context, *models.User, *models.Transaction) {}
func (nopNotifier) NotifyWithdraw(context.Context, *models.User, *models.Transaction) {}
