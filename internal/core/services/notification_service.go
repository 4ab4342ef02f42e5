package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"rewardhub/internal/adapters/persistence/models"
	"rewardhub/internal/config"
)

// NotificationService posts admin alerts to a LINE Notify compatible endpoint
type NotificationService struct {
	endpoint string
	token    string
	enabled  bool
	client   *http.Client
}

// NewNotificationService creates a new notification service
func NewNotificationService(cfg config.NotifyConfig) *NotificationService {
	return &NotificationService{
		endpoint: cfg.URL,
		token:    cfg.Token,
		enabled:  cfg.Token != "" && cfg.URL != "",
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// IsEnabled checks if notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s.enabled
}

// send posts a form-encoded message
func (s *NotificationService) send(ctx context.Context, message string) error {
	if !s.enabled {
		return nil
	}

	data := url.Values{}
	data.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBufferString(data.Encode()))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notify endpoint returned %d", resp.StatusCode)
	}
	return nil
}

// NotifyRecharge alerts admins about a new recharge request
func (s *NotificationService) NotifyRecharge(ctx context.Context, user *models.User, tx *models.Transaction) {
	message := fmt.Sprintf(`
💳 New recharge request

📋 Ref: %s
👤 User: %s (%s)
💰 Amount: %.2f
🏦 Method: %s %s`,
		tx.Reference,
		user.Name,
		user.Phone,
		tx.Amount,
		tx.Method,
		tx.AccountNumber,
	)

	if err := s.send(ctx, message); err != nil {
		log.Printf("⚠️ Recharge notification failed: %v", err)
	}
}

// NotifyWithdraw alerts admins about a new withdrawal request
func (s *NotificationService) NotifyWithdraw(ctx context.Context, user *models.User, tx *models.Transaction) {
	message := fmt.Sprintf(`
🏧 New withdraw request

📋 Ref: %s
👤 User: %s (%s)
💰 Amount: %.2f
🧾 VAT: %.2f
💵 Net: %.2f
🏦 Method: %s %s`,
		tx.Reference,
		user.Name,
		user.Phone,
		tx.Amount,
		tx.VatTax,
		tx.NetAmount,
		tx.Method,
		tx.AccountNumber,
	)

	if err := s.send(ctx, message); err != nil {
		log.Printf("⚠️ Withdraw notification failed: %v", err)
	}
}
