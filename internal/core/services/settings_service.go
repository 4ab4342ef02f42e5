package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"rewardhub/internal/adapters/persistence/models"
	"rewardhub/internal/adapters/persistence/repositories"
	"rewardhub/internal/config"
	"rewardhub/internal/core/domain"

	"gorm.io/gorm"
)

// SettingsService handles the singleton application settings
type SettingsService struct {
	store    *repositories.Store
	defaults models.Setting
}

// NewSettingsService creates a new settings service
func NewSettingsService(store *repositories.Store, cfg *config.Config) *SettingsService {
	return &SettingsService{
		store:    store,
		defaults: models.DefaultSettings(cfg.Rewards.DefaultReferralBonus),
	}
}

// UpdateSettingsInput represents an admin settings change; nil fields are kept
type UpdateSettingsInput struct {
	ReferralBonus      *float64 `json:"referral_bonus"`
	Currency           *string  `json:"currency"`
	WithdrawVatPercent *float64 `json:"withdraw_vat_percent"`
	MinWithdraw        *float64 `json:"min_withdraw"`
	MinRecharge        *float64 `json:"min_recharge"`
	PaymentNumber      *string  `json:"payment_number"`
	PaymentMethods     *string  `json:"payment_methods"`
}

// Get returns current settings, falling back to defaults
func (s *SettingsService) Get(ctx context.Context) (*models.Setting, error) {
	return loadSettings(ctx, s.store.Settings, s.defaults), nil
}

// Update validates and saves settings
func (s *SettingsService) Update(ctx context.Context, input *UpdateSettingsInput) (*models.Setting, error) {
	setting := loadSettings(ctx, s.store.Settings, s.defaults)

	if input.ReferralBonus != nil {
		if *input.ReferralBonus < 0 {
			return nil, domain.ErrInvalidInput
		}
		setting.ReferralBonus = *input.ReferralBonus
	}
	if input.Currency != nil {
		setting.Currency = strings.ToUpper(strings.TrimSpace(*input.Currency))
	}
	if input.WithdrawVatPercent != nil {
		if *input.WithdrawVatPercent < 0 || *input.WithdrawVatPercent > 100 {
			return nil, domain.ErrInvalidInput
		}
		setting.WithdrawVatPercent = *input.WithdrawVatPercent
	}
	if input.MinWithdraw != nil {
		if *input.MinWithdraw < 0 {
			return nil, domain.ErrInvalidInput
		}
		setting.MinWithdraw = *input.MinWithdraw
	}
	if input.MinRecharge != nil {
		if *input.MinRecharge < 0 {
			return nil, domain.ErrInvalidInput
		}
		setting.MinRecharge = *input.MinRecharge
	}
	if input.PaymentNumber != nil {
		setting.PaymentNumber = strings.TrimSpace(*input.PaymentNumber)
	}
	if input.PaymentMethods != nil {
		setting.PaymentMethods = strings.TrimSpace(*input.PaymentMethods)
	}

	if err := s.store.Settings.Save(ctx, setting); err != nil {
		return nil, err
	}

	log.Printf("✅ Settings updated (referral bonus %.2f, VAT %.2f%%)", setting.ReferralBonus, setting.WithdrawVatPercent)
	return setting, nil
}

// loadSettings reads the settings row; a missing or unreadable row yields defaults
func loadSettings(ctx context.Context, repo repositories.SettingRepository, defaults models.Setting) *models.Setting {
	setting, err := repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("⚠️ Failed to read settings, using defaults: %v", err)
		}
		d := defaults
		return &d
	}
	return setting
}
