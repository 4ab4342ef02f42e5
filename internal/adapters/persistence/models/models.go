package models

import (
	"time"

	"rewardhub/internal/core/domain"
	"rewardhub/internal/core/rewards"

	"gorm.io/gorm"
)

// ============================================================
// Users & Auth
// ============================================================

// User represents users table
type User struct {
	ID                           uint           `gorm:"primaryKey" json:"id"`
	Name                         string         `gorm:"size:100;not null" json:"name"`
	Phone                        string         `gorm:"uniqueIndex;size:20;not null" json:"phone"`
	NID                          *string        `gorm:"column:nid;uniqueIndex;size:30" json:"nid,omitempty"`
	Passport                     *string        `gorm:"uniqueIndex;size:30" json:"passport,omitempty"`
	Password                     string         `gorm:"size:255;not null" json:"-"`
	Role                         string         `gorm:"size:20;default:'consumer'" json:"role"`
	IsActive                     bool           `gorm:"default:false" json:"is_active"`
	ActivatedAt                  *time.Time     `json:"activated_at"`
	ReferralCode                 string         `gorm:"uniqueIndex;size:8;not null" json:"referral_code"`
	ReferredBy                   *uint          `gorm:"index" json:"referred_by"`
	TotalReferrals               int            `gorm:"default:0" json:"total_referrals"`
	VIPLevel                     int            `gorm:"column:vip_level;default:0" json:"vip_level"`
	LastWeeklyReward             *time.Time     `json:"last_weekly_reward"`
	LastMonthlyReward            *time.Time     `json:"last_monthly_reward"`
	FirstPurchaseAt              *time.Time     `json:"first_purchase_at"`
	ReferralPurchaseBonusGranted bool           `gorm:"default:false" json:"referral_purchase_bonus_granted"`
	LastEggSmash                 *time.Time     `json:"last_egg_smash"`
	RewardVersion                int64          `gorm:"default:0" json:"-"`
	CreatedAt                    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt                    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == string(domain.RoleAdmin)
}

// UserResponse DTO
type UserResponse struct {
	ID             uint       `json:"id"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	Role           string     `json:"role"`
	IsActive       bool       `json:"is_active"`
	ReferralCode   string     `json:"referral_code"`
	ReferredBy     *uint      `json:"referred_by,omitempty"`
	TotalReferrals int        `json:"total_referrals"`
	VIPLevel       int        `json:"vip_level"`
	VIPLevelName   string     `json:"vip_level_name"`
	ActivatedAt    *time.Time `json:"activated_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Phone:          u.Phone,
		Role:           u.Role,
		IsActive:       u.IsActive,
		ReferralCode:   u.ReferralCode,
		ReferredBy:     u.ReferredBy,
		TotalReferrals: u.TotalReferrals,
		VIPLevel:       u.VIPLevel,
		VIPLevelName:   rewards.VIPLevel(u.VIPLevel).Name(),
		ActivatedAt:    u.ActivatedAt,
		CreatedAt:      u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(rt.ExpiresAt)
}

// ============================================================
// Wallet & Ledger
// ============================================================

// Wallet is 1:1 with a user and keyed by the user's ID
type Wallet struct {
	UserID           uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	RechargeWallet   float64   `gorm:"type:decimal(15,2);default:0;not null" json:"recharge_wallet"`
	BalanceWallet    float64   `gorm:"type:decimal(15,2);default:0;not null" json:"balance_wallet"`
	TotalEarnings    float64   `gorm:"type:decimal(15,2);default:0;not null" json:"total_earnings"`
	TotalWithdrawals float64   `gorm:"type:decimal(15,2);default:0;not null" json:"total_withdrawals"`
	IncomeToday      float64   `gorm:"type:decimal(15,2);default:0;not null" json:"income_today"`
	IncomeYesterday  float64   `gorm:"type:decimal(15,2);default:0;not null" json:"income_yesterday"`
	LossToday        float64   `gorm:"type:decimal(15,2);default:0;not null" json:"loss_today"`
	LossTotal        float64   `gorm:"type:decimal(15,2);default:0;not null" json:"loss_total"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Wallet) TableName() string {
	return "wallets"
}

// Transaction is an append-only ledger event
type Transaction struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Reference     string     `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	UserID        uint       `gorm:"index;not null" json:"user_id"`
	Type          string     `gorm:"size:40;index;not null" json:"type"`
	Amount        float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status        string     `gorm:"size:20;index;not null" json:"status"`
	VatTax        float64    `gorm:"type:decimal(15,2);default:0" json:"vat_tax,omitempty"`
	NetAmount     float64    `gorm:"type:decimal(15,2);default:0" json:"net_amount,omitempty"`
	Method        string     `gorm:"size:30" json:"method,omitempty"`
	AccountNumber string     `gorm:"size:50" json:"account_number,omitempty"`
	ProofImageURL string     `gorm:"size:255" json:"proof_image_url,omitempty"`
	UserProductID *uint      `gorm:"index" json:"user_product_id,omitempty"`
	RelatedUserID *uint      `json:"related_user_id,omitempty"`
	Note          string     `gorm:"type:text" json:"note,omitempty"`
	ReviewedBy    *uint      `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// IsPending reports whether the transaction still awaits review
func (t *Transaction) IsPending() bool {
	return t.Status == string(domain.TxPending)
}

// ============================================================
// Catalog & Holdings
// ============================================================

// Product is a catalog item owned by admins
type Product struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	Description  string     `gorm:"type:text" json:"description"`
	ImageURL     string     `gorm:"size:255" json:"image_url"`
	Price        float64    `gorm:"type:decimal(15,2);not null" json:"price"`
	ValidityDays int        `gorm:"default:0" json:"validity_days"`
	ValidateDate *time.Time `json:"validate_date,omitempty"`
	EarnAmount   float64    `gorm:"type:decimal(15,2);not null" json:"earn_amount"`
	TotalEarning float64    `gorm:"type:decimal(15,2);default:0" json:"total_earning"`
	Deleted      bool       `gorm:"default:false;index" json:"deleted"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// UserProduct is one purchase of a product
type UserProduct struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UserID            uint       `gorm:"index;not null" json:"user_id"`
	ProductID         uint       `gorm:"index;not null" json:"product_id"`
	ProductName       string     `gorm:"size:100" json:"product_name"`
	Price             float64    `gorm:"type:decimal(15,2)" json:"price"`
	Description       string     `gorm:"type:text" json:"description"`
	ImageURL          string     `gorm:"size:255" json:"image_url"`
	PurchaseDate      time.Time  `gorm:"not null" json:"purchase_date"`
	Status            string     `gorm:"size:20;index;default:'active'" json:"status"`
	ValidityDays      int        `gorm:"default:0" json:"validity_days"`
	ValidateDate      *time.Time `json:"validate_date,omitempty"`
	EarnAmount        float64    `gorm:"type:decimal(15,2)" json:"earn_amount"`
	EarningCap        float64    `gorm:"type:decimal(15,2);default:0" json:"earning_cap"`
	EarnWindowStartAt *time.Time `json:"earn_window_start_at"`
	TotalEarnings     float64    `gorm:"type:decimal(15,2);default:0" json:"total_earnings"`
	Version           int64      `gorm:"default:0" json:"-"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserProduct) TableName() string {
	return "user_products"
}

// Schedule normalizes the stored holding into its canonical earning view
func (up *UserProduct) Schedule() rewards.Schedule {
	return rewards.Schedule{
		Anchor:     rewards.Anchor(up.EarnWindowStartAt, up.PurchaseDate),
		Expiry:     rewards.Expiry(up.PurchaseDate, up.ValidityDays, up.ValidateDate),
		EarnAmount: up.EarnAmount,
		Earned:     up.TotalEarnings,
		Cap:        up.EarningCap,
	}
}

// ============================================================
// Settings
// ============================================================

// SettingsID is the primary key of the singleton settings row
const SettingsID = 1

// Setting is the singleton application settings row
type Setting struct {
	ID                 uint      `gorm:"primaryKey" json:"-"`
	ReferralBonus      float64   `gorm:"type:decimal(15,2)" json:"referral_bonus"`
	Currency           string    `gorm:"size:10" json:"currency"`
	WithdrawVatPercent float64   `gorm:"type:decimal(5,2)" json:"withdraw_vat_percent"`
	MinWithdraw        float64   `gorm:"type:decimal(15,2)" json:"min_withdraw"`
	MinRecharge        float64   `gorm:"type:decimal(15,2)" json:"min_recharge"`
	PaymentNumber      string    `gorm:"size:30" json:"payment_number"`
	PaymentMethods     string    `gorm:"size:255" json:"payment_methods"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// DefaultSettings returns the values used until an admin saves settings
func DefaultSettings(referralBonus float64) Setting {
	return Setting{
		ID:                 SettingsID,
		ReferralBonus:      referralBonus,
		Currency:           "BDT",
		WithdrawVatPercent: 10,
		MinWithdraw:        100,
		MinRecharge:        100,
		PaymentMethods:     "bkash,nagad,rocket",
	}
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Wallet{},
		&Transaction{},
		&Product{},
		&UserProduct{},
		&Setting{},
	)
}
