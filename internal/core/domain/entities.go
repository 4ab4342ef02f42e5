package domain

// Role represents user role in the system
type Role string

const (
	RoleConsumer Role = "consumer"
	RoleAdmin    Role = "admin"
)

// TransactionType is the kind of ledger event
type TransactionType string

const (
	TxRecharge              TransactionType = "recharge"
	TxWithdraw              TransactionType = "withdraw"
	TxPurchase              TransactionType = "purchase"
	TxEarn                  TransactionType = "earn"
	TxReferralPurchaseBonus TransactionType = "referral_purchase_bonus"
	TxVIPWeeklyReward       TransactionType = "vip_weekly_reward"
	TxVIPMonthlyReward      TransactionType = "vip_monthly_reward"
	TxPrizeSmash            TransactionType = "prize_smash"
)

// Valid reports whether t is a known transaction type
func (t TransactionType) Valid() bool {
	switch t {
	case TxRecharge, TxWithdraw, TxPurchase, TxEarn, TxReferralPurchaseBonus,
		TxVIPWeeklyReward, TxVIPMonthlyReward, TxPrizeSmash:
		return true
	}
	return false
}

// TransactionStatus is the review state of a ledger event
type TransactionStatus string

const (
	TxPending   TransactionStatus = "pending"
	TxApproved  TransactionStatus = "approved"
	TxCompleted TransactionStatus = "completed"
	TxRejected  TransactionStatus = "rejected"
)

// HoldingStatus is the lifecycle state of a purchased product
type HoldingStatus string

const (
	HoldingActive  HoldingStatus = "active"
	HoldingExpired HoldingStatus = "expired"
)
