package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	TxTypeEarning          = "earning"
	TxTypeWithdrawalFee    = "withdrawal-fee"
	TxTypeWithdrawalPayout = "withdrawal-payout"
)

const (
	TxStatusCompleted = "completed"
	TxStatusPending   = "pending"
	TxStatusFailed    = "failed"
)

const (
	WithdrawalStatusPending   = "pending"
	WithdrawalStatusCompleted = "completed"
)

type User struct {
	ID           int       `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Balance      float64   `db:"balance"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

type Transaction struct {
	ID          int       `db:"id"`
	UserID      int       `db:"user_id"`
	Type        string    `db:"type"`
	Amount      float64   `db:"amount"`
	Status      string    `db:"status"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

type WithdrawalRequest struct {
	ID          int        `db:"id"`
	UserID      int        `db:"user_id"`
	UserEmail   string     `db:"user_email"`
	Amount      float64    `db:"amount"`
	FeePaid     float64    `db:"fee_paid"`
	FeeTxID     string     `db:"fee_tx_id"`
	FeeVerified bool       `db:"fee_verified"`
	Status      string     `db:"status"`
	RequestedAt time.Time  `db:"requested_at"`
	CompletedAt *time.Time `db:"completed_at"`
}

type SiteConfig struct {
	WebsiteName          string  `db:"website_name"`
	WithdrawalFee        float64 `db:"withdrawal_fee"`
	FeeTokenName         string  `db:"fee_token_name"`
	AdCreditAmount       float64 `db:"ad_credit_amount"`
	FeeDepositAddress    string  `db:"fee_deposit_address"`
	ClaimCooldownSeconds int     `db:"claim_cooldown_seconds"`
}

// SiteConfigPatch carries a partial config update; nil fields keep the
// stored value.
type SiteConfigPatch struct {
	WebsiteName          *string
	WithdrawalFee        *float64
	FeeTokenName         *string
	AdCreditAmount       *float64
	FeeDepositAddress    *string
	ClaimCooldownSeconds *int
}

type Ad struct {
	ID        int       `db:"id"`
	ImageURL  string    `db:"image_url"`
	AltText   string    `db:"alt_text"`
	Hint      string    `db:"hint"`
	CreatedAt time.Time `db:"created_at"`
}
