package dto

import "time"

type UserResponseDTO struct {
	ID        int       `json:"id" example:"1"`
	Email     string    `json:"email" example:"a@x.com"`
	Balance   float64   `json:"balance" example:"1.5"`
	Role      string    `json:"role" example:"user"`
	CreatedAt time.Time `json:"createdAt" example:"2020-12-09T16:09:57+03:00"`
}

type UpdateRoleRequestDTO struct {
	Role string `json:"role" example:"admin"`
}

// UpdateConfigRequestDTO is a partial update: omitted fields are left as is.
type UpdateConfigRequestDTO struct {
	WebsiteName          *string  `json:"websiteName,omitempty"`
	WithdrawalFee        *float64 `json:"withdrawalFee,omitempty"`
	FeeTokenName         *string  `json:"feeTokenName,omitempty"`
	AdCreditAmount       *float64 `json:"adCreditAmount,omitempty"`
	FeeDepositAddress    *string  `json:"feeDepositAddress,omitempty"`
	ClaimCooldownSeconds *int     `json:"claimCooldownSeconds,omitempty"`
}
