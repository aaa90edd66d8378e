package dto

import "time"

type BalanceResponseDTO struct {
	Balance float64 `json:"balance" example:"1.5"`
}

type ClaimResponseDTO struct {
	Balance float64 `json:"balance" example:"2"`
	Credit  float64 `json:"credit" example:"0.5"`
}

type TransactionResponseDTO struct {
	ID          int       `json:"id" example:"12"`
	Type        string    `json:"type" example:"earning"`
	Amount      float64   `json:"amount" example:"0.5"`
	Status      string    `json:"status" example:"completed"`
	Description string    `json:"description" example:"Credit from claiming a token."`
	Timestamp   time.Time `json:"timestamp" example:"2020-12-09T16:09:57+03:00"`
}

type AdResponseDTO struct {
	ID       int    `json:"id" example:"1"`
	ImageURL string `json:"imageUrl" example:"https://placehold.co/600x400.png"`
	AltText  string `json:"altText" example:"Advertisement 1"`
	Hint     string `json:"hint" example:"product advertisement"`
}

type SiteConfigDTO struct {
	WebsiteName          string  `json:"websiteName" example:"AdWallet"`
	WithdrawalFee        float64 `json:"withdrawalFee" example:"1"`
	FeeTokenName         string  `json:"feeTokenName" example:"USDT"`
	AdCreditAmount       float64 `json:"adCreditAmount" example:"0.5"`
	FeeDepositAddress    string  `json:"feeDepositAddress" example:"TXYZabc123"`
	ClaimCooldownSeconds int     `json:"claimCooldownSeconds" example:"30"`
}
