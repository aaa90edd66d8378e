package dto

import "time"

type WithdrawRequestDTO struct {
	FeeTxID string `json:"feeTxId" example:"0x9f86d081884c7d65"`
}

type WithdrawalResponseDTO struct {
	ID          int        `json:"id" example:"3"`
	UserEmail   string     `json:"userEmail" example:"a@x.com"`
	Amount      float64    `json:"amount" example:"1"`
	FeePaid     float64    `json:"feePaid" example:"1"`
	FeeTxID     string     `json:"feeTxId" example:"0x9f86d081884c7d65"`
	FeeVerified bool       `json:"feeVerified" example:"false"`
	Status      string     `json:"status" example:"pending"`
	RequestedAt time.Time  `json:"requestedAt" example:"2020-12-09T16:09:57+03:00"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
