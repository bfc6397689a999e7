package models

import "time"

const (
	TransactionSale   = "sale"
	TransactionFee    = "fee"
	TransactionPayout = "payout"
	TransactionRefund = "refund"

	TransactionCompleted = "completed"
	TransactionPending   = "pending"
	TransactionFailed    = "failed"
)

// Transaction amounts are always positive; Kind decides the direction.
type Transaction struct {
	ID          string    `json:"id" yaml:"id"`
	Kind        string    `json:"kind" yaml:"kind"`
	Description string    `json:"description" yaml:"description"`
	AmountCents int64     `json:"amount_cents" yaml:"amount_cents"`
	Status      string    `json:"status" yaml:"status"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

type PayoutAccount struct {
	Holder   string `json:"holder" yaml:"holder"`
	BankName string `json:"bank_name" yaml:"bank_name"`
	IBAN     string `json:"-" yaml:"iban"`
	Schedule string `json:"schedule" yaml:"schedule"`
}

type PayoutRequest struct {
	Amount string `form:"amount" binding:"required"`
}
