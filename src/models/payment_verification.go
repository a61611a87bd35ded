package models

import (
	"eticket/src/types"
	"time"
)

// PaymentVerification records the bank-side evidence an operator supplied
// when confirming an order. Audit only, never read back by the core flow.
type PaymentVerification struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	OrderID       uint      `gorm:"index" json:"order_id,omitempty"`
	BankReference string    `json:"bank_reference,omitempty"`
	Amount        float64   `json:"amount"`
	PaidDate      time.Time `json:"paid_date,omitempty"`
	Note          *string   `json:"note,omitempty"`
	VerifiedBy    uint      `json:"verified_by,omitempty"`

	// raw payload from the bank statement or webhook, kept as-is for audit
	Details types.JSONB `gorm:"type:jsonb" json:"details,omitempty"`

	Order Order `json:"-"`

	types.Timestamps
}
