package models

import "eticket/src/types"

// User carries no point balance column. Balances are always derived from the
// point_transactions ledger.
type User struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `gorm:"uniqueIndex" json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `gorm:"default:'customer'" json:"role,omitempty"`

	Orders            []Order            `json:"orders,omitempty"`
	PointTransactions []PointTransaction `json:"point_transactions,omitempty"`

	types.Timestamps
}
