package models

import "eticket/src/types"

// PointTransaction is an append-only ledger row. BalanceAfter is computed by
// the ledger at write time under a per-user lock, never caller-supplied.
type PointTransaction struct {
	ID           uint                       `gorm:"primarykey" json:"id"`
	UserID       uint                       `gorm:"index" json:"user_id,omitempty"`
	Points       int                        `json:"points"`
	Type         types.PointTransactionType `json:"type,omitempty"`
	Reason       string                     `json:"reason,omitempty"`
	OrderID      *uint                      `json:"order_id,omitempty"`
	BalanceAfter int                        `json:"balance_after"`

	User  User   `json:"-"`
	Order *Order `json:"-"`

	types.Timestamps
}
