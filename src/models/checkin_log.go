package models

import (
	"eticket/src/types"
)

// CheckInLog is append-only. One row per successful admission, written in the
// same transaction as the ticket status flip.
type CheckInLog struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	TicketID   uint    `gorm:"index" json:"ticket_id,omitempty"`
	EventID    uint    `gorm:"index" json:"event_id,omitempty"`
	OperatorID uint    `json:"operator_id,omitempty"`
	Notes      *string `json:"notes,omitempty"`

	Ticket Ticket `json:"ticket,omitempty"`
	Event  Event  `json:"-"`

	types.Timestamps
}
