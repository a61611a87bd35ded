package models

import (
	"eticket/src/types"
	"time"
)

// Ticket rows exist only as a side effect of a confirmed payment. The ticket
// number is the QR payload; QRCodeURL is just a rendering of it and may be
// empty when an upload failed and is pending regeneration.
type Ticket struct {
	ID           uint               `gorm:"primarykey" json:"id"`
	TicketNumber string             `gorm:"uniqueIndex" json:"ticket_number,omitempty"`
	OrderID      uint               `json:"order_id,omitempty"`
	EventID      uint               `json:"event_id,omitempty"`
	TicketTypeID uint               `json:"ticket_type_id,omitempty"`
	Status       types.TicketStatus `gorm:"default:'valid'" json:"status,omitempty"`

	HolderName  string `json:"holder_name,omitempty"`
	HolderEmail string `json:"holder_email,omitempty"`
	HolderPhone string `json:"holder_phone,omitempty"`

	QRCodeURL string `json:"qr_code_url,omitempty"`

	CheckedInAt    *time.Time `json:"checked_in_at,omitempty"`
	CheckedInBy    *uint      `json:"checked_in_by,omitempty"`
	CheckedInNotes *string    `json:"checked_in_notes,omitempty"`

	Order      Order      `json:"order,omitempty"`
	Event      Event      `json:"event,omitempty"`
	TicketType TicketType `json:"ticket_type,omitempty"`

	types.Timestamps
}
