package models

import (
	"eticket/src/types"
	"time"
)

// TicketType is a purchasable category within an event. SoldCount is only
// ever moved by the inventory ledger's conditional updates; sold_count never
// exceeds quantity.
type TicketType struct {
	ID           uint                   `gorm:"primarykey" json:"id"`
	EventID      uint                   `json:"event_id,omitempty"`
	Name         string                 `json:"name,omitempty"`
	Price        float64                `json:"price"`
	Quantity     uint                   `json:"quantity"`
	SoldCount    uint                   `json:"sold_count"`
	SaleStart    *time.Time             `json:"sale_start,omitempty"`
	SaleEnd      *time.Time             `json:"sale_end,omitempty"`
	PointsEarned uint                   `json:"points_earned,omitempty"`
	Status       types.TicketTypeStatus `gorm:"default:'active'" json:"status,omitempty"`

	Event Event `json:"event,omitempty"`

	types.Timestamps
}

func (t *TicketType) Available() uint {
	if t.SoldCount >= t.Quantity {
		return 0
	}
	return t.Quantity - t.SoldCount
}
