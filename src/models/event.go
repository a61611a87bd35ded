package models

import (
	"eticket/src/types"
	"time"
)

type Event struct {
	ID               uint              `gorm:"primarykey" json:"id"`
	Title            string            `json:"title,omitempty"`
	Slug             string            `gorm:"index" json:"slug,omitempty"`
	Location         string            `json:"location,omitempty"`
	StartDate        time.Time         `json:"start_date,omitempty"`
	EndDate          time.Time         `json:"end_date,omitempty"`
	MaxAttendees     uint              `json:"max_attendees,omitempty"`
	CurrentAttendees uint              `json:"current_attendees"`
	Status           types.EventStatus `gorm:"default:'published'" json:"status,omitempty"`

	TicketTypes []TicketType `json:"ticket_types,omitempty"`

	types.Timestamps
}
