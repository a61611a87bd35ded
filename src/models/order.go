package models

import (
	"eticket/src/types"
	"time"
)

type Order struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	OrderNumber     string `gorm:"uniqueIndex" json:"order_number,omitempty"`
	TransactionCode string `gorm:"uniqueIndex" json:"transaction_code,omitempty"`
	EventID         uint   `json:"event_id,omitempty"`
	UserID          *uint  `json:"user_id,omitempty"`

	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`

	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalAmount    float64 `json:"final_amount"`

	PaymentStatus types.PaymentStatus `gorm:"default:'pending'" json:"payment_status,omitempty"`
	OrderStatus   types.OrderStatus   `gorm:"default:'pending'" json:"order_status,omitempty"`
	PaymentQRURL  string              `json:"payment_qr_url,omitempty"`
	ExpiresAt     time.Time           `json:"expires_at,omitempty"`

	PaidAt      *time.Time `json:"paid_at,omitempty"`
	ConfirmedBy *uint      `json:"confirmed_by,omitempty"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`

	Event   Event       `json:"event,omitempty"`
	User    *User       `json:"user,omitempty"`
	Items   []OrderItem `json:"items,omitempty"`
	Tickets []Ticket    `json:"tickets,omitempty"`

	types.Timestamps
}

// OrderItem snapshots the purchased line at the price and points the buyer
// was shown. Later catalog changes do not alter historical orders.
type OrderItem struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	OrderID       uint    `json:"order_id,omitempty"`
	TicketTypeID  uint    `json:"ticket_type_id,omitempty"`
	Name          string  `json:"name,omitempty"`
	UnitPrice     float64 `json:"unit_price"`
	Quantity      uint    `json:"quantity"`
	PointsPerUnit uint    `json:"points_per_unit"`

	types.Timestamps
}
