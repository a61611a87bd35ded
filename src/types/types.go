package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type PaymentStatus string

const (
	PAYMENT_PENDING  PaymentStatus = "pending"
	PAYMENT_PAID     PaymentStatus = "paid"
	PAYMENT_FAILED   PaymentStatus = "failed"
	PAYMENT_REFUNDED PaymentStatus = "refunded"
)

type OrderStatus string

const (
	ORDER_PENDING   OrderStatus = "pending"
	ORDER_CONFIRMED OrderStatus = "confirmed"
	ORDER_CANCELED  OrderStatus = "cancelled"
	ORDER_COMPLETED OrderStatus = "completed"
)

type TicketStatus string

const (
	TICKET_VALID    TicketStatus = "valid"
	TICKET_USED     TicketStatus = "used"
	TICKET_CANCELED TicketStatus = "cancelled"
	TICKET_EXPIRED  TicketStatus = "expired"
)

type TicketTypeStatus string

const (
	TICKET_TYPE_ACTIVE   TicketTypeStatus = "active"
	TICKET_TYPE_INACTIVE TicketTypeStatus = "inactive"
)

type EventStatus string

const (
	EVENT_DRAFT     EventStatus = "draft"
	EVENT_PUBLISHED EventStatus = "published"
	EVENT_COMPLETED EventStatus = "completed"
	EVENT_CANCELED  EventStatus = "cancelled"
)

type PointTransactionType string

const (
	POINTS_EARN   PointTransactionType = "earn"
	POINTS_SPEND  PointTransactionType = "spend"
	POINTS_BONUS  PointTransactionType = "bonus"
	POINTS_REFUND PointTransactionType = "refund"
	POINTS_EXPIRE PointTransactionType = "expire"
)

type CartItem struct {
	TicketTypeID uint    `json:"ticket_type_id" binding:"required"`
	Name         string  `json:"name,omitempty"`
	UnitPrice    float64 `json:"unit_price" binding:"min=0"`
	Quantity     uint    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequestBody struct {
	EventID       uint       `json:"event_id" binding:"required"`
	UserID        *uint      `json:"user_id,omitempty"`
	Items         []CartItem `json:"items" binding:"required,min=1,dive"`
	CustomerName  string     `json:"customer_name" binding:"required"`
	CustomerEmail string     `json:"customer_email" binding:"required,email"`
	CustomerPhone string     `json:"customer_phone,omitempty"`
}

type ConfirmPaymentRequestBody struct {
	BankReference string         `json:"bank_reference" binding:"required"`
	Amount        float64        `json:"amount" binding:"required,min=0"`
	PaidDate      string         `json:"paid_date,omitempty"`
	Note          string         `json:"note,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
}

type CheckInRequestBody struct {
	TicketNumber string `json:"ticket_number" binding:"required"`
	Notes        string `json:"notes,omitempty"`
}

type CreateEventRequestBody struct {
	Title        string                  `json:"title" binding:"required"`
	Location     string                  `json:"location,omitempty"`
	StartDate    string                  `json:"start_date" binding:"required,futuredate" time_format:"2006-01-02 15:04:05 -07:00"`
	EndDate      string                  `json:"end_date" binding:"required,futuredate" time_format:"2006-01-02 15:04:05 -07:00"`
	MaxAttendees uint                    `json:"max_attendees,omitempty"`
	TicketTypes  []CreateTicketTypeInput `json:"ticket_types,omitempty" binding:"omitempty,dive"`
}

type CreateTicketTypeInput struct {
	Name         string  `json:"name" binding:"required"`
	Price        float64 `json:"price" binding:"min=0"`
	Quantity     uint    `json:"quantity" binding:"required,min=1"`
	SaleStart    *string `json:"sale_start,omitempty"`
	SaleEnd      *string `json:"sale_end,omitempty"`
	PointsEarned uint    `json:"points_earned,omitempty"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type TicketNumberURIParams struct {
	TicketNumber string `uri:"ticketNumber" binding:"required"`
}

type OrderNumberURIParams struct {
	OrderNumber string `uri:"orderNumber" binding:"required"`
}

type OrderSummary struct {
	OrderID         uint      `json:"order_id"`
	OrderNumber     string    `json:"order_number"`
	TransactionCode string    `json:"transaction_code"`
	Subtotal        float64   `json:"subtotal"`
	DiscountAmount  float64   `json:"discount_amount"`
	FinalAmount     float64   `json:"final_amount"`
	PaymentQRURL    string    `json:"payment_qr_url,omitempty"`
	ExpiresAt       time.Time `json:"expires_at"`
}

type ConfirmationOutcome struct {
	OrderID          uint     `json:"order_id"`
	Success          bool     `json:"success"`
	AlreadyConfirmed bool     `json:"already_confirmed"`
	TicketsIssued    int      `json:"tickets_issued"`
	TicketsSent      bool     `json:"tickets_sent"`
	PointsCredited   int      `json:"points_credited"`
	FailedQRUploads  []string `json:"failed_qr_uploads,omitempty"`
}

type CheckInOutcome struct {
	TicketNumber string    `json:"ticket_number"`
	EventID      uint      `json:"event_id"`
	CheckedInAt  time.Time `json:"checked_in_at"`
	CheckedInBy  uint      `json:"checked_in_by"`
	HolderName   string    `json:"holder_name,omitempty"`
}

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
