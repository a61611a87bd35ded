package types

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderExpired       = errors.New("order payment window has expired")
	ErrOrderNotPending    = errors.New("order is not awaiting payment")
	ErrOrderNotPaid       = errors.New("order has not been paid")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrTicketCancelled    = errors.New("ticket has been cancelled")
	ErrTicketExpired      = errors.New("ticket has expired")
	ErrEventEnded         = errors.New("event has already ended")
	ErrSaleClosed         = errors.New("ticket type is not on sale")
)

// InsufficientInventoryError is returned when an atomic reservation fails.
// Remaining reports the availability at the instant of the failed update.
type InsufficientInventoryError struct {
	TicketTypeID uint
	Name         string
	Requested    uint
	Remaining    uint
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("not enough tickets for [%s]: requested %d, %d remaining", e.Name, e.Requested, e.Remaining)
}

// TicketAlreadyUsedError is a duplicate-scan outcome, not corrupt state. It
// carries the original admission details so the operator can be shown them.
type TicketAlreadyUsedError struct {
	TicketNumber string
	CheckedInAt  time.Time
	CheckedInBy  uint
}

func (e *TicketAlreadyUsedError) Error() string {
	return fmt.Sprintf("ticket [%s] was already checked in at %s", e.TicketNumber, e.CheckedInAt.Format("2006-01-02 15:04:05"))
}

type CheckInTooEarlyError struct {
	TicketNumber string
	OpensAt      time.Time
}

func (e *CheckInTooEarlyError) Error() string {
	return fmt.Sprintf("check-in for ticket [%s] opens at %s", e.TicketNumber, e.OpensAt.Format("2006-01-02 15:04:05"))
}
