package common

import (
	"errors"
	"eticket/src/config"
	"eticket/src/db"
	"eticket/src/models"
	"eticket/src/types"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// validateCheckInWindow gates admission to a window opening two hours before
// the event starts and closing when it ends.
func validateCheckInWindow(ticketNumber string, now time.Time, event *models.Event) error {
	opensAt := event.StartDate.Add(-config.CHECKIN_EARLY_WINDOW)
	if now.Before(opensAt) {
		return &types.CheckInTooEarlyError{TicketNumber: ticketNumber, OpensAt: opensAt}
	}
	if now.After(event.EndDate) {
		return types.ErrEventEnded
	}
	return nil
}

// CheckIn admits a valid ticket. The status flip and the audit log land in
// one transaction, and the conditional update makes a concurrent duplicate
// scan surface as TicketAlreadyUsedError instead of a double admission.
func CheckIn(ticketNumber string, operatorID uint, notes string) (*types.CheckInOutcome, error) {
	conn := db.GetDb()
	var outcome *types.CheckInOutcome
	err := conn.Transaction(func(tx *gorm.DB) error {
		var ticket models.Ticket
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Ticket{TicketNumber: ticketNumber}).
			Preload("Event").
			First(&ticket).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrTicketNotFound
			}
			return err
		}
		switch ticket.Status {
		case types.TICKET_CANCELED:
			return types.ErrTicketCancelled
		case types.TICKET_EXPIRED:
			return types.ErrTicketExpired
		case types.TICKET_USED:
			return alreadyUsed(&ticket)
		}
		now := time.Now()
		if err := validateCheckInWindow(ticket.TicketNumber, now, &ticket.Event); err != nil {
			return err
		}
		updates := map[string]any{
			"status":        types.TICKET_USED,
			"checked_in_at": now,
			"checked_in_by": operatorID,
		}
		if notes != "" {
			updates["checked_in_notes"] = notes
		}
		res := tx.Model(&models.Ticket{}).
			Where("id = ? AND status = ?", ticket.ID, types.TICKET_VALID).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var current models.Ticket
			if err := tx.Where(&models.Ticket{ID: ticket.ID}).First(&current).Error; err != nil {
				return err
			}
			return alreadyUsed(&current)
		}
		checkinLog := models.CheckInLog{
			TicketID:   ticket.ID,
			EventID:    ticket.EventID,
			OperatorID: operatorID,
		}
		if notes != "" {
			checkinLog.Notes = &notes
		}
		if err := tx.Create(&checkinLog).Error; err != nil {
			return err
		}
		outcome = &types.CheckInOutcome{
			TicketNumber: ticket.TicketNumber,
			EventID:      ticket.EventID,
			CheckedInAt:  now,
			CheckedInBy:  operatorID,
			HolderName:   ticket.HolderName,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func alreadyUsed(ticket *models.Ticket) error {
	e := &types.TicketAlreadyUsedError{TicketNumber: ticket.TicketNumber}
	if ticket.CheckedInAt != nil {
		e.CheckedInAt = *ticket.CheckedInAt
	}
	if ticket.CheckedInBy != nil {
		e.CheckedInBy = *ticket.CheckedInBy
	}
	return e
}

// GetTicketInfo is the read-only lookup operators use before scanning.
func GetTicketInfo(ticketNumber string) (*models.Ticket, error) {
	conn := db.GetDb()
	var ticket models.Ticket
	if err := conn.Where(&models.Ticket{TicketNumber: ticketNumber}).
		Preload("Event").
		Preload("TicketType").
		First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func ListEventCheckIns(eventID uint) ([]models.CheckInLog, error) {
	conn := db.GetDb()
	var logs []models.CheckInLog
	if err := conn.Where("event_id = ?", eventID).
		Preload("Ticket").
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
