package common

import (
	"errors"
	"eticket/src/models"
	"eticket/src/types"
	"fmt"

	"gorm.io/gorm"
)

// Reserve takes qty units from a ticket type's capacity. The availability
// check and the sold_count increment happen in one conditional UPDATE, so
// concurrent checkouts can never both succeed past the capacity limit.
func Reserve(tx *gorm.DB, ticketTypeID uint, qty uint) error {
	res := tx.
		Model(&models.TicketType{}).
		Where("id = ? AND quantity - sold_count >= ?", ticketTypeID, qty).
		Update("sold_count", gorm.Expr("sold_count + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var tt models.TicketType
		if err := tx.Where(&models.TicketType{ID: ticketTypeID}).First(&tt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrTicketTypeNotFound
			}
			return err
		}
		return &types.InsufficientInventoryError{
			TicketTypeID: tt.ID,
			Name:         tt.Name,
			Requested:    qty,
			Remaining:    tt.Available(),
		}
	}
	return nil
}

// Release gives qty units back, used when an unpaid order expires or is
// cancelled. sold_count never goes below zero.
func Release(tx *gorm.DB, ticketTypeID uint, qty uint) error {
	res := tx.
		Model(&models.TicketType{}).
		Where("id = ? AND sold_count >= ?", ticketTypeID, qty).
		Update("sold_count", gorm.Expr("sold_count - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("could not release %d units for ticket type [%d]", qty, ticketTypeID)
	}
	return nil
}
