package common

import (
	"eticket/src/config"
	"eticket/src/db"
	"eticket/src/models"
	"eticket/src/types"
	"log"
	"time"

	"gorm.io/gorm"
)

// SweepExpiredOrders voids unpaid orders past their payment window and
// returns their units to the pool. Each order is handled in its own
// transaction with a conditional update, so a confirmation landing mid-sweep
// wins and the order keeps its tickets.
func SweepExpiredOrders() {
	conn := db.GetDb()
	var expired []models.Order
	if err := conn.Where("payment_status = ? AND expires_at < ?", types.PAYMENT_PENDING, time.Now()).
		Preload("Items").
		Find(&expired).Error; err != nil {
		log.Printf("expiry sweep query failed: %s\n", err.Error())
		return
	}
	if len(expired) == 0 {
		return
	}
	released := 0
	for _, order := range expired {
		expiredNow := false
		err := conn.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Order{}).
				Where("id = ? AND payment_status = ?", order.ID, types.PAYMENT_PENDING).
				Updates(map[string]any{
					"payment_status": types.PAYMENT_FAILED,
					"order_status":   types.ORDER_CANCELED,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// paid in the meantime, leave it alone
				return nil
			}
			expiredNow = true
			for _, item := range order.Items {
				if err := Release(tx, item.TicketTypeID, item.Quantity); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("could not expire order %s: %s\n", order.OrderNumber, err.Error())
			continue
		}
		if expiredNow {
			released++
			cacheOrderStatus(order.OrderNumber, types.PAYMENT_FAILED, config.ORDER_PAYMENT_WINDOW)
		}
	}
	if released > 0 {
		log.Printf("expiry sweep released %d orders\n", released)
	}
}
