package common

import (
	"context"
	"errors"
	"eticket/src/config"
	"eticket/src/db"
	"eticket/src/lib"
	"eticket/src/models"
	"eticket/src/types"
	"eticket/src/utils"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

func orderStatusCacheKey(orderNumber string) string {
	return fmt.Sprintf("order_status:%s", orderNumber)
}

func cacheOrderStatus(orderNumber string, status types.PaymentStatus, ttl time.Duration) {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	ctx := context.Background()
	if err := rd.SetEx(ctx, orderStatusCacheKey(orderNumber), string(status), ttl).Err(); err != nil {
		log.Printf("could not cache status for order %s: %s\n", orderNumber, err.Error())
	}
}

// CreateOrder reserves inventory for every cart item and creates a pending
// order in a single transaction. Either all lines get their units or the
// whole order fails and nothing stays reserved.
func CreateOrder(body *types.CreateOrderRequestBody, userID *uint) (*types.OrderSummary, error) {
	conn := db.GetDb()
	var summary *types.OrderSummary
	err := conn.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Where(&models.Event{ID: body.EventID}).First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrEventNotFound
			}
			return err
		}
		if event.Status != types.EVENT_PUBLISHED {
			return types.ErrSaleClosed
		}

		now := time.Now()
		var subtotal float64
		items := make([]models.OrderItem, 0, len(body.Items))
		for _, v := range body.Items {
			var tt models.TicketType
			if err := tx.Where("id = ? AND event_id = ?", v.TicketTypeID, event.ID).First(&tt).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return types.ErrTicketTypeNotFound
				}
				return err
			}
			if tt.Status != types.TICKET_TYPE_ACTIVE {
				return types.ErrSaleClosed
			}
			if tt.SaleStart != nil && now.Before(*tt.SaleStart) {
				return types.ErrSaleClosed
			}
			if tt.SaleEnd != nil && now.After(*tt.SaleEnd) {
				return types.ErrSaleClosed
			}
			if err := Reserve(tx, tt.ID, v.Quantity); err != nil {
				return err
			}
			// snapshot from the cart payload so the buyer pays what they saw
			unitPrice := v.UnitPrice
			if unitPrice == 0 {
				unitPrice = tt.Price
			}
			subtotal += unitPrice * float64(v.Quantity)
			items = append(items, models.OrderItem{
				TicketTypeID:  tt.ID,
				Name:          tt.Name,
				UnitPrice:     unitPrice,
				Quantity:      v.Quantity,
				PointsPerUnit: tt.PointsEarned,
			})
		}

		txnCode := utils.GenerateTransactionCode()
		finalAmount := subtotal
		qrURL, err := lib.GetPayQRClient().GenerateQR(finalAmount, fmt.Sprintf("ETIX %s", txnCode))
		if err != nil {
			return err
		}

		order := models.Order{
			OrderNumber:     utils.GenerateOrderNumber(),
			TransactionCode: txnCode,
			EventID:         event.ID,
			UserID:          userID,
			CustomerName:    body.CustomerName,
			CustomerEmail:   body.CustomerEmail,
			CustomerPhone:   body.CustomerPhone,
			Subtotal:        subtotal,
			FinalAmount:     finalAmount,
			PaymentStatus:   types.PAYMENT_PENDING,
			OrderStatus:     types.ORDER_PENDING,
			PaymentQRURL:    qrURL,
			ExpiresAt:       now.Add(config.ORDER_PAYMENT_WINDOW),
			Items:           items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		summary = &types.OrderSummary{
			OrderID:         order.ID,
			OrderNumber:     order.OrderNumber,
			TransactionCode: order.TransactionCode,
			Subtotal:        order.Subtotal,
			DiscountAmount:  order.DiscountAmount,
			FinalAmount:     order.FinalAmount,
			PaymentQRURL:    order.PaymentQRURL,
			ExpiresAt:       order.ExpiresAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	cacheOrderStatus(summary.OrderNumber, types.PAYMENT_PENDING, config.ORDER_PAYMENT_WINDOW)
	return summary, nil
}

func GetOrderByID(id uint) (*models.Order, error) {
	conn := db.GetDb()
	var order models.Order
	if err := conn.Where(&models.Order{ID: id}).
		Preload("Items").
		Preload("Tickets").
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func GetOrderByNumber(orderNumber string) (*models.Order, error) {
	conn := db.GetDb()
	var order models.Order
	if err := conn.Where(&models.Order{OrderNumber: orderNumber}).
		Preload("Items").
		Preload("Tickets").
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// GetOrderPaymentStatus answers the buyer's polling loop. The redis entry
// written on creation and confirmation keeps the hot path off the database.
func GetOrderPaymentStatus(orderNumber string) (types.PaymentStatus, error) {
	if rd := lib.GetRedisClient(); rd != nil {
		ctx := context.Background()
		if cached, err := rd.Get(ctx, orderStatusCacheKey(orderNumber)).Result(); err == nil {
			return types.PaymentStatus(cached), nil
		}
	}
	conn := db.GetDb()
	var order models.Order
	if err := conn.Select("id", "order_number", "payment_status").
		Where(&models.Order{OrderNumber: orderNumber}).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", types.ErrOrderNotFound
		}
		return "", err
	}
	cacheOrderStatus(order.OrderNumber, order.PaymentStatus, config.ORDER_PAYMENT_WINDOW)
	return order.PaymentStatus, nil
}

// CancelOrder voids an unpaid order and returns its units to the pool. Keyed
// by order number so the sequential row id never leaves the server.
func CancelOrder(orderNumber string) error {
	conn := db.GetDb()
	err := conn.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where(&models.Order{OrderNumber: orderNumber}).Preload("Items").First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrOrderNotFound
			}
			return err
		}
		if order.PaymentStatus != types.PAYMENT_PENDING {
			return types.ErrOrderNotPending
		}
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
			return types.ErrOrderNotPending
		}
		for _, item := range order.Items {
			if err := Release(tx, item.TicketTypeID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	cacheOrderStatus(orderNumber, types.PAYMENT_FAILED, config.ORDER_PAYMENT_WINDOW)
	return nil
}
