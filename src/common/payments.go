package common

import (
	"errors"
	"eticket/src/config"
	"eticket/src/db"
	"eticket/src/lib"
	"eticket/src/lib/aws"
	"eticket/src/models"
	"eticket/src/types"
	"eticket/src/utils"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"
)

// errConfirmationRaced aborts the confirmation transaction when another
// operator won the pending->paid transition between our read and our update.
var errConfirmationRaced = errors.New("confirmation raced")

// ConfirmPayment transitions a pending order to paid, issues one ticket per
// purchased unit and credits loyalty points, all in one transaction. A
// replayed confirmation is reported as AlreadyConfirmed with a nil error;
// nothing is issued twice. QR uploads and the email run after commit and
// never fail the confirmation itself.
func ConfirmPayment(orderID uint, operatorID uint, body *types.ConfirmPaymentRequestBody) (*types.ConfirmationOutcome, error) {
	conn := db.GetDb()
	var order models.Order
	if err := conn.Where(&models.Order{ID: orderID}).Preload("Items").First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrOrderNotFound
		}
		return nil, err
	}
	if order.PaymentStatus == types.PAYMENT_PAID {
		return &types.ConfirmationOutcome{OrderID: order.ID, Success: true, AlreadyConfirmed: true}, nil
	}
	if order.PaymentStatus != types.PAYMENT_PENDING {
		return nil, types.ErrOrderNotPending
	}
	if time.Now().After(order.ExpiresAt) {
		return nil, types.ErrOrderExpired
	}

	paidDate := time.Now()
	if body.PaidDate != "" {
		if parsed, err := time.Parse(config.TIME_PARSE_FORMAT, body.PaidDate); err == nil {
			paidDate = parsed
		}
	}

	outcome := &types.ConfirmationOutcome{OrderID: order.ID}
	var issued []models.Ticket
	err := conn.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&models.Order{}).
			Where("id = ? AND payment_status = ?", order.ID, types.PAYMENT_PENDING).
			Updates(map[string]any{
				"payment_status": types.PAYMENT_PAID,
				"order_status":   types.ORDER_CONFIRMED,
				"paid_at":        now,
				"confirmed_by":   operatorID,
				"confirmed_at":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// somebody else moved the order off pending between our pre-read
			// and the update; only a paid winner counts as already confirmed
			var current models.Order
			if err := tx.Where(&models.Order{ID: order.ID}).First(&current).Error; err != nil {
				return err
			}
			if current.PaymentStatus == types.PAYMENT_PAID {
				return errConfirmationRaced
			}
			if time.Now().After(current.ExpiresAt) {
				return types.ErrOrderExpired
			}
			return types.ErrOrderNotPending
		}

		verification := models.PaymentVerification{
			OrderID:       order.ID,
			BankReference: body.BankReference,
			Amount:        body.Amount,
			PaidDate:      paidDate,
			VerifiedBy:    operatorID,
		}
		if body.Note != "" {
			verification.Note = &body.Note
		}
		if len(body.Details) > 0 {
			verification.Details = types.JSONB(body.Details)
		}
		if err := tx.Create(&verification).Error; err != nil {
			return err
		}

		var totalUnits uint
		var totalPoints int
		for _, item := range order.Items {
			totalUnits += item.Quantity
			totalPoints += int(item.PointsPerUnit) * int(item.Quantity)
			for i := uint(0); i < item.Quantity; i++ {
				ticket := models.Ticket{
					TicketNumber: utils.GenerateTicketNumber(),
					OrderID:      order.ID,
					EventID:      order.EventID,
					TicketTypeID: item.TicketTypeID,
					Status:       types.TICKET_VALID,
					HolderName:   order.CustomerName,
					HolderEmail:  order.CustomerEmail,
					HolderPhone:  order.CustomerPhone,
				}
				if err := tx.Create(&ticket).Error; err != nil {
					return err
				}
				issued = append(issued, ticket)
			}
		}
		if err := tx.Model(&models.Event{}).
			Where("id = ?", order.EventID).
			Update("current_attendees", gorm.Expr("current_attendees + ?", totalUnits)).Error; err != nil {
			return err
		}

		if order.UserID != nil && totalPoints > 0 {
			reason := fmt.Sprintf("Purchase %s", order.OrderNumber)
			if _, err := CreditPoints(tx, *order.UserID, totalPoints, types.POINTS_EARN, reason, &order.ID); err != nil {
				return err
			}
			outcome.PointsCredited = totalPoints
		}
		outcome.TicketsIssued = len(issued)
		return nil
	})
	if err != nil {
		if errors.Is(err, errConfirmationRaced) {
			return &types.ConfirmationOutcome{OrderID: order.ID, Success: true, AlreadyConfirmed: true}, nil
		}
		return nil, err
	}

	outcome.Success = true
	cacheOrderStatus(order.OrderNumber, types.PAYMENT_PAID, config.ORDER_PAYMENT_WINDOW)
	outcome.FailedQRUploads = uploadTicketQRCodes(conn, issued)
	outcome.TicketsSent = sendTicketEmail(&order, issued)
	return outcome, nil
}

// uploadTicketQRCodes renders and stores one QR image per ticket that does
// not have one yet, writing the public URL back onto the slice element. Each
// ticket fails in isolation; failed numbers are returned for regeneration.
func uploadTicketQRCodes(conn *gorm.DB, tickets []models.Ticket) []string {
	var failed []string
	for i := range tickets {
		ticket := &tickets[i]
		if ticket.QRCodeURL != "" {
			continue
		}
		path, err := lib.EncodeTicketQR(ticket.TicketNumber)
		if err != nil {
			log.Printf("could not render QR for ticket %s: %s\n", ticket.TicketNumber, err.Error())
			failed = append(failed, ticket.TicketNumber)
			continue
		}
		url, err := aws.S3UploadAsset(fmt.Sprintf("%s.png", ticket.TicketNumber), path, "image/png")
		if err != nil {
			log.Printf("could not upload QR for ticket %s: %s\n", ticket.TicketNumber, err.Error())
			failed = append(failed, ticket.TicketNumber)
			continue
		}
		if err := conn.Model(&models.Ticket{}).
			Where("id = ?", ticket.ID).
			Update("qr_code_url", *url).Error; err != nil {
			log.Printf("could not save QR url for ticket %s: %s\n", ticket.TicketNumber, err.Error())
			failed = append(failed, ticket.TicketNumber)
			continue
		}
		ticket.QRCodeURL = *url
	}
	return failed
}

func sendTicketEmail(order *models.Order, tickets []models.Ticket) bool {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<p>Hi %s,</p><p>Your payment for order <strong>%s</strong> has been confirmed. Your tickets:</p>", order.CustomerName, order.OrderNumber))
	for _, ticket := range tickets {
		if ticket.QRCodeURL != "" {
			sb.WriteString(fmt.Sprintf(`<p>%s<br><img src=%q alt=%q width="240"></p>`, ticket.TicketNumber, ticket.QRCodeURL, ticket.TicketNumber))
		} else {
			sb.WriteString(fmt.Sprintf("<p>%s</p>", ticket.TicketNumber))
		}
	}
	sb.WriteString("<p>Show the ticket QR at the entrance. See you there!</p>")
	err := lib.SendMail(&lib.SendMailInput{
		From:     os.Getenv("MAIL_FROM"),
		FromName: os.Getenv("MAIL_FROM_NAME"),
		To:       []string{order.CustomerEmail},
		Subject:  fmt.Sprintf("Your tickets for order %s", order.OrderNumber),
		Body:     sb.String(),
		Html:     true,
	})
	if err != nil {
		log.Printf("could not send tickets for order %s: %s\n", order.OrderNumber, err.Error())
		return false
	}
	return true
}

// ResendTickets re-runs the post-confirmation delivery for a paid order:
// tickets without a stored QR get one regenerated, then the email goes out
// again.
func ResendTickets(orderID uint) (*types.ConfirmationOutcome, error) {
	conn := db.GetDb()
	var order models.Order
	if err := conn.Where(&models.Order{ID: orderID}).Preload("Tickets").First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrOrderNotFound
		}
		return nil, err
	}
	if order.PaymentStatus != types.PAYMENT_PAID {
		return nil, types.ErrOrderNotPaid
	}
	outcome := &types.ConfirmationOutcome{
		OrderID:          order.ID,
		Success:          true,
		AlreadyConfirmed: true,
		TicketsIssued:    len(order.Tickets),
	}
	outcome.FailedQRUploads = uploadTicketQRCodes(conn, order.Tickets)
	outcome.TicketsSent = sendTicketEmail(&order, order.Tickets)
	return outcome, nil
}
