package common

import (
	"errors"
	"eticket/src/config"
	"eticket/src/db"
	"eticket/src/models"
	"eticket/src/types"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// CreateEvent seeds an event together with its ticket types. The slug gets
// a numeric suffix when the title collides with an existing event.
func CreateEvent(body *types.CreateEventRequestBody) (*models.Event, error) {
	startDate, err := time.Parse(config.TIME_PARSE_FORMAT, body.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := time.Parse(config.TIME_PARSE_FORMAT, body.EndDate)
	if err != nil {
		return nil, err
	}
	if !endDate.After(startDate) {
		return nil, errors.New("end_date must be after start_date")
	}

	conn := db.GetDb()
	var event *models.Event
	err = conn.Transaction(func(tx *gorm.DB) error {
		eventSlug := slug.Make(body.Title)
		var count int64
		if err := tx.Model(&models.Event{}).Where("slug LIKE ?", eventSlug+"%").Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			eventSlug = fmt.Sprintf("%s-%d", eventSlug, count+1)
		}

		ticketTypes := make([]models.TicketType, 0, len(body.TicketTypes))
		for _, v := range body.TicketTypes {
			tt := models.TicketType{
				Name:         v.Name,
				Price:        v.Price,
				Quantity:     v.Quantity,
				PointsEarned: v.PointsEarned,
				Status:       types.TICKET_TYPE_ACTIVE,
			}
			if v.SaleStart != nil {
				saleStart, err := time.Parse(config.TIME_PARSE_FORMAT, *v.SaleStart)
				if err != nil {
					return err
				}
				tt.SaleStart = &saleStart
			}
			if v.SaleEnd != nil {
				saleEnd, err := time.Parse(config.TIME_PARSE_FORMAT, *v.SaleEnd)
				if err != nil {
					return err
				}
				tt.SaleEnd = &saleEnd
			}
			ticketTypes = append(ticketTypes, tt)
		}

		event = &models.Event{
			Title:        body.Title,
			Slug:         eventSlug,
			Location:     body.Location,
			StartDate:    startDate,
			EndDate:      endDate,
			MaxAttendees: body.MaxAttendees,
			Status:       types.EVENT_PUBLISHED,
			TicketTypes:  ticketTypes,
		}
		return tx.Create(event).Error
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func GetEvent(id uint) (*models.Event, error) {
	conn := db.GetDb()
	var event models.Event
	if err := conn.Where(&models.Event{ID: id}).
		Preload("TicketTypes").
		First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func ListEvents() ([]models.Event, error) {
	conn := db.GetDb()
	var events []models.Event
	if err := conn.Where("status = ?", types.EVENT_PUBLISHED).
		Order("start_date ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ListTicketTypes reports each type with its live availability.
func ListTicketTypes(eventID uint) ([]models.TicketType, error) {
	conn := db.GetDb()
	var ticketTypes []models.TicketType
	if err := conn.Where("event_id = ?", eventID).
		Order("price ASC").
		Find(&ticketTypes).Error; err != nil {
		return nil, err
	}
	return ticketTypes, nil
}
