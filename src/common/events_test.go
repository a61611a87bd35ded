package common

import (
	"eticket/src/config"
	"eticket/src/db"
	"eticket/src/types"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCreateEvent(t *testing.T) {
	_, mock := db.GetMockDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(`INSERT INTO "ticket_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectCommit()

	start := time.Now().Add(30 * 24 * time.Hour)
	body := &types.CreateEventRequestBody{
		Title:     "Go Conference 2026",
		Location:  "Hanoi",
		StartDate: start.Format(config.TIME_PARSE_FORMAT),
		EndDate:   start.Add(8 * time.Hour).Format(config.TIME_PARSE_FORMAT),
		TicketTypes: []types.CreateTicketTypeInput{
			{Name: "General", Price: 100000, Quantity: 500, PointsEarned: 10},
			{Name: "VIP", Price: 250000, Quantity: 100, PointsEarned: 25},
		},
	}
	event, err := CreateEvent(body)
	assert.NoError(t, err)
	assert.Equal(t, "go-conference-2026", event.Slug)
	assert.Len(t, event.TicketTypes, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEventSlugCollision(t *testing.T) {
	_, mock := db.GetMockDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectCommit()

	start := time.Now().Add(30 * 24 * time.Hour)
	body := &types.CreateEventRequestBody{
		Title:     "Go Conference 2026",
		StartDate: start.Format(config.TIME_PARSE_FORMAT),
		EndDate:   start.Add(8 * time.Hour).Format(config.TIME_PARSE_FORMAT),
	}
	event, err := CreateEvent(body)
	assert.NoError(t, err)
	assert.Equal(t, "go-conference-2026-2", event.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEventRejectsInvertedDates(t *testing.T) {
	db.GetMockDB()

	start := time.Now().Add(30 * 24 * time.Hour)
	body := &types.CreateEventRequestBody{
		Title:     "Go Conference 2026",
		StartDate: start.Format(config.TIME_PARSE_FORMAT),
		EndDate:   start.Add(-time.Hour).Format(config.TIME_PARSE_FORMAT),
	}
	_, err := CreateEvent(body)
	assert.Error(t, err)
}
