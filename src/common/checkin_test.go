package common

import (
	"errors"
	"eticket/src/config"
	"eticket/src/db"
	"eticket/src/models"
	"eticket/src/types"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestValidateCheckInWindow(t *testing.T) {
	start := time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC)
	event := &models.Event{
		StartDate: start,
		EndDate:   start.Add(4 * time.Hour),
	}

	// gates open exactly two hours before start
	assert.NoError(t, validateCheckInWindow("TKT-A", start.Add(-config.CHECKIN_EARLY_WINDOW), event))
	assert.NoError(t, validateCheckInWindow("TKT-A", start, event))
	assert.NoError(t, validateCheckInWindow("TKT-A", event.EndDate, event))

	err := validateCheckInWindow("TKT-A", start.Add(-config.CHECKIN_EARLY_WINDOW-time.Minute), event)
	var earlyErr *types.CheckInTooEarlyError
	assert.True(t, errors.As(err, &earlyErr))
	assert.Equal(t, start.Add(-config.CHECKIN_EARLY_WINDOW), earlyErr.OpensAt)

	err = validateCheckInWindow("TKT-A", event.EndDate.Add(time.Minute), event)
	assert.ErrorIs(t, err, types.ErrEventEnded)
}

func TestCheckIn(t *testing.T) {
	_, mock := db.GetMockDB()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "ticket_number", "event_id", "status", "holder_name"}).
			AddRow(7, "TKT-AAA", 3, "valid", "Jane Roe"))
	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date", "end_date"}).
			AddRow(3, now.Add(-time.Hour), now.Add(3*time.Hour)))
	mock.ExpectExec(`UPDATE "tickets" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "check_in_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	outcome, err := CheckIn("TKT-AAA", 9, "")
	assert.NoError(t, err)
	assert.Equal(t, "TKT-AAA", outcome.TicketNumber)
	assert.Equal(t, uint(9), outcome.CheckedInBy)
	assert.Equal(t, "Jane Roe", outcome.HolderName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInAlreadyUsed(t *testing.T) {
	_, mock := db.GetMockDB()

	checkedInAt := time.Date(2026, 10, 1, 18, 30, 0, 0, time.UTC)
	operator := uint(4)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "ticket_number", "event_id", "status", "checked_in_at", "checked_in_by"}).
			AddRow(7, "TKT-AAA", 3, "used", checkedInAt, operator))
	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectRollback()

	_, err := CheckIn("TKT-AAA", 9, "")
	var usedErr *types.TicketAlreadyUsedError
	assert.True(t, errors.As(err, &usedErr))
	assert.Equal(t, checkedInAt, usedErr.CheckedInAt)
	assert.Equal(t, operator, usedErr.CheckedInBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInConcurrentDuplicate(t *testing.T) {
	_, mock := db.GetMockDB()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "ticket_number", "event_id", "status"}).
			AddRow(7, "TKT-AAA", 3, "valid"))
	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date", "end_date"}).
			AddRow(3, now.Add(-time.Hour), now.Add(3*time.Hour)))
	mock.ExpectExec(`UPDATE "tickets" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "ticket_number", "status", "checked_in_at", "checked_in_by"}).
			AddRow(7, "TKT-AAA", "used", now, 2))
	mock.ExpectRollback()

	_, err := CheckIn("TKT-AAA", 9, "")
	var usedErr *types.TicketAlreadyUsedError
	assert.True(t, errors.As(err, &usedErr))
	assert.Equal(t, uint(2), usedErr.CheckedInBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInNotFound(t *testing.T) {
	_, mock := db.GetMockDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := CheckIn("TKT-NOPE", 9, "")
	assert.ErrorIs(t, err, types.ErrTicketNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
