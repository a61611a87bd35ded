package main

import (
	"eticket/src/db"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

// setupTestRouter mounts the full surface with the operator group unguarded
// so handler behavior is tested without minting tokens.
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	registerValidators()
	router := setupRouter()
	publicRoutes(router)
	operator := router.Group(apiPrefix + "/operator")
	paymentHandlers(operator)
	checkinHandlers(operator)
	adminEventHandlers(operator)
	return router
}

func TestHealthCheck(t *testing.T) {
	router := setupTestRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateOrderRejectsEmptyCart(t *testing.T) {
	router := setupTestRouter()
	w := httptest.NewRecorder()
	body := `{"event_id":3,"items":[],"customer_name":"Jane Roe","customer_email":"jane@example.com"}`
	req, _ := http.NewRequest("POST", apiPrefix+"/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderRejectsBadEmail(t *testing.T) {
	router := setupTestRouter()
	w := httptest.NewRecorder()
	body := `{"event_id":3,"items":[{"ticket_type_id":2,"unit_price":250000,"quantity":1}],"customer_name":"Jane Roe","customer_email":"not-an-email"}`
	req, _ := http.NewRequest("POST", apiPrefix+"/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderNotFound(t *testing.T) {
	router := setupTestRouter()
	_, mock := db.GetMockDB()
	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", apiPrefix+"/orders/123", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "order not found", gjson.Get(w.Body.String(), "error").String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTicketTypes(t *testing.T) {
	router := setupTestRouter()
	_, mock := db.GetMockDB()
	mock.ExpectQuery(`SELECT \* FROM "ticket_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "name", "price", "quantity", "sold_count"}).
			AddRow(1, 3, "General", 100000.0, 500, 120).
			AddRow(2, 3, "VIP", 250000.0, 100, 99))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", apiPrefix+"/events/3/ticket-types", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	res := w.Body.String()
	assert.Equal(t, int64(2), gjson.Get(res, "data.#").Int())
	assert.Equal(t, "VIP", gjson.Get(res, "data.1.name").String())
	assert.Equal(t, int64(99), gjson.Get(res, "data.1.sold_count").Int())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderPaymentStatusPoll(t *testing.T) {
	router := setupTestRouter()
	_, mock := db.GetMockDB()
	mock.ExpectQuery(`SELECT .* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_number", "payment_status"}).
			AddRow(10, "ORD20260901-AAAAAA", "pending"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", apiPrefix+"/payments/ORD20260901-AAAAAA/status", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pending", gjson.Get(w.Body.String(), "payment_status").String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInDuplicateScanConflict(t *testing.T) {
	router := setupTestRouter()
	_, mock := db.GetMockDB()
	checkedInAt := time.Date(2026, 10, 1, 18, 30, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "ticket_number", "event_id", "status", "checked_in_at", "checked_in_by"}).
			AddRow(7, "TKT-AAA", 3, "used", checkedInAt, 4))
	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectRollback()

	w := httptest.NewRecorder()
	body := `{"ticket_number":"TKT-AAA"}`
	req, _ := http.NewRequest("POST", apiPrefix+"/operator/checkin", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
	res := w.Body.String()
	assert.Equal(t, "TKT-AAA", gjson.Get(res, "ticket_number").String())
	assert.True(t, gjson.Get(res, "checked_in_at").Exists())
	assert.Equal(t, int64(4), gjson.Get(res, "checked_in_by").Int())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelOrderByNumber(t *testing.T) {
	router := setupTestRouter()
	_, mock := db.GetMockDB()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_number", "payment_status"}).
			AddRow(10, "ORD20260901-AAAAAA", "pending"))
	mock.ExpectQuery(`SELECT \* FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "ticket_type_id", "quantity"}).
			AddRow(1, 10, 2, 1))
	mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "ticket_types" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", apiPrefix+"/payments/ORD20260901-AAAAAA", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEventRejectsPastDate(t *testing.T) {
	router := setupTestRouter()
	w := httptest.NewRecorder()
	body := `{"title":"Go Conference","start_date":"2020-01-01 10:00:00 +07:00","end_date":"2020-01-01 18:00:00 +07:00"}`
	req, _ := http.NewRequest("POST", apiPrefix+"/operator/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTicketInfo(t *testing.T) {
	router := setupTestRouter()
	_, mock := db.GetMockDB()
	mock.ExpectQuery(`SELECT \* FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "ticket_number", "event_id", "ticket_type_id", "status", "holder_name"}).
			AddRow(7, "TKT-AAA", 3, 2, "valid", "Jane Roe"))
	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(3, "Go Conference"))
	mock.ExpectQuery(`SELECT \* FROM "ticket_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "VIP"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", apiPrefix+"/operator/tickets/TKT-AAA", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	res := w.Body.String()
	assert.Equal(t, "valid", gjson.Get(res, "data.status").String())
	assert.Equal(t, "Go Conference", gjson.Get(res, "data.event.title").String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
