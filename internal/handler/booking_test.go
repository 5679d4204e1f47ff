package handler

import (
	"net/http"
	"testing"

	"tour-admin/internal/booking"
	"tour-admin/internal/events"
	"tour-admin/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func (s *testServer) seedBooking(t *testing.T, b models.Booking) {
	t.Helper()
	require.NoError(t, s.conn.Gorm.Create(&b).Error)
}

func TestUpdatePaid(t *testing.T) {
	s := newTestServer(t)
	s.seedBooking(t, models.Booking{BookingNumber: "34527"})

	w := s.do(t, http.MethodPatch, "/api/bookings/34527", gin.H{"paid": 5596.00})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/bookings/34527", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var b models.Booking
	decode(t, w, &b)
	assert.InDelta(t, 5596.00, b.Paid, 0.001)

	assert.Contains(t, s.events.types(), events.BookingPaid)
}

func TestUpdatePaidErrors(t *testing.T) {
	s := newTestServer(t)
	s.seedBooking(t, models.Booking{BookingNumber: "34527"})

	w := s.do(t, http.MethodPatch, "/api/bookings/34527", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/api/bookings/34527", `{"paid":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/api/bookings/99999", gin.H{"paid": 10})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPut, "/api/bookings/34527", gin.H{"paid": 10})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"method not allowed"}`, w.Body.String())
}

func TestLegacyPaymentTreatsMissingAsSuccess(t *testing.T) {
	s := newTestServer(t)
	s.seedBooking(t, models.Booking{BookingNumber: "1001"})

	w := s.do(t, http.MethodPatch, "/api/bookings/payment", gin.H{"booking_number": "1001", "paid": 250})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"updated":1}`, w.Body.String())

	w = s.do(t, http.MethodPatch, "/api/bookings/payment", gin.H{"booking_number": "nope", "paid": 250})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"updated":0}`, w.Body.String())

	w = s.do(t, http.MethodPatch, "/api/bookings/payment", gin.H{"booking_number": "1001"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.seedBooking(t, models.Booking{BookingNumber: "T-1"})

	toggle := func(flag string) (int, booking.Flags) {
		w := s.do(t, http.MethodPost, "/api/bookings/toggle", gin.H{"booking_number": "T-1", "type": flag})
		var f booking.Flags
		if w.Code == http.StatusOK {
			decode(t, w, &f)
		}
		return w.Code, f
	}

	code, _ := toggle("customer")
	assert.Equal(t, http.StatusBadRequest, code)

	code, f := toggle("op")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, booking.Flags{Op: true}, f)

	code, f = toggle("customer")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, booking.Flags{Op: true, Customer: true}, f)

	code, f = toggle("op")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, booking.Flags{}, f)

	code, _ = toggle("paid")
	assert.Equal(t, http.StatusBadRequest, code)

	w := s.do(t, http.MethodPost, "/api/bookings/toggle", gin.H{"booking_number": "missing", "type": "ri"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/bookings/toggle", gin.H{"type": "ri"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/bookings/toggle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClassifyChannelsEndpoint(t *testing.T) {
	s := newTestServer(t)
	bokun, gyg := "Bokun", "GYG"
	s.seedBooking(t, models.Booking{BookingNumber: "C-1", Channel: &bokun})
	s.seedBooking(t, models.Booking{BookingNumber: "C-2", Channel: &gyg})

	w := s.do(t, http.MethodPost, "/api/bookings/classify-channels", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"updated":2}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/bookings/classify-channels", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"updated":0}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/bookings", nil)
	var list []models.Booking
	decode(t, w, &list)
	require.Len(t, list, 2)
	for _, b := range list {
		require.NotNil(t, b.Channel)
		assert.Contains(t, booking.CanonicalChannels, *b.Channel)
	}
}

func TestImportCancelDeleteAndExport(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/bookings", gin.H{"bookings": []gin.H{
		{"booking_number": "N-1", "customer_name": "Ann", "tour_date": "2026-11-20", "adult": 2},
		{"booking_number": "N-2", "customer_name": "Ben", "channel": "Viator"},
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"imported":2}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/bookings", gin.H{"bookings": []gin.H{{"booking_number": "N-3", "tour_date": "20/11/2026"}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/api/bookings/N-2/cancel", gin.H{"cancelled": true})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPatch, "/api/bookings/N-9/cancel", gin.H{"cancelled": true})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/api/bookings/N-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/api/bookings/N-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/bookings/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bookings_")

	f, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "N-2", rows[1][0])

	assert.Subset(t, s.events.types(), []string{events.BookingsImported, events.BookingCancelled, events.BookingDeleted})
}
