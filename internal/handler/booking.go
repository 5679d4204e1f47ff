package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tour-admin/internal/booking"
	"tour-admin/internal/events"
	"tour-admin/internal/export"
	"tour-admin/internal/metrics"
	"tour-admin/internal/models"
	"tour-admin/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type BookingHandler struct {
	repo    *repository.BookingRepository
	events  events.Publisher
	company string
}

func NewBookingHandler(repo *repository.BookingRepository, pub events.Publisher, company string) *BookingHandler {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &BookingHandler{repo: repo, events: pub, company: company}
}

func (h *BookingHandler) publish(c *gin.Context, ev events.BookingEvent) {
	ev.OccurredAt = time.Now().UTC()
	if err := h.events.Publish(c.Request.Context(), ev); err != nil {
		log.Warn().Err(err).Str("type", ev.Type).Str("booking_number", ev.BookingNumber).Msg("event not published")
	}
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "booking", "Failed to fetch bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.repo.Get(c.Request.Context(), c.Param("booking_number"))
	if err != nil {
		respondError(c, err, "booking", "Failed to fetch booking")
		return
	}
	c.JSON(http.StatusOK, b)
}

type UpdatePaidRequest struct {
	Paid *float64 `json:"paid" binding:"required"`
}

func (h *BookingHandler) UpdatePaid(c *gin.Context) {
	bookingNumber := c.Param("booking_number")
	var req UpdatePaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.repo.SetPaid(c.Request.Context(), bookingNumber, *req.Paid)
	if err != nil {
		metrics.IncPaymentUpdate("error")
		respondError(c, err, "booking", "Failed to update booking")
		return
	}
	if n == 0 {
		metrics.IncPaymentUpdate("not_found")
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}

	metrics.IncPaymentUpdate("ok")
	h.publish(c, events.BookingEvent{Type: events.BookingPaid, BookingNumber: bookingNumber, Data: gin.H{"paid": *req.Paid}})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type LegacyPaymentRequest struct {
	BookingNumber string   `json:"booking_number" binding:"required"`
	Paid          *float64 `json:"paid" binding:"required"`
}

// UpdatePaymentLegacy serves the older payment endpoint. Unlike UpdatePaid
// it reports success when no booking matched; clients still rely on that.
func (h *BookingHandler) UpdatePaymentLegacy(c *gin.Context) {
	var req LegacyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.repo.SetPaid(c.Request.Context(), req.BookingNumber, *req.Paid)
	if err != nil {
		metrics.IncPaymentUpdate("error")
		respondError(c, err, "booking", "Failed to update booking")
		return
	}
	if n > 0 {
		metrics.IncPaymentUpdate("ok")
		h.publish(c, events.BookingEvent{Type: events.BookingPaid, BookingNumber: req.BookingNumber, Data: gin.H{"paid": *req.Paid}})
	} else {
		metrics.IncPaymentUpdate("not_found")
		log.Warn().Str("booking_number", req.BookingNumber).Msg("legacy payment update matched no booking")
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updated": n})
}

type ToggleRequest struct {
	BookingNumber string `json:"booking_number" binding:"required"`
	Type          string `json:"type" binding:"required"`
}

func (h *BookingHandler) ToggleFlag(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	flag, err := booking.ParseFlagType(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flags, err := h.repo.ToggleFlag(c.Request.Context(), req.BookingNumber, flag)
	if err != nil {
		metrics.IncFlagToggle(string(flag), "rejected")
		respondError(c, err, "booking", "Failed to toggle flag")
		return
	}

	metrics.IncFlagToggle(string(flag), "ok")
	h.publish(c, events.BookingEvent{Type: events.BookingToggled, BookingNumber: req.BookingNumber, Data: flags})
	c.JSON(http.StatusOK, flags)
}

func (h *BookingHandler) ClassifyChannels(c *gin.Context) {
	n, err := h.repo.ClassifyChannels(c.Request.Context())
	if err != nil {
		respondError(c, err, "booking", "Failed to classify channels")
		return
	}
	metrics.AddChannelsClassified(n)
	if n > 0 {
		h.publish(c, events.BookingEvent{Type: events.ChannelsClassified, Data: gin.H{"updated": n}})
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

type CancelRequest struct {
	Cancelled *bool `json:"cancelled" binding:"required"`
}

func (h *BookingHandler) SetCancelled(c *gin.Context) {
	bookingNumber := c.Param("booking_number")
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.repo.SetCancelled(c.Request.Context(), bookingNumber, *req.Cancelled); err != nil {
		respondError(c, err, "booking", "Failed to update booking")
		return
	}
	h.publish(c, events.BookingEvent{Type: events.BookingCancelled, BookingNumber: bookingNumber, Data: gin.H{"cancelled": *req.Cancelled}})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	bookingNumber := c.Param("booking_number")
	if err := h.repo.SoftDelete(c.Request.Context(), bookingNumber); err != nil {
		respondError(c, err, "booking", "Failed to delete booking")
		return
	}
	h.publish(c, events.BookingEvent{Type: events.BookingDeleted, BookingNumber: bookingNumber})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type BookingImportRow struct {
	BookingNumber string  `json:"booking_number"`
	OrderNumber   string  `json:"order_number"`
	TourDate      string  `json:"tour_date"`
	CustomerName  string  `json:"customer_name"`
	SKU           string  `json:"sku"`
	Program       string  `json:"program"`
	Adult         int     `json:"adult"`
	Child         int     `json:"child"`
	Hotel         string  `json:"hotel"`
	PhoneNumber   string  `json:"phone_number"`
	Channel       *string `json:"channel"`
}

type ImportBookingsRequest struct {
	Bookings []BookingImportRow `json:"bookings" binding:"required"`
}

func (h *BookingHandler) ImportBookings(c *gin.Context) {
	var req ImportBookingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows := make([]models.Booking, 0, len(req.Bookings))
	for i, in := range req.Bookings {
		b := models.Booking{
			BookingNumber: in.BookingNumber,
			OrderNumber:   in.OrderNumber,
			CustomerName:  in.CustomerName,
			SKU:           in.SKU,
			Program:       in.Program,
			Adult:         in.Adult,
			Child:         in.Child,
			Hotel:         in.Hotel,
			PhoneNumber:   in.PhoneNumber,
			Channel:       in.Channel,
		}
		if s := strings.TrimSpace(in.TourDate); s != "" {
			d, err := time.Parse("2006-01-02", s)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("bookings[%d].tour_date must be YYYY-MM-DD", i)})
				return
			}
			b.TourDate = &d
		}
		rows = append(rows, b)
	}

	n, err := h.repo.Import(c.Request.Context(), rows)
	if err != nil {
		respondError(c, err, "booking", "Failed to import bookings")
		return
	}
	h.publish(c, events.BookingEvent{Type: events.BookingsImported, Data: gin.H{"imported": n}})
	c.JSON(http.StatusOK, gin.H{"imported": n})
}

func (h *BookingHandler) ExportBookings(c *gin.Context) {
	bookings, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "booking", "Failed to fetch bookings")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteBookingsXLSX(&buf, bookings, h.company); err != nil {
		respondError(c, err, "booking", "Failed to export bookings")
		return
	}

	filename := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
