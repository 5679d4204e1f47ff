package handler

import (
	"net/http"
	"time"

	"tour-admin/internal/notifier"

	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	notifiers *notifier.Set
	loc       *time.Location
	now       func() time.Time
}

func NewSystemHandler(notifiers *notifier.Set, loc *time.Location) *SystemHandler {
	if notifiers == nil {
		notifiers = notifier.NewSet()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &SystemHandler{notifiers: notifiers, loc: loc, now: time.Now}
}

func (h *SystemHandler) ServerTime(c *gin.Context) {
	now := h.now().In(h.loc)
	c.JSON(http.StatusOK, gin.H{
		"server_time": now.Format(time.RFC3339),
		"timezone":    h.loc.String(),
		"unix":        now.Unix(),
	})
}

func (h *SystemHandler) NotificationStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"channels": h.notifiers.Names(),
	})
}

type SendNotificationRequest struct {
	Message  string   `json:"message" binding:"required"`
	Channels []string `json:"channels"`
}

func (h *SystemHandler) SendNotification(c *gin.Context) {
	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.notifiers.Send(c.Request.Context(), req.Message, req.Channels...); err != nil {
		respondError(c, err, "notification", "Failed to send notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
