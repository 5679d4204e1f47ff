package handler

import (
	"errors"
	"net/http"

	"tour-admin/internal/booking"
	"tour-admin/internal/notifier"
	"tour-admin/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError maps store and domain errors onto HTTP statuses. Anything
// unrecognised is a 500 carrying the raw error in details.
func respondError(c *gin.Context, err error, entity, failure string) {
	var verr *repository.ValidationError
	var conflict *booking.StateConflictError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": conflict.Error()})
	case errors.Is(err, booking.ErrUnknownFlag), errors.Is(err, notifier.ErrUnknownChannel):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": entity + " already exists"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": failure, "details": err.Error()})
	}
}
