package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartbooking/models"
	"smartbooking/services/booking"
)

// respondError maps domain errors onto HTTP status codes. Anything the
// booking service does not classify is a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrTimeslotConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case booking.IsIllegalTransition(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrInvalidRequest), errors.Is(err, models.ErrInvalidTimeslot):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
