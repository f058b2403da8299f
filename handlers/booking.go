package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smartbooking/middleware"
	"smartbooking/models"
	"smartbooking/services/booking"
)

// BookingService is wired in main before the router starts serving.
var BookingService booking.Service

type timeslotInput struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

// CreateBookingHandler requests a new booking for the authenticated user.
func CreateBookingHandler(c *gin.Context) {
	var input struct {
		ResourceID string        `json:"resource_id" binding:"required"`
		Slot       timeslotInput `json:"slot" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	slot, err := models.NewTimeslot(input.Slot.Start, input.Slot.End)
	if err != nil {
		respondError(c, err)
		return
	}

	b, err := BookingService.CreateBooking(c.Request.Context(), middleware.CallerID(c), input.ResourceID, slot)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListMyBookingsHandler returns the authenticated user's bookings.
func ListMyBookingsHandler(c *gin.Context) {
	bookings, err := BookingService.ListUserBookings(middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// PayBookingHandler pays for an approved booking.
func PayBookingHandler(c *gin.Context) {
	var input struct {
		Method string `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := BookingService.PayBooking(c.Request.Context(), middleware.CallerID(c), c.Param("id"), input.Method)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBookingHandler cancels a booking, refunding per the resource's
// cancellation policy when it was already paid.
func CancelBookingHandler(c *gin.Context) {
	b, err := BookingService.CancelBooking(c.Request.Context(), middleware.CallerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListPendingBookingsHandler returns bookings awaiting admin approval.
func ListPendingBookingsHandler(c *gin.Context) {
	bookings, err := BookingService.ListPendingBookings()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ApproveBookingHandler approves a REQUESTED booking.
func ApproveBookingHandler(c *gin.Context) {
	b, err := BookingService.ApproveBooking(c.Request.Context(), middleware.CallerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// RejectBookingHandler rejects a REQUESTED booking.
func RejectBookingHandler(c *gin.Context) {
	b, err := BookingService.RejectBooking(c.Request.Context(), middleware.CallerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// AdminUpdateBookingHandler moves a booking to a new slot and price.
func AdminUpdateBookingHandler(c *gin.Context) {
	var input struct {
		Slot  timeslotInput `json:"slot" binding:"required"`
		Price float64       `json:"price"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	slot, err := models.NewTimeslot(input.Slot.Start, input.Slot.End)
	if err != nil {
		respondError(c, err)
		return
	}

	b, err := BookingService.AdminUpdateBooking(c.Request.Context(), middleware.CallerID(c), c.Param("id"), slot, input.Price)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// AdminDeleteBookingHandler removes a booking record entirely.
func AdminDeleteBookingHandler(c *gin.Context) {
	if err := BookingService.AdminDeleteBooking(c.Request.Context(), middleware.CallerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking deleted"})
}
