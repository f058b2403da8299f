package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smartbooking/models"
	"smartbooking/services/resource"
)

// ResourceService is wired in main before the router starts serving.
var ResourceService resource.Service

// ListResourcesHandler returns the whole bookable catalogue.
func ListResourcesHandler(c *gin.Context) {
	resources, err := ResourceService.ListResources()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resources)
}

// GetResourceHandler returns one resource by id.
func GetResourceHandler(c *gin.Context) {
	res, err := ResourceService.GetResource(c.Param("id"))
	if err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetTimetableHandler returns a resource's live bookings for one day.
// The day is passed as ?date=2006-01-02 and defaults to today.
func GetTimetableHandler(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	bookings, err := BookingService.GetTimetable(c.Request.Context(), c.Param("id"), day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

type resourceInput struct {
	Name                  string                       `json:"name" binding:"required"`
	Type                  models.ResourceType          `json:"type" binding:"required"`
	BasePricePerHour      float64                      `json:"base_price_per_hour"`
	PricingPolicyKey      models.PricingPolicyKey      `json:"pricing_policy_key"`
	CancellationPolicyKey models.CancellationPolicyKey `json:"cancellation_policy_key"`
	ApprovalPolicyKey     models.ApprovalPolicyKey     `json:"approval_policy_key"`
}

// CreateResourceHandler adds a resource to the catalogue.
func CreateResourceHandler(c *gin.Context) {
	var input resourceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	res, err := ResourceService.CreateResource(&models.Resource{
		Name:                  input.Name,
		Type:                  input.Type,
		BasePricePerHour:      input.BasePricePerHour,
		PricingPolicyKey:      input.PricingPolicyKey,
		CancellationPolicyKey: input.CancellationPolicyKey,
		ApprovalPolicyKey:     input.ApprovalPolicyKey,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, res)
}

// UpdateResourceHandler replaces a catalogue entry.
func UpdateResourceHandler(c *gin.Context) {
	var input resourceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	res := &models.Resource{
		ID:                    c.Param("id"),
		Name:                  input.Name,
		Type:                  input.Type,
		BasePricePerHour:      input.BasePricePerHour,
		PricingPolicyKey:      input.PricingPolicyKey,
		CancellationPolicyKey: input.CancellationPolicyKey,
		ApprovalPolicyKey:     input.ApprovalPolicyKey,
	}
	if err := ResourceService.UpdateResource(res); err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
