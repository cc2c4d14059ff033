package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rlarkdtks312/kakao-api-geocoding/internal/models"

	"github.com/gin-gonic/gin"
)

// ReverseGeocodeHandler handles reverse geocoding requests
type ReverseGeocodeHandler struct {
	service ReverseGeoCodeService
}

// Service interface for dependency injection
type ReverseGeoCodeService interface {
	ReverseGeocode(ctx context.Context, longitude, latitude float64) (*models.Document, error)
}

// NewReverseGeocodeHandler creates a new reverse geocode handler
func NewReverseGeocodeHandler(svc ReverseGeoCodeService) *ReverseGeocodeHandler {
	return &ReverseGeocodeHandler{service: svc}
}

// ReverseGeocode handles GET /reverse-geocode requests
func (h *ReverseGeocodeHandler) ReverseGeocode(c *gin.Context) {
	lonStr := c.Query("lon")
	latStr := c.Query("lat")

	if lonStr == "" || latStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lon' and 'lat'"})
		return
	}

	longitude, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	latitude, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	document, err := h.service.ReverseGeocode(c.Request.Context(), longitude, latitude)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if document == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no address found at the specified coordinates"})
		return
	}

	c.JSON(http.StatusOK, document)
}
