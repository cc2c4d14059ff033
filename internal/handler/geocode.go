package handler

import (
	"context"
	"net/http"

	"github.com/rlarkdtks312/kakao-api-geocoding/internal/models"

	"github.com/gin-gonic/gin"
)

// GeoCodeHandler handles geocoding requests
type GeoCodeHandler struct {
	service GeoCodeService
}

// Service interface for dependency injection
type GeoCodeService interface {
	Geocode(context.Context, string) (*models.Document, error)
}

// NewGeoCodeHandler creates a new geocode handler
func NewGeoCodeHandler(svc GeoCodeService) *GeoCodeHandler {
	return &GeoCodeHandler{service: svc}
}

// GeoCode handles GET /geocode requests
func (h *GeoCodeHandler) GeoCode(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	document, err := h.service.Geocode(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if document == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no match found for the given address"})
		return
	}

	c.JSON(http.StatusOK, document)
}
