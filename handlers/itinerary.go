package handlers

import (
	"net/http"

	itineraryRepo "tripforge/database/repository/itinerary"
	"tripforge/models"
	"tripforge/services/itinerary"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ItineraryHandler struct {
	Service itinerary.ItineraryService
	Logger  *zap.Logger
}

func NewItineraryHandler(svc itinerary.ItineraryService, logger *zap.Logger) *ItineraryHandler {
	return &ItineraryHandler{Service: svc, Logger: logger}
}

// CreateItinerary validates and stores a generated itinerary. An itinerary
// failing schema validation is replaced by the minimal fallback.
func (h *ItineraryHandler) CreateItinerary(c *gin.Context) {
	var input struct {
		TripData  models.TripData             `json:"tripData"`
		Itinerary *models.StructuredItinerary `json:"structuredItinerary" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input", "details": err.Error()})
		return
	}

	rec, err := h.Service.Create(c.Request.Context(), input.TripData, input.Itinerary)
	if err != nil {
		h.Logger.Error("failed to store itinerary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to store itinerary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"itineraryId": rec.ID,
		"itinerary":   rec,
	})
}

// GetItinerary returns a stored itinerary record.
func (h *ItineraryHandler) GetItinerary(c *gin.Context) {
	id := c.Param("id")
	rec, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == itineraryRepo.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Itinerary not found"})
			return
		}
		h.Logger.Error("failed to load itinerary", zap.String("itineraryId", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load itinerary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "itinerary": rec})
}
