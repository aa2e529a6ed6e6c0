package handlers

import (
	"net/http"

	bookingRepo "tripforge/database/repository/booking"
	"tripforge/models"
	"tripforge/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// BookCompleteItinerary runs the booking saga for a stored itinerary.
func (h *BookingHandler) BookCompleteItinerary(c *gin.Context) {
	var input struct {
		ItineraryID string             `json:"itineraryId" binding:"required"`
		BookingData models.BookingData `json:"bookingData"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input", "details": err.Error()})
		return
	}
	if input.BookingData.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "bookingData.email is required"})
		return
	}

	record, err := h.Service.BookCompleteItinerary(c.Request.Context(), input.ItineraryID, input.BookingData)
	if err != nil {
		if berr, ok := booking.AsBookingError(err); ok {
			if berr.Code == booking.CodeNotFound {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": berr.Message})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success":              false,
				"error":                berr.Message,
				"code":                 berr.Code,
				"bookingId":            berr.BookingID,
				"partialConfirmations": berr.PartialConfirmations,
			})
			return
		}
		h.Logger.Error("booking failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to process complete booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": record,
	})
}

// GetBooking returns a persisted booking record for inspection.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id := c.Param("id")
	record, err := h.Service.GetBooking(c.Request.Context(), id)
	if err != nil {
		if err == bookingRepo.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "booking not found"})
			return
		}
		h.Logger.Error("failed to load booking", zap.String("bookingId", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": record})
}
