package routes

import (
	"tripforge/handlers"
	"tripforge/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking saga.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("/complete-itinerary", bh.BookCompleteItinerary)
		api.GET("/:id", bh.GetBooking)
	}
}

// RegisterItineraryRoutes registers itinerary storage endpoints.
func RegisterItineraryRoutes(r *gin.Engine, ih *handlers.ItineraryHandler) {
	api := r.Group("/api/itineraries")
	{
		api.POST("", ih.CreateItinerary)
		api.GET("/:id", ih.GetItinerary)
	}
}
