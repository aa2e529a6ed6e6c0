package booking

import (
	"context"

	"tripforge/models"
)

// BookingService books complete itineraries as a compensated saga.
type BookingService interface {
	// BookCompleteItinerary reserves inventory for every bookable segment of
	// the itinerary, authorizes and captures payment, and persists the booking
	// record after every state transition. On any step failure it releases
	// acquired holds, voids any live authorization and returns a *BookingError.
	BookCompleteItinerary(ctx context.Context, itineraryID string, data models.BookingData) (*models.BookingRecord, error)

	// GetBooking returns a persisted booking record for inspection.
	GetBooking(ctx context.Context, id string) (*models.BookingRecord, error)
}
