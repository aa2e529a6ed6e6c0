package itineraryRepo

import (
	"context"

	recordsRepo "tripforge/database/repository/records"
	"tripforge/models"
)

// ErrNotFound is returned when no itinerary exists under the requested id.
var ErrNotFound = recordsRepo.ErrNotFound

type ItineraryRepository interface {
	Save(ctx context.Context, rec *models.ItineraryRecord) error
	GetByID(ctx context.Context, id string) (*models.ItineraryRecord, error)
	MarkBooked(ctx context.Context, id, bookingID string) error
}

type storeItineraryRepo struct {
	store recordsRepo.Store
}

// NewStoreItineraryRepo returns an ItineraryRepository persisting one record
// per itinerary id in the durable record store.
func NewStoreItineraryRepo(store recordsRepo.Store) ItineraryRepository {
	return &storeItineraryRepo{store: store}
}
