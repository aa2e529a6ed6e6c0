package bookingRepo

import (
	"context"

	recordsRepo "tripforge/database/repository/records"
	"tripforge/models"
)

// ErrNotFound is returned when no booking exists under the requested id.
var ErrNotFound = recordsRepo.ErrNotFound

// BookingRepository persists booking records write-ahead style: the saga
// writes the record after every state transition and does not start the next
// step until the write is acknowledged.
type BookingRepository interface {
	Put(ctx context.Context, rec *models.BookingRecord) error
	GetByID(ctx context.Context, id string) (*models.BookingRecord, error)
}

type storeBookingRepo struct {
	store recordsRepo.Store
}

// NewStoreBookingRepo returns a BookingRepository persisting one record per
// booking id in the durable record store.
func NewStoreBookingRepo(store recordsRepo.Store) BookingRepository {
	return &storeBookingRepo{store: store}
}
