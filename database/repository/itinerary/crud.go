package itineraryRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tripforge/models"
)

func (r *storeItineraryRepo) Save(ctx context.Context, rec *models.ItineraryRecord) error {
	rec.UpdatedAt = time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = rec.UpdatedAt
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal itinerary record: %w", err)
	}
	return r.store.Set(ctx, rec.ID, data)
}

func (r *storeItineraryRepo) GetByID(ctx context.Context, id string) (*models.ItineraryRecord, error) {
	data, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var rec models.ItineraryRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse itinerary record %s: %w", id, err)
	}
	return &rec, nil
}

// MarkBooked flags the itinerary as booked by the given booking. Last writer
// wins across concurrent attempts; the idempotency key is the duplicate-charge
// safeguard, not this flag.
func (r *storeItineraryRepo) MarkBooked(ctx context.Context, id, bookingID string) error {
	rec, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now()
	rec.Status = "booked"
	rec.BookingID = bookingID
	rec.BookedAt = &now
	return r.Save(ctx, rec)
}
