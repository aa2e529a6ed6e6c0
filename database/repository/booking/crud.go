package bookingRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tripforge/models"
)

func (r *storeBookingRepo) Put(ctx context.Context, rec *models.BookingRecord) error {
	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	// UpdatedAt is monotonically non-decreasing.
	if now.After(rec.UpdatedAt) {
		rec.UpdatedAt = now
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal booking record: %w", err)
	}
	return r.store.Set(ctx, rec.ID, data)
}

func (r *storeBookingRepo) GetByID(ctx context.Context, id string) (*models.BookingRecord, error) {
	data, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var rec models.BookingRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse booking record %s: %w", id, err)
	}
	return &rec, nil
}
