package models

import "time"

// AnalyticsEvent is the booking metrics record emitted after a saga finishes.
// Emission is fire-and-forget; losing an event never fails a booking.
type AnalyticsEvent struct {
	BookingID         string        `json:"booking_id"`
	ItineraryID       string        `json:"itinerary_id"`
	Status            BookingStatus `json:"status"`
	SegmentsHeld      int           `json:"segments_held"`
	SegmentsConfirmed int           `json:"segments_confirmed"`
	TotalCost         float64       `json:"total_cost"`
	DiscountApplied   float64       `json:"discount_applied"`
	FinalAmount       float64       `json:"final_amount"`
	Currency          string        `json:"currency"`
	RecordedAt        time.Time     `json:"recorded_at"`
}
