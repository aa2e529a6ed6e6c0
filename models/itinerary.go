package models

import "time"

// Activity types a segment may carry.
const (
	ActivityVisit      = "visit"
	ActivityTransport  = "transport"
	ActivityMeal       = "meal"
	ActivityRest       = "rest"
	ActivityEvent      = "event"
	ActivityExperience = "experience"
)

// Location is a named point on the map.
type Location struct {
	Name string  `bson:"name" json:"name"`
	Lat  float64 `bson:"lat" json:"lat"`
	Lon  float64 `bson:"lon" json:"lon"`
}

// Segment is a single scheduled unit within a day. A segment with a non-empty
// BookingOfferID is a holdable unit: the booking saga acquires exactly one
// supplier hold for it.
type Segment struct {
	StartTime      string   `bson:"start_time" json:"start_time"` // "HH:MM", same-day
	EndTime        string   `bson:"end_time" json:"end_time"`
	ActivityType   string   `bson:"activity_type" json:"activity_type"`
	Title          string   `bson:"title" json:"title"`
	POIID          string   `bson:"poi_id,omitempty" json:"poi_id,omitempty"`
	Location       Location `bson:"location" json:"location"`
	EstimatedCost  float64  `bson:"estimated_cost" json:"estimated_cost"`
	BookingOfferID string   `bson:"booking_offer_id,omitempty" json:"booking_offer_id,omitempty"`
	Notes          string   `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Bookable reports whether the segment requires a supplier hold.
func (s Segment) Bookable() bool {
	return s.BookingOfferID != ""
}

// Day groups the segments of one calendar date.
type Day struct {
	Date         string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Segments     []Segment `bson:"segments" json:"segments"`
	DayTotalCost float64   `bson:"day_total_cost" json:"day_total_cost"`
}

// CostBreakdown splits the total estimated cost by category. The fields must
// sum to the itinerary total within one currency unit of rounding.
type CostBreakdown struct {
	Transport     float64 `bson:"transport" json:"transport"`
	Accommodation float64 `bson:"accommodation" json:"accommodation"`
	Activities    float64 `bson:"activities" json:"activities"`
	Meals         float64 `bson:"meals" json:"meals"`
	Other         float64 `bson:"other" json:"other"`
}

// Sum returns the total across all breakdown categories.
func (c CostBreakdown) Sum() float64 {
	return c.Transport + c.Accommodation + c.Activities + c.Meals + c.Other
}

// Reference points at an external source backing part of the itinerary.
type Reference struct {
	Type   string `bson:"type" json:"type"` // "poi", "event" or "supplier"
	ID     string `bson:"id" json:"id"`
	Source string `bson:"source" json:"source"`
}

// StructuredItinerary is the validated data shape the booking saga operates
// on. It is immutable once generated.
type StructuredItinerary struct {
	Title              string        `bson:"title" json:"title"`
	Currency           string        `bson:"currency" json:"currency"`
	TotalEstimatedCost float64       `bson:"total_estimated_cost" json:"total_estimated_cost"`
	CostBreakdown      CostBreakdown `bson:"cost_breakdown" json:"cost_breakdown"`
	Days               []Day         `bson:"days" json:"days"`
	Warnings           []string      `bson:"warnings" json:"warnings"`
	References         []Reference   `bson:"references" json:"references"`
}

// BookableSegments returns every segment carrying a booking offer, in
// day/segment order.
func (it *StructuredItinerary) BookableSegments() []Segment {
	var out []Segment
	for _, day := range it.Days {
		for _, seg := range day.Segments {
			if seg.Bookable() {
				out = append(out, seg)
			}
		}
	}
	return out
}

// ItineraryRecord is the persisted wrapper around a structured itinerary.
type ItineraryRecord struct {
	ID        string              `bson:"id" json:"id"`
	Trip      TripData            `bson:"trip_data" json:"trip_data"`
	Itinerary StructuredItinerary `bson:"structured_itinerary" json:"structured_itinerary"`
	Status    string              `bson:"status" json:"status"` // "draft" or "booked"
	BookingID string              `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updated_at"`
	BookedAt  *time.Time          `bson:"booked_at,omitempty" json:"booked_at,omitempty"`
}

// TripData captures the request an itinerary was generated from. Only the
// fields the fallback builder needs are kept here.
type TripData struct {
	Destination string  `bson:"destination" json:"destination"`
	StartDate   string  `bson:"start_date" json:"start_date"`
	EndDate     string  `bson:"end_date" json:"end_date"`
	Budget      float64 `bson:"budget" json:"budget"`
	Currency    string  `bson:"currency" json:"currency"`
}
