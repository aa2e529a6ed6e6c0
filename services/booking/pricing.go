package booking

import "math"

// Quote is the final pricing of a confirmed booking.
type Quote struct {
	TotalCost       float64 `json:"total_cost"`
	DiscountApplied float64 `json:"discount_applied"`
	FinalAmount     float64 `json:"final_amount"`
}

// BulkDiscountQuote applies the bulk-booking discount to a complete-itinerary
// total. The discount is floored to whole currency units.
func BulkDiscountQuote(total, rate float64) Quote {
	if rate < 0 {
		rate = 0
	}
	discount := math.Floor(total * rate)
	return Quote{
		TotalCost:       total,
		DiscountApplied: discount,
		FinalAmount:     total - discount,
	}
}
