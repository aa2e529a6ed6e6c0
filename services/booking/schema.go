package booking

import (
	"fmt"
	"math"
	"regexp"
	"time"

	"tripforge/models"
)

// ValidationError is one schema violation, located by its path within the
// itinerary document.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

	validActivityTypes = map[string]bool{
		models.ActivityVisit:      true,
		models.ActivityTransport:  true,
		models.ActivityMeal:       true,
		models.ActivityRest:       true,
		models.ActivityEvent:      true,
		models.ActivityExperience: true,
	}
)

// ValidateItinerarySchema checks the itinerary against the structured schema,
// accumulating every violation rather than stopping at the first. A nil slice
// means the itinerary is schema-valid.
func ValidateItinerarySchema(it *models.StructuredItinerary) []ValidationError {
	var errs []ValidationError
	add := func(path, msg string) {
		errs = append(errs, ValidationError{Path: path, Message: msg})
	}

	if it.Title == "" {
		add("title", "missing title")
	}
	if it.Currency == "" {
		add("currency", "missing currency")
	}
	if it.TotalEstimatedCost <= 0 {
		add("total_estimated_cost", "must be a positive amount")
	}
	if len(it.Days) == 0 {
		add("days", "must be a non-empty sequence")
	}
	if diff := math.Abs(it.CostBreakdown.Sum() - it.TotalEstimatedCost); diff > 1 {
		add("cost_breakdown", fmt.Sprintf("breakdown sums to %.2f, total is %.2f", it.CostBreakdown.Sum(), it.TotalEstimatedCost))
	}

	for i, day := range it.Days {
		path := fmt.Sprintf("days[%d]", i)
		if !dateRe.MatchString(day.Date) {
			add(path+".date", "invalid date format, want YYYY-MM-DD")
		} else if _, err := time.Parse("2006-01-02", day.Date); err != nil {
			add(path+".date", "not a valid calendar date")
		}
		if day.Segments == nil {
			add(path+".segments", "must be a sequence")
		}
		if day.DayTotalCost < 0 {
			add(path+".day_total_cost", "must be non-negative")
		}
		for j, seg := range day.Segments {
			segPath := fmt.Sprintf("%s.segments[%d]", path, j)
			errs = append(errs, validateSegment(segPath, seg)...)
		}
	}

	return errs
}

func validateSegment(path string, seg models.Segment) []ValidationError {
	var errs []ValidationError
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Path: path + "." + field, Message: msg})
	}

	if seg.Title == "" {
		add("title", "missing title")
	}
	if !validActivityTypes[seg.ActivityType] {
		add("activity_type", fmt.Sprintf("unknown activity type %q", seg.ActivityType))
	}
	if seg.EstimatedCost < 0 {
		add("estimated_cost", "must be non-negative")
	}
	startOK := timeRe.MatchString(seg.StartTime)
	endOK := timeRe.MatchString(seg.EndTime)
	if !startOK {
		add("start_time", "invalid time format, want HH:MM")
	}
	if !endOK {
		add("end_time", "invalid time format, want HH:MM")
	}
	if startOK && endOK && seg.StartTime >= seg.EndTime {
		add("end_time", "must be after start_time within the same day")
	}
	return errs
}

// BasicItinerary builds the minimal fallback itinerary substituted by the
// generation path when schema validation fails, so the saga only ever sees a
// schema-valid itinerary.
func BasicItinerary(trip models.TripData) *models.StructuredItinerary {
	budget := trip.Budget
	if budget <= 0 {
		budget = 25000
	}
	currency := trip.Currency
	if currency == "" {
		currency = "INR"
	}

	start, err := time.Parse("2006-01-02", trip.StartDate)
	if err != nil {
		start = time.Now()
	}
	end, err := time.Parse("2006-01-02", trip.EndDate)
	if err != nil || end.Before(start) {
		end = start
	}
	numDays := int(end.Sub(start).Hours()/24) + 1

	breakdown := models.CostBreakdown{
		Transport:     math.Floor(budget * 0.10),
		Accommodation: math.Floor(budget * 0.40),
		Activities:    math.Floor(budget * 0.30),
		Meals:         math.Floor(budget * 0.15),
	}
	breakdown.Other = budget - breakdown.Transport - breakdown.Accommodation - breakdown.Activities - breakdown.Meals

	days := make([]models.Day, 0, numDays)
	for i := 0; i < numDays; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		days = append(days, models.Day{
			Date: date,
			Segments: []models.Segment{
				{
					StartTime:      "09:00",
					EndTime:        "12:00",
					ActivityType:   models.ActivityVisit,
					Title:          "Explore Local Attractions",
					POIID:          fmt.Sprintf("poi_%s_morning", date),
					Location:       models.Location{Name: trip.Destination},
					EstimatedCost:  500,
					BookingOfferID: fmt.Sprintf("offer_%s_%d", date, i),
				},
			},
			DayTotalCost: math.Floor(budget / float64(numDays)),
		})
	}

	return &models.StructuredItinerary{
		Title:              fmt.Sprintf("%d-Day %s Journey", numDays, trip.Destination),
		Currency:           currency,
		TotalEstimatedCost: budget,
		CostBreakdown:      breakdown,
		Days:               days,
		Warnings:           []string{},
		References:         []models.Reference{},
	}
}
