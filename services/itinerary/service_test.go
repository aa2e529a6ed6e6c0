package itinerary

import (
	"context"
	"testing"

	itineraryRepo "tripforge/database/repository/itinerary"
	recordsRepo "tripforge/database/repository/records"
	"tripforge/models"
	"tripforge/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() (*DefaultItineraryService, itineraryRepo.ItineraryRepository) {
	repo := itineraryRepo.NewStoreItineraryRepo(recordsRepo.NewMemoryStore())
	return &DefaultItineraryService{Repo: repo, Logger: zap.NewNop()}, repo
}

func validItinerary() *models.StructuredItinerary {
	return &models.StructuredItinerary{
		Title:              "Weekend in Udaipur",
		Currency:           "INR",
		TotalEstimatedCost: 8000,
		CostBreakdown:      models.CostBreakdown{Activities: 5000, Meals: 3000},
		Days: []models.Day{
			{
				Date: "2026-05-02",
				Segments: []models.Segment{
					{
						StartTime:      "10:00",
						EndTime:        "12:00",
						ActivityType:   models.ActivityVisit,
						Title:          "City Palace",
						Location:       models.Location{Name: "Udaipur"},
						EstimatedCost:  800,
						BookingOfferID: "offer_palace",
					},
				},
				DayTotalCost: 8000,
			},
		},
	}
}

func TestCreate_StoresValidItinerary(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, models.TripData{Destination: "Udaipur"}, validItinerary())
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "draft", rec.Status)
	assert.Equal(t, "Weekend in Udaipur", rec.Itinerary.Title)

	stored, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Itinerary.Title, stored.Itinerary.Title)
}

func TestCreate_SubstitutesFallbackOnInvalidItinerary(t *testing.T) {
	svc, _ := newTestService()
	trip := models.TripData{
		Destination: "Udaipur",
		StartDate:   "2026-05-02",
		EndDate:     "2026-05-03",
		Budget:      8000,
		Currency:    "INR",
	}

	invalid := validItinerary()
	invalid.Title = ""
	invalid.Days = nil

	rec, err := svc.Create(context.Background(), trip, invalid)
	require.NoError(t, err)

	// The stored itinerary is the schema-valid fallback, not the broken input.
	assert.Equal(t, "2-Day Udaipur Journey", rec.Itinerary.Title)
	assert.Len(t, rec.Itinerary.Days, 2)
	assert.Empty(t, booking.ValidateItinerarySchema(&rec.Itinerary))
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), "itin_missing")
	assert.Equal(t, itineraryRepo.ErrNotFound, err)
}
