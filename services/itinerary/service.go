package itinerary

import (
	"context"
	"fmt"

	itineraryRepo "tripforge/database/repository/itinerary"
	"tripforge/models"
	"tripforge/services/booking"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ItineraryService stores and serves structured itineraries. The generation
// step itself (natural-language planning) is an external collaborator; this
// service validates whatever it produced before the booking saga can see it.
type ItineraryService interface {
	Create(ctx context.Context, trip models.TripData, it *models.StructuredItinerary) (*models.ItineraryRecord, error)
	GetByID(ctx context.Context, id string) (*models.ItineraryRecord, error)
}

type DefaultItineraryService struct {
	Repo   itineraryRepo.ItineraryRepository
	Logger *zap.Logger
}

// Create validates the itinerary and persists it. If validation fails, the
// minimal fallback itinerary is substituted rather than propagating the error:
// the saga must only ever operate on a schema-valid itinerary.
func (s *DefaultItineraryService) Create(ctx context.Context, trip models.TripData, it *models.StructuredItinerary) (*models.ItineraryRecord, error) {
	if violations := booking.ValidateItinerarySchema(it); len(violations) > 0 {
		s.Logger.Warn("itinerary schema validation failed, substituting fallback",
			zap.String("destination", trip.Destination),
			zap.Int("violations", len(violations)),
			zap.Any("first", violations[0]))
		it = booking.BasicItinerary(trip)
	}

	rec := &models.ItineraryRecord{
		ID:        "itin_" + uuid.New().String(),
		Trip:      trip,
		Itinerary: *it,
		Status:    "draft",
	}
	if err := s.Repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to store itinerary: %w", err)
	}
	s.Logger.Info("itinerary stored",
		zap.String("itineraryId", rec.ID),
		zap.Int("days", len(rec.Itinerary.Days)))
	return rec, nil
}

func (s *DefaultItineraryService) GetByID(ctx context.Context, id string) (*models.ItineraryRecord, error) {
	return s.Repo.GetByID(ctx, id)
}
