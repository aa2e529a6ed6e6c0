package booking

import (
	"context"
	"encoding/json"
	"time"

	"tripforge/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeAnalyticsRecord is the asynq task type for booking analytics events.
const TypeAnalyticsRecord = "analytics:record"

// AnalyticsEmitter publishes booking metrics. Emission is fire-and-forget:
// an emit failure is logged by the caller and never fails a booking.
type AnalyticsEmitter interface {
	Emit(ctx context.Context, event models.AnalyticsEvent) error
}

// AsynqAnalyticsEmitter enqueues analytics events onto the background queue.
type AsynqAnalyticsEmitter struct {
	Client *asynq.Client
}

func NewAsynqAnalyticsEmitter(client *asynq.Client) *AsynqAnalyticsEmitter {
	return &AsynqAnalyticsEmitter{Client: client}
}

func (e *AsynqAnalyticsEmitter) Emit(ctx context.Context, event models.AnalyticsEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeAnalyticsRecord, payload)
	_, err = e.Client.EnqueueContext(ctx, task, asynq.MaxRetry(3))
	return err
}

// emitAnalytics publishes the booking's metrics record.
func (s *DefaultBookingService) emitAnalytics(ctx context.Context, rec *models.BookingRecord, itin *models.StructuredItinerary) {
	if s.Analytics == nil {
		return
	}
	event := models.AnalyticsEvent{
		BookingID:         rec.ID,
		ItineraryID:       rec.ItineraryID,
		Status:            rec.Status,
		SegmentsHeld:      len(rec.Holds),
		SegmentsConfirmed: len(rec.ConfirmedBookings),
		TotalCost:         rec.TotalCost,
		DiscountApplied:   rec.DiscountApplied,
		FinalAmount:       rec.FinalAmount,
		Currency:          itin.Currency,
		RecordedAt:        time.Now(),
	}
	if err := s.Analytics.Emit(ctx, event); err != nil {
		s.Logger.Warn("failed to emit booking analytics",
			zap.String("bookingId", rec.ID), zap.Error(err))
	}
}
