package booking

import (
	"context"

	"tripforge/models"

	"go.uber.org/zap"
)

// failWithRollback runs the full compensation pass for the record and returns
// the given error. All of the record's holds are released and any uncaptured
// authorization is voided.
func (s *DefaultBookingService) failWithRollback(ctx context.Context, rec *models.BookingRecord, berr *BookingError) error {
	s.compensate(ctx, rec, rec.Holds, true, berr.Message)
	return berr
}

// compensate is the rollback engine. It never returns an error: every
// compensating call is attempted independently, and a failed compensation is
// recorded on the booking for operational follow-up instead of being
// propagated. After the pass the record is persisted in the terminal failed
// status.
func (s *DefaultBookingService) compensate(ctx context.Context, rec *models.BookingRecord, releaseHolds []models.Hold, voidAuth bool, reason string) {
	logger := s.Logger.With(zap.String("bookingId", rec.ID))
	logger.Warn("booking failed, starting rollback", zap.String("reason", reason))

	for _, hold := range releaseHolds {
		if err := s.Suppliers.Release(ctx, hold); err != nil {
			logger.Error("failed to release hold",
				zap.String("holdRef", hold.HoldRef), zap.Error(err))
			rec.CompensationFailures = append(rec.CompensationFailures, models.CompensationFailure{
				Kind:   "release",
				Ref:    hold.HoldRef,
				Reason: err.Error(),
			})
			continue
		}
		logger.Info("released hold", zap.String("holdRef", hold.HoldRef))
	}

	if voidAuth && rec.PaymentAuth != nil && rec.PaymentCapture == nil {
		if err := s.Payments.Void(ctx, rec.PaymentAuth); err != nil {
			logger.Error("failed to void payment authorization",
				zap.String("authId", rec.PaymentAuth.AuthID), zap.Error(err))
			rec.CompensationFailures = append(rec.CompensationFailures, models.CompensationFailure{
				Kind:   "void",
				Ref:    rec.PaymentAuth.AuthID,
				Reason: err.Error(),
			})
		} else {
			logger.Info("voided payment authorization",
				zap.String("authId", rec.PaymentAuth.AuthID))
		}
	}

	if err := rec.Fail(reason); err != nil {
		logger.Error("failed to mark booking failed", zap.Error(err))
		return
	}
	if err := s.Bookings.Put(ctx, rec); err != nil {
		logger.Error("failed to persist failed booking record", zap.Error(err))
	}
	if len(rec.CompensationFailures) > 0 {
		logger.Error("rollback completed with compensation failures",
			zap.Int("failed", len(rec.CompensationFailures)))
	} else {
		logger.Info("rollback completed")
	}
}
