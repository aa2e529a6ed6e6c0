package booking

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	bookingRepo "tripforge/database/repository/booking"
	itineraryRepo "tripforge/database/repository/itinerary"
	"tripforge/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService drives the booking saga. Each attempt is a single
// logical flow: every state transition is persisted before the next step runs,
// so a crash leaves the record in the last committed status.
type DefaultBookingService struct {
	Itineraries  itineraryRepo.ItineraryRepository
	Bookings     bookingRepo.BookingRepository
	Suppliers    SupplierGateway
	Payments     PaymentGateway
	Guard        *Guard
	Analytics    AnalyticsEmitter // optional
	Logger       *zap.Logger
	DiscountRate float64
}

// BookCompleteItinerary implements the complete booking saga:
// admission -> idempotency check -> initiate -> hold -> authorize ->
// confirm & capture -> finalize, with compensation on any step failure.
func (s *DefaultBookingService) BookCompleteItinerary(ctx context.Context, itineraryID string, data models.BookingData) (*models.BookingRecord, error) {
	// Admission: nothing has been acquired yet, so a missing itinerary needs
	// no compensation.
	itinRec, err := s.Itineraries.GetByID(ctx, itineraryID)
	if err != nil {
		if err == itineraryRepo.ErrNotFound {
			return nil, newNotFoundError(itineraryID)
		}
		return nil, fmt.Errorf("failed to load itinerary %s: %w", itineraryID, err)
	}

	key := DeriveKey(itineraryID, data.Email, data.Nonce)
	record, replayed, err := Run(ctx, s.Guard, key, func(ctx context.Context) (*models.BookingRecord, error) {
		return s.runSaga(ctx, itinRec, key, data)
	})
	if err != nil {
		return nil, err
	}
	if replayed {
		s.Logger.Info("returning existing booking for idempotency key",
			zap.String("bookingId", record.ID),
			zap.String("itineraryId", itineraryID))
	}
	return record, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.BookingRecord, error) {
	return s.Bookings.GetByID(ctx, id)
}

func (s *DefaultBookingService) runSaga(ctx context.Context, itinRec *models.ItineraryRecord, key string, data models.BookingData) (*models.BookingRecord, error) {
	itin := &itinRec.Itinerary

	rec := &models.BookingRecord{
		ID:                     "booking_" + uuid.New().String(),
		ItineraryID:            itinRec.ID,
		IdempotencyKey:         key,
		MasterConfirmationCode: masterConfirmationCode(key),
		Status:                 models.StatusInitiated,
		Holds:                  []models.Hold{},
		ConfirmedBookings:      []models.ConfirmedBooking{},
	}

	logger := s.Logger.With(
		zap.String("bookingId", rec.ID),
		zap.String("itineraryId", itinRec.ID))

	// Initiate.
	if err := s.Bookings.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to persist booking record: %w", err)
	}
	logger.Info("booking initiated", zap.Int("bookableSegments", len(itin.BookableSegments())))

	// Hold: one supplier hold per bookable segment, all-or-nothing.
	holds, err := s.holdSegments(ctx, itin)
	if err != nil {
		// Partially acquired holds must be released before failing.
		rec.Holds = holds
		return nil, s.failWithRollback(ctx, rec, &BookingError{
			Code:      CodeInventoryUnavailable,
			Message:   fmt.Sprintf("failed to hold supplier inventory: %v", err),
			BookingID: rec.ID,
			Err:       err,
		})
	}
	rec.Holds = holds
	if err := rec.Advance(models.StatusHeld); err != nil {
		return nil, s.failWithRollback(ctx, rec, s.invariantError(rec, err))
	}
	if err := s.Bookings.Put(ctx, rec); err != nil {
		return nil, s.failWithRollback(ctx, rec, &BookingError{
			Code:      CodeInventoryUnavailable,
			Message:   fmt.Sprintf("failed to persist held state: %v", err),
			BookingID: rec.ID,
			Err:       err,
		})
	}
	logger.Info("supplier inventory held", zap.Int("holds", len(holds)))

	// Authorize.
	auth, err := s.Payments.Authorize(ctx, itin.TotalEstimatedCost, itin.Currency, key)
	if err != nil {
		return nil, s.failWithRollback(ctx, rec, &BookingError{
			Code:      CodePaymentAuthorizationFailed,
			Message:   fmt.Sprintf("payment authorization failed: %v", err),
			BookingID: rec.ID,
			Err:       err,
		})
	}
	rec.PaymentAuth = auth
	if err := rec.Advance(models.StatusPaymentAuthorized); err != nil {
		return nil, s.failWithRollback(ctx, rec, s.invariantError(rec, err))
	}
	if err := s.Bookings.Put(ctx, rec); err != nil {
		return nil, s.failWithRollback(ctx, rec, &BookingError{
			Code:      CodePaymentAuthorizationFailed,
			Message:   fmt.Sprintf("failed to persist authorized state: %v", err),
			BookingID: rec.ID,
			Err:       err,
		})
	}
	logger.Info("payment authorized",
		zap.String("authId", auth.AuthID),
		zap.Float64("amount", auth.Amount),
		zap.String("currency", auth.Currency))

	// Confirm every hold, then capture. A failure partway leaves some holds
	// confirmed; those are surfaced to the caller, not silently dropped.
	confirmed := make([]models.ConfirmedBooking, 0, len(holds))
	for i, hold := range holds {
		conf, err := s.Suppliers.Confirm(ctx, hold)
		if err != nil {
			rec.ConfirmedBookings = confirmed
			s.compensate(ctx, rec, holds[i:], true,
				fmt.Sprintf("confirmation failed for hold %s: %v", hold.HoldRef, err))
			return nil, &BookingError{
				Code:                 CodeConfirmationFailed,
				Message:              fmt.Sprintf("supplier confirmation failed for hold %s: %v", hold.HoldRef, err),
				BookingID:            rec.ID,
				PartialConfirmations: confirmed,
				Err:                  err,
			}
		}
		confirmed = append(confirmed, conf)
	}
	capture, err := s.Payments.Capture(ctx, auth)
	if err != nil {
		// Every hold is confirmed at this point; there is nothing left to
		// release, but the uncaptured authorization must be voided.
		rec.ConfirmedBookings = confirmed
		s.compensate(ctx, rec, nil, true, fmt.Sprintf("payment capture failed: %v", err))
		return nil, &BookingError{
			Code:                 CodeConfirmationFailed,
			Message:              fmt.Sprintf("payment capture failed: %v", err),
			BookingID:            rec.ID,
			PartialConfirmations: confirmed,
			Err:                  err,
		}
	}
	rec.ConfirmedBookings = confirmed
	rec.PaymentCapture = capture
	if err := rec.Advance(models.StatusConfirmed); err != nil {
		return nil, s.failWithRollback(ctx, rec, s.invariantError(rec, err))
	}

	// Finalize: final pricing, then persist the terminal record.
	quote := BulkDiscountQuote(itin.TotalEstimatedCost, s.DiscountRate)
	rec.TotalCost = quote.TotalCost
	rec.DiscountApplied = quote.DiscountApplied
	rec.FinalAmount = quote.FinalAmount
	if err := s.Bookings.Put(ctx, rec); err != nil {
		// Suppliers and payment have committed; surface the store failure
		// rather than compensating a completed booking.
		return nil, fmt.Errorf("booking %s confirmed but failed to persist: %w", rec.ID, err)
	}
	logger.Info("booking confirmed",
		zap.String("captureId", capture.CaptureID),
		zap.Float64("finalAmount", rec.FinalAmount))

	if err := s.Itineraries.MarkBooked(ctx, itinRec.ID, rec.ID); err != nil {
		// The booking is terminal; the itinerary flag is advisory.
		logger.Error("failed to mark itinerary booked", zap.Error(err))
	}
	s.emitAnalytics(ctx, rec, itin)

	return rec, nil
}

// invariantError wraps a state machine violation. It should be unreachable.
func (s *DefaultBookingService) invariantError(rec *models.BookingRecord, err error) *BookingError {
	return &BookingError{
		Code:      CodeConfirmationFailed,
		Message:   fmt.Sprintf("booking state machine violation: %v", err),
		BookingID: rec.ID,
		Err:       err,
	}
}

// masterConfirmationCode derives the trip-level confirmation code from the
// idempotency key, so retries of the same logical request agree on it.
func masterConfirmationCode(key string) string {
	sum := sha256.Sum256([]byte("trip:" + key))
	return "TRIP" + strings.ToUpper(hex.EncodeToString(sum[:4]))
}
