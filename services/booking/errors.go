package booking

import (
	"errors"
	"fmt"

	"tripforge/models"
)

// Error codes of the booking saga.
const (
	CodeNotFound                   = "notFound"
	CodeInventoryUnavailable       = "inventoryUnavailable"
	CodePaymentAuthorizationFailed = "paymentAuthorizationFailed"
	CodeConfirmationFailed         = "confirmationFailed"
	CodeCompensationFailure        = "compensationFailure"
)

// BookingError is the typed failure surfaced by the saga. BookingID is set on
// every failure that created a record so an operator can inspect the persisted
// state. PartialConfirmations lists holds that were confirmed before a
// confirmation-stage failure and then rolled back; they are reported, never
// silently dropped.
type BookingError struct {
	Code                 string                    `json:"code"`
	Message              string                    `json:"message"`
	BookingID            string                    `json:"booking_id,omitempty"`
	PartialConfirmations []models.ConfirmedBooking `json:"partial_confirmations,omitempty"`
	Err                  error                     `json:"-"`
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BookingError) Unwrap() error {
	return e.Err
}

// AsBookingError extracts a BookingError from an error chain.
func AsBookingError(err error) (*BookingError, bool) {
	var be *BookingError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

func newNotFoundError(itineraryID string) *BookingError {
	return &BookingError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("itinerary %s not found", itineraryID),
	}
}
