package models

import (
	"fmt"
	"time"
)

// BookingStatus is the saga's state machine position. It only moves forward
// along initiated -> held -> payment_authorized -> confirmed, or diverts once
// to failed. confirmed and failed are terminal.
type BookingStatus string

const (
	StatusInitiated         BookingStatus = "initiated"
	StatusHeld              BookingStatus = "held"
	StatusPaymentAuthorized BookingStatus = "payment_authorized"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusFailed            BookingStatus = "failed"
)

var statusRank = map[BookingStatus]int{
	StatusInitiated:         0,
	StatusHeld:              1,
	StatusPaymentAuthorized: 2,
	StatusConfirmed:         3,
}

// Terminal reports whether the status permits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == StatusConfirmed || s == StatusFailed
}

// Hold is a time-bounded supplier reservation for one bookable segment.
type Hold struct {
	SegmentRef string    `bson:"segment_ref" json:"segment_ref"` // the segment's booking offer id
	HoldRef    string    `bson:"hold_ref" json:"hold_ref"`
	SupplierID string    `bson:"supplier_id" json:"supplier_id"`
	ExpiresAt  time.Time `bson:"expires_at" json:"expires_at"`
}

// PaymentAuth is a live payment authorization awaiting capture or void.
type PaymentAuth struct {
	AuthID    string    `bson:"auth_id" json:"auth_id"`
	Amount    float64   `bson:"amount" json:"amount"`
	Currency  string    `bson:"currency" json:"currency"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}

// PaymentCapture records a completed capture of an authorization.
type PaymentCapture struct {
	CaptureID string  `bson:"capture_id" json:"capture_id"`
	Amount    float64 `bson:"amount" json:"amount"`
	Currency  string  `bson:"currency" json:"currency"`
}

// ConfirmedBooking is a supplier-side confirmation of a previously held segment.
type ConfirmedBooking struct {
	BookingRef       string `bson:"booking_ref" json:"booking_ref"`
	SupplierID       string `bson:"supplier_id" json:"supplier_id"`
	ConfirmationCode string `bson:"confirmation_code" json:"confirmation_code"`
}

// CompensationFailure records a rollback step that itself failed and needs
// operational follow-up.
type CompensationFailure struct {
	Kind   string `bson:"kind" json:"kind"` // "release" or "void"
	Ref    string `bson:"ref" json:"ref"`
	Reason string `bson:"reason" json:"reason"`
}

// BookingRecord is one booking attempt's durable state machine instance. It
// is created and mutated exclusively by the booking saga, persisted after
// every state transition, and never mutated again once terminal.
type BookingRecord struct {
	ID                     string                `bson:"id" json:"id"`
	ItineraryID            string                `bson:"itinerary_id" json:"itinerary_id"`
	IdempotencyKey         string                `bson:"idempotency_key" json:"idempotency_key"`
	MasterConfirmationCode string                `bson:"master_confirmation_code,omitempty" json:"master_confirmation_code,omitempty"`
	Status                 BookingStatus         `bson:"status" json:"status"`
	Holds                  []Hold                `bson:"holds" json:"holds"`
	PaymentAuth            *PaymentAuth          `bson:"payment_auth,omitempty" json:"payment_auth,omitempty"`
	PaymentCapture         *PaymentCapture       `bson:"payment_capture,omitempty" json:"payment_capture,omitempty"`
	ConfirmedBookings      []ConfirmedBooking    `bson:"confirmed_bookings" json:"confirmed_bookings"`
	CompensationFailures   []CompensationFailure `bson:"compensation_failures,omitempty" json:"compensation_failures,omitempty"`
	FailureReason          string                `bson:"failure_reason,omitempty" json:"failure_reason,omitempty"`
	TotalCost              float64               `bson:"total_cost" json:"total_cost"`
	DiscountApplied        float64               `bson:"discount_applied" json:"discount_applied"`
	FinalAmount            float64               `bson:"final_amount" json:"final_amount"`
	CreatedAt              time.Time             `bson:"created_at" json:"created_at"`
	UpdatedAt              time.Time             `bson:"updated_at" json:"updated_at"`
}

// Advance moves the record forward to next on the success path. It rejects
// regressions, skips and any transition out of a terminal state.
func (r *BookingRecord) Advance(next BookingStatus) error {
	if r.Status.Terminal() {
		return fmt.Errorf("booking %s is terminal in status %q", r.ID, r.Status)
	}
	cur, ok := statusRank[r.Status]
	if !ok {
		return fmt.Errorf("booking %s has unknown status %q", r.ID, r.Status)
	}
	nxt, ok := statusRank[next]
	if !ok {
		return fmt.Errorf("cannot advance booking %s to unknown status %q", r.ID, next)
	}
	if nxt != cur+1 {
		return fmt.Errorf("cannot advance booking %s from %q to %q", r.ID, r.Status, next)
	}
	r.Status = next
	return nil
}

// Fail diverts the record to the terminal failed status. It is a no-op on an
// already failed record and rejected on a confirmed one.
func (r *BookingRecord) Fail(reason string) error {
	if r.Status == StatusFailed {
		return nil
	}
	if r.Status == StatusConfirmed {
		return fmt.Errorf("booking %s is already confirmed", r.ID)
	}
	r.Status = StatusFailed
	r.FailureReason = reason
	return nil
}

// BookingData is the caller-supplied portion of a booking request. Nonce is
// the caller's retry-stable attempt component of the idempotency key.
type BookingData struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Nonce string `json:"nonce"`
}
