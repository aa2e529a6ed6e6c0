package booking

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"tripforge/models"
	"tripforge/utils"

	"go.uber.org/zap"
)

// SupplierGateway exposes the per-segment inventory operations the saga
// drives. Hold and Confirm failures abort the current step; Release failures
// are logged by the compensation engine and never propagated.
type SupplierGateway interface {
	Hold(ctx context.Context, seg models.Segment) (models.Hold, error)
	Confirm(ctx context.Context, hold models.Hold) (models.ConfirmedBooking, error)
	Release(ctx context.Context, hold models.Hold) error
}

// SimSupplierGateway is a deterministic in-process supplier used in
// development and tests. Failures are injected per booking offer id; nothing
// is random.
type SimSupplierGateway struct {
	Logger  *zap.Logger
	HoldTTL time.Duration
	Now     func() time.Time // defaults to time.Now

	FailHold    map[string]bool // keyed by booking offer id
	FailConfirm map[string]bool // keyed by booking offer id
	FailRelease map[string]bool // keyed by hold ref
}

func NewSimSupplierGateway(logger *zap.Logger, holdTTL time.Duration) *SimSupplierGateway {
	if holdTTL <= 0 {
		holdTTL = utils.DefaultHoldTTL
	}
	return &SimSupplierGateway{
		Logger:  logger,
		HoldTTL: holdTTL,
	}
}

func (g *SimSupplierGateway) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *SimSupplierGateway) Hold(ctx context.Context, seg models.Segment) (models.Hold, error) {
	if g.FailHold[seg.BookingOfferID] {
		return models.Hold{}, fmt.Errorf("supplier rejected hold for offer %s", seg.BookingOfferID)
	}
	supplierID := "supplier_generic"
	if seg.POIID != "" {
		supplierID = "supplier_" + seg.POIID
	}
	hold := models.Hold{
		SegmentRef: seg.BookingOfferID,
		HoldRef:    "hold_" + seg.BookingOfferID,
		SupplierID: supplierID,
		ExpiresAt:  g.now().Add(g.HoldTTL),
	}
	g.Logger.Debug("supplier hold acquired",
		zap.String("holdRef", hold.HoldRef), zap.String("supplier", hold.SupplierID))
	return hold, nil
}

func (g *SimSupplierGateway) Confirm(ctx context.Context, hold models.Hold) (models.ConfirmedBooking, error) {
	if g.FailConfirm[hold.SegmentRef] {
		return models.ConfirmedBooking{}, fmt.Errorf("supplier rejected confirmation for hold %s", hold.HoldRef)
	}
	conf := models.ConfirmedBooking{
		BookingRef:       "booking_" + hold.HoldRef + "_confirmed",
		SupplierID:       hold.SupplierID,
		ConfirmationCode: confirmationCode(hold.HoldRef),
	}
	g.Logger.Debug("supplier booking confirmed",
		zap.String("bookingRef", conf.BookingRef), zap.String("code", conf.ConfirmationCode))
	return conf, nil
}

func (g *SimSupplierGateway) Release(ctx context.Context, hold models.Hold) error {
	if g.FailRelease[hold.HoldRef] {
		return fmt.Errorf("supplier failed to release hold %s", hold.HoldRef)
	}
	g.Logger.Debug("supplier hold released", zap.String("holdRef", hold.HoldRef))
	return nil
}

// confirmationCode derives a stable human-readable code from the hold ref.
func confirmationCode(holdRef string) string {
	sum := sha256.Sum256([]byte(holdRef))
	return "CONF" + strings.ToUpper(hex.EncodeToString(sum[:3]))
}
