package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tripforge/models"
	"tripforge/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// PaymentGateway exposes the two-phase payment operations the saga drives:
// funds are reserved with Authorize and transferred with Capture. Void
// failures are logged by the compensation engine and never propagated.
type PaymentGateway interface {
	Authorize(ctx context.Context, amount float64, currency, idemKey string) (*models.PaymentAuth, error)
	Capture(ctx context.Context, auth *models.PaymentAuth) (*models.PaymentCapture, error)
	Void(ctx context.Context, auth *models.PaymentAuth) error
}

// StripePaymentGateway implements the gateway on Stripe PaymentIntents with
// manual capture. The stripe client key is set globally in main.
type StripePaymentGateway struct {
	Logger *zap.Logger
	// PaymentMethod is the payment method attached at authorization time.
	PaymentMethod string
	AuthTTL       time.Duration
}

func NewStripePaymentGateway(logger *zap.Logger, paymentMethod string) *StripePaymentGateway {
	return &StripePaymentGateway{
		Logger:        logger,
		PaymentMethod: paymentMethod,
		AuthTTL:       utils.DefaultAuthTTL,
	}
}

func (g *StripePaymentGateway) Authorize(ctx context.Context, amount float64, currency, idemKey string) (*models.PaymentAuth, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(toMinorUnits(amount)),
		Currency:      stripe.String(strings.ToLower(currency)),
		CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		Confirm:       stripe.Bool(true),
		PaymentMethod: stripe.String(g.PaymentMethod),
	}
	params.Context = ctx
	params.SetIdempotencyKey(idemKey)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe authorization failed: %w", err)
	}
	if pi.Status != stripe.PaymentIntentStatusRequiresCapture {
		return nil, fmt.Errorf("stripe authorization not capturable, intent status %s", pi.Status)
	}

	g.Logger.Info("payment authorized",
		zap.String("authId", pi.ID),
		zap.Float64("amount", amount),
		zap.String("currency", currency))

	return &models.PaymentAuth{
		AuthID:    pi.ID,
		Amount:    amount,
		Currency:  currency,
		ExpiresAt: time.Now().Add(g.AuthTTL),
	}, nil
}

func (g *StripePaymentGateway) Capture(ctx context.Context, auth *models.PaymentAuth) (*models.PaymentCapture, error) {
	params := &stripe.PaymentIntentCaptureParams{}
	params.Context = ctx
	pi, err := paymentintent.Capture(auth.AuthID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe capture failed for %s: %w", auth.AuthID, err)
	}
	captureID := pi.ID
	if pi.LatestCharge != nil {
		captureID = pi.LatestCharge.ID
	}
	g.Logger.Info("payment captured", zap.String("authId", auth.AuthID))
	return &models.PaymentCapture{
		CaptureID: captureID,
		Amount:    auth.Amount,
		Currency:  auth.Currency,
	}, nil
}

func (g *StripePaymentGateway) Void(ctx context.Context, auth *models.PaymentAuth) error {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx
	if _, err := paymentintent.Cancel(auth.AuthID, params); err != nil {
		return fmt.Errorf("stripe void failed for %s: %w", auth.AuthID, err)
	}
	g.Logger.Info("payment authorization voided", zap.String("authId", auth.AuthID))
	return nil
}

func toMinorUnits(amount float64) int64 {
	return int64(amount*100 + 0.5)
}

// SimPaymentGateway is a deterministic in-process gateway for development and
// tests. Failures are injected by flag; nothing is random.
type SimPaymentGateway struct {
	Logger  *zap.Logger
	AuthTTL time.Duration
	Now     func() time.Time // defaults to time.Now

	FailAuthorize bool
	FailCapture   bool
	FailVoid      bool
}

func NewSimPaymentGateway(logger *zap.Logger) *SimPaymentGateway {
	return &SimPaymentGateway{
		Logger:  logger,
		AuthTTL: utils.DefaultAuthTTL,
	}
}

func (g *SimPaymentGateway) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *SimPaymentGateway) Authorize(ctx context.Context, amount float64, currency, idemKey string) (*models.PaymentAuth, error) {
	if g.FailAuthorize {
		return nil, fmt.Errorf("payment authorization declined")
	}
	auth := &models.PaymentAuth{
		AuthID:    "auth_" + idemKey,
		Amount:    amount,
		Currency:  currency,
		ExpiresAt: g.now().Add(g.AuthTTL),
	}
	g.Logger.Debug("payment authorized", zap.String("authId", auth.AuthID), zap.Float64("amount", amount))
	return auth, nil
}

func (g *SimPaymentGateway) Capture(ctx context.Context, auth *models.PaymentAuth) (*models.PaymentCapture, error) {
	if g.FailCapture {
		return nil, fmt.Errorf("payment capture declined for %s", auth.AuthID)
	}
	capture := &models.PaymentCapture{
		CaptureID: "capture_" + auth.AuthID,
		Amount:    auth.Amount,
		Currency:  auth.Currency,
	}
	g.Logger.Debug("payment captured", zap.String("captureId", capture.CaptureID))
	return capture, nil
}

func (g *SimPaymentGateway) Void(ctx context.Context, auth *models.PaymentAuth) error {
	if g.FailVoid {
		return fmt.Errorf("payment void failed for %s", auth.AuthID)
	}
	g.Logger.Debug("payment authorization voided", zap.String("authId", auth.AuthID))
	return nil
}
