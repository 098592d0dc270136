package order

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// ChargeRequest is one checkout payment. IdempotencyKey, when set, is sent to
// the provider instead of OrderID so a retried checkout maps to the same charge.
type ChargeRequest struct {
	OrderID        string
	UserID         string
	IdempotencyKey string
	Amount         float64
	Currency       string
	PaymentMethod  string
	Description    string
}

// RefundRequest returns a settled charge to the guest.
type RefundRequest struct {
	OrderID    string
	PaymentRef string
	Amount     float64
}

type PaymentGateway interface {
	// Charge collects the amount and returns the provider's reference.
	Charge(ctx context.Context, req ChargeRequest) (string, error)
	// Refund returns the amount of an earlier charge and returns the refund reference.
	Refund(ctx context.Context, req RefundRequest) (string, error)
}

// StripeGateway confirms a PaymentIntent server side.
type StripeGateway struct {
	api    *client.API
	logger *zap.Logger
}

// NewStripeGateway uses the default Stripe backends unless backends is non-nil.
func NewStripeGateway(key string, backends *stripe.Backends, logger *zap.Logger) *StripeGateway {
	api := &client.API{}
	api.Init(key, backends)
	return &StripeGateway{api: api, logger: logger}
}

// minorUnits converts to the smallest currency unit (fen, cents).
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (g *StripeGateway) Charge(ctx context.Context, req ChargeRequest) (string, error) {
	if req.PaymentMethod == "" {
		return "", fmt.Errorf("%w: payment method is required", ErrPaymentFailed)
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(minorUnits(req.Amount)),
		Currency:      stripe.String(req.Currency),
		PaymentMethod: stripe.String(req.PaymentMethod),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String(req.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	idempotencyKey := req.IdempotencyKey
	if idempotencyKey == "" {
		idempotencyKey = req.OrderID
	}
	params.SetIdempotencyKey(idempotencyKey)
	params.AddMetadata("order_id", req.OrderID)
	params.AddMetadata("user_id", req.UserID)

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPaymentFailed, err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		g.logger.Warn("Payment intent not settled", zap.String("intent", pi.ID), zap.String("status", string(pi.Status)))
		return "", fmt.Errorf("%w: payment intent %s is %s", ErrPaymentFailed, pi.ID, pi.Status)
	}

	g.logger.Info("Card payment successful", zap.String("order", req.OrderID), zap.String("intent", pi.ID))
	return pi.ID, nil
}

func (g *StripeGateway) Refund(ctx context.Context, req RefundRequest) (string, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(req.PaymentRef),
		Amount:        stripe.Int64(minorUnits(req.Amount)),
		Reason:        stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}
	params.Context = ctx
	params.SetIdempotencyKey("refund:" + req.OrderID)
	params.AddMetadata("order_id", req.OrderID)

	r, err := g.api.Refunds.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRefundFailed, err)
	}
	if r.Status == stripe.RefundStatusFailed || r.Status == stripe.RefundStatusCanceled {
		return "", fmt.Errorf("%w: refund %s is %s", ErrRefundFailed, r.ID, r.Status)
	}

	g.logger.Info("Refund issued", zap.String("order", req.OrderID), zap.String("refund", r.ID), zap.String("status", string(r.Status)))
	return r.ID, nil
}

// SimulatedGateway approves every charge. Used when no Stripe key is configured.
type SimulatedGateway struct {
	logger *zap.Logger
}

func NewSimulatedGateway(logger *zap.Logger) *SimulatedGateway {
	return &SimulatedGateway{logger: logger}
}

func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (string, error) {
	if req.Amount <= 0 {
		return "", fmt.Errorf("%w: invalid payment amount", ErrPaymentFailed)
	}
	ref := "sim_" + uuid.New().String()
	g.logger.Info("Simulated payment recorded",
		zap.String("order", req.OrderID), zap.Float64("amount", req.Amount), zap.String("ref", ref))
	return ref, nil
}

func (g *SimulatedGateway) Refund(ctx context.Context, req RefundRequest) (string, error) {
	if req.PaymentRef == "" {
		return "", fmt.Errorf("%w: order has no payment", ErrRefundFailed)
	}
	ref := "simre_" + uuid.New().String()
	g.logger.Info("Simulated refund recorded",
		zap.String("order", req.OrderID), zap.Float64("amount", req.Amount), zap.String("ref", ref))
	return ref, nil
}
