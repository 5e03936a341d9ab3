package payment

import (
	"context"
	"fmt"

	"streambook/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// StripeGateway implements Gateway on Stripe PaymentIntents. The intent's
// client secret is the token the client completes payment against; results
// come back on the webhook as payment_intent.* events.
type StripeGateway struct {
	logger *zap.Logger
}

// NewStripeGateway creates a Stripe-backed Gateway. The package-level
// stripe.Key must already be set.
func NewStripeGateway(logger *zap.Logger) *StripeGateway {
	return &StripeGateway{logger: logger}
}

func (g *StripeGateway) CreateCharge(ctx context.Context, req models.ChargeRequest) (*models.ChargeToken, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(req.Amount),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String(req.Description),
	}
	params.Context = ctx
	if req.PayerEmail != "" {
		params.ReceiptEmail = stripe.String(req.PayerEmail)
	}
	params.AddMetadata("orderId", req.OrderID)
	params.AddMetadata("payerId", req.PayerID)
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to create payment intent for order %s: %w", req.OrderID, err)
	}

	g.logger.Info("stripe: payment intent created",
		zap.String("orderId", req.OrderID),
		zap.String("paymentIntentId", pi.ID),
		zap.Int64("amount", req.Amount))

	return &models.ChargeToken{OrderID: req.OrderID, Token: pi.ClientSecret}, nil
}
