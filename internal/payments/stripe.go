package payments

import (
	"context"
	"errors"
	"strings"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/logger"
	"github.com/01moynul/storefront-golang/internal/metrics"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

const deliveryLineName = "Delivery Charges"

var hundred = decimal.NewFromInt(100)

// LineItem is one priced line of a checkout session, in minor units.
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
	Currency   string
}

// MinorUnits converts a major-unit amount to minor units, truncating any
// fraction of a minor unit.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).IntPart()
}

// BuildLineItems converts cart lines to session lines and appends a
// delivery line when the charge is positive.
func BuildLineItems(items []CheckoutItem, deliveryCharges decimal.Decimal, currency string) []LineItem {
	lines := make([]LineItem, 0, len(items)+1)
	for _, item := range items {
		lines = append(lines, LineItem{
			Name:       item.Name,
			UnitAmount: MinorUnits(item.Price),
			Quantity:   item.Quantity,
			Currency:   currency,
		})
	}
	if deliveryCharges.IsPositive() {
		lines = append(lines, LineItem{
			Name:       deliveryLineName,
			UnitAmount: MinorUnits(deliveryCharges),
			Quantity:   1,
			Currency:   currency,
		})
	}
	return lines
}

// sessionClient is the part of the Stripe checkout session client in use.
type sessionClient interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// Stripe creates hosted Checkout sessions.
type Stripe struct {
	sessions sessionClient
	currency string
}

func NewStripe(secretKey, currency string) *Stripe {
	return &Stripe{
		sessions: session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
		currency: currency,
	}
}

// CreateCheckoutSession requests a card-only, payment-mode session.
func (s *Stripe) CreateCheckoutSession(ctx context.Context, in CheckoutSessionInput) (*CheckoutSession, error) {
	currency := strings.ToLower(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = s.currency
	}

	lines := BuildLineItems(in.Items, in.DeliveryCharges, currency)
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(in.SuccessURL),
		CancelURL:          stripe.String(in.CancelURL),
		LineItems:          make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines)),
	}
	params.Context = ctx
	for _, line := range lines {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(line.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
				},
				UnitAmount: stripe.Int64(line.UnitAmount),
			},
			Quantity: stripe.Int64(line.Quantity),
		})
	}

	sess, err := s.sessions.New(params)
	metrics.RecordPaymentCall("stripe", "create_session", err)
	if err != nil {
		logger.FromContext(ctx).Warn("Stripe session creation failed", zap.Error(err))
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
			return nil, apperr.Upstream(stripeErr.Msg, err)
		}
		return nil, apperr.Upstream(err.Error(), err)
	}

	logger.FromContext(ctx).Info("Stripe session created",
		zap.String("session_id", sess.ID), zap.Int("line_items", len(lines)))
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}
