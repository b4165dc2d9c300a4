// Package payments talks to the card rail (Stripe Checkout) and the
// alternate rail (PayPal Orders v2). Nothing here reconciles payments with
// orders; clients report the outcome through the order status actions.
package payments

//go:generate mockgen -destination=mocks/mock_gateways.go -package=mocks github.com/01moynul/storefront-golang/internal/payments CheckoutGateway,PayPalGateway

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CheckoutGateway creates hosted card checkout sessions.
type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, in CheckoutSessionInput) (*CheckoutSession, error)
}

// PayPalGateway creates and captures PayPal orders. Responses are the
// provider's JSON, unchanged.
type PayPalGateway interface {
	CreateOrder(ctx context.Context, in PayPalOrderInput) (json.RawMessage, error)
	CaptureOrder(ctx context.Context, orderID string) (json.RawMessage, error)
}

// CheckoutItem is one cart line as sent by the storefront.
type CheckoutItem struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity" binding:"required,gte=1"`
}

type CheckoutSessionInput struct {
	Items           []CheckoutItem  `json:"items" binding:"dive"`
	DeliveryCharges decimal.Decimal `json:"delivery_charges"`
	Currency        string          `json:"currency"`
	SuccessURL      string          `json:"success_url"`
	CancelURL       string          `json:"cancel_url"`
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type PayPalOrderInput struct {
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
	ReturnURL string          `json:"return_url"`
	CancelURL string          `json:"cancel_url"`
}

type PayPalCaptureInput struct {
	OrderID string `json:"orderID" binding:"required"`
}
