package handlers

import (
	"net/http"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/payments"
	"github.com/gin-gonic/gin"
)

// CreateStripeSession handles POST /v1/payments/create_stripe_session.
func (h *Handlers) CreateStripeSession(c *gin.Context) {
	var input payments.CheckoutSessionInput
	if !bindJSON(c, &input) {
		return
	}
	if input.DeliveryCharges.IsNegative() {
		respondError(c, apperr.FieldErrors(map[string]string{"delivery_charges": "Ensure this value is greater than or equal to 0."}))
		return
	}
	for _, item := range input.Items {
		if item.Price.IsNegative() {
			respondError(c, apperr.FieldErrors(map[string]string{"items": "Item prices must not be negative."}))
			return
		}
	}

	session, err := h.Checkout.CreateCheckoutSession(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// CreatePayPalOrder handles POST /v1/payments/create_paypal_order and
// relays PayPal's order JSON unchanged.
func (h *Handlers) CreatePayPalOrder(c *gin.Context) {
	var input payments.PayPalOrderInput
	if !bindJSON(c, &input) {
		return
	}
	if !input.Total.IsPositive() {
		respondError(c, apperr.FieldErrors(map[string]string{"total": "Ensure this value is greater than 0."}))
		return
	}

	raw, err := h.PayPal.CreateOrder(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// CapturePayPalOrder handles POST /v1/payments/capture_paypal_order.
func (h *Handlers) CapturePayPalOrder(c *gin.Context) {
	var input payments.PayPalCaptureInput
	if !bindJSON(c, &input) {
		return
	}

	raw, err := h.PayPal.CaptureOrder(c.Request.Context(), input.OrderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}
