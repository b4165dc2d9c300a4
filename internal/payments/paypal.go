package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/config"
	"github.com/01moynul/storefront-golang/internal/logger"
	"github.com/01moynul/storefront-golang/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// PayPal calls the Orders v2 API. Every call exchanges the client
// credentials for a fresh access token.
type PayPal struct {
	baseURL  string
	creds    clientcredentials.Config
	client   *http.Client
	currency string
}

func NewPayPal(cfg config.PayPalConfig) *PayPal {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	return &PayPal{
		baseURL: baseURL,
		creds: clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     baseURL + "/v1/oauth2/token",
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		client:   &http.Client{Timeout: cfg.Timeout},
		currency: cfg.Currency,
	}
}

type paypalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type paypalPurchaseUnit struct {
	Amount paypalAmount `json:"amount"`
}

type paypalApplicationContext struct {
	ReturnURL string `json:"return_url"`
	CancelURL string `json:"cancel_url"`
}

type paypalOrderRequest struct {
	Intent             string                    `json:"intent"`
	PurchaseUnits      []paypalPurchaseUnit      `json:"purchase_units"`
	ApplicationContext *paypalApplicationContext `json:"application_context,omitempty"`
}

// orderRequest builds the create-order body. The redirect context is only
// sent when both URLs are present.
func (p *PayPal) orderRequest(in PayPalOrderInput) paypalOrderRequest {
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = p.currency
	}
	req := paypalOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []paypalPurchaseUnit{{
			Amount: paypalAmount{CurrencyCode: currency, Value: in.Total.StringFixed(2)},
		}},
	}
	if in.ReturnURL != "" && in.CancelURL != "" {
		req.ApplicationContext = &paypalApplicationContext{ReturnURL: in.ReturnURL, CancelURL: in.CancelURL}
	}
	return req
}

func (p *PayPal) CreateOrder(ctx context.Context, in PayPalOrderInput) (json.RawMessage, error) {
	body, err := json.Marshal(p.orderRequest(in))
	if err != nil {
		return nil, err
	}
	resp, err := p.call(ctx, "/v2/checkout/orders", body)
	metrics.RecordPaymentCall("paypal", "create_order", err)
	return resp, err
}

func (p *PayPal) CaptureOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, apperr.FieldErrors(map[string]string{"orderID": "This field is required."})
	}
	resp, err := p.call(ctx, "/v2/checkout/orders/"+url.PathEscape(orderID)+"/capture", nil)
	metrics.RecordPaymentCall("paypal", "capture_order", err)
	return resp, err
}

// call POSTs body to path with a fresh bearer token. A status of 400 or
// above is returned as an upstream error carrying the raw response body.
func (p *PayPal) call(ctx context.Context, path string, body []byte) (json.RawMessage, error) {
	log := logger.FromContext(ctx)

	// 1. Access token
	tok, err := p.creds.Token(context.WithValue(ctx, oauth2.HTTPClient, p.client))
	if err != nil {
		log.Warn("PayPal token request failed", zap.Error(err))
		return nil, apperr.Upstream("PayPal auth failed", err)
	}

	// 2. API call
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paypal %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read paypal response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		log.Warn("PayPal rejected request", zap.String("path", path), zap.Int("status", resp.StatusCode))
		return nil, apperr.Upstream(string(raw), nil)
	}
	return json.RawMessage(raw), nil
}
