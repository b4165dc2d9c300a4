package handlers

import (
	"github.com/01moynul/storefront-golang/internal/accounts"
	"github.com/01moynul/storefront-golang/internal/catalog"
	"github.com/01moynul/storefront-golang/internal/orders"
	"github.com/01moynul/storefront-golang/internal/payments"
	"github.com/01moynul/storefront-golang/internal/reviews"
	"github.com/01moynul/storefront-golang/internal/storage"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Accounts *accounts.Service
	Products *catalog.ProductService
	Taxonomy *catalog.TaxonomyService
	Orders   *orders.Service
	Reviews  *reviews.Service

	Uploader storage.Uploader
	Checkout payments.CheckoutGateway // card rail
	PayPal   payments.PayPalGateway   // alternate rail
}
