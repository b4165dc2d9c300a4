package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// lifecycle lists the forward moves of the order state machine. Cancellation
// is reachable from every non-terminal state.
var lifecycle = map[OrderStatus][]OrderStatus{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
	StatusShipped: {StatusDelivered, StatusCancelled},
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the lifecycle ends at s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// FollowsLifecycle reports whether moving from s to next is a forward step of
// the state machine. Status actions do not enforce this; it is informational.
func (s OrderStatus) FollowsLifecycle(next OrderStatus) bool {
	for _, allowed := range lifecycle[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is the model for the 'orders' table
type Order struct {
	ID              int64           `json:"id"`
	UserID          *int64          `json:"user"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Address         string          `json:"address"`
	City            string          `json:"city"`
	PostalCode      string          `json:"postal_code"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DeliveryCharges decimal.Decimal `json:"delivery_charges"`
	Status          OrderStatus     `json:"status"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentID       string          `json:"payment_id"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []OrderItem     `json:"items"`
}

// OrderItem is the model for the 'order_items' table. Size, color and style
// are snapshots taken at order time, not references to product variants.
type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"order"`
	ProductID   *int64          `json:"product"`
	ProductName *string         `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
	Style       string          `json:"style"`
}

// OrderInput is the checkout payload. Status is never taken from the client.
type OrderInput struct {
	FirstName       string           `json:"first_name" binding:"required,max=100"`
	LastName        string           `json:"last_name" binding:"required,max=100"`
	Email           string           `json:"email" binding:"required,email"`
	Phone           string           `json:"phone" binding:"required,max=20"`
	Address         string           `json:"address" binding:"required"`
	City            string           `json:"city" binding:"required,max=100"`
	PostalCode      string           `json:"postal_code" binding:"required,max=20"`
	TotalAmount     *decimal.Decimal `json:"total_amount" binding:"required"`
	DeliveryCharges *decimal.Decimal `json:"delivery_charges" binding:"required"`
	PaymentMethod   string           `json:"payment_method" binding:"required,max=50"`
	PaymentID       string           `json:"payment_id" binding:"max=255"`
	Items           []OrderItemInput `json:"items" binding:"dive"`
}

// OrderItemInput is one checkout line.
type OrderItemInput struct {
	ProductID *int64           `json:"product_id"`
	Quantity  int              `json:"quantity" binding:"required,gte=1"`
	Price     *decimal.Decimal `json:"price" binding:"required"`
	Size      string           `json:"size" binding:"max=50"`
	Color     string           `json:"color" binding:"max=50"`
	Style     string           `json:"style" binding:"max=100"`
}

// OrderPatch is a merge-patch over the scalar order fields.
type OrderPatch struct {
	FirstName       *string          `json:"first_name" binding:"omitempty,max=100"`
	LastName        *string          `json:"last_name" binding:"omitempty,max=100"`
	Email           *string          `json:"email" binding:"omitempty,email"`
	Phone           *string          `json:"phone" binding:"omitempty,max=20"`
	Address         *string          `json:"address"`
	City            *string          `json:"city" binding:"omitempty,max=100"`
	PostalCode      *string          `json:"postal_code" binding:"omitempty,max=20"`
	TotalAmount     *decimal.Decimal `json:"total_amount"`
	DeliveryCharges *decimal.Decimal `json:"delivery_charges"`
	Status          *OrderStatus     `json:"status"`
	PaymentMethod   *string          `json:"payment_method" binding:"omitempty,max=50"`
	PaymentID       *string          `json:"payment_id" binding:"omitempty,max=255"`
}

// OrderFilter restricts order listings; a nil UserID lists every order.
type OrderFilter struct {
	UserID *int64
}
