// Package orders captures checkouts and moves orders through their status
// lifecycle.
package orders

import (
	"context"
	"strings"
	"time"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/logger"
	"github.com/01moynul/storefront-golang/internal/metrics"
	"github.com/01moynul/storefront-golang/internal/models"
	"go.uber.org/zap"
)

// Repository persists orders with their items.
type Repository interface {
	// CreateOrder stores o and o.Items atomically.
	CreateOrder(ctx context.Context, o *models.Order) (int64, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	UpdateOrder(ctx context.Context, o *models.Order) error
	SetOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error
	DeleteOrder(ctx context.Context, id int64) error
}

// Service implements order capture and status actions. A nil caller is an
// anonymous visitor, who may only create orders.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// CreateOrder stores a pending order with its line snapshots, owned by the
// caller when authenticated.
func (s *Service) CreateOrder(ctx context.Context, caller *models.User, in models.OrderInput) (*models.Order, error) {
	if err := validateOrderInput(in); err != nil {
		return nil, err
	}

	o := &models.Order{
		FirstName:       strings.TrimSpace(in.FirstName),
		LastName:        strings.TrimSpace(in.LastName),
		Email:           strings.TrimSpace(in.Email),
		Phone:           strings.TrimSpace(in.Phone),
		Address:         in.Address,
		City:            strings.TrimSpace(in.City),
		PostalCode:      strings.TrimSpace(in.PostalCode),
		TotalAmount:     *in.TotalAmount,
		DeliveryCharges: *in.DeliveryCharges,
		Status:          models.StatusPending,
		PaymentMethod:   in.PaymentMethod,
		PaymentID:       in.PaymentID,
		CreatedAt:       s.now().UTC(),
		Items:           make([]models.OrderItem, 0, len(in.Items)),
	}
	if caller != nil {
		uid := caller.ID
		o.UserID = &uid
	}
	for _, item := range in.Items {
		o.Items = append(o.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     *item.Price,
			Size:      item.Size,
			Color:     item.Color,
			Style:     item.Style,
		})
	}

	id, err := s.repo.CreateOrder(ctx, o)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Order created",
		zap.Int64("order_id", id),
		zap.Bool("authenticated", caller != nil),
		zap.Int("items", len(o.Items)),
		zap.String("total_amount", o.TotalAmount.StringFixed(2)))
	return s.repo.GetOrder(ctx, id)
}

// GetOrder returns the order if the caller may see it.
func (s *Service) GetOrder(ctx context.Context, caller *models.User, id int64) (*models.Order, error) {
	if caller == nil {
		return nil, apperr.Unauthorized("Authentication credentials were not provided.")
	}
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsStaff && (o.UserID == nil || *o.UserID != caller.ID) {
		return nil, apperr.NotFound("order")
	}
	return o, nil
}

// ListOrders returns every order for staff and the caller's own otherwise.
func (s *Service) ListOrders(ctx context.Context, caller *models.User) ([]models.Order, error) {
	if caller == nil {
		return nil, apperr.Unauthorized("Authentication credentials were not provided.")
	}
	var filter models.OrderFilter
	if !caller.IsStaff {
		uid := caller.ID
		filter.UserID = &uid
	}
	return s.repo.ListOrders(ctx, filter)
}

// UpdateOrder merge-patches the scalar fields of a visible order.
func (s *Service) UpdateOrder(ctx context.Context, caller *models.User, id int64, patch models.OrderPatch) (*models.Order, error) {
	o, err := s.GetOrder(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	from := o.Status
	if err := applyPatch(o, patch); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateOrder(ctx, o); err != nil {
		return nil, err
	}
	if o.Status != from {
		s.recordTransition(ctx, id, from, o.Status)
	}
	return s.repo.GetOrder(ctx, id)
}

// DeleteOrder removes a visible order with its items.
func (s *Service) DeleteOrder(ctx context.Context, caller *models.User, id int64) error {
	if _, err := s.GetOrder(ctx, caller, id); err != nil {
		return err
	}
	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Order deleted", zap.Int64("order_id", id), zap.Int64("by_user", caller.ID))
	return nil
}

func (s *Service) MarkPaid(ctx context.Context, caller *models.User, id int64) (*models.Order, error) {
	return s.setStatus(ctx, caller, id, models.StatusPaid)
}

func (s *Service) MarkShipped(ctx context.Context, caller *models.User, id int64) (*models.Order, error) {
	return s.setStatus(ctx, caller, id, models.StatusShipped)
}

func (s *Service) MarkDelivered(ctx context.Context, caller *models.User, id int64) (*models.Order, error) {
	return s.setStatus(ctx, caller, id, models.StatusDelivered)
}

func (s *Service) MarkCancelled(ctx context.Context, caller *models.User, id int64) (*models.Order, error) {
	return s.setStatus(ctx, caller, id, models.StatusCancelled)
}

// setStatus overwrites the status from any current status. Moves that skip
// or reverse the lifecycle are allowed and only logged.
func (s *Service) setStatus(ctx context.Context, caller *models.User, id int64, next models.OrderStatus) (*models.Order, error) {
	o, err := s.GetOrder(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetOrderStatus(ctx, id, next); err != nil {
		return nil, err
	}
	s.recordTransition(ctx, id, o.Status, next)
	return s.repo.GetOrder(ctx, id)
}

func (s *Service) recordTransition(ctx context.Context, id int64, from, to models.OrderStatus) {
	log := logger.FromContext(ctx)
	metrics.RecordStatusChange(string(from), string(to))
	fields := []zap.Field{zap.Int64("order_id", id), zap.String("from", string(from)), zap.String("to", string(to))}
	switch {
	case from == to || from.FollowsLifecycle(to):
		log.Info("Order status changed", fields...)
	case from.Terminal():
		log.Warn("Order reopened after its lifecycle ended", fields...)
	default:
		log.Warn("Order status moved outside the lifecycle", fields...)
	}
}
