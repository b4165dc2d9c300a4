package memstore

import (
	"context"
	"sort"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/models"
)

func (s *Store) CreateOrder(ctx context.Context, o *models.Order) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("CreateOrder"); err != nil {
		return 0, err
	}
	if o.UserID != nil {
		if _, ok := s.st.users[*o.UserID]; !ok {
			return 0, missingReference()
		}
	}
	for _, item := range o.Items {
		if item.ProductID != nil {
			if _, ok := s.st.products[*item.ProductID]; !ok {
				return 0, missingReference()
			}
		}
	}

	row := *o
	row.ID = s.nextID("orders")
	items := make([]models.OrderItem, len(o.Items))
	for i, item := range o.Items {
		item.ID = s.nextID("order_items")
		item.OrderID = row.ID
		item.ProductName = nil
		items[i] = item
	}
	row.Items = nil
	s.st.orders[row.ID] = row
	s.st.items[row.ID] = items
	return row.ID, nil
}

func (s *Store) withItems(o models.Order) models.Order {
	o.Items = []models.OrderItem{}
	for _, item := range s.st.items[o.ID] {
		if item.ProductID != nil {
			if p, ok := s.st.products[*item.ProductID]; ok {
				name := p.Name
				item.ProductName = &name
			}
		}
		o.Items = append(o.Items, item)
	}
	return o
}

func (s *Store) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.st.orders[id]
	if !ok {
		return nil, apperr.NotFound("order")
	}
	o = s.withItems(o)
	return &o, nil
}

func (s *Store) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
	for _, o := range s.st.orders {
		if filter.UserID != nil && (o.UserID == nil || *o.UserID != *filter.UserID) {
			continue
		}
		out = append(out, s.withItems(o))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) UpdateOrder(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.st.orders[o.ID]
	if !ok {
		return apperr.NotFound("order")
	}
	row := *o
	row.UserID = existing.UserID
	row.CreatedAt = existing.CreatedAt
	row.Items = nil
	s.st.orders[row.ID] = row
	return nil
}

func (s *Store) SetOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.st.orders[id]
	if !ok {
		return apperr.NotFound("order")
	}
	o.Status = status
	s.st.orders[id] = o
	return nil
}

func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.st.orders[id]; !ok {
		return apperr.NotFound("order")
	}
	delete(s.st.orders, id)
	delete(s.st.items, id)
	return nil
}
