package store

import (
	"context"
	"database/sql"

	"github.com/01moynul/storefront-golang/internal/models"
)

const orderSelect = `
	SELECT id, user_id, first_name, last_name, email, phone, address, city, postal_code,
		total_amount, delivery_charges, status, payment_method, payment_id, created_at
	FROM orders`

func (s *Store) CreateOrder(ctx context.Context, o *models.Order) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		// 1. Order row
		res, err := tx.ExecContext(ctx, `
			INSERT INTO orders (
				user_id, first_name, last_name, email, phone, address, city, postal_code,
				total_amount, delivery_charges, status, payment_method, payment_id, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			o.UserID, o.FirstName, o.LastName, o.Email, o.Phone, o.Address, o.City, o.PostalCode,
			o.TotalAmount, o.DeliveryCharges, string(o.Status), o.PaymentMethod, o.PaymentID, o.CreatedAt)
		if err != nil {
			return classifyWrite(err, "order", "id")
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}
		if len(o.Items) == 0 {
			return nil
		}

		// 2. Item snapshots
		rows := make([][]any, len(o.Items))
		for i, item := range o.Items {
			rows[i] = []any{id, item.ProductID, item.Quantity, item.Price, item.Size, item.Color, item.Style}
		}
		query, args := bulkInsert("order_items",
			[]string{"order_id", "product_id", "quantity", "price", "size", "color", "style"}, rows)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return classifyWrite(err, "order item", "id")
		}
		return nil
	})
	return id, err
}

func (s *Store) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	orders, err := s.queryOrders(ctx, orderSelect+" WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, notFound(sql.ErrNoRows, "order")
	}
	return &orders[0], nil
}

func (s *Store) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	query, args := buildOrderQuery(filter)
	return s.queryOrders(ctx, query, args...)
}

func (s *Store) queryOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var (
			o      models.Order
			userID sql.NullInt64
			status string
		)
		err := rows.Scan(&o.ID, &userID, &o.FirstName, &o.LastName, &o.Email, &o.Phone, &o.Address,
			&o.City, &o.PostalCode, &o.TotalAmount, &o.DeliveryCharges, &status,
			&o.PaymentMethod, &o.PaymentID, &o.CreatedAt)
		if err != nil {
			return nil, err
		}
		if userID.Valid {
			o.UserID = &userID.Int64
		}
		o.Status = models.OrderStatus(status)
		o.Items = []models.OrderItem{}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := s.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems loads the items of every order with the current product name.
func (s *Store) attachItems(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	index := make(map[int64]*models.Order, len(orders))
	ids := make([]int64, len(orders))
	for i := range orders {
		index[orders[i].ID] = &orders[i]
		ids[i] = orders[i].ID
	}

	query := `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.price, oi.size, oi.color, oi.style
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id IN (` + placeholders(len(ids)) + `)
		ORDER BY oi.id`
	rows, err := s.DB.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item        models.OrderItem
			productID   sql.NullInt64
			productName sql.NullString
		)
		err := rows.Scan(&item.ID, &item.OrderID, &productID, &productName, &item.Quantity,
			&item.Price, &item.Size, &item.Color, &item.Style)
		if err != nil {
			return err
		}
		if productID.Valid {
			item.ProductID = &productID.Int64
		}
		if productName.Valid {
			item.ProductName = &productName.String
		}
		o := index[item.OrderID]
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

func (s *Store) UpdateOrder(ctx context.Context, o *models.Order) error {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE orders SET
			first_name = ?, last_name = ?, email = ?, phone = ?, address = ?, city = ?, postal_code = ?,
			total_amount = ?, delivery_charges = ?, status = ?, payment_method = ?, payment_id = ?
		WHERE id = ?`,
		o.FirstName, o.LastName, o.Email, o.Phone, o.Address, o.City, o.PostalCode,
		o.TotalAmount, o.DeliveryCharges, string(o.Status), o.PaymentMethod, o.PaymentID, o.ID)
	if err != nil {
		return err
	}
	return expectAffected(res, "order")
}

func (s *Store) SetOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	res, err := s.DB.ExecContext(ctx, "UPDATE orders SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return err
	}
	return expectAffected(res, "order")
}

func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM orders WHERE id = ?", id)
	if err != nil {
		return err
	}
	return expectAffected(res, "order")
}
