package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"foodcart-matching-service/internal/domain"

	"github.com/shopspring/decimal"
)

// Timestamps are stored as RFC 3339 text so rows stay readable and portable
// across drivers.
const timeLayout = time.RFC3339Nano

// SQLite-backed implementation of the OrderRepository port.
type SqliteOrderRepository struct{ DB *sql.DB }

func NewSqliteOrderRepository(db *sql.DB) *SqliteOrderRepository {
	return &SqliteOrderRepository{DB: db}
}

// Return an order with its line items.
func (s *SqliteOrderRepository) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite order repository: DB is nil")
	}

	query := `
	SELECT
		order_id,
		status,
		payment_method,
		first_name,
		last_name,
		phone_number,
		address,
		comment,
		restaurant_id,
		registered_at,
		called_at,
		delivered_at
	FROM orders
	WHERE order_id = ?;
	`
	order, err := scanOrder(s.DB.QueryRowContext(ctx, query, orderID))
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", orderID, err)
	}

	if err := s.loadItems(ctx, order); err != nil {
		return nil, fmt.Errorf("get order %d: %w", orderID, err)
	}

	return order, nil
}

// Return all orders not yet completed, newest first, with line items.
func (s *SqliteOrderRepository) ListOpenOrders(ctx context.Context) ([]*domain.Order, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite order repository: DB is nil")
	}

	query := `
	SELECT
		order_id,
		status,
		payment_method,
		first_name,
		last_name,
		phone_number,
		address,
		comment,
		restaurant_id,
		registered_at,
		called_at,
		delivered_at
	FROM orders
	WHERE status != ?
	ORDER BY order_id DESC;
	`
	rows, err := s.DB.QueryContext(ctx, query, domain.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("list open orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, 16)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("list open orders: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list open orders: row iteration: %w", err)
	}

	for _, order := range orders {
		if err := s.loadItems(ctx, order); err != nil {
			return nil, fmt.Errorf("list open orders: order %d: %w", order.OrderID, err)
		}
	}

	return orders, nil
}

// Persist an order with its line items in one transaction.
func (s *SqliteOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) (int, error) {
	if s.DB == nil {
		return 0, errors.New("sqlite order repository: DB is nil")
	}
	if order == nil || len(order.Items) == 0 {
		return 0, fmt.Errorf("create order: %w", domain.ErrInvalidOrder)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("create order: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	registeredAt := order.RegisteredAt
	if registeredAt.IsZero() {
		registeredAt = time.Now().UTC()
	}

	insertOrder := `
	INSERT INTO orders (
		status,
		payment_method,
		first_name,
		last_name,
		phone_number,
		address,
		comment,
		restaurant_id,
		registered_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	res, err := tx.ExecContext(ctx, insertOrder,
		order.Status,
		order.PaymentMethod,
		order.FirstName,
		order.LastName,
		order.PhoneNumber,
		order.Address,
		order.Comment,
		order.RestaurantID,
		registeredAt.Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("create order: insert order: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create order: last insert id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO order_items (
		order_id,
		product_id,
		quantity,
		price
	)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return 0, fmt.Errorf("create order: prepare item insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range order.Items {
		if _, err := stmt.ExecContext(ctx, id, item.ProductID, item.Quantity, item.Price.String()); err != nil {
			return 0, fmt.Errorf("create order: insert item product_id=%d: %w", item.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("create order: commit tx: %w", err)
	}

	return int(id), nil
}

func (s *SqliteOrderRepository) loadItems(ctx context.Context, order *domain.Order) error {
	query := `
	SELECT
		product_id,
		quantity,
		price
	FROM order_items
	WHERE order_id = ?
	ORDER BY rowid;
	`
	rows, err := s.DB.QueryContext(ctx, query, order.OrderID)
	if err != nil {
		return fmt.Errorf("load items: query order_items table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderLineItem
		var price string
		if err := rows.Scan(&item.ProductID, &item.Quantity, &price); err != nil {
			return fmt.Errorf("load items: scan row: %w", err)
		}

		item.Price, err = decimal.NewFromString(price)
		if err != nil {
			return fmt.Errorf("load items: parse price %q: %w", price, err)
		}

		order.Items = append(order.Items, item)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("load items: row iteration: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		order        domain.Order
		restaurantID sql.NullInt64
		registeredAt string
		calledAt     sql.NullString
		deliveredAt  sql.NullString
	)

	err := row.Scan(
		&order.OrderID,
		&order.Status,
		&order.PaymentMethod,
		&order.FirstName,
		&order.LastName,
		&order.PhoneNumber,
		&order.Address,
		&order.Comment,
		&restaurantID,
		&registeredAt,
		&calledAt,
		&deliveredAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan order row: %w", err)
	}

	if restaurantID.Valid {
		id := int(restaurantID.Int64)
		order.RestaurantID = &id
	}

	order.RegisteredAt, err = time.Parse(timeLayout, registeredAt)
	if err != nil {
		return nil, fmt.Errorf("parse registered_at %q: %w", registeredAt, err)
	}

	if calledAt.Valid {
		t, err := time.Parse(timeLayout, calledAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse called_at %q: %w", calledAt.String, err)
		}
		order.CalledAt = &t
	}

	if deliveredAt.Valid {
		t, err := time.Parse(timeLayout, deliveredAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse delivered_at %q: %w", deliveredAt.String, err)
		}
		order.DeliveredAt = &t
	}

	return &order, nil
}
