package ports

import (
	"context"

	"foodcart-matching-service/internal/domain"
)

// Port: a boundary for reading and creating orders.
type OrderRepository interface {
	// Retrieve an order with its line items.
	GetOrder(ctx context.Context, orderID int) (*domain.Order, error)
	// Retrieve orders not yet completed, newest first, with line items.
	ListOpenOrders(ctx context.Context) ([]*domain.Order, error)
	// Persist an order and its line items atomically, returning the new id.
	CreateOrder(ctx context.Context, order *domain.Order) (int, error)
}
