package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"foodcart-matching-service/internal/domain"

	"github.com/shopspring/decimal"
)

// fakeOrders implements ports.OrderRepository over in-memory data.
type fakeOrders struct {
	orders []*domain.Order
	nextID int
}

func (f *fakeOrders) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	for _, o := range f.orders {
		if o.OrderID == orderID {
			return o, nil
		}
	}
	return nil, fmt.Errorf("order %d not found", orderID)
}

func (f *fakeOrders) ListOpenOrders(ctx context.Context) ([]*domain.Order, error) {
	open := make([]*domain.Order, 0, len(f.orders))
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].Status != domain.StatusCompleted {
			open = append(open, f.orders[i])
		}
	}
	return open, nil
}

func (f *fakeOrders) CreateOrder(ctx context.Context, order *domain.Order) (int, error) {
	f.nextID++
	order.OrderID = f.nextID
	f.orders = append(f.orders, order)
	return f.nextID, nil
}

func priceCatalog() *fakeCatalog {
	c := testCatalog()
	c.products[10].Price = decimal.RequireFromString("250.00")
	c.products[20].Price = decimal.RequireFromString("99.50")
	c.products[30].Price = decimal.RequireFromString("75.00")
	return c
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	catalog := priceCatalog()
	orders := &fakeOrders{}

	id, err := CreateOrder(context.Background(), CreateOrderRequest{
		FirstName:   "Ivan",
		LastName:    "Petrov",
		PhoneNumber: "+79991234567",
		Address:     "Somewhere 5",
		Items: []CreateOrderItem{
			{ProductID: 10, Quantity: 1},
			{ProductID: 20, Quantity: 2},
		},
	}, orders, catalog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 1 {
		t.Fatalf("id = %d, want 1", id)
	}

	created := orders.orders[0]
	if created.Status != domain.StatusUnprocessed {
		t.Fatalf("status = %q, want unprocessed", created.Status)
	}
	if created.PaymentMethod != domain.PaymentUnspecified {
		t.Fatalf("payment = %q, want unspecified default", created.PaymentMethod)
	}
	if len(created.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(created.Items))
	}
	if !created.Items[0].Price.Equal(decimal.RequireFromString("250.00")) {
		t.Fatalf("item 0 price = %s, want 250.00", created.Items[0].Price)
	}

	// A later catalog price change must not touch the stored line item.
	catalog.products[10].Price = decimal.RequireFromString("999.00")
	if !created.Items[0].Price.Equal(decimal.RequireFromString("250.00")) {
		t.Fatalf("snapshotted price changed to %s", created.Items[0].Price)
	}
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	_, err := CreateOrder(context.Background(), CreateOrderRequest{
		Address: "Somewhere 5",
	}, &fakeOrders{}, priceCatalog())
	if !errors.Is(err, domain.ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		req  CreateOrderRequest
	}{
		{
			name: "zero quantity",
			req: CreateOrderRequest{
				Address: "Somewhere 5",
				Items:   []CreateOrderItem{{ProductID: 10, Quantity: 0}},
			},
		},
		{
			name: "unknown product",
			req: CreateOrderRequest{
				Address: "Somewhere 5",
				Items:   []CreateOrderItem{{ProductID: 404, Quantity: 1}},
			},
		},
		{
			name: "empty address",
			req: CreateOrderRequest{
				Items: []CreateOrderItem{{ProductID: 10, Quantity: 1}},
			},
		},
		{
			name: "unknown payment method",
			req: CreateOrderRequest{
				Address:       "Somewhere 5",
				PaymentMethod: "gold",
				Items:         []CreateOrderItem{{ProductID: 10, Quantity: 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CreateOrder(context.Background(), tt.req, &fakeOrders{}, priceCatalog()); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestMatchOpenOrders(t *testing.T) {
	catalog := priceCatalog()
	orders := &fakeOrders{orders: []*domain.Order{
		{
			OrderID: 1,
			Status:  domain.StatusUnprocessed,
			Address: "order addr",
			Items: []domain.OrderLineItem{
				{ProductID: 10, Quantity: 2, Price: decimal.RequireFromString("250.00")},
			},
		},
		{
			OrderID: 2,
			Status:  domain.StatusCompleted,
			Address: "done addr",
			Items: []domain.OrderLineItem{
				{ProductID: 20, Quantity: 1, Price: decimal.RequireFromString("99.50")},
			},
		},
	}, nextID: 2}

	resolver := newFakeResolver(map[string]domain.Coordinates{
		"order addr": {Lat: 55.75, Lon: 37.61},
		"X street 1": {Lat: 55.76, Lon: 37.62},
		"Y street 2": {Lat: 55.80, Lon: 37.70},
	})

	matches, err := MatchOpenOrders(context.Background(), orders, catalog, resolver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The completed order is excluded.
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}

	m := matches[0]
	if m.Order.OrderID != 1 {
		t.Fatalf("matched order = %d, want 1", m.Order.OrderID)
	}
	if !m.TotalPrice.Equal(decimal.RequireFromString("500.00")) {
		t.Fatalf("total = %s, want 500.00", m.TotalPrice)
	}

	// Product A is carried by X and Y; X is closer.
	if len(m.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(m.Candidates))
	}
	if m.Candidates[0].Restaurant.RestaurantID != 1 || m.Candidates[0].DistanceKm != 1.28 {
		t.Fatalf("first candidate = %+v, want X at 1.28 km", m.Candidates[0])
	}
	if m.Candidates[1].Restaurant.RestaurantID != 2 {
		t.Fatalf("second candidate = %+v, want Y", m.Candidates[1])
	}
}
