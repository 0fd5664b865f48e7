package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"foodcart-matching-service/internal/domain"
)

// fakeCatalog implements ports.CatalogRepository over in-memory data.
type fakeCatalog struct {
	restaurants []*domain.Restaurant
	products    map[int]*domain.Product
	menu        []*domain.MenuEntry
}

func (f *fakeCatalog) ListRestaurants(ctx context.Context) ([]*domain.Restaurant, error) {
	return f.restaurants, nil
}

func (f *fakeCatalog) GetRestaurant(ctx context.Context, restaurantID int) (*domain.Restaurant, error) {
	for _, r := range f.restaurants {
		if r.RestaurantID == restaurantID {
			return r, nil
		}
	}
	return nil, fmt.Errorf("restaurant %d not found", restaurantID)
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalog) GetProduct(ctx context.Context, productID int) (*domain.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, fmt.Errorf("product %d not found", productID)
	}
	return p, nil
}

func (f *fakeCatalog) RestaurantsByProduct(ctx context.Context, productIDs []int) (map[int][]int, error) {
	out := make(map[int][]int, len(productIDs))
	for _, pid := range productIDs {
		out[pid] = []int{}
		for _, e := range f.menu {
			if e.ProductID == pid {
				out[pid] = append(out[pid], e.RestaurantID)
			}
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListMenuEntries(ctx context.Context) ([]*domain.MenuEntry, error) {
	return f.menu, nil
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		restaurants: []*domain.Restaurant{
			{RestaurantID: 1, Name: "Restaurant X", Address: "X street 1"},
			{RestaurantID: 2, Name: "Restaurant Y", Address: "Y street 2"},
			{RestaurantID: 3, Name: "Restaurant Z", Address: "Z street 3"},
		},
		products: map[int]*domain.Product{
			10: {ProductID: 10, Name: "Product A"},
			20: {ProductID: 20, Name: "Product B"},
			30: {ProductID: 30, Name: "Product C"},
		},
		menu: []*domain.MenuEntry{
			{RestaurantID: 1, ProductID: 10, Availability: true},
			{RestaurantID: 1, ProductID: 20, Availability: true},
			{RestaurantID: 2, ProductID: 10, Availability: true},
			{RestaurantID: 3, ProductID: 30, Availability: false},
		},
	}
}

func TestFindCandidatesCoversAllProducts(t *testing.T) {
	// X carries both products, Y carries only A.
	order := &domain.Order{
		OrderID: 1,
		Items: []domain.OrderLineItem{
			{ProductID: 10, Quantity: 1},
			{ProductID: 20, Quantity: 2},
		},
	}

	got, err := FindCandidateRestaurants(context.Background(), order, testCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].RestaurantID != 1 {
		t.Fatalf("expected Restaurant X (id=1), got id=%d", got[0].RestaurantID)
	}
}

func TestFindCandidatesSingleProduct(t *testing.T) {
	order := &domain.Order{
		OrderID: 2,
		Items:   []domain.OrderLineItem{{ProductID: 10, Quantity: 1}},
	}

	got, err := FindCandidateRestaurants(context.Background(), order, testCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	// Repository name order is preserved.
	if got[0].RestaurantID != 1 || got[1].RestaurantID != 2 {
		t.Fatalf("candidates = [%d %d], want [1 2]", got[0].RestaurantID, got[1].RestaurantID)
	}
}

func TestFindCandidatesCoverageIgnoresAvailability(t *testing.T) {
	// Z lists product C with availability off; existence still counts as
	// coverage because the order already references the product.
	order := &domain.Order{
		OrderID: 3,
		Items:   []domain.OrderLineItem{{ProductID: 30, Quantity: 1}},
	}

	got, err := FindCandidateRestaurants(context.Background(), order, testCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 1 || got[0].RestaurantID != 3 {
		t.Fatalf("expected Restaurant Z, got %v", got)
	}
}

func TestFindCandidatesAssignedRestaurantWins(t *testing.T) {
	assigned := 2
	order := &domain.Order{
		OrderID:      4,
		RestaurantID: &assigned,
		// Items that Y cannot cover; assignment is authoritative anyway.
		Items: []domain.OrderLineItem{
			{ProductID: 10, Quantity: 1},
			{ProductID: 20, Quantity: 1},
		},
	}

	got, err := FindCandidateRestaurants(context.Background(), order, testCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 1 || got[0].RestaurantID != 2 {
		t.Fatalf("expected exactly the assigned restaurant, got %v", got)
	}
}

func TestFindCandidatesEmptyOrderIsInvalid(t *testing.T) {
	order := &domain.Order{OrderID: 5}

	_, err := FindCandidateRestaurants(context.Background(), order, testCatalog())
	if !errors.Is(err, domain.ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}
}

func TestFindCandidatesNoCoverage(t *testing.T) {
	// Nobody carries products A and C together.
	order := &domain.Order{
		OrderID: 6,
		Items: []domain.OrderLineItem{
			{ProductID: 10, Quantity: 1},
			{ProductID: 30, Quantity: 1},
		},
	}

	got, err := FindCandidateRestaurants(context.Background(), order, testCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no candidates, got %v", got)
	}
}
