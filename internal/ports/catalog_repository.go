package ports

import (
	"context"

	"foodcart-matching-service/internal/domain"
)

// Port: a boundary for reading the restaurant/product catalog.
type CatalogRepository interface {
	// Retrieve all restaurants ordered by name.
	ListRestaurants(ctx context.Context) ([]*domain.Restaurant, error)
	// Retrieve a single restaurant by id.
	GetRestaurant(ctx context.Context, restaurantID int) (*domain.Restaurant, error)
	// Retrieve all products ordered by id.
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	// Retrieve a single product by id.
	GetProduct(ctx context.Context, productID int) (*domain.Product, error)
	// Return, for each of the given product ids, the set of restaurant ids
	// carrying that product on their menu. Products nobody carries map to an
	// empty set.
	RestaurantsByProduct(ctx context.Context, productIDs []int) (map[int][]int, error)
	// Retrieve all menu entries, for availability listings.
	ListMenuEntries(ctx context.Context) ([]*domain.MenuEntry, error)
}
