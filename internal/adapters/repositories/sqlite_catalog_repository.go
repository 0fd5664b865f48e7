package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"foodcart-matching-service/internal/domain"

	"github.com/shopspring/decimal"
)

// SQLite-backed implementation of the CatalogRepository port.
type SqliteCatalogRepository struct{ DB *sql.DB }

func NewSqliteCatalogRepository(db *sql.DB) *SqliteCatalogRepository {
	return &SqliteCatalogRepository{DB: db}
}

// Return all restaurants ordered by name.
func (s *SqliteCatalogRepository) ListRestaurants(ctx context.Context) ([]*domain.Restaurant, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite catalog repository: DB is nil")
	}

	query := `
	SELECT
		restaurant_id,
		name,
		address,
		contact_phone
	FROM restaurants
	ORDER BY name, restaurant_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: query restaurants table: %w", err)
	}
	defer rows.Close()

	restaurants := make([]*domain.Restaurant, 0, 16)
	for rows.Next() {
		var r domain.Restaurant
		if err := rows.Scan(&r.RestaurantID, &r.Name, &r.Address, &r.ContactPhone); err != nil {
			return nil, fmt.Errorf("list restaurants: scan row: %w", err)
		}
		restaurants = append(restaurants, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list restaurants: row iteration: %w", err)
	}

	return restaurants, nil
}

// Return a single restaurant by id.
func (s *SqliteCatalogRepository) GetRestaurant(ctx context.Context, restaurantID int) (*domain.Restaurant, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite catalog repository: DB is nil")
	}

	query := `
	SELECT
		restaurant_id,
		name,
		address,
		contact_phone
	FROM restaurants
	WHERE restaurant_id = ?;
	`
	var r domain.Restaurant
	err := s.DB.QueryRowContext(ctx, query, restaurantID).
		Scan(&r.RestaurantID, &r.Name, &r.Address, &r.ContactPhone)
	if err != nil {
		return nil, fmt.Errorf("get restaurant %d: %w", restaurantID, err)
	}

	return &r, nil
}

// Return all products ordered by id.
func (s *SqliteCatalogRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite catalog repository: DB is nil")
	}

	query := `
	SELECT
		product_id,
		name,
		price,
		description
	FROM products
	ORDER BY product_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: query products table: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0, 32)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: row iteration: %w", err)
	}

	return products, nil
}

// Return a single product by id.
func (s *SqliteCatalogRepository) GetProduct(ctx context.Context, productID int) (*domain.Product, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite catalog repository: DB is nil")
	}

	query := `
	SELECT
		product_id,
		name,
		price,
		description
	FROM products
	WHERE product_id = ?;
	`
	var p domain.Product
	var price string
	err := s.DB.QueryRowContext(ctx, query, productID).
		Scan(&p.ProductID, &p.Name, &price, &p.Description)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", productID, err)
	}

	p.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("get product %d: parse price %q: %w", productID, price, err)
	}

	return &p, nil
}

// Return restaurant ids carrying each of the given products.
func (s *SqliteCatalogRepository) RestaurantsByProduct(ctx context.Context, productIDs []int) (map[int][]int, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite catalog repository: DB is nil")
	}

	out := make(map[int][]int, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}

	ph := make([]string, 0, len(productIDs))
	args := make([]any, 0, len(productIDs))
	for _, id := range productIDs {
		out[id] = []int{}
		ph = append(ph, "?")
		args = append(args, id)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	query := fmt.Sprintf(`
	SELECT
		product_id,
		restaurant_id
	FROM menu_entries
	WHERE product_id IN (%s)
	ORDER BY product_id, restaurant_id;
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("restaurants by product: query menu_entries table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID, restaurantID int
		if err := rows.Scan(&productID, &restaurantID); err != nil {
			return nil, fmt.Errorf("restaurants by product: scan row: %w", err)
		}
		out[productID] = append(out[productID], restaurantID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("restaurants by product: row iteration: %w", err)
	}

	return out, nil
}

// Return all menu entries.
func (s *SqliteCatalogRepository) ListMenuEntries(ctx context.Context) ([]*domain.MenuEntry, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite catalog repository: DB is nil")
	}

	query := `
	SELECT
		restaurant_id,
		product_id,
		availability
	FROM menu_entries
	ORDER BY restaurant_id, product_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list menu entries: query menu_entries table: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.MenuEntry, 0, 64)
	for rows.Next() {
		var e domain.MenuEntry
		if err := rows.Scan(&e.RestaurantID, &e.ProductID, &e.Availability); err != nil {
			return nil, fmt.Errorf("list menu entries: scan row: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list menu entries: row iteration: %w", err)
	}

	return entries, nil
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var price string
	if err := row.Scan(&p.ProductID, &p.Name, &price, &p.Description); err != nil {
		return nil, fmt.Errorf("scan product row: %w", err)
	}

	var err error
	p.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", price, err)
	}

	return &p, nil
}
