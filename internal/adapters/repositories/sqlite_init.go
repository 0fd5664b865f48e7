package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRestaurantsQuery := `
	CREATE TABLE IF NOT EXISTS restaurants (
		restaurant_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		contact_phone TEXT NOT NULL DEFAULT ''
	);
	`

	createProductsQuery := `
	CREATE TABLE IF NOT EXISTS products (
		product_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		price TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	);
	`

	createMenuEntriesQuery := `
	CREATE TABLE IF NOT EXISTS menu_entries (
		restaurant_id INTEGER NOT NULL REFERENCES restaurants(restaurant_id),
		product_id INTEGER NOT NULL REFERENCES products(product_id),
		availability INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (restaurant_id, product_id)
	);
	`

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id INTEGER PRIMARY KEY AUTOINCREMENT,
		status TEXT NOT NULL DEFAULT 'unprocessed',
		payment_method TEXT NOT NULL DEFAULT 'unspecified',
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		address TEXT NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		restaurant_id INTEGER REFERENCES restaurants(restaurant_id),
		registered_at TEXT NOT NULL,
		called_at TEXT,
		delivered_at TEXT
	);
	`

	createOrderItemsQuery := `
	CREATE TABLE IF NOT EXISTS order_items (
		order_id INTEGER NOT NULL REFERENCES orders(order_id),
		product_id INTEGER NOT NULL REFERENCES products(product_id),
		quantity INTEGER NOT NULL,
		price TEXT NOT NULL
	);
	`

	createPlacesQuery := `
	CREATE TABLE IF NOT EXISTS places (
		address TEXT PRIMARY KEY,
		lon REAL,
		lat REAL,
		registered_at TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_menu_entries_product
	ON menu_entries(product_id, restaurant_id);
	`

	statements := []string{
		createRestaurantsQuery,
		createProductsQuery,
		createMenuEntriesQuery,
		createOrdersQuery,
		createOrderItemsQuery,
		createPlacesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type RestaurantSeed struct {
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactPhone string `json:"contact_phone"`
}

type ProductSeed struct {
	ProductID   int    `json:"product_id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

type MenuEntrySeed struct {
	RestaurantID int  `json:"restaurant_id"`
	ProductID    int  `json:"product_id"`
	Availability bool `json:"availability"`
}

type CatalogSeed struct {
	Restaurants []RestaurantSeed `json:"restaurants"`
	Products    []ProductSeed    `json:"products"`
	MenuEntries []MenuEntrySeed  `json:"menu_entries"`
}

// Populate the database with catalog data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed catalog: read %q: %w", jsonPath, err)
	}

	var data CatalogSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed catalog: parse json: %w", err)
	}

	for i, r := range data.Restaurants {
		if r.RestaurantID <= 0 {
			return fmt.Errorf("seed catalog: invalid restaurant_id at index %d: %d", i+1, r.RestaurantID)
		}
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("seed catalog: restaurant at index %d: name cannot be empty", i+1)
		}
	}
	for i, p := range data.Products {
		if p.ProductID <= 0 {
			return fmt.Errorf("seed catalog: invalid product_id at index %d: %d", i+1, p.ProductID)
		}
		if strings.TrimSpace(p.Price) == "" {
			return fmt.Errorf("seed catalog: product at index %d: price cannot be empty", i+1)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	restaurantStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO restaurants (
		restaurant_id,
		name,
		address,
		contact_phone
	)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare restaurant insert: %w", err)
	}
	defer restaurantStmt.Close()

	for _, r := range data.Restaurants {
		if _, err := restaurantStmt.Exec(r.RestaurantID, r.Name, r.Address, r.ContactPhone); err != nil {
			return fmt.Errorf("seed catalog: insert restaurant_id=%d: %w", r.RestaurantID, err)
		}
	}

	productStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO products (
		product_id,
		name,
		price,
		description
	)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare product insert: %w", err)
	}
	defer productStmt.Close()

	for _, p := range data.Products {
		if _, err := productStmt.Exec(p.ProductID, p.Name, p.Price, p.Description); err != nil {
			return fmt.Errorf("seed catalog: insert product_id=%d: %w", p.ProductID, err)
		}
	}

	menuStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO menu_entries (
		restaurant_id,
		product_id,
		availability
	)
	VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare menu insert: %w", err)
	}
	defer menuStmt.Close()

	for _, m := range data.MenuEntries {
		if _, err := menuStmt.Exec(m.RestaurantID, m.ProductID, m.Availability); err != nil {
			return fmt.Errorf("seed catalog: insert menu entry %d/%d: %w", m.RestaurantID, m.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}
