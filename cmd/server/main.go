package main

import (
	"database/sql"
	"fmt"
	"foodcart-matching-service/internal/adapters/cache"
	"foodcart-matching-service/internal/adapters/repositories"
	"foodcart-matching-service/internal/api"
	"foodcart-matching-service/internal/geocode"
	"foodcart-matching-service/internal/platform/db"
	"foodcart-matching-service/internal/ports"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Postgres, Redis, the geocoding
// provider) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := getEnv("DB_PATH", "data/app.db")
	seedPath := getEnv("SEED_PATH", "data/seeds/catalog.json")
	port := getEnv("PORT", "8080")

	apiKey := os.Getenv("GEOCODER_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		log.Fatal("GEOCODER_API_KEY is required")
	}

	sqliteDB, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	// Initialize schema and seed demo catalog on startup for local runs.
	if err := initAndSeed(sqliteDB, seedPath); err != nil {
		log.Fatal(err)
	}

	// The place store defaults to the embedded SQLite file; DATABASE_URL
	// switches it to Postgres so several instances share one geocode cache.
	var placeStore ports.PlaceStore = repositories.NewSqlitePlaceStore(sqliteDB)
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		placeStore = repositories.NewSQLPlaceStore(pg)
	}

	// Optional Redis read-through layer in front of the place store.
	if redisAddr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(redisAddr) != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		defer client.Close()
		placeStore = cache.NewRedisPlaceStore(client, placeStore, 24*time.Hour)
	}

	geocoder, err := geocode.NewYandexClient(apiKey)
	if err != nil {
		log.Fatal(err)
	}

	resolver := cache.NewResolver(placeStore, geocoder)
	catalog := repositories.NewSqliteCatalogRepository(sqliteDB)
	orders := repositories.NewSqliteOrderRepository(sqliteDB)
	router := api.NewRouter(orders, catalog, resolver)

	// Timeouts are tuned for cold-cache order matching (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
