package main

import (
	"database/sql"
	"fmt"
	"foodcart-matching-service/internal/platform/db"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// dbtool manages the shared Postgres geocode cache: schema creation and
// out-of-band eviction of poisoned (unresolved) place rows.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	if len(os.Args) < 2 {
		usage()
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	switch os.Args[1] {
	case "init":
		if err := initSchema(pg); err != nil {
			log.Fatal(err)
		}
		log.Println("places schema ready")
	case "evict":
		if len(os.Args) < 3 {
			usage()
		}
		n, err := evict(pg, os.Args[2])
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("evicted %d place row(s)", n)
	case "evict-unresolved":
		n, err := evictUnresolved(pg)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("evicted %d unresolved place row(s)", n)
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: dbtool <init | evict <address> | evict-unresolved>")
	os.Exit(2)
}

func initSchema(pg *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS places (
		address TEXT PRIMARY KEY,
		lon DOUBLE PRECISION,
		lat DOUBLE PRECISION,
		registered_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	if _, err := pg.Exec(query); err != nil {
		return fmt.Errorf("init schema: create places table: %w", err)
	}
	return nil
}

func evict(pg *sql.DB, address string) (int64, error) {
	res, err := pg.Exec(`DELETE FROM places WHERE address = $1;`, address)
	if err != nil {
		return 0, fmt.Errorf("evict %q: %w", address, err)
	}
	return res.RowsAffected()
}

// evictUnresolved drops every poisoned row so failed addresses get one more
// chance at the external provider.
func evictUnresolved(pg *sql.DB) (int64, error) {
	res, err := pg.Exec(`DELETE FROM places WHERE lon IS NULL OR lat IS NULL;`)
	if err != nil {
		return 0, fmt.Errorf("evict unresolved: %w", err)
	}
	return res.RowsAffected()
}
