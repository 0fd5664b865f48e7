package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodcart-matching-service/internal/domain"
)

// SQLite-backed implementation of the PlaceStore port.
// Address keys are exact strings; the primary key on address enforces one
// row per spelling.
type SqlitePlaceStore struct{ DB *sql.DB }

func NewSqlitePlaceStore(db *sql.DB) *SqlitePlaceStore {
	return &SqlitePlaceStore{DB: db}
}

// Fetch the place for an address, or nil if none was recorded.
func (s *SqlitePlaceStore) Get(ctx context.Context, address string) (*domain.Place, error) {
	if s.DB == nil {
		return nil, errors.New("place store: DB is nil")
	}

	query := `
	SELECT
		address,
		lon,
		lat,
		registered_at
	FROM places
	WHERE address = ?;
	`
	place, err := scanPlace(s.DB.QueryRowContext(ctx, query, address))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get place %q: %w", address, err)
	}

	return place, nil
}

// Insert an empty row for the address unless one exists.
func (s *SqlitePlaceStore) GetOrCreate(ctx context.Context, address string) (*domain.Place, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("place store: DB is nil")
	}
	if strings.TrimSpace(address) == "" {
		return nil, false, errors.New("place store: empty address key")
	}

	insert := `
	INSERT OR IGNORE INTO places (
		address,
		registered_at
	)
	VALUES (?, ?);
	`
	res, err := s.DB.ExecContext(ctx, insert, address, time.Now().UTC().Format(timeLayout))
	if err != nil {
		return nil, false, fmt.Errorf("get or create place %q: insert: %w", address, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("get or create place %q: rows affected: %w", address, err)
	}

	place, err := s.Get(ctx, address)
	if err != nil {
		return nil, false, err
	}
	if place == nil {
		return nil, false, fmt.Errorf("get or create place %q: row missing after insert", address)
	}

	return place, affected > 0, nil
}

// Record resolved coordinates on the row.
func (s *SqlitePlaceStore) SetCoordinates(ctx context.Context, address string, coords domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("place store: DB is nil")
	}

	update := `
	UPDATE places
	SET lon = ?,
		lat = ?
	WHERE address = ?;
	`
	if _, err := s.DB.ExecContext(ctx, update, coords.Lon, coords.Lat, address); err != nil {
		return fmt.Errorf("set place coordinates %q: %w", address, err)
	}

	return nil
}

func scanPlace(row rowScanner) (*domain.Place, error) {
	var (
		place        domain.Place
		lon, lat     sql.NullFloat64
		registeredAt string
	)

	if err := row.Scan(&place.Address, &lon, &lat, &registeredAt); err != nil {
		return nil, err
	}

	if lon.Valid && lat.Valid {
		place.Coords = &domain.Coordinates{Lon: lon.Float64, Lat: lat.Float64}
	}

	t, err := time.Parse(timeLayout, registeredAt)
	if err != nil {
		return nil, fmt.Errorf("parse registered_at %q: %w", registeredAt, err)
	}
	place.RegisteredAt = t

	return &place, nil
}
