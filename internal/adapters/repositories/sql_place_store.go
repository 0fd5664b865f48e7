package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"foodcart-matching-service/internal/domain"
	"foodcart-matching-service/internal/platform/obs"
)

// SQLPlaceStore is a Postgres-backed implementation of the PlaceStore port.
type SQLPlaceStore struct{ DB *sql.DB }

func NewSQLPlaceStore(db *sql.DB) *SQLPlaceStore {
	return &SQLPlaceStore{DB: db}
}

// Fetch the place for an address, or nil if none was recorded.
func (s *SQLPlaceStore) Get(ctx context.Context, address string) (_ *domain.Place, err error) {
	defer obs.Time(ctx, "places.store.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("place store: db is nil")
	}

	query := `
	SELECT address, lon, lat, registered_at
	FROM places
	WHERE address = $1;
	`

	var (
		place    domain.Place
		lon, lat sql.NullFloat64
	)
	err = s.DB.QueryRowContext(ctx, query, address).
		Scan(&place.Address, &lon, &lat, &place.RegisteredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get place: query places table: %w", err)
	}

	if lon.Valid && lat.Valid {
		place.Coords = &domain.Coordinates{Lon: lon.Float64, Lat: lat.Float64}
	}

	return &place, nil
}

// Insert an empty row for the address unless one exists. The unique key on
// address makes concurrent creates race-safe: only one caller observes
// created=true.
func (s *SQLPlaceStore) GetOrCreate(ctx context.Context, address string) (_ *domain.Place, created bool, err error) {
	defer obs.Time(ctx, "places.store.GetOrCreate")(&err)

	if s.DB == nil {
		return nil, false, errors.New("place store: db is nil")
	}
	if strings.TrimSpace(address) == "" {
		return nil, false, errors.New("place store: empty address key")
	}

	insert := `
	INSERT INTO places (address, registered_at)
	VALUES ($1, now())
	ON CONFLICT (address) DO NOTHING;
	`
	res, err := s.DB.ExecContext(ctx, insert, address)
	if err != nil {
		return nil, false, fmt.Errorf("get or create place: insert: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("get or create place: rows affected: %w", err)
	}

	place, err := s.Get(ctx, address)
	if err != nil {
		return nil, false, err
	}
	if place == nil {
		return nil, false, fmt.Errorf("get or create place: row missing after insert for %q", address)
	}

	return place, affected > 0, nil
}

// Record resolved coordinates on the row.
func (s *SQLPlaceStore) SetCoordinates(ctx context.Context, address string, coords domain.Coordinates) (err error) {
	defer obs.Time(ctx, "places.store.SetCoordinates")(&err)

	if s.DB == nil {
		return errors.New("place store: db is nil")
	}

	update := `
	UPDATE places
	SET lon = $1,
		lat = $2
	WHERE address = $3;
	`
	if _, err := s.DB.ExecContext(ctx, update, coords.Lon, coords.Lat, address); err != nil {
		return fmt.Errorf("set place coordinates %q: %w", address, err)
	}

	return nil
}
