package ports

import (
	"context"

	"foodcart-matching-service/internal/domain"
)

// Port: persistent storage for geocoding results keyed by exact address.
//
// A stored place with nil coordinates means a lookup was attempted and
// failed; callers must not retry through the store.
type PlaceStore interface {
	// Fetch the place for an address, or nil if none was recorded yet.
	Get(ctx context.Context, address string) (*domain.Place, error)
	// Insert an empty place row for the address if none exists, and report
	// whether this call created it. The store enforces address uniqueness.
	GetOrCreate(ctx context.Context, address string) (place *domain.Place, created bool, err error)
	// Record resolved coordinates on an existing place row.
	SetCoordinates(ctx context.Context, address string, coords domain.Coordinates) error
}
