package ports

import (
	"context"

	"foodcart-matching-service/internal/domain"
)

// Contract for resolving a free-text address into coordinates.
type Geocoder interface {
	// Lookup resolves an address through an external provider. ok is false
	// when the provider failed, timed out, or returned no usable result;
	// such failures are not errors and carry no further detail.
	Lookup(ctx context.Context, address string) (coords domain.Coordinates, ok bool)
}
