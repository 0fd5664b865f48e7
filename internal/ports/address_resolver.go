package ports

import (
	"context"

	"foodcart-matching-service/internal/domain"
)

// Contract for cached address resolution.
type AddressResolver interface {
	// Resolve returns coordinates for an address. ok is false when the
	// address could not be geocoded (now or on a previous attempt); err is
	// reserved for storage failures.
	Resolve(ctx context.Context, address string) (coords domain.Coordinates, ok bool, err error)
}
