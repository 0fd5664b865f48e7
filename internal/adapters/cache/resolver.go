// Package cache implements the address resolution layer: a persistent
// place store fronting the external geocoder.
package cache

import (
	"context"
	"fmt"

	"foodcart-matching-service/internal/domain"
	"foodcart-matching-service/internal/ports"

	"golang.org/x/sync/singleflight"
)

type resolveResult struct {
	coords domain.Coordinates
	ok     bool
}

// Resolver answers "where is this address" from the place store, falling
// back to the external geocoder exactly once per unique address.
//
// Keys are exact address strings; no normalization happens here, so two
// spellings of the same place cost two store rows. A failed external lookup
// leaves the row without coordinates, and every later Resolve for that
// address short-circuits to unresolved without touching the provider again.
// Callers wanting a retry must evict the row out-of-band.
//
// Concurrent resolves for the same address are collapsed into a single
// store-and-provider round trip, so at most one in-flight external lookup
// exists per address.
type Resolver struct {
	store    ports.PlaceStore
	geocoder ports.Geocoder
	group    singleflight.Group
}

func NewResolver(store ports.PlaceStore, geocoder ports.Geocoder) *Resolver {
	return &Resolver{store: store, geocoder: geocoder}
}

// Resolve returns coordinates for the address, or ok=false when geocoding
// failed now or on any previous attempt. err is reserved for store
// failures.
func (r *Resolver) Resolve(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	v, err, _ := r.group.Do(address, func() (any, error) {
		return r.resolve(ctx, address)
	})
	if err != nil {
		return domain.Coordinates{}, false, err
	}

	res := v.(resolveResult)
	return res.coords, res.ok, nil
}

func (r *Resolver) resolve(ctx context.Context, address string) (resolveResult, error) {
	// The row is created before the provider call so the unique address key
	// exists even if the lookup fails or the caller goes away.
	place, created, err := r.store.GetOrCreate(ctx, address)
	if err != nil {
		return resolveResult{}, fmt.Errorf("resolve %q: get or create place: %w", address, err)
	}

	if !created {
		if place.Coords == nil {
			// Tried before and failed; the poisoned row stands.
			return resolveResult{}, nil
		}
		return resolveResult{coords: *place.Coords, ok: true}, nil
	}

	coords, ok := r.geocoder.Lookup(ctx, address)
	if !ok {
		return resolveResult{}, nil
	}

	if err := r.store.SetCoordinates(ctx, address, coords); err != nil {
		return resolveResult{}, fmt.Errorf("resolve %q: store coordinates: %w", address, err)
	}

	return resolveResult{coords: coords, ok: true}, nil
}
