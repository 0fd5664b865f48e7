package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"foodcart-matching-service/internal/domain"
	"foodcart-matching-service/internal/ports"
)

// A candidate restaurant with its distance from the order's delivery
// address. DistanceKnown is false when either side of the pair failed to
// geocode; such entries stay in the list but carry no usable DistanceKm.
type RankedRestaurant struct {
	Restaurant    *domain.Restaurant
	DistanceKm    float64
	DistanceKnown bool
}

// HaversineDistanceKm computes the great-circle distance between two points
// in kilometers, rounded to 2 decimal places.
func HaversineDistanceKm(from, to domain.Coordinates) float64 {
	const earthRadiusKm = 6371

	dLat := (to.Lat - from.Lat) * math.Pi / 180
	dLon := (to.Lon - from.Lon) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(from.Lat*math.Pi/180)*math.Cos(to.Lat*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return math.Round(earthRadiusKm*c*100) / 100
}

// RankByDistance orders candidate restaurants by road-less distance from
// the order's delivery address.
//
// The order address is resolved once; every candidate address is resolved
// independently so results are shared across orders through the place
// store. A failed resolution on either side marks that entry
// distance-unknown instead of dropping it: coverage and proximity are
// independent concerns, and a candidate stays a candidate even when it
// cannot be ranked.
//
// Entries with a known distance come first, ascending; unknown entries
// follow in their original candidate order. The sort is stable so equal
// distances keep the input order too.
func RankByDistance(
	ctx context.Context,
	order *domain.Order,
	candidates []*domain.Restaurant,
	resolver ports.AddressResolver,
) ([]RankedRestaurant, error) {
	if order == nil {
		return nil, fmt.Errorf("rank by distance: order must be non-nil")
	}

	orderCoords, orderOK, err := resolver.Resolve(ctx, order.Address)
	if err != nil {
		return nil, fmt.Errorf("rank by distance: resolve order address %q: %w", order.Address, err)
	}

	ranked := make([]RankedRestaurant, 0, len(candidates))
	for _, r := range candidates {
		entry := RankedRestaurant{Restaurant: r}

		if orderOK {
			coords, ok, err := resolver.Resolve(ctx, r.Address)
			if err != nil {
				return nil, fmt.Errorf("rank by distance: resolve restaurant %d address %q: %w", r.RestaurantID, r.Address, err)
			}
			if ok {
				entry.DistanceKm = HaversineDistanceKm(orderCoords, coords)
				entry.DistanceKnown = true
			}
		} else {
			// A candidate with perfectly valid coordinates is still
			// unrankable when the order side never resolved, but its own
			// address must be resolved anyway so the cache entry exists for
			// other orders.
			if _, _, err := resolver.Resolve(ctx, r.Address); err != nil {
				return nil, fmt.Errorf("rank by distance: resolve restaurant %d address %q: %w", r.RestaurantID, r.Address, err)
			}
		}

		ranked = append(ranked, entry)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].DistanceKnown != ranked[j].DistanceKnown {
			return ranked[i].DistanceKnown
		}
		if !ranked[i].DistanceKnown {
			return false
		}
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	return ranked, nil
}
