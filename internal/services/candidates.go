package services

import (
	"context"
	"fmt"

	"foodcart-matching-service/internal/domain"
	"foodcart-matching-service/internal/ports"
)

// FindCandidateRestaurants returns the restaurants able to fulfil the order.
//
// An order already pinned to a restaurant yields exactly that restaurant;
// the assignment is authoritative and no menu search happens. Otherwise a
// restaurant qualifies iff its menu lists every distinct product the order
// references. Menu entry existence counts as coverage regardless of the
// availability flag: the order already references concrete products, and
// availability filtering belongs to the catalog listing.
func FindCandidateRestaurants(
	ctx context.Context,
	order *domain.Order,
	catalog ports.CatalogRepository,
) ([]*domain.Restaurant, error) {
	if order == nil {
		return nil, fmt.Errorf("find candidates: order must be non-nil")
	}

	if order.RestaurantID != nil {
		assigned, err := catalog.GetRestaurant(ctx, *order.RestaurantID)
		if err != nil {
			return nil, fmt.Errorf("find candidates: get assigned restaurant %d: %w", *order.RestaurantID, err)
		}
		return []*domain.Restaurant{assigned}, nil
	}

	productIDs := order.ProductIDs()
	if len(productIDs) == 0 {
		return nil, fmt.Errorf("find candidates: order %d: %w", order.OrderID, domain.ErrInvalidOrder)
	}

	carriers, err := catalog.RestaurantsByProduct(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("find candidates: restaurants by product: %w", err)
	}

	// Intersect carrier sets across all ordered products, seeding from the
	// first product's carriers.
	counts := make(map[int]int)
	for _, id := range carriers[productIDs[0]] {
		counts[id] = 1
	}
	for _, pid := range productIDs[1:] {
		for _, id := range carriers[pid] {
			if counts[id] == 0 {
				continue
			}
			counts[id]++
		}
		for id, n := range counts {
			if n == 1 {
				delete(counts, id)
			} else {
				counts[id] = 1
			}
		}
	}

	if len(counts) == 0 {
		return []*domain.Restaurant{}, nil
	}

	restaurants, err := catalog.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("find candidates: list restaurants: %w", err)
	}

	// Preserve the repository's stable name ordering in the result.
	out := make([]*domain.Restaurant, 0, len(counts))
	for _, r := range restaurants {
		if _, ok := counts[r.RestaurantID]; ok {
			out = append(out, r)
		}
	}

	return out, nil
}
