package handlers

import (
	"log"
	"net/http"

	"foodcart-matching-service/internal/api/dto"
	"foodcart-matching-service/internal/ports"
)

// CatalogHandler exposes read-only restaurant and product listings.
type CatalogHandler struct {
	Catalog ports.CatalogRepository
}

func (h *CatalogHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	restaurants, err := h.Catalog.ListRestaurants(r.Context())
	if err != nil {
		log.Printf("list restaurants failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRestaurantsResponse{
		Restaurants: make([]dto.RestaurantResponse, 0, len(restaurants)),
	}
	for _, rest := range restaurants {
		res.Restaurants = append(res.Restaurants, dto.RestaurantResponse{
			RestaurantID: rest.RestaurantID,
			Name:         rest.Name,
			Address:      rest.Address,
			ContactPhone: rest.ContactPhone,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// ListProducts returns every product with its per-restaurant availability.
// Only availability=true menu entries count as orderable here.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	products, err := h.Catalog.ListProducts(r.Context())
	if err != nil {
		log.Printf("list products failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	restaurants, err := h.Catalog.ListRestaurants(r.Context())
	if err != nil {
		log.Printf("list restaurants failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	entries, err := h.Catalog.ListMenuEntries(r.Context())
	if err != nil {
		log.Printf("list menu entries failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	available := make(map[[2]int]bool, len(entries))
	for _, e := range entries {
		available[[2]int{e.RestaurantID, e.ProductID}] = e.Availability
	}

	res := dto.ListProductsResponse{
		Products: make([]dto.ProductResponse, 0, len(products)),
	}
	for _, p := range products {
		availability := make([]dto.ProductAvailabilityResponse, 0, len(restaurants))
		for _, rest := range restaurants {
			availability = append(availability, dto.ProductAvailabilityResponse{
				RestaurantID: rest.RestaurantID,
				Available:    available[[2]int{rest.RestaurantID, p.ProductID}],
			})
		}

		res.Products = append(res.Products, dto.ProductResponse{
			ProductID:    p.ProductID,
			Name:         p.Name,
			Price:        p.Price.StringFixed(2),
			Description:  p.Description,
			Availability: availability,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
