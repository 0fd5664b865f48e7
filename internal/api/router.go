package api

import (
	"net/http"

	"foodcart-matching-service/internal/api/handlers"
	"foodcart-matching-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	orders ports.OrderRepository,
	catalog ports.CatalogRepository,
	resolver ports.AddressResolver,
) http.Handler {
	mux := http.NewServeMux()

	orderHandler := &handlers.OrderHandler{
		Orders:   orders,
		Catalog:  catalog,
		Resolver: resolver,
	}
	catalogHandler := &handlers.CatalogHandler{Catalog: catalog}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/orders", orderHandler.Handle)
	mux.HandleFunc("/restaurants", catalogHandler.ListRestaurants)
	mux.HandleFunc("/products", catalogHandler.ListProducts)

	return loggingMiddleware(mux)
}
