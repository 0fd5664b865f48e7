package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"foodcart-matching-service/internal/api/dto"
	"foodcart-matching-service/internal/domain"
	"foodcart-matching-service/internal/ports"
	"foodcart-matching-service/internal/services"
)

// OrderHandler exposes order submission and the matched-order board.
type OrderHandler struct {
	Orders   ports.OrderRepository
	Catalog  ports.CatalogRepository
	Resolver ports.AddressResolver
}

func (h *OrderHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodPost:
		h.Create(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Create accepts an order submission, snapshots product prices and stores
// the order atomically.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	svcReq := services.CreateOrderRequest{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
		Comment:       req.Comment,
		PaymentMethod: req.PaymentMethod,
		Items:         make([]services.CreateOrderItem, 0, len(req.Products)),
	}
	for _, item := range req.Products {
		svcReq.Items = append(svcReq.Items, services.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	id, err := services.CreateOrder(r.Context(), svcReq, h.Orders, h.Catalog)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidOrder):
			writeError(w, r, http.StatusBadRequest, "invalid order: "+err.Error())
		case errors.Is(err, sql.ErrNoRows):
			writeError(w, r, http.StatusNotFound, "unknown product")
		default:
			log.Printf("create order failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.CreateOrderResponse{OrderID: id})
}

// List returns the manager board: open orders with total prices and
// distance-ranked candidate restaurants.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	matches, err := services.MatchOpenOrders(r.Context(), h.Orders, h.Catalog, h.Resolver)
	if err != nil {
		log.Printf("match open orders failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListOrderMatchesResponse{
		Orders: make([]dto.OrderMatchResponse, 0, len(matches)),
	}
	for _, m := range matches {
		candidates := make([]dto.CandidateResponse, 0, len(m.Candidates))
		for _, c := range m.Candidates {
			entry := dto.CandidateResponse{
				RestaurantID: c.Restaurant.RestaurantID,
				Name:         c.Restaurant.Name,
				Address:      c.Restaurant.Address,
			}
			if c.DistanceKnown {
				d := c.DistanceKm
				entry.DistanceKm = &d
			}
			candidates = append(candidates, entry)
		}

		res.Orders = append(res.Orders, dto.OrderMatchResponse{
			OrderID:       m.Order.OrderID,
			Status:        m.Order.Status,
			PaymentMethod: m.Order.PaymentMethod,
			FirstName:     m.Order.FirstName,
			LastName:      m.Order.LastName,
			PhoneNumber:   m.Order.PhoneNumber,
			Address:       m.Order.Address,
			Comment:       m.Order.Comment,
			TotalPrice:    m.TotalPrice.StringFixed(2),
			RegisteredAt:  m.Order.RegisteredAt,
			CalledAt:      m.Order.CalledAt,
			DeliveredAt:   m.Order.DeliveredAt,
			Candidates:    candidates,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
