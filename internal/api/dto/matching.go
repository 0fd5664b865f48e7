package dto

import "time"

// DistanceKm is null for candidates whose coordinates (or the order's own)
// could not be resolved; such candidates are listed after ranked ones.
type CandidateResponse struct {
	RestaurantID int      `json:"restaurant_id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	DistanceKm   *float64 `json:"distance_km"`
}

type OrderMatchResponse struct {
	OrderID       int                 `json:"order_id"`
	Status        string              `json:"status"`
	PaymentMethod string              `json:"payment_method"`
	FirstName     string              `json:"firstname"`
	LastName      string              `json:"lastname"`
	PhoneNumber   string              `json:"phonenumber"`
	Address       string              `json:"address"`
	Comment       string              `json:"comment,omitempty"`
	TotalPrice    string              `json:"total_price"`
	RegisteredAt  time.Time           `json:"registered_at"`
	CalledAt      *time.Time          `json:"called_at"`
	DeliveredAt   *time.Time          `json:"delivered_at"`
	Candidates    []CandidateResponse `json:"candidates"`
}

type ListOrderMatchesResponse struct {
	Orders []OrderMatchResponse `json:"orders"`
}
