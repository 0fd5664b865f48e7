package services

import (
	"context"
	"fmt"
	"strings"

	"foodcart-matching-service/internal/domain"
	"foodcart-matching-service/internal/ports"

	"github.com/shopspring/decimal"
)

// An open order prepared for the manager view: the order itself, its total
// price, and its candidate restaurants ranked by distance.
type OrderMatch struct {
	Order      *domain.Order
	TotalPrice decimal.Decimal
	Candidates []RankedRestaurant
}

// MatchOpenOrders builds the manager order board: every order not yet
// completed, newest first, with candidate restaurants and distances.
// Geocoding failures only mark individual entries distance-unknown; an
// order with broken line-item invariants fails the whole listing.
func MatchOpenOrders(
	ctx context.Context,
	orders ports.OrderRepository,
	catalog ports.CatalogRepository,
	resolver ports.AddressResolver,
) ([]OrderMatch, error) {
	open, err := orders.ListOpenOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("match open orders: list orders: %w", err)
	}

	matches := make([]OrderMatch, 0, len(open))
	for _, order := range open {
		match := OrderMatch{
			Order:      order,
			TotalPrice: order.TotalPrice(),
			Candidates: []RankedRestaurant{},
		}

		candidates, err := FindCandidateRestaurants(ctx, order, catalog)
		if err != nil {
			return nil, fmt.Errorf("match open orders: order %d: %w", order.OrderID, err)
		}

		ranked, err := RankByDistance(ctx, order, candidates, resolver)
		if err != nil {
			return nil, fmt.Errorf("match open orders: rank order %d: %w", order.OrderID, err)
		}
		match.Candidates = ranked

		matches = append(matches, match)
	}

	return matches, nil
}

// Input for order submission.
type CreateOrderRequest struct {
	FirstName     string
	LastName      string
	PhoneNumber   string
	Address       string
	Comment       string
	PaymentMethod string
	Items         []CreateOrderItem
}

type CreateOrderItem struct {
	ProductID int
	Quantity  int
}

// CreateOrder validates a submission, snapshots current product prices into
// the line items and persists the order atomically.
func CreateOrder(
	ctx context.Context,
	req CreateOrderRequest,
	orders ports.OrderRepository,
	catalog ports.CatalogRepository,
) (int, error) {
	if len(req.Items) == 0 {
		return 0, fmt.Errorf("create order: %w", domain.ErrInvalidOrder)
	}

	if strings.TrimSpace(req.Address) == "" {
		return 0, fmt.Errorf("create order: address must be non-empty: %w", domain.ErrInvalidOrder)
	}

	payment := req.PaymentMethod
	if payment == "" {
		payment = domain.PaymentUnspecified
	}
	if !domain.ValidPaymentMethod(payment) {
		return 0, fmt.Errorf("create order: unknown payment method %q: %w", payment, domain.ErrInvalidOrder)
	}

	order := &domain.Order{
		Status:        domain.StatusUnprocessed,
		PaymentMethod: payment,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
		Address:       strings.TrimSpace(req.Address),
		Comment:       req.Comment,
		Items:         make([]domain.OrderLineItem, 0, len(req.Items)),
	}

	for i, item := range req.Items {
		if item.Quantity < 1 {
			return 0, fmt.Errorf("create order: item %d: quantity must be >= 1: %w", i+1, domain.ErrInvalidOrder)
		}

		product, err := catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			return 0, fmt.Errorf("create order: item %d: get product %d: %w", i+1, item.ProductID, err)
		}

		// Unit price is copied now; later catalog edits must not rewrite
		// historical invoices.
		order.Items = append(order.Items, domain.OrderLineItem{
			ProductID: product.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	id, err := orders.CreateOrder(ctx, order)
	if err != nil {
		return 0, fmt.Errorf("create order: persist: %w", err)
	}

	return id, nil
}
