package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Order workflow statuses. An order starts unprocessed and moves through the
// kitchen/delivery pipeline until completed.
const (
	StatusUnprocessed = "unprocessed"
	StatusPreparing   = "preparing"
	StatusAssembling  = "assembling"
	StatusDelivering  = "delivering"
	StatusCompleted   = "completed"
)

// Payment methods accepted at order submission.
const (
	PaymentElectronic  = "electronic"
	PaymentCash        = "cash"
	PaymentUnspecified = "unspecified"
)

// ErrInvalidOrder marks an order that violates construction invariants
// (an order must carry at least one line item).
var ErrInvalidOrder = errors.New("order has no line items")

// A customer order. RestaurantID is nil until a manager pins the order to a
// restaurant; once set, matching is skipped and the assignment is
// authoritative. CalledAt and DeliveredAt stay nil until the corresponding
// workflow step happens.
type Order struct {
	OrderID       int
	Status        string
	PaymentMethod string
	FirstName     string
	LastName      string
	PhoneNumber   string
	Address       string
	Comment       string
	RestaurantID  *int
	RegisteredAt  time.Time
	CalledAt      *time.Time
	DeliveredAt   *time.Time
	Items         []OrderLineItem
}

// A single order line. Price is the unit price copied from the product at
// submission time and never changes afterwards, so past invoices survive
// catalog price edits.
type OrderLineItem struct {
	ProductID int
	Quantity  int
	Price     decimal.Decimal
}

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusUnprocessed, StatusPreparing, StatusAssembling, StatusDelivering, StatusCompleted:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is one of the known payment methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentElectronic, PaymentCash, PaymentUnspecified:
		return true
	}
	return false
}

// ProductIDs returns the distinct product identifiers referenced by the
// order's line items, in first-seen order.
func (o *Order) ProductIDs() []int {
	seen := make(map[int]struct{}, len(o.Items))
	ids := make([]int, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// TotalPrice sums line price times quantity over all items.
func (o *Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
