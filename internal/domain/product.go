package domain

import "github.com/shopspring/decimal"

// A product from the shared catalog. Products exist independently of any
// restaurant; menu entries bind them to restaurants.
type Product struct {
	ProductID   int
	Name        string
	Price       decimal.Decimal
	Description string
}
