package entity

import "github.com/shopspring/decimal"

// Product entrada del catálogo de productos. La grilla solo la lee.
type Product struct {
	ID       string          `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"` // existencia
	Unit     string          `json:"unit"`
	Category string          `json:"category"`
}
