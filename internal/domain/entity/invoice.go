package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la factura de compra que se edita en la grilla.
// Los totales no se guardan: se derivan de Items y de los ajustes (descuento, impuesto, gastos, pagado).
type Invoice struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	Supplier     string          `json:"supplier"`
	Date         time.Time       `json:"date"`
	Notes        string          `json:"notes"`
	Items        []LineItem      `json:"items"`
	Discount     decimal.Decimal `json:"discount"`
	DiscountType DiscountType    `json:"discount_type"`
	Tax          decimal.Decimal `json:"tax"` // porcentaje sobre el neto después del descuento
	Expenses     decimal.Decimal `json:"expenses"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	DefaultUnit  string          `json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Totals valores derivados de la factura.
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	TaxValue      decimal.Decimal `json:"tax_value"`
	Expenses      decimal.Decimal `json:"expenses"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Remaining     decimal.Decimal `json:"remaining"` // negativo = pago en exceso
}

// Clone copia profunda (los ítems no comparten el slice).
func (inv *Invoice) Clone() *Invoice {
	cp := *inv
	cp.Items = make([]LineItem, len(inv.Items))
	copy(cp.Items, inv.Items)
	return &cp
}
