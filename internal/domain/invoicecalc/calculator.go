// Package invoicecalc concentra el cálculo de la factura de compra: total por línea,
// subtotal, descuento, impuesto y gastos de la factura y saldo pendiente.
//
//	base          = cantidad * precio
//	conDescuento  = porcentaje ? base * (1 - d/100) : base - d   (nunca menor que 0)
//	total         = conDescuento * (1 + iva/100)
//
// Los montos no se redondean aquí; el redondeo a 2 decimales es solo de presentación.
package invoicecalc

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/compras-grid/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ComputeLineTotal calcula el total de una línea: descuento primero y luego el impuesto sobre el neto.
func ComputeLineTotal(quantity, price, discount decimal.Decimal, discountType entity.DiscountType, tax decimal.Decimal) decimal.Decimal {
	base := quantity.Mul(price)
	return ApplyTax(ApplyDiscount(base, discountType, discount), tax)
}

// ApplyDiscount descuenta value de amount según el tipo. El resultado se acota en 0.
func ApplyDiscount(amount decimal.Decimal, discountType entity.DiscountType, value decimal.Decimal) decimal.Decimal {
	var out decimal.Decimal
	if discountType == entity.DiscountFixed {
		out = amount.Sub(value)
	} else {
		out = amount.Mul(decimal.NewFromInt(1).Sub(value.Div(hundred)))
	}
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// DiscountValue monto efectivamente descontado de amount.
func DiscountValue(amount decimal.Decimal, discountType entity.DiscountType, value decimal.Decimal) decimal.Decimal {
	return amount.Sub(ApplyDiscount(amount, discountType, value))
}

// ApplyTax suma el porcentaje de impuesto.
func ApplyTax(amount, tax decimal.Decimal) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(1).Add(tax.Div(hundred)))
}

// RecalculateSubtotal suma los totales de las líneas (lista vacía = 0).
func RecalculateSubtotal(items []entity.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Total)
	}
	return sum
}

// ApplyInvoiceDiscount aplica el descuento de cabecera al subtotal (misma fórmula que por línea).
func ApplyInvoiceDiscount(subtotal decimal.Decimal, discountType entity.DiscountType, value decimal.Decimal) decimal.Decimal {
	return ApplyDiscount(subtotal, discountType, value)
}

// ApplyExpenses suma los gastos adicionales (flete, descarga...).
func ApplyExpenses(amount, expenses decimal.Decimal) decimal.Decimal {
	return amount.Add(expenses)
}

// ComputeRemaining saldo pendiente. Puede ser negativo (pago en exceso) y no se acota.
func ComputeRemaining(totalAmount, amountPaid decimal.Decimal) decimal.Decimal {
	return totalAmount.Sub(amountPaid)
}

// ComputeTotals deriva todos los totales de la factura.
func ComputeTotals(inv *entity.Invoice) entity.Totals {
	subtotal := RecalculateSubtotal(inv.Items)
	afterDiscount := ApplyInvoiceDiscount(subtotal, inv.DiscountType, inv.Discount)
	afterTax := ApplyTax(afterDiscount, inv.Tax)
	total := ApplyExpenses(afterTax, inv.Expenses)
	return entity.Totals{
		Subtotal:      subtotal,
		DiscountValue: subtotal.Sub(afterDiscount),
		TaxValue:      afterTax.Sub(afterDiscount),
		Expenses:      inv.Expenses,
		TotalAmount:   total,
		AmountPaid:    inv.AmountPaid,
		Remaining:     ComputeRemaining(total, inv.AmountPaid),
	}
}

// LineTotal recalcula el total de item con sus propios campos.
func LineTotal(item entity.LineItem) decimal.Decimal {
	return ComputeLineTotal(item.Quantity, item.Price, item.Discount, item.DiscountType, item.Tax)
}

// FormatAmount formato de presentación con 2 decimales.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
