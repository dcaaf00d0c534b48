package invoicecalc_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/compras-grid/internal/domain"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
	"github.com/jhoicas/compras-grid/internal/domain/invoicecalc"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Total por línea
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeLineTotal(t *testing.T) {
	tests := []struct {
		name         string
		qty, price   string
		discount     string
		discountType entity.DiscountType
		tax          string
		want         string
	}{
		{"porcentaje con impuesto", "3", "100", "10", entity.DiscountPercentage, "15", "310.5"},
		{"descuento fijo sin impuesto", "2", "50", "20", entity.DiscountFixed, "0", "80"},
		{"sin descuento ni impuesto", "4", "12.5", "0", entity.DiscountPercentage, "0", "50"},
		{"cantidad cero", "0", "99", "0", entity.DiscountPercentage, "15", "0"},
		{"fijo mayor que la base se acota en cero", "1", "10", "25", entity.DiscountFixed, "15", "0"},
		{"porcentaje mayor a 100 se acota en cero", "1", "10", "150", entity.DiscountPercentage, "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := invoicecalc.ComputeLineTotal(d(tt.qty), d(tt.price), d(tt.discount), tt.discountType, d(tt.tax))
			assert.True(t, d(tt.want).Equal(got), "esperado %s, obtenido %s", tt.want, got)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales de la factura
// ──────────────────────────────────────────────────────────────────────────────

func TestRecalculateSubtotal(t *testing.T) {
	assert.True(t, invoicecalc.RecalculateSubtotal(nil).IsZero(), "lista vacía suma 0")

	items := []entity.LineItem{
		{Quantity: d("3"), Price: d("100"), Discount: d("10"), DiscountType: entity.DiscountPercentage, Tax: d("15")},
		{Quantity: d("2"), Price: d("50"), Discount: d("20"), DiscountType: entity.DiscountFixed},
	}
	want := decimal.Zero
	for i := range items {
		items[i].Total = invoicecalc.LineTotal(items[i])
		want = want.Add(items[i].Total)
	}
	got := invoicecalc.RecalculateSubtotal(items)
	assert.True(t, want.Equal(got))
	assert.True(t, d("390.5").Equal(got))
}

func TestComputeRemaining_NoSeAcota(t *testing.T) {
	got := invoicecalc.ComputeRemaining(d("500"), d("600"))
	assert.True(t, d("-100").Equal(got), "el pago en exceso debe quedar negativo, obtenido %s", got)
}

func TestApplyInvoiceDiscountAndExpenses(t *testing.T) {
	assert.True(t, d("900").Equal(invoicecalc.ApplyInvoiceDiscount(d("1000"), entity.DiscountPercentage, d("10"))))
	assert.True(t, d("950").Equal(invoicecalc.ApplyInvoiceDiscount(d("1000"), entity.DiscountFixed, d("50"))))
	assert.True(t, invoicecalc.ApplyInvoiceDiscount(d("100"), entity.DiscountFixed, d("150")).IsZero())
	assert.True(t, d("1025").Equal(invoicecalc.ApplyExpenses(d("1000"), d("25"))))
}

func TestComputeTotals(t *testing.T) {
	inv := &entity.Invoice{
		DiscountType: entity.DiscountFixed,
		Discount:     d("100"),
		Expenses:     d("30"),
		AmountPaid:   d("1000"),
	}
	_, err := invoicecalc.AddItem(inv, entity.LineItemPatch{Quantity: ptr(d("10")), Price: ptr(d("100"))})
	require.NoError(t, err)

	tot := invoicecalc.ComputeTotals(inv)
	assert.True(t, d("1000").Equal(tot.Subtotal))
	assert.True(t, d("100").Equal(tot.DiscountValue))
	assert.True(t, tot.TaxValue.IsZero())
	assert.True(t, d("930").Equal(tot.TotalAmount), "930 = 1000 - 100 + 30, obtenido %s", tot.TotalAmount)
	assert.True(t, d("-70").Equal(tot.Remaining))

	inv.Tax = d("15")
	tot = invoicecalc.ComputeTotals(inv)
	assert.True(t, d("135").Equal(tot.TaxValue))
	assert.True(t, d("1065").Equal(tot.TotalAmount))
	assert.True(t, tot.Remaining.Equal(tot.TotalAmount.Sub(tot.AmountPaid)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversión de texto a número
// ──────────────────────────────────────────────────────────────────────────────

func TestParseNumber(t *testing.T) {
	cases := map[string]string{
		"":        "0",
		"abc":     "0",
		"12":      "12",
		" 7.5 ":   "7.5",
		"12abc":   "12",
		"3.":      "3",
		".5":      "0.5",
		"-4":      "-4",
		"+4":      "4",
		"١٢٫٥":    "12.5",
		"۳":       "3",
		"1,250":   "1",
		"2,5":     "2",
		"1e3":     "1000",
		"2.5E-1":  "0.25",
		"1e":      "1",
		"3e+2x":   "300",
		"1e999":   "1",
		"٢٬٠٠٠":   "2000",
		"-":       "0",
		"--1":     "0",
		"1.2.3":   "1.2",
	}
	for in, want := range cases {
		got := invoicecalc.ParseNumber(in)
		assert.True(t, d(want).Equal(got), "ParseNumber(%q) = %s, esperado %s", in, got, want)
	}
	assert.True(t, invoicecalc.ParseNonNegative("-4").IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Puntos de mutación
// ──────────────────────────────────────────────────────────────────────────────

func TestAddItem_Defaults(t *testing.T) {
	inv := &entity.Invoice{DefaultUnit: "قطعة"}
	item, err := invoicecalc.AddItem(inv, entity.LineItemPatch{Name: ptr("Widget"), Code: ptr("W1"), Price: ptr(d("10"))})
	require.NoError(t, err)

	require.Len(t, inv.Items, 1)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "قطعة", item.Unit)
	assert.Equal(t, entity.DiscountPercentage, item.DiscountType)
	assert.True(t, d("1").Equal(item.Quantity))
	assert.True(t, d("10").Equal(item.Total))
}

func TestAddItem_RechazaNegativos(t *testing.T) {
	inv := &entity.Invoice{}
	_, err := invoicecalc.AddItem(inv, entity.LineItemPatch{Price: ptr(d("-1"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, inv.Items, "no debe agregarse la fila")
}

func TestUpdateItem_RecalculaTotal(t *testing.T) {
	inv := &entity.Invoice{}
	item, err := invoicecalc.AddItem(inv, entity.LineItemPatch{Name: ptr("Widget"), Code: ptr("W1"), Price: ptr(d("10"))})
	require.NoError(t, err)

	updated, err := invoicecalc.UpdateItem(inv, 0, entity.LineItemPatch{Quantity: ptr(d("5"))})
	require.NoError(t, err)
	assert.Equal(t, item.ID, updated.ID, "el id es estable entre ediciones")
	assert.True(t, d("50").Equal(updated.Total))

	updated, err = invoicecalc.UpdateItem(inv, 0, entity.LineItemPatch{Discount: ptr(d("10")), DiscountType: ptr(entity.DiscountPercentage)})
	require.NoError(t, err)
	assert.True(t, d("45").Equal(updated.Total))
	assert.True(t, d("45").Equal(invoicecalc.RecalculateSubtotal(inv.Items)))

	updated, err = invoicecalc.UpdateItem(inv, 0, entity.LineItemPatch{Notes: ptr("سريع")})
	require.NoError(t, err)
	assert.True(t, d("45").Equal(updated.Total))
}

func TestUpdateItem_FueraDeRango(t *testing.T) {
	inv := &entity.Invoice{}
	_, err := invoicecalc.UpdateItem(inv, 0, entity.LineItemPatch{Quantity: ptr(d("1"))})
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	_, err = invoicecalc.RemoveItem(inv, -1)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}

func TestRemoveItem_DesplazaIndices(t *testing.T) {
	inv := &entity.Invoice{}
	for _, n := range []string{"A", "B", "C"} {
		_, err := invoicecalc.AddItem(inv, entity.LineItemPatch{Name: ptr(n)})
		require.NoError(t, err)
	}
	snapshot := inv.Clone()

	removed, err := invoicecalc.RemoveItem(inv, 0)
	require.NoError(t, err)
	assert.Equal(t, "A", removed.Name)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, "B", inv.Items[0].Name)
	assert.Equal(t, "C", inv.Items[1].Name)
	assert.Equal(t, "A", snapshot.Items[0].Name, "la copia previa no se altera")
}

func TestPatchForField(t *testing.T) {
	p, err := invoicecalc.PatchForField(entity.FieldQuantity, "abc")
	require.NoError(t, err)
	require.NotNil(t, p.Quantity)
	assert.True(t, p.Quantity.IsZero())

	p, err = invoicecalc.PatchForField(entity.FieldDiscountType, "%")
	require.NoError(t, err)
	assert.Equal(t, entity.DiscountPercentage, *p.DiscountType)

	_, err = invoicecalc.PatchForField(entity.FieldDiscountType, "otro")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = invoicecalc.PatchForField(entity.FieldTotal, "10")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
