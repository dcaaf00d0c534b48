// Package pdf genera la versión imprimible de la factura de compra con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proveedor            │  N° Factura + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Código | Nombre | Cant | Precio | Desc | Total   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Impuesto / Gastos / Total   │
//	│           Pagado / Restante                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con la referencia de la factura + notas          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/compras-grid/internal/domain/entity"
	"github.com/jhoicas/compras-grid/internal/domain/invoicecalc"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator genera el PDF de la factura de compra.
type MarotoPDFGenerator struct {
	currency string
}

// NewMarotoPDFGenerator construye el generador; currency es el sufijo de los importes.
func NewMarotoPDFGenerator(currency string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{currency: currency}
}

// GeneratePurchaseInvoicePDF genera el PDF y devuelve sus bytes.
// TODO: registrar una fuente TTF con glifos árabes (config.WithCustomFonts); helvetica no los dibuja.
func (g *MarotoPDFGenerator) GeneratePurchaseInvoicePDF(_ context.Context, inv *entity.Invoice) ([]byte, error) {
	totals := invoicecalc.ComputeTotals(inv)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Purchase invoice "+inv.Number, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(inv.Items, g.currency)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(inv, totals, g.currency)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(inv, totals))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(inv *entity.Invoice) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("PURCHASE INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Supplier: "+nonEmpty(inv.Supplier, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("No. "+nonEmpty(inv.Number, "-"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Date: "+inv.Date.Format("2006-01-02"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// columnas de la tabla; suman 12.
var tableColumns = []struct {
	label string
	size  int
	align align.Type
}{
	{"#", 1, align.Center},
	{"Code", 2, align.Left},
	{"Item", 3, align.Left},
	{"Qty", 1, align.Center},
	{"Price", 2, align.Right},
	{"Disc.", 1, align.Right},
	{"Total", 2, align.Right},
}

func tableHeaderRow() core.Row {
	cols := make([]core.Col, 0, len(tableColumns))
	for _, c := range tableColumns {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

func itemRows(items []entity.LineItem, currency string) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		values := []string{
			fmt.Sprintf("%d", i+1),
			it.Code,
			it.Name,
			it.Quantity.String(),
			invoicecalc.FormatAmount(it.Price),
			discountLabel(it.Discount.StringFixed(2), it.DiscountType, currency),
			invoicecalc.FormatAmount(it.Total),
		}
		cols := make([]core.Col, 0, len(values))
		for j, v := range values {
			c := tableColumns[j]
			cols = append(cols, col.New(c.size).Add(text.New(v, props.Text{
				Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
			})))
		}
		result = append(result, row.New(7).Add(cols...))
	}
	return result
}

func totalsRows(inv *entity.Invoice, t entity.Totals, currency string) []core.Row {
	money := func(v string) string { return v + " " + currency }
	lines := [][2]string{
		{"Subtotal:", money(invoicecalc.FormatAmount(t.Subtotal))},
		{"Discount (" + discountLabel(inv.Discount.StringFixed(2), inv.DiscountType, currency) + "):",
			money(invoicecalc.FormatAmount(t.DiscountValue))},
		{"Tax (" + inv.Tax.StringFixed(2) + "%):", money(invoicecalc.FormatAmount(t.TaxValue))},
		{"Expenses:", money(invoicecalc.FormatAmount(t.Expenses))},
		{"TOTAL:", money(invoicecalc.FormatAmount(t.TotalAmount))},
		{"Paid:", money(invoicecalc.FormatAmount(t.AmountPaid))},
		{"Remaining:", money(invoicecalc.FormatAmount(t.Remaining))},
	}
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		style := props.Text{Size: 9, Align: align.Right, Right: 1}
		if l[0] == "TOTAL:" {
			style.Style = fontstyle.Bold
			style.Color = colorPrimary
		}
		if l[0] == "Remaining:" && t.Remaining.IsNegative() {
			style.Color = colorAlert
		}
		labelStyle := style
		labelStyle.Style = fontstyle.Bold
		rows = append(rows, row.New(5).Add(
			col.New(6),
			col.New(3).Add(text.New(l[0], labelStyle)),
			col.New(3).Add(text.New(l[1], style)),
		))
	}
	return rows
}

func footerRow(inv *entity.Invoice, t entity.Totals) core.Row {
	ref := strings.Join([]string{inv.ID, inv.Number, invoicecalc.FormatAmount(t.TotalAmount)}, "|")
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(ref, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Notes:", props.Text{Style: fontstyle.Bold, Size: 8, Top: 2, Left: 3, Color: colorPrimary}),
			text.New(nonEmpty(inv.Notes, "-"), props.Text{Size: 8, Top: 8, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func discountLabel(amount string, dt entity.DiscountType, currency string) string {
	if dt == entity.DiscountFixed {
		return amount + " " + currency
	}
	return amount + "%"
}
