package grid

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/compras-grid/internal/domain/entity"
	"github.com/jhoicas/compras-grid/internal/domain/invoicecalc"
)

// GridView lo que la UI debe pintar: filas numeradas, filas de relleno, fila de alta rápida,
// la celda activa como input y, si corresponde, el buscador y el formulario de fila.
type GridView struct {
	InvoiceID     string         `json:"invoice_id"`
	Number        string         `json:"number"`
	Supplier      string         `json:"supplier"`
	Date          string         `json:"date"`
	Mode          string         `json:"mode"`
	InlineEditing bool           `json:"inline_editing"`
	Columns       []entity.Field `json:"columns"`
	Rows          []RowView      `json:"rows"`
	PaddingRows   int            `json:"padding_rows"`
	QuickAddRow   bool           `json:"quick_add_row"`
	Popover       *PopoverView   `json:"popover,omitempty"`
	Draft         *DraftView     `json:"draft,omitempty"`
	Totals        TotalsView     `json:"totals"`
}

// RowView una fila de la factura.
type RowView struct {
	Number int        `json:"number"` // 1..N
	ID     string     `json:"id"`
	Cells  []CellView `json:"cells"`
}

// CellView una celda. Solo la celda activa trae Editing=true e Input.
type CellView struct {
	Field    entity.Field `json:"field"`
	Text     string       `json:"text"`
	Editing  bool         `json:"editing,omitempty"`
	Input    string       `json:"input,omitempty"`
	Selected bool         `json:"selected,omitempty"`
}

// PopoverView buscador de productos abierto.
type PopoverView struct {
	Field   entity.Field  `json:"field"`
	Row     int           `json:"row"`
	Query   string        `json:"query"`
	Cursor  int           `json:"cursor"`
	Results []ProductView `json:"results"`
}

// ProductView resultado del buscador.
type ProductView struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
}

// DraftView formulario de alta (row = -1) o diálogo de edición de fila.
type DraftView struct {
	Row    int                     `json:"row"`
	Values map[entity.Field]string `json:"values"`
}

// TotalsView totales con formato de presentación.
type TotalsView struct {
	Subtotal      string `json:"subtotal"`
	DiscountValue string `json:"discount_value"`
	Discount      string `json:"discount"`
	TaxValue      string `json:"tax_value"`
	Expenses      string `json:"expenses"`
	TotalAmount   string `json:"total_amount"`
	AmountPaid    string `json:"amount_paid"`
	Remaining     string `json:"remaining"`
}

// View arma la vista de la grilla desde el estado actual.
func (s *Session) View() GridView {
	v := GridView{
		InvoiceID:     s.inv.ID,
		Number:        s.inv.Number,
		Supplier:      s.inv.Supplier,
		Date:          s.inv.Date.Format("2006-01-02"),
		Mode:          s.mode.String(),
		InlineEditing: !s.mode.RowEditor(),
		Columns:       entity.Columns,
		Rows:          make([]RowView, 0, len(s.inv.Items)),
		QuickAddRow:   true,
	}
	for i, it := range s.inv.Items {
		row := RowView{Number: i + 1, ID: it.ID, Cells: make([]CellView, 0, len(entity.Columns))}
		for _, f := range entity.Columns {
			c := CellView{Field: f, Text: s.FormatCell(it, f)}
			if s.mode.IsCell(i, f) {
				c.Editing = true
				c.Input = s.cellDraft
				c.Selected = s.selected
			}
			row.Cells = append(row.Cells, c)
		}
		v.Rows = append(v.Rows, row)
	}
	if n := s.minRows - len(s.inv.Items); n > 0 {
		v.PaddingRows = n
	}
	if s.lookup.IsOpen() {
		pv := &PopoverView{
			Field:   s.lookup.Field(),
			Row:     s.lookup.Row(),
			Query:   s.lookup.Query(),
			Cursor:  s.lookup.Cursor(),
			Results: make([]ProductView, 0, len(s.lookup.results)),
		}
		for _, p := range s.lookup.results {
			pv.Results = append(pv.Results, ProductView{
				ID:       p.ID,
				Code:     p.Code,
				Name:     p.Name,
				Price:    invoicecalc.FormatAmount(p.Price),
				Quantity: p.Quantity.String(),
				Unit:     p.Unit,
				Category: p.Category,
			})
		}
		v.Popover = pv
	}
	if s.mode.RowEditor() && s.rowDraft != nil {
		v.Draft = &DraftView{Row: s.mode.Row, Values: s.rowDraft.Values()}
	}
	t := invoicecalc.ComputeTotals(s.inv)
	v.Totals = TotalsView{
		Subtotal:      invoicecalc.FormatAmount(t.Subtotal),
		DiscountValue: invoicecalc.FormatAmount(t.DiscountValue),
		Discount:      s.formatDiscount(s.inv.Discount, s.inv.DiscountType),
		TaxValue:      invoicecalc.FormatAmount(t.TaxValue),
		Expenses:      invoicecalc.FormatAmount(t.Expenses),
		TotalAmount:   invoicecalc.FormatAmount(t.TotalAmount),
		AmountPaid:    invoicecalc.FormatAmount(t.AmountPaid),
		Remaining:     invoicecalc.FormatAmount(t.Remaining),
	}
	return v
}

// FormatCell texto de presentación de una celda: números con 2 decimales y el descuento
// con sufijo % o moneda según su tipo.
func (s *Session) FormatCell(it entity.LineItem, f entity.Field) string {
	switch f {
	case entity.FieldQuantity:
		return invoicecalc.FormatAmount(it.Quantity)
	case entity.FieldPrice:
		return invoicecalc.FormatAmount(it.Price)
	case entity.FieldTotal:
		return invoicecalc.FormatAmount(it.Total)
	case entity.FieldTax:
		return invoicecalc.FormatAmount(it.Tax) + "%"
	case entity.FieldDiscount:
		return s.formatDiscount(it.Discount, it.DiscountType)
	case entity.FieldDiscountType:
		if it.DiscountType == entity.DiscountFixed {
			return s.currency
		}
		return "%"
	}
	return invoicecalc.FieldText(it, f)
}

func (s *Session) formatDiscount(v decimal.Decimal, t entity.DiscountType) string {
	if t == entity.DiscountFixed {
		return invoicecalc.FormatAmount(v) + " " + s.currency
	}
	return invoicecalc.FormatAmount(v) + "%"
}
