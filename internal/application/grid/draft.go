package grid

import (
	"strings"

	"github.com/jhoicas/compras-grid/internal/domain/entity"
	"github.com/jhoicas/compras-grid/internal/domain/invoicecalc"
)

// RowDraft valores en texto del formulario de alta o del diálogo de edición.
type RowDraft struct {
	values map[entity.Field]string
}

func newRowDraft(unit string) *RowDraft {
	return &RowDraft{values: map[entity.Field]string{
		entity.FieldUnit:         unit,
		entity.FieldQuantity:     "1",
		entity.FieldPrice:        "0",
		entity.FieldDiscount:     "0",
		entity.FieldDiscountType: string(entity.DiscountPercentage),
		entity.FieldTax:          "0",
	}}
}

func rowDraftFrom(item entity.LineItem) *RowDraft {
	d := &RowDraft{values: make(map[entity.Field]string)}
	for _, f := range entity.Columns {
		if f.Editable() {
			d.values[f] = invoicecalc.FieldText(item, f)
		}
	}
	return d
}

func (d *RowDraft) get(f entity.Field) string { return d.values[f] }

func (d *RowDraft) set(f entity.Field, raw string) { d.values[f] = raw }

func (d *RowDraft) fillProduct(p entity.Product) {
	d.values[entity.FieldCode] = p.Code
	d.values[entity.FieldName] = p.Name
	d.values[entity.FieldPrice] = p.Price.String()
	if p.Unit != "" {
		d.values[entity.FieldUnit] = p.Unit
	}
}

func (d *RowDraft) complete() bool {
	hasIdentity := strings.TrimSpace(d.values[entity.FieldName]) != "" || strings.TrimSpace(d.values[entity.FieldCode]) != ""
	return hasIdentity && invoicecalc.ParseNonNegative(d.values[entity.FieldQuantity]).IsPositive()
}

// patch une los patches de cada columna presente en el formulario.
func (d *RowDraft) patch() (entity.LineItemPatch, error) {
	var out entity.LineItemPatch
	for _, f := range entity.Columns {
		raw, ok := d.values[f]
		if !ok || !f.Editable() {
			continue
		}
		if f == entity.FieldDiscountType && strings.TrimSpace(raw) == "" {
			continue
		}
		p, err := invoicecalc.PatchForField(f, raw)
		if err != nil {
			return out, err
		}
		out.Merge(p)
	}
	return out, nil
}

// Values copia de los valores del formulario.
func (d *RowDraft) Values() map[entity.Field]string {
	out := make(map[entity.Field]string, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}
