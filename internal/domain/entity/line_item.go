package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountType indica cómo se interpreta el descuento de una línea o de la factura.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Valid indica si el tipo es uno de los soportados.
func (t DiscountType) Valid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

// ParseDiscountType interpreta el texto del selector de descuento (acepta las etiquetas árabes de la UI).
func ParseDiscountType(s string) (DiscountType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "percentage", "percent", "%", "نسبة":
		return DiscountPercentage, true
	case "fixed", "amount", "قيمة":
		return DiscountFixed, true
	}
	return "", false
}

// LineItem representa una fila de la factura de compra.
// Total es derivado: siempre se recalcula desde Quantity, Price, Discount, DiscountType y Tax.
type LineItem struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Manufacturer string          `json:"manufacturer"`
	Size         string          `json:"size"`
	Unit         string          `json:"unit"`
	Notes        string          `json:"notes"`
	Quantity     decimal.Decimal `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Discount     decimal.Decimal `json:"discount"`
	DiscountType DiscountType    `json:"discount_type"`
	Tax          decimal.Decimal `json:"tax"` // porcentaje
	Total        decimal.Decimal `json:"total"`
}

// LineItemPatch cambios explícitos sobre una fila. Un campo nil no se toca.
type LineItemPatch struct {
	Code         *string
	Name         *string
	Manufacturer *string
	Size         *string
	Unit         *string
	Notes        *string
	Quantity     *decimal.Decimal
	Price        *decimal.Decimal
	Discount     *decimal.Decimal
	DiscountType *DiscountType
	Tax          *decimal.Decimal
}

// TouchesTotal indica si el patch modifica algún campo del que depende Total.
func (p LineItemPatch) TouchesTotal() bool {
	return p.Quantity != nil || p.Price != nil || p.Discount != nil || p.DiscountType != nil || p.Tax != nil
}

// Empty indica si el patch no trae cambios.
func (p LineItemPatch) Empty() bool {
	return !p.TouchesTotal() && p.Code == nil && p.Name == nil && p.Manufacturer == nil &&
		p.Size == nil && p.Unit == nil && p.Notes == nil
}

// Validate rechaza numéricos negativos y tipos de descuento desconocidos.
func (p LineItemPatch) Validate() error {
	for _, d := range []*decimal.Decimal{p.Quantity, p.Price, p.Discount, p.Tax} {
		if d != nil && d.IsNegative() {
			return errNegative
		}
	}
	if p.DiscountType != nil && !p.DiscountType.Valid() {
		return errDiscountType
	}
	return nil
}

// Apply copia en item los campos presentes en el patch. No recalcula Total.
func (p LineItemPatch) Apply(item *LineItem) {
	if p.Code != nil {
		item.Code = *p.Code
	}
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Manufacturer != nil {
		item.Manufacturer = *p.Manufacturer
	}
	if p.Size != nil {
		item.Size = *p.Size
	}
	if p.Unit != nil {
		item.Unit = *p.Unit
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Discount != nil {
		item.Discount = *p.Discount
	}
	if p.DiscountType != nil {
		item.DiscountType = *p.DiscountType
	}
	if p.Tax != nil {
		item.Tax = *p.Tax
	}
}

// PatchFromProduct llena código, nombre, precio y unidad desde el catálogo.
func PatchFromProduct(p Product) LineItemPatch {
	code, name, price := p.Code, p.Name, p.Price
	patch := LineItemPatch{Code: &code, Name: &name, Price: &price}
	if p.Unit != "" {
		unit := p.Unit
		patch.Unit = &unit
	}
	return patch
}

// Merge sobrescribe en p los campos presentes en o.
func (p *LineItemPatch) Merge(o LineItemPatch) {
	if o.Code != nil {
		p.Code = o.Code
	}
	if o.Name != nil {
		p.Name = o.Name
	}
	if o.Manufacturer != nil {
		p.Manufacturer = o.Manufacturer
	}
	if o.Size != nil {
		p.Size = o.Size
	}
	if o.Unit != nil {
		p.Unit = o.Unit
	}
	if o.Notes != nil {
		p.Notes = o.Notes
	}
	if o.Quantity != nil {
		p.Quantity = o.Quantity
	}
	if o.Price != nil {
		p.Price = o.Price
	}
	if o.Discount != nil {
		p.Discount = o.Discount
	}
	if o.DiscountType != nil {
		p.DiscountType = o.DiscountType
	}
	if o.Tax != nil {
		p.Tax = o.Tax
	}
}
