package invoicecalc

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/compras-grid/internal/domain"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
)

// AddItem construye una línea con valores por defecto (cantidad 1, precio 0, unidad por defecto),
// calcula su total y la agrega al final de la factura.
func AddItem(inv *entity.Invoice, in entity.LineItemPatch) (entity.LineItem, error) {
	if err := in.Validate(); err != nil {
		return entity.LineItem{}, err
	}
	item := entity.LineItem{
		ID:           uuid.New().String(),
		Unit:         inv.DefaultUnit,
		Quantity:     decimal.NewFromInt(1),
		Price:        decimal.Zero,
		Discount:     decimal.Zero,
		DiscountType: entity.DiscountPercentage,
		Tax:          decimal.Zero,
	}
	in.Apply(&item)
	item.Total = LineTotal(item)
	inv.Items = append(inv.Items, item)
	return item, nil
}

// UpdateItem mezcla el patch en Items[index] y recalcula el total si cambió algún campo que lo afecta.
func UpdateItem(inv *entity.Invoice, index int, patch entity.LineItemPatch) (entity.LineItem, error) {
	if index < 0 || index >= len(inv.Items) {
		return entity.LineItem{}, fmt.Errorf("%w: %d (filas: %d)", domain.ErrIndexOutOfRange, index, len(inv.Items))
	}
	if err := patch.Validate(); err != nil {
		return entity.LineItem{}, err
	}
	item := inv.Items[index]
	patch.Apply(&item)
	if patch.TouchesTotal() {
		item.Total = LineTotal(item)
	}
	inv.Items[index] = item
	return item, nil
}

// RemoveItem quita Items[index]; las filas siguientes bajan una posición.
func RemoveItem(inv *entity.Invoice, index int) (entity.LineItem, error) {
	if index < 0 || index >= len(inv.Items) {
		return entity.LineItem{}, fmt.Errorf("%w: %d (filas: %d)", domain.ErrIndexOutOfRange, index, len(inv.Items))
	}
	removed := inv.Items[index]
	inv.Items = append(inv.Items[:index:index], inv.Items[index+1:]...)
	return removed, nil
}

// PatchForField arma el patch de una sola columna a partir del texto escrito en la celda.
// Los numéricos nunca fallan: un texto no numérico vale 0.
func PatchForField(field entity.Field, raw string) (entity.LineItemPatch, error) {
	var p entity.LineItemPatch
	switch field {
	case entity.FieldCode:
		p.Code = &raw
	case entity.FieldName:
		p.Name = &raw
	case entity.FieldManufacturer:
		p.Manufacturer = &raw
	case entity.FieldSize:
		p.Size = &raw
	case entity.FieldUnit:
		p.Unit = &raw
	case entity.FieldNotes:
		p.Notes = &raw
	case entity.FieldQuantity, entity.FieldPrice, entity.FieldDiscount, entity.FieldTax:
		d := ParseNonNegative(raw)
		switch field {
		case entity.FieldQuantity:
			p.Quantity = &d
		case entity.FieldPrice:
			p.Price = &d
		case entity.FieldDiscount:
			p.Discount = &d
		default:
			p.Tax = &d
		}
	case entity.FieldDiscountType:
		t, ok := entity.ParseDiscountType(raw)
		if !ok {
			return p, fmt.Errorf("%w: tipo de descuento %q", domain.ErrInvalidInput, raw)
		}
		p.DiscountType = &t
	default:
		return p, fmt.Errorf("%w: la columna %q no es editable", domain.ErrInvalidInput, field)
	}
	return p, nil
}

// FieldText texto actual de una columna tal como se siembra en el input al activar la celda.
func FieldText(item entity.LineItem, field entity.Field) string {
	switch field {
	case entity.FieldCode:
		return item.Code
	case entity.FieldName:
		return item.Name
	case entity.FieldManufacturer:
		return item.Manufacturer
	case entity.FieldSize:
		return item.Size
	case entity.FieldUnit:
		return item.Unit
	case entity.FieldNotes:
		return item.Notes
	case entity.FieldQuantity:
		return item.Quantity.String()
	case entity.FieldPrice:
		return item.Price.String()
	case entity.FieldDiscount:
		return item.Discount.String()
	case entity.FieldDiscountType:
		return string(item.DiscountType)
	case entity.FieldTax:
		return item.Tax.String()
	case entity.FieldTotal:
		return item.Total.String()
	}
	return ""
}
