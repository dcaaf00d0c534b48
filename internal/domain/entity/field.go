package entity

import "fmt"

// Field identifica una columna de la grilla de la factura.
type Field string

const (
	FieldCode         Field = "code"
	FieldName         Field = "name"
	FieldManufacturer Field = "manufacturer"
	FieldSize         Field = "size"
	FieldUnit         Field = "unit"
	FieldQuantity     Field = "quantity"
	FieldPrice        Field = "price"
	FieldDiscount     Field = "discount"
	FieldDiscountType Field = "discount_type"
	FieldTax          Field = "tax"
	FieldTotal        Field = "total"
	FieldNotes        Field = "notes"
)

// Columns orden de las columnas tal como se muestran (derecha a izquierda en la UI).
var Columns = []Field{
	FieldCode, FieldName, FieldManufacturer, FieldSize, FieldUnit,
	FieldQuantity, FieldPrice, FieldDiscount, FieldDiscountType, FieldTax, FieldTotal, FieldNotes,
}

// Editable es false solo para total, que nunca edita el usuario.
func (f Field) Editable() bool {
	return f.Known() && f != FieldTotal
}

// Numeric columnas cuyo texto se convierte a número.
func (f Field) Numeric() bool {
	switch f {
	case FieldQuantity, FieldPrice, FieldDiscount, FieldTax:
		return true
	}
	return false
}

// Searchable columnas que abren el buscador de productos.
func (f Field) Searchable() bool {
	return f == FieldCode || f == FieldName
}

// Known indica si f es una columna de la grilla.
func (f Field) Known() bool {
	for _, c := range Columns {
		if c == f {
			return true
		}
	}
	return false
}

// ParseField valida el nombre de columna recibido desde la UI.
func ParseField(s string) (Field, error) {
	f := Field(s)
	if !f.Known() {
		return "", fmt.Errorf("%w: %q", errUnknownField, s)
	}
	return f, nil
}
