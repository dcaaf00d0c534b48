// Package memory adaptadores en memoria: catálogo de ejemplo, guardado y cola de avisos.
// Sirven para desarrollo local, el cliente de terminal y las pruebas.
package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/compras-grid/internal/application/grid"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
)

var _ grid.ProductCatalog = (*Catalog)(nil)

// Catalog catálogo fijo de productos.
type Catalog struct {
	products []entity.Product
}

// NewCatalog construye el catálogo con una copia de products.
func NewCatalog(products []entity.Product) *Catalog {
	return &Catalog{products: append([]entity.Product(nil), products...)}
}

// ListCatalog devuelve una copia del catálogo.
func (c *Catalog) ListCatalog(_ context.Context) ([]entity.Product, error) {
	return append([]entity.Product(nil), c.products...), nil
}

// DefaultCatalog catálogo de demostración (materiales de construcción).
func DefaultCatalog() *Catalog {
	p := func(id, code, name, price, qty, unit, category string) entity.Product {
		return entity.Product{
			ID: id, Code: code, Name: name,
			Price:    decimal.RequireFromString(price),
			Quantity: decimal.RequireFromString(qty),
			Unit:     unit, Category: category,
		}
	}
	return NewCatalog([]entity.Product{
		p("1", "P001", "أسمنت بورتلاندي عادي", "22.50", "500", "كيس", "مواد بناء"),
		p("2", "P002", "حديد تسليح 12 مم", "3100", "40", "طن", "حديد"),
		p("3", "P003", "حديد تسليح 16 مم", "3050", "25", "طن", "حديد"),
		p("4", "P004", "رمل ناعم", "85", "120", "متر مكعب", "مواد بناء"),
		p("5", "P005", "بلوك خرساني 20 سم", "3.25", "8000", "قطعة", "مواد بناء"),
		p("6", "P006", "دهان جوتن أبيض", "145", "60", "جالون", "دهانات"),
		p("7", "P007", "مواسير PVC 4 بوصة", "38", "300", "قطعة", "سباكة"),
		p("8", "P008", "كابل كهرباء 2.5 مم", "210", "90", "لفة", "كهرباء"),
		p("9", "P009", "مسامير خشب 2 بوصة", "12", "400", "علبة", "عدد وأدوات"),
		p("10", "P010", "Portland Cement SRC", "26", "150", "كيس", "مواد بناء"),
	})
}
