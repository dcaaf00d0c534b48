package purchase

import (
	"context"

	"github.com/jhoicas/compras-grid/internal/domain/entity"
)

// InvoicePDFGenerator genera la versión imprimible de la factura de compra.
type InvoicePDFGenerator interface {
	GeneratePurchaseInvoicePDF(ctx context.Context, inv *entity.Invoice) ([]byte, error)
}

// InvoiceReader lee facturas ya guardadas (consulta y reimpresión).
type InvoiceReader interface {
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
}
