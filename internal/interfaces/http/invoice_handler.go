package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/compras-grid/internal/application/dto"
	"github.com/jhoicas/compras-grid/internal/application/grid"
	"github.com/jhoicas/compras-grid/internal/application/purchase"
	"github.com/jhoicas/compras-grid/internal/domain/invoicecalc"
)

// InvoiceHandler consulta y reimpresión de facturas de compra ya guardadas.
type InvoiceHandler struct {
	sessions *purchase.SessionManager
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(sessions *purchase.SessionManager) *InvoiceHandler {
	return &InvoiceHandler{sessions: sessions}
}

// Get factura guardada con sus totales.
// GET /api/purchase-invoices/:id
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	inv, err := h.sessions.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SaveResponse{
		Invoice:       inv,
		Totals:        invoicecalc.ComputeTotals(inv),
		Notifications: []grid.Notification{},
	})
}

// PDF reimprime una factura guardada.
// GET /api/purchase-invoices/:id/pdf
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.sessions.ReprintPDF(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="purchase-invoice-%s.pdf"`, id))
	return c.Send(out)
}
