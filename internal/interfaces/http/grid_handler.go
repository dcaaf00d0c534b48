package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/compras-grid/internal/application/dto"
	"github.com/jhoicas/compras-grid/internal/application/grid"
	"github.com/jhoicas/compras-grid/internal/application/purchase"
	"github.com/jhoicas/compras-grid/internal/domain"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
	"github.com/jhoicas/compras-grid/internal/domain/invoicecalc"
)

// GridHandler expone las sesiones de la grilla de factura de compra (protegido).
type GridHandler struct {
	sessions *purchase.SessionManager
}

// NewGridHandler construye el handler.
func NewGridHandler(sessions *purchase.SessionManager) *GridHandler {
	return &GridHandler{sessions: sessions}
}

// Create abre una sesión nueva, opcionalmente con filas precargadas.
// POST /api/purchase-invoices/sessions
func (h *GridHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	prefill, err := in.Patches()
	if err != nil {
		return writeError(c, err)
	}
	_, res, err := h.sessions.Create(c.Context(), prefill)
	return writeResult(c, fiber.StatusCreated, res, 0, err)
}

// Get vista actual de la grilla.
// GET /api/purchase-invoices/sessions/:id
func (h *GridHandler) Get(c *fiber.Ctx) error {
	res, err := h.sessions.Get(c.Params("id"))
	return writeResult(c, fiber.StatusOK, res, 0, err)
}

// Discard cierra la sesión sin guardar.
// DELETE /api/purchase-invoices/sessions/:id
func (h *GridHandler) Discard(c *fiber.Ctx) error {
	if err := h.sessions.Discard(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Event aplica un evento de la UI (clic, tecla, texto, formulario de fila).
// POST /api/purchase-invoices/sessions/:id/events
func (h *GridHandler) Event(c *fiber.Ctx) error {
	var in dto.GridEventRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	var gen uint64
	res, err := h.sessions.Apply(c.Params("id"), func(s *grid.Session) error {
		var err error
		gen, err = applyEvent(s, in)
		return err
	})
	return writeResult(c, fiber.StatusOK, res, gen, err)
}

// applyEvent despacha el evento; devuelve la generación de búsqueda cuando el evento cambia la consulta.
func applyEvent(s *grid.Session, in dto.GridEventRequest) (uint64, error) {
	switch in.Type {
	case dto.EventClickCell:
		f, err := entity.ParseField(in.Field)
		if err != nil {
			return 0, err
		}
		return 0, s.ClickCell(in.Row, f)
	case dto.EventInput:
		return s.Input(in.Text)
	case dto.EventKey:
		k, err := parseKey(in.Key)
		if err != nil {
			return 0, err
		}
		return 0, s.KeyDown(k)
	case dto.EventBlur:
		return 0, s.Blur()
	case dto.EventClickOutside:
		return 0, s.ClickOutside()
	case dto.EventSelectResult:
		return 0, s.SelectResult(in.Index)
	case dto.EventSearch:
		g := in.Generation
		if g == 0 {
			g = s.Lookup().Generation()
		}
		s.FlushSearch(g)
		return 0, nil
	case dto.EventOpenAddRow:
		return 0, s.OpenAddRow()
	case dto.EventOpenEditRow:
		return 0, s.OpenEditRow(in.Row)
	case dto.EventDraftField:
		f, err := entity.ParseField(in.Field)
		if err != nil {
			return 0, err
		}
		return s.SetDraftField(f, in.Text)
	case dto.EventDraftSearch:
		f, err := entity.ParseField(in.Field)
		if err != nil {
			return 0, err
		}
		return 0, s.SearchDraft(f)
	case dto.EventSubmitDraft:
		return 0, s.SubmitDraft()
	case dto.EventCancelDraft:
		s.CancelDraft()
		return 0, nil
	}
	return 0, fmt.Errorf("%w: evento %q", domain.ErrInvalidInput, in.Type)
}

// parseKey acepta los nombres de tecla del navegador (Enter, Escape, ArrowUp, ArrowDown).
func parseKey(k string) (grid.Key, error) {
	switch strings.ToLower(strings.TrimSpace(k)) {
	case "enter":
		return grid.KeyEnter, nil
	case "escape", "esc":
		return grid.KeyEscape, nil
	case "arrowup", "up":
		return grid.KeyUp, nil
	case "arrowdown", "down":
		return grid.KeyDown, nil
	}
	return "", fmt.Errorf("%w: tecla %q", domain.ErrInvalidInput, k)
}

// AddItem alta directa de una fila.
// POST /api/purchase-invoices/sessions/:id/items
func (h *GridHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	patch, err := in.ToPatch()
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.sessions.Apply(c.Params("id"), func(s *grid.Session) error {
		_, err := s.AddItem(patch)
		return err
	})
	return writeResult(c, fiber.StatusCreated, res, 0, err)
}

// UpdateItem cambia los campos enviados de la fila :index (base 0).
// PATCH /api/purchase-invoices/sessions/:id/items/:index
func (h *GridHandler) UpdateItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return writeError(c, fmt.Errorf("%w: índice de fila", domain.ErrInvalidInput))
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	patch, err := in.ToPatch()
	if err != nil {
		return writeError(c, err)
	}
	if patch.Empty() {
		return writeError(c, fmt.Errorf("%w: no se envió ningún campo", domain.ErrInvalidInput))
	}
	res, err := h.sessions.Apply(c.Params("id"), func(s *grid.Session) error {
		_, err := s.UpdateItem(index, patch)
		return err
	})
	return writeResult(c, fiber.StatusOK, res, 0, err)
}

// RemoveItem elimina la fila :index (base 0).
// DELETE /api/purchase-invoices/sessions/:id/items/:index
func (h *GridHandler) RemoveItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return writeError(c, fmt.Errorf("%w: índice de fila", domain.ErrInvalidInput))
	}
	res, err := h.sessions.Apply(c.Params("id"), func(s *grid.Session) error {
		_, err := s.RemoveItem(index)
		return err
	})
	return writeResult(c, fiber.StatusOK, res, 0, err)
}

// Adjustments descuento, impuesto, gastos y pagado de la factura.
// PUT /api/purchase-invoices/sessions/:id/adjustments
func (h *GridHandler) Adjustments(c *fiber.Ctx) error {
	var in dto.AdjustmentsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.sessions.Apply(c.Params("id"), func(s *grid.Session) error {
		return applyAdjustments(s, in)
	})
	return writeResult(c, fiber.StatusOK, res, 0, err)
}

func applyAdjustments(s *grid.Session, in dto.AdjustmentsRequest) error {
	if in.Discount != nil || in.DiscountType != nil {
		cur := s.Invoice()
		raw := cur.Discount.String()
		if in.Discount != nil {
			raw = *in.Discount
		}
		t := cur.DiscountType
		if in.DiscountType != nil {
			parsed, ok := entity.ParseDiscountType(*in.DiscountType)
			if !ok {
				return fmt.Errorf("%w: discount_type %q", domain.ErrInvalidInput, *in.DiscountType)
			}
			t = parsed
		}
		if err := s.SetInvoiceDiscount(raw, t); err != nil {
			return err
		}
	}
	if in.Tax != nil {
		s.SetInvoiceTax(*in.Tax)
	}
	if in.Expenses != nil {
		s.SetExpenses(*in.Expenses)
	}
	if in.AmountPaid != nil {
		s.SetAmountPaid(*in.AmountPaid)
	}
	return nil
}

// Header número, proveedor, fecha y notas.
// PUT /api/purchase-invoices/sessions/:id/header
func (h *GridHandler) Header(c *fiber.Ctx) error {
	var in dto.HeaderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	date, err := in.ParsedDate()
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.sessions.Apply(c.Params("id"), func(s *grid.Session) error {
		s.SetHeader(in.Number, in.Supplier, date, in.Notes)
		return nil
	})
	return writeResult(c, fiber.StatusOK, res, 0, err)
}

// Save valida y guarda la factura. 422 si no pasa la validación.
// POST /api/purchase-invoices/sessions/:id/save
func (h *GridHandler) Save(c *fiber.Ctx) error {
	saved, res, err := h.sessions.Save(c.Context(), c.Params("id"))
	if err != nil {
		return writeResult(c, fiber.StatusOK, res, 0, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.SaveResponse{
		Invoice:       saved,
		Totals:        invoicecalc.ComputeTotals(saved),
		Notifications: notifications(res),
	})
}

// PDF descarga la factura en PDF.
// GET /api/purchase-invoices/sessions/:id/pdf
func (h *GridHandler) PDF(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.sessions.GeneratePDF(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="purchase-invoice-%s.pdf"`, id))
	return c.Send(out)
}
