package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/compras-grid/internal/application/dto"
	"github.com/jhoicas/compras-grid/internal/application/purchase"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
)

// ProductHandler búsqueda de productos fuera de una sesión (protegido).
type ProductHandler struct {
	sessions *purchase.SessionManager
}

// NewProductHandler construye el handler.
func NewProductHandler(sessions *purchase.SessionManager) *ProductHandler {
	return &ProductHandler{sessions: sessions}
}

// Search GET /api/products?q=&field=name|code
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	field, err := entity.ParseField(c.Query("field", string(entity.FieldName)))
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.sessions.SearchProducts(c.Context(), field, c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProductResponses(list))
}
