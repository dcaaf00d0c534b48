package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/compras-grid/internal/application/grid"
	"github.com/jhoicas/compras-grid/internal/domain"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
)

// Tipos de evento de la grilla aceptados por POST /sessions/:id/events.
const (
	EventClickCell    = "click_cell"
	EventInput        = "input"
	EventKey          = "key"
	EventBlur         = "blur"
	EventClickOutside = "click_outside"
	EventSelectResult = "select_result"
	EventSearch       = "search"
	EventOpenAddRow   = "open_add_row"
	EventOpenEditRow  = "open_edit_row"
	EventDraftField   = "draft_field"
	EventDraftSearch  = "draft_search"
	EventSubmitDraft  = "submit_draft"
	EventCancelDraft  = "cancel_draft"
)

// LineItemInput campos de una fila; los ausentes (null) no se modifican.
type LineItemInput struct {
	Code         *string          `json:"code,omitempty"`
	Name         *string          `json:"name,omitempty"`
	Manufacturer *string          `json:"manufacturer,omitempty"`
	Size         *string          `json:"size,omitempty"`
	Unit         *string          `json:"unit,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Discount     *decimal.Decimal `json:"discount,omitempty"`
	DiscountType *string          `json:"discount_type,omitempty"`
	Tax          *decimal.Decimal `json:"tax,omitempty"`
}

// ToPatch convierte el cuerpo al patch de dominio.
func (in LineItemInput) ToPatch() (entity.LineItemPatch, error) {
	p := entity.LineItemPatch{
		Code: in.Code, Name: in.Name, Manufacturer: in.Manufacturer, Size: in.Size,
		Unit: in.Unit, Notes: in.Notes,
		Quantity: in.Quantity, Price: in.Price, Discount: in.Discount, Tax: in.Tax,
	}
	if in.DiscountType != nil {
		t, ok := entity.ParseDiscountType(*in.DiscountType)
		if !ok {
			return entity.LineItemPatch{}, fmt.Errorf("%w: discount_type %q", domain.ErrInvalidInput, *in.DiscountType)
		}
		p.DiscountType = &t
	}
	return p, p.Validate()
}

// CreateSessionRequest abre una sesión, opcionalmente con filas precargadas.
type CreateSessionRequest struct {
	Items []LineItemInput `json:"items"`
}

// Patches convierte las filas precargadas.
func (r CreateSessionRequest) Patches() ([]entity.LineItemPatch, error) {
	out := make([]entity.LineItemPatch, 0, len(r.Items))
	for i, it := range r.Items {
		p, err := it.ToPatch()
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", i+1, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// AddItemRequest alta directa de una fila (sin pasar por el formulario).
type AddItemRequest struct {
	LineItemInput
}

// UpdateItemRequest cambios sobre la fila indicada en la ruta.
type UpdateItemRequest struct {
	LineItemInput
}

// GridEventRequest evento de la UI sobre la grilla. Cada tipo usa solo algunos campos:
// click_cell (row, field), input (text), key (key), select_result (index),
// search (generation; 0 = la última), open_edit_row (row), draft_field (field, text), draft_search (field).
type GridEventRequest struct {
	Type       string `json:"type"`
	Row        int    `json:"row"`
	Field      string `json:"field"`
	Text       string `json:"text"`
	Key        string `json:"key"`
	Index      int    `json:"index"`
	Generation uint64 `json:"generation"`
}

// AdjustmentsRequest ajustes de la factura como texto crudo (se interpreta igual que en la grilla).
// Los campos ausentes no se modifican.
type AdjustmentsRequest struct {
	Discount     *string `json:"discount,omitempty"`
	DiscountType *string `json:"discount_type,omitempty"`
	Tax          *string `json:"tax,omitempty"`
	Expenses     *string `json:"expenses,omitempty"`
	AmountPaid   *string `json:"amount_paid,omitempty"`
}

// HeaderRequest cabecera de la factura. Date en formato YYYY-MM-DD; vacío conserva la actual.
type HeaderRequest struct {
	Number   string `json:"number"`
	Supplier string `json:"supplier"`
	Date     string `json:"date"`
	Notes    string `json:"notes"`
}

// ParsedDate fecha de la cabecera; cero si viene vacía.
func (r HeaderRequest) ParsedDate() (time.Time, error) {
	if strings.TrimSpace(r.Date) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(r.Date))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q (YYYY-MM-DD)", domain.ErrInvalidInput, r.Date)
	}
	return t, nil
}

// GridResponse vista de la grilla tras la operación más los avisos generados.
type GridResponse struct {
	View             grid.GridView       `json:"view"`
	Notifications    []grid.Notification `json:"notifications"`
	SearchGeneration uint64              `json:"search_generation,omitempty"`
}

// SaveResponse factura guardada con sus totales.
type SaveResponse struct {
	Invoice       *entity.Invoice     `json:"invoice"`
	Totals        entity.Totals       `json:"totals"`
	Notifications []grid.Notification `json:"notifications"`
}

// ProductResponse resultado de GET /api/products.
type ProductResponse struct {
	ID       string          `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	Category string          `json:"category"`
}

// ToProductResponses mapea productos del dominio.
func ToProductResponses(list []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ProductResponse{
			ID: p.ID, Code: p.Code, Name: p.Name, Price: p.Price,
			Quantity: p.Quantity, Unit: p.Unit, Category: p.Category,
		})
	}
	return out
}

// ValidationErrorResponse 422: el error más la vista y los avisos que la UI debe mostrar.
type ValidationErrorResponse struct {
	ErrorResponse
	View          grid.GridView       `json:"view"`
	Notifications []grid.Notification `json:"notifications"`
}
