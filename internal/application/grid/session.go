package grid

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/compras-grid/internal/domain"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
	"github.com/jhoicas/compras-grid/internal/domain/invoicecalc"
)

// Valores por defecto de la grilla.
const (
	DefaultUnit     = "قطعة"
	DefaultCurrency = "ر.س"
	DefaultMinRows  = 10
)

// Key teclas que la grilla interpreta.
type Key string

const (
	KeyEnter  Key = "enter"
	KeyEscape Key = "escape"
	KeyUp     Key = "up"
	KeyDown   Key = "down"
)

// Options configuración e inyección de colaboradores de una sesión.
type Options struct {
	Catalog     []entity.Product
	Saver       InvoiceSaver
	Notifier    Notifier
	DefaultUnit string
	Currency    string
	MinRows     int
	LookupLimit int
	// Prefill filas iniciales (p. ej. extraídas de un PDF del proveedor).
	Prefill []entity.LineItemPatch
	Now     func() time.Time
}

// Session estado de una factura de compra en edición: la factura, el único modo de edición
// vigente y el buscador de productos. No es segura para uso concurrente.
type Session struct {
	inv    *entity.Invoice
	mode   Mode
	lookup *Lookup

	cellDraft string
	selected  bool
	rowDraft  *RowDraft

	saver    InvoiceSaver
	notifier Notifier
	currency string
	minRows  int
}

// NewSession crea la factura vacía (o precargada con opts.Prefill) en modo Idle.
func NewSession(opts Options) (*Session, error) {
	if opts.DefaultUnit == "" {
		opts.DefaultUnit = DefaultUnit
	}
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	if opts.MinRows <= 0 {
		opts.MinRows = DefaultMinRows
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	now := opts.Now()
	s := &Session{
		inv: &entity.Invoice{
			ID:           uuid.New().String(),
			Date:         now,
			DiscountType: entity.DiscountPercentage,
			DefaultUnit:  opts.DefaultUnit,
			CreatedAt:    now,
		},
		mode:     Idle(),
		lookup:   NewLookup(opts.Catalog, opts.LookupLimit),
		saver:    opts.Saver,
		notifier: opts.Notifier,
		currency: opts.Currency,
		minRows:  opts.MinRows,
	}
	for i, p := range opts.Prefill {
		if _, err := invoicecalc.AddItem(s.inv, p); err != nil {
			return nil, fmt.Errorf("precarga fila %d: %w", i+1, err)
		}
	}
	return s, nil
}

// ID identificador de la factura en edición.
func (s *Session) ID() string { return s.inv.ID }

// Mode modo de edición vigente.
func (s *Session) Mode() Mode { return s.mode }

// Lookup buscador de productos de la sesión.
func (s *Session) Lookup() *Lookup { return s.lookup }

// Invoice copia de la factura actual.
func (s *Session) Invoice() *entity.Invoice { return s.inv.Clone() }

// Totals totales derivados de la factura.
func (s *Session) Totals() entity.Totals { return invoicecalc.ComputeTotals(s.inv) }

// ──────────────────────────────────────────────────────────────────────────────
// Puntos de mutación directos
// ──────────────────────────────────────────────────────────────────────────────

// AddItem agrega una fila al final. No altera índices existentes.
func (s *Session) AddItem(patch entity.LineItemPatch) (entity.LineItem, error) {
	return invoicecalc.AddItem(s.inv, patch)
}

// UpdateItem aplica patch a la fila index.
func (s *Session) UpdateItem(index int, patch entity.LineItemPatch) (entity.LineItem, error) {
	return invoicecalc.UpdateItem(s.inv, index, patch)
}

// RemoveItem borra la fila index y reubica la celda o el editor activos para que nunca
// apunten a otro ítem.
func (s *Session) RemoveItem(index int) (entity.LineItem, error) {
	removed, err := invoicecalc.RemoveItem(s.inv, index)
	if err != nil {
		return removed, err
	}
	next := s.mode.afterRemoval(index)
	if next.Kind == ModeIdle && s.mode.Kind != ModeIdle {
		s.reset()
	} else {
		s.mode = next
		if s.lookup.IsOpen() && s.lookup.row >= 0 {
			s.lookup.row = next.Row
		}
	}
	s.notifier.Notify(Notification{Kind: NotifySuccess, Message: msgItemRemoved})
	return removed, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición en línea (celda activa)
// ──────────────────────────────────────────────────────────────────────────────

// ClickCell activa la celda (row, field). Si otra celda estaba activa se confirma primero su valor.
// Con un editor de fila abierto la activación en línea está deshabilitada.
func (s *Session) ClickCell(row int, field entity.Field) error {
	if s.mode.RowEditor() {
		return fmt.Errorf("%w: %s", domain.ErrModeConflict, s.mode)
	}
	if row < 0 || row >= len(s.inv.Items) {
		return fmt.Errorf("%w: %d", domain.ErrIndexOutOfRange, row)
	}
	if !field.Editable() {
		return fmt.Errorf("%w: la columna %q no es editable", domain.ErrInvalidInput, field)
	}
	if s.mode.IsCell(row, field) {
		return nil
	}
	// el error de la celda anterior ya se avisó y no impide activar la nueva
	s.commitPending()
	s.mode = EditingCell(row, field)
	s.cellDraft = invoicecalc.FieldText(s.inv.Items[row], field)
	s.selected = true
	if field.Searchable() {
		s.lookup.Open(field, s.cellDraft, row)
	}
	return nil
}

// Input reemplaza el texto de la celda activa. Si el buscador está abierto devuelve la
// generación de búsqueda que debe aplicarse con FlushSearch al vencer el debounce.
func (s *Session) Input(text string) (uint64, error) {
	if s.mode.Kind != ModeEditingCell {
		return 0, domain.ErrNoActiveCell
	}
	s.cellDraft = text
	s.selected = false
	if s.lookup.IsOpen() {
		return s.lookup.SetQuery(text), nil
	}
	return 0, nil
}

// FlushSearch aplica una búsqueda con debounce; las generaciones viejas no hacen nada.
func (s *Session) FlushSearch(gen uint64) bool {
	return s.lookup.Flush(gen)
}

// KeyDown procesa Enter, Escape y las flechas sobre la celda activa o el editor de fila.
func (s *Session) KeyDown(k Key) error {
	switch s.mode.Kind {
	case ModeEditingCell:
		switch k {
		case KeyEnter:
			s.lookup.Search()
			// sin escribir ni navegar, Enter confirma el texto y no reemplaza la fila con el catálogo
			if !s.selected || s.lookup.Cursor() >= 0 {
				if p, ok := s.lookup.Highlighted(); ok {
					return s.selectProduct(p)
				}
			}
			return s.commitCell()
		case KeyEscape:
			s.reset()
			return nil
		case KeyUp:
			s.lookup.MoveUp()
		case KeyDown:
			s.lookup.MoveDown()
		}
		return nil
	case ModeAddingRow, ModeEditingRow:
		switch k {
		case KeyEnter:
			s.lookup.Search()
			if p, ok := s.lookup.Highlighted(); ok {
				return s.selectProduct(p)
			}
			return s.SubmitDraft()
		case KeyEscape:
			if s.lookup.IsOpen() {
				s.lookup.Close()
				return nil
			}
			s.CancelDraft()
		case KeyUp:
			s.lookup.MoveUp()
		case KeyDown:
			s.lookup.MoveDown()
		}
		return nil
	}
	return nil
}

// Blur el input activo perdió el foco: se confirma el valor.
func (s *Session) Blur() error {
	if s.mode.Kind != ModeEditingCell {
		return nil
	}
	return s.commitCell()
}

// ClickOutside clic fuera de cualquier celda o del buscador: igual que Blur.
func (s *Session) ClickOutside() error {
	if s.mode.RowEditor() {
		s.lookup.Close()
		return nil
	}
	return s.Blur()
}

// SelectResult clic sobre el resultado i del buscador.
func (s *Session) SelectResult(i int) error {
	p, ok := s.lookup.At(i)
	if !ok {
		return fmt.Errorf("%w: resultado %d", domain.ErrInvalidInput, i)
	}
	return s.selectProduct(p)
}

// selectProduct llena código, nombre, precio y unidad en la fila (o en el formulario) y cierra el buscador.
func (s *Session) selectProduct(p entity.Product) error {
	switch s.mode.Kind {
	case ModeEditingCell:
		row := s.mode.Row
		s.reset()
		_, err := invoicecalc.UpdateItem(s.inv, row, entity.PatchFromProduct(p))
		return err
	case ModeAddingRow, ModeEditingRow:
		s.rowDraft.fillProduct(p)
		s.lookup.Close()
		return nil
	}
	return domain.ErrNoActiveCell
}

// commitCell aplica el texto de la celda activa. Un valor rechazado se descarta con aviso de validación.
func (s *Session) commitCell() error {
	row, field, text := s.mode.Row, s.mode.Field, s.cellDraft
	s.reset()
	patch, err := invoicecalc.PatchForField(field, text)
	if err == nil {
		_, err = invoicecalc.UpdateItem(s.inv, row, patch)
	}
	if err != nil {
		s.notifier.Notify(Notification{Kind: NotifyValidation, Message: msgCellRejected})
	}
	return err
}

// commitPending confirma la celda activa antes de cambiar de modo; el error ya quedó avisado.
func (s *Session) commitPending() {
	if s.mode.Kind == ModeEditingCell {
		_ = s.commitCell()
	}
}

func (s *Session) reset() {
	s.mode = Idle()
	s.cellDraft = ""
	s.selected = false
	s.rowDraft = nil
	s.lookup.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Editores de fila completa (formulario de alta y diálogo de edición)
// ──────────────────────────────────────────────────────────────────────────────

// OpenAddRow clic en la fila de alta rápida: abre el formulario de nueva fila.
func (s *Session) OpenAddRow() error {
	if s.mode.RowEditor() {
		return fmt.Errorf("%w: %s", domain.ErrModeConflict, s.mode)
	}
	s.commitPending()
	s.mode = AddingRow()
	s.rowDraft = newRowDraft(s.inv.DefaultUnit)
	return nil
}

// OpenEditRow abre el diálogo de edición de la fila index.
func (s *Session) OpenEditRow(index int) error {
	if s.mode.RowEditor() {
		return fmt.Errorf("%w: %s", domain.ErrModeConflict, s.mode)
	}
	if index < 0 || index >= len(s.inv.Items) {
		return fmt.Errorf("%w: %d", domain.ErrIndexOutOfRange, index)
	}
	s.commitPending()
	s.mode = EditingRow(index)
	s.rowDraft = rowDraftFrom(s.inv.Items[index])
	return nil
}

// SetDraftField escribe el texto de una columna del formulario. Si el buscador está abierto
// sobre esa columna devuelve la generación de búsqueda.
func (s *Session) SetDraftField(field entity.Field, raw string) (uint64, error) {
	if !s.mode.RowEditor() {
		return 0, fmt.Errorf("%w: no hay formulario abierto", domain.ErrModeConflict)
	}
	if !field.Editable() {
		return 0, fmt.Errorf("%w: la columna %q no es editable", domain.ErrInvalidInput, field)
	}
	s.rowDraft.set(field, raw)
	if s.lookup.IsOpen() && s.lookup.Field() == field {
		return s.lookup.SetQuery(raw), nil
	}
	return 0, nil
}

// SearchDraft abre el buscador sobre la columna de código o nombre del formulario.
func (s *Session) SearchDraft(field entity.Field) error {
	if !s.mode.RowEditor() {
		return fmt.Errorf("%w: no hay formulario abierto", domain.ErrModeConflict)
	}
	if !field.Searchable() {
		return fmt.Errorf("%w: la columna %q no admite búsqueda", domain.ErrInvalidInput, field)
	}
	s.lookup.Open(field, s.rowDraft.get(field), s.mode.Row)
	return nil
}

// SubmitDraft valida el formulario y agrega o actualiza la fila. Si la validación falla
// se notifica y la factura no cambia.
func (s *Session) SubmitDraft() error {
	if !s.mode.RowEditor() {
		return fmt.Errorf("%w: no hay formulario abierto", domain.ErrModeConflict)
	}
	if !s.rowDraft.complete() {
		s.notifier.Notify(Notification{Kind: NotifyValidation, Message: msgItemIncomplete})
		return fmt.Errorf("%w: %s", domain.ErrValidation, "fila incompleta")
	}
	patch, err := s.rowDraft.patch()
	if err != nil {
		return err
	}
	if s.mode.Kind == ModeAddingRow {
		if _, err := invoicecalc.AddItem(s.inv, patch); err != nil {
			return err
		}
		s.reset()
		s.notifier.Notify(Notification{Kind: NotifySuccess, Message: msgItemAdded})
		return nil
	}
	if _, err := invoicecalc.UpdateItem(s.inv, s.mode.Row, patch); err != nil {
		return err
	}
	s.reset()
	s.notifier.Notify(Notification{Kind: NotifySuccess, Message: msgItemUpdated})
	return nil
}

// CancelDraft descarta el formulario.
func (s *Session) CancelDraft() {
	if s.mode.RowEditor() {
		s.reset()
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Cabecera, ajustes y guardado
// ──────────────────────────────────────────────────────────────────────────────

// SetHeader datos de cabecera de la factura.
func (s *Session) SetHeader(number, supplier string, date time.Time, notes string) {
	s.inv.Number = strings.TrimSpace(number)
	s.inv.Supplier = strings.TrimSpace(supplier)
	if !date.IsZero() {
		s.inv.Date = date
	}
	s.inv.Notes = notes
}

// SetInvoiceDiscount descuento de la factura; el texto no numérico vale 0.
func (s *Session) SetInvoiceDiscount(raw string, t entity.DiscountType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: tipo de descuento %q", domain.ErrInvalidInput, t)
	}
	s.inv.Discount = invoicecalc.ParseNonNegative(raw)
	s.inv.DiscountType = t
	return nil
}

// SetExpenses gastos adicionales de la factura.
func (s *Session) SetExpenses(raw string) { s.inv.Expenses = invoicecalc.ParseNonNegative(raw) }

// SetInvoiceTax impuesto (porcentaje) de la factura.
func (s *Session) SetInvoiceTax(raw string) { s.inv.Tax = invoicecalc.ParseNonNegative(raw) }

// SetAmountPaid monto pagado al proveedor.
func (s *Session) SetAmountPaid(raw string) { s.inv.AmountPaid = invoicecalc.ParseNonNegative(raw) }

// Validate reglas para guardar: al menos una fila y cada fila con nombre o código y cantidad > 0.
func (s *Session) Validate() error {
	if len(s.inv.Items) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, msgNoItems)
	}
	for i, it := range s.inv.Items {
		if strings.TrimSpace(it.Name) == "" && strings.TrimSpace(it.Code) == "" {
			return fmt.Errorf("%w: fila %d sin nombre ni código", domain.ErrValidation, i+1)
		}
		if !it.Quantity.GreaterThan(decimal.Zero) {
			return fmt.Errorf("%w: fila %d con cantidad %s", domain.ErrValidation, i+1, it.Quantity)
		}
	}
	return nil
}

// Save confirma la celda activa, valida y entrega la copia calculada al colaborador de guardado.
func (s *Session) Save(ctx context.Context) (*entity.Invoice, error) {
	s.commitPending()
	if err := s.Validate(); err != nil {
		msg := msgItemIncomplete
		if len(s.inv.Items) == 0 {
			msg = msgNoItems
		}
		s.notifier.Notify(Notification{Kind: NotifyValidation, Message: msg})
		return nil, err
	}
	if s.saver == nil {
		return nil, errors.New("grid: no hay colaborador de guardado configurado")
	}
	snapshot := s.inv.Clone()
	if err := s.saver.SaveInvoice(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("guardar factura: %w", err)
	}
	s.notifier.Notify(Notification{Kind: NotifySuccess, Message: msgInvoiceSaved})
	return snapshot, nil
}
