// Package purchase caso de uso de la factura de compra: mantiene las sesiones de la grilla abiertas
// por los clientes (HTTP o terminal) y serializa el acceso a cada una.
package purchase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/compras-grid/internal/application/grid"
	"github.com/jhoicas/compras-grid/internal/domain"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
)

// Settings valores por defecto para cada sesión nueva.
type Settings struct {
	DefaultUnit string
	Currency    string
	MinRows     int
	LookupLimit int
}

// Result estado de la grilla tras una operación, con los avisos que produjo.
type Result struct {
	View          grid.GridView
	Notifications []grid.Notification
}

type entry struct {
	mu       sync.Mutex
	session  *grid.Session
	outbox   *outbox
	lastUsed time.Time
}

// SessionManager registro de sesiones abiertas indexadas por ID de factura.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	catalog   grid.ProductCatalog
	saver     grid.InvoiceSaver
	invoices  InvoiceReader
	generator InvoicePDFGenerator
	notifier  grid.Notifier
	settings  Settings
	now       func() time.Time
}

// NewSessionManager construye el caso de uso inyectando sus colaboradores.
// notifier recibe una copia de todos los avisos (p. ej. el log); puede ser nil.
func NewSessionManager(
	catalog grid.ProductCatalog,
	saver grid.InvoiceSaver,
	invoices InvoiceReader,
	generator InvoicePDFGenerator,
	notifier grid.Notifier,
	settings Settings,
) *SessionManager {
	return &SessionManager{
		sessions:  make(map[string]*entry),
		catalog:   catalog,
		saver:     saver,
		invoices:  invoices,
		generator: generator,
		notifier:  notifier,
		settings:  settings,
		now:       time.Now,
	}
}

// Create abre una sesión nueva. El catálogo se lee una vez y queda fijo para la sesión.
func (m *SessionManager) Create(ctx context.Context, prefill []entity.LineItemPatch) (string, Result, error) {
	products, err := m.catalog.ListCatalog(ctx)
	if err != nil {
		return "", Result{}, fmt.Errorf("purchase: cargar catálogo: %w", err)
	}
	out := &outbox{forward: m.notifier}
	s, err := grid.NewSession(grid.Options{
		Catalog:     products,
		Saver:       m.saver,
		Notifier:    out,
		DefaultUnit: m.settings.DefaultUnit,
		Currency:    m.settings.Currency,
		MinRows:     m.settings.MinRows,
		LookupLimit: m.settings.LookupLimit,
		Prefill:     prefill,
		Now:         m.now,
	})
	if err != nil {
		return "", Result{}, err
	}

	e := &entry{session: s, outbox: out, lastUsed: m.now()}
	m.mu.Lock()
	m.sessions[s.ID()] = e
	m.mu.Unlock()

	return s.ID(), Result{View: s.View(), Notifications: out.drain()}, nil
}

func (m *SessionManager) get(id string) (*entry, error) {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("sesión %s: %w", id, domain.ErrNotFound)
	}
	return e, nil
}

// Apply ejecuta fn con acceso exclusivo a la sesión y devuelve la vista resultante.
// El Result se devuelve también cuando fn falla, para que la UI muestre los avisos de validación.
func (m *SessionManager) Apply(id string, fn func(s *grid.Session) error) (Result, error) {
	e, err := m.get(id)
	if err != nil {
		return Result{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lastUsed = m.now()
	var fnErr error
	if fn != nil {
		fnErr = fn(e.session)
	}
	return Result{View: e.session.View(), Notifications: e.outbox.drain()}, fnErr
}

// Get vista actual de la sesión.
func (m *SessionManager) Get(id string) (Result, error) {
	return m.Apply(id, nil)
}

// Save guarda la factura de la sesión a través del colaborador de guardado.
func (m *SessionManager) Save(ctx context.Context, id string) (*entity.Invoice, Result, error) {
	var saved *entity.Invoice
	res, err := m.Apply(id, func(s *grid.Session) error {
		inv, err := s.Save(ctx)
		saved = inv
		return err
	})
	return saved, res, err
}

// Discard cierra la sesión sin guardar.
func (m *SessionManager) Discard(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("sesión %s: %w", id, domain.ErrNotFound)
	}
	delete(m.sessions, id)
	return nil
}

// GeneratePDF PDF de la factura tal como está en la sesión (guardada o no).
func (m *SessionManager) GeneratePDF(ctx context.Context, id string) ([]byte, error) {
	if m.generator == nil {
		return nil, fmt.Errorf("purchase: generador de PDF no configurado")
	}
	var inv *entity.Invoice
	if _, err := m.Apply(id, func(s *grid.Session) error {
		inv = s.Invoice()
		return nil
	}); err != nil {
		return nil, err
	}
	pdf, err := m.generator.GeneratePurchaseInvoicePDF(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("purchase: generar PDF: %w", err)
	}
	return pdf, nil
}

// GetInvoice factura ya guardada, con sus totales recalculables por el llamador.
func (m *SessionManager) GetInvoice(ctx context.Context, id string) (*entity.Invoice, error) {
	if m.invoices == nil {
		return nil, fmt.Errorf("factura %s: %w", id, domain.ErrNotFound)
	}
	inv, err := m.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("factura %s: %w", id, err)
	}
	return inv, nil
}

// ReprintPDF PDF de una factura guardada, sin necesidad de una sesión abierta.
func (m *SessionManager) ReprintPDF(ctx context.Context, id string) ([]byte, error) {
	if m.generator == nil {
		return nil, fmt.Errorf("purchase: generador de PDF no configurado")
	}
	inv, err := m.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	pdf, err := m.generator.GeneratePurchaseInvoicePDF(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("purchase: generar PDF: %w", err)
	}
	return pdf, nil
}

// SearchProducts búsqueda sin sesión (mismo criterio que el buscador de la grilla).
func (m *SessionManager) SearchProducts(ctx context.Context, field entity.Field, query string) ([]entity.Product, error) {
	if !field.Searchable() {
		return nil, fmt.Errorf("%w: el campo %q no admite búsqueda", domain.ErrInvalidInput, field)
	}
	products, err := m.catalog.ListCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("purchase: cargar catálogo: %w", err)
	}
	return grid.Search(products, field, query, m.settings.LookupLimit), nil
}

// Sweep descarta las sesiones sin uso desde hace más de maxIdle; devuelve cuántas cerró.
func (m *SessionManager) Sweep(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessions {
		e.mu.Lock()
		idle := e.lastUsed.Before(cutoff)
		e.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Len número de sesiones abiertas.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// outbox acumula los avisos de una sesión y los reenvía al notificador global.
type outbox struct {
	forward grid.Notifier
	pending []grid.Notification
}

func (o *outbox) Notify(n grid.Notification) {
	o.pending = append(o.pending, n)
	if o.forward != nil {
		o.forward.Notify(n)
	}
}

func (o *outbox) drain() []grid.Notification {
	out := o.pending
	o.pending = nil
	return out
}
