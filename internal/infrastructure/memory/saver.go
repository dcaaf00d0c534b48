package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/compras-grid/internal/application/grid"
	"github.com/jhoicas/compras-grid/internal/domain"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
)

var _ grid.InvoiceSaver = (*InvoiceStore)(nil)

// InvoiceStore guarda las facturas en un mapa (por ID).
type InvoiceStore struct {
	mu       sync.RWMutex
	invoices map[string]*entity.Invoice
	order    []string
}

// NewInvoiceStore construye el almacén vacío.
func NewInvoiceStore() *InvoiceStore {
	return &InvoiceStore{invoices: make(map[string]*entity.Invoice)}
}

// SaveInvoice guarda una copia; volver a guardar el mismo ID la reemplaza.
func (s *InvoiceStore) SaveInvoice(_ context.Context, inv *entity.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invoices[inv.ID]; !ok {
		s.order = append(s.order, inv.ID)
	}
	s.invoices[inv.ID] = inv.Clone()
	return nil
}

// GetByID obtiene una copia de la factura guardada.
func (s *InvoiceStore) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.invoices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return inv.Clone(), nil
}

// List facturas en orden de primer guardado.
func (s *InvoiceStore) List() []*entity.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Invoice, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.invoices[id].Clone())
	}
	return out
}
