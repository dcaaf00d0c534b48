package memory

import (
	"sync"

	"github.com/jhoicas/compras-grid/internal/application/grid"
)

var _ grid.Notifier = (*Recorder)(nil)

// Recorder acumula los avisos hasta que la UI los consume con Drain.
type Recorder struct {
	mu     sync.Mutex
	events []grid.Notification
}

// NewRecorder construye la cola vacía.
func NewRecorder() *Recorder { return &Recorder{} }

// Notify encola el aviso.
func (r *Recorder) Notify(n grid.Notification) {
	r.mu.Lock()
	r.events = append(r.events, n)
	r.mu.Unlock()
}

// Drain devuelve y vacía los avisos pendientes.
func (r *Recorder) Drain() []grid.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	return out
}
