// Package notify adaptadores del puerto grid.Notifier.
package notify

import (
	"github.com/jhoicas/compras-grid/internal/application/grid"
	"github.com/jhoicas/compras-grid/pkg/logger"
)

var (
	_ grid.Notifier = (*LogNotifier)(nil)
	_ grid.Notifier = Fanout(nil)
)

// LogNotifier registra cada aviso en el log estructurado.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador con el logger de la app.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify éxito en info, validación en warn.
func (n *LogNotifier) Notify(ev grid.Notification) {
	e := n.log.Info()
	if ev.Kind == grid.NotifyValidation {
		e = n.log.Warn()
	}
	e.Str("kind", string(ev.Kind)).Msg(ev.Message)
}

// Fanout reenvía el aviso a todos los notificadores, en orden.
type Fanout []grid.Notifier

// Notify implementa grid.Notifier.
func (f Fanout) Notify(ev grid.Notification) {
	for _, n := range f {
		if n != nil {
			n.Notify(ev)
		}
	}
}
