// grid abre una factura de compra en la terminal.
//
// Uso: go run ./cmd/grid
// El catálogo y el guardado siguen CATALOG_SOURCE (memory por defecto). El log va a grid.log
// para no ensuciar la pantalla.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhoicas/compras-grid/internal/application/grid"
	"github.com/jhoicas/compras-grid/internal/bootstrap"
	"github.com/jhoicas/compras-grid/internal/infrastructure/memory"
	"github.com/jhoicas/compras-grid/internal/infrastructure/notify"
	"github.com/jhoicas/compras-grid/internal/interfaces/tui"
	"github.com/jhoicas/compras-grid/pkg/config"
	"github.com/jhoicas/compras-grid/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}

	logFile, err := os.OpenFile("grid.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("abrir log: %w", err)
	}
	defer logFile.Close()
	log := logger.NewWithWriter(logFile, cfg.App.LogLevel)

	ctx := context.Background()
	adapters, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer adapters.Close()

	products, err := adapters.Catalog.ListCatalog(ctx)
	if err != nil {
		return fmt.Errorf("cargar catálogo: %w", err)
	}

	toasts := memory.NewRecorder()
	session, err := grid.NewSession(grid.Options{
		Catalog:     products,
		Saver:       adapters.Saver,
		Notifier:    notify.Fanout{toasts, notify.NewLogNotifier(log)},
		DefaultUnit: cfg.Grid.DefaultUnit,
		Currency:    cfg.Grid.Currency,
		MinRows:     cfg.Grid.MinRows,
		LookupLimit: cfg.Grid.LookupLimit,
	})
	if err != nil {
		return err
	}
	log.Info().Str("invoice_id", session.ID()).Int("products", len(products)).Msg("sesión de terminal iniciada")

	model := tui.New(tui.Options{
		Session:       session,
		Notifications: toasts,
		Debounce:      cfg.Grid.SearchDebounce,
	})
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
