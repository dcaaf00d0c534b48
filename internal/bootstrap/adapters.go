// Package bootstrap arma los adaptadores de catálogo y guardado según la configuración.
// Lo comparten la API y el cliente de terminal.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/compras-grid/internal/application/grid"
	"github.com/jhoicas/compras-grid/internal/application/purchase"
	"github.com/jhoicas/compras-grid/internal/infrastructure/memory"
	"github.com/jhoicas/compras-grid/internal/infrastructure/postgres"
	"github.com/jhoicas/compras-grid/pkg/config"
	"github.com/jhoicas/compras-grid/pkg/logger"
)

// Adapters colaboradores de la grilla más la función que libera sus recursos.
// Saver e Invoices son el mismo almacén: lo que se guarda se puede volver a leer.
type Adapters struct {
	Catalog  grid.ProductCatalog
	Saver    grid.InvoiceSaver
	Invoices purchase.InvoiceReader
	Close    func()
}

// Build con CATALOG_SOURCE=postgres conecta el pool, asegura el esquema y usa PostgreSQL para
// catálogo y guardado; con memory usa el catálogo de demostración (o CATALOG_FILE) y un almacén en memoria.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Adapters, error) {
	if cfg.Grid.CatalogSource == config.CatalogPostgres {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Str("catalog", "postgres").Msg("adaptadores listos")
		runner := postgres.NewTxRunner(pool)
		return &Adapters{
			Catalog:  postgres.NewProductCatalogRepository(pool),
			Saver:    runner,
			Invoices: runner,
			Close:    pool.Close,
		}, nil
	}

	catalog := memory.DefaultCatalog()
	if cfg.Grid.CatalogFile != "" {
		c, err := memory.LoadCatalogFile(cfg.Grid.CatalogFile, cfg.Grid.CatalogCharset)
		if err != nil {
			return nil, err
		}
		catalog = c
	}
	log.Info().Str("catalog", "memory").Str("file", cfg.Grid.CatalogFile).Msg("adaptadores listos")
	store := memory.NewInvoiceStore()
	return &Adapters{
		Catalog:  catalog,
		Saver:    store,
		Invoices: store,
		Close:    func() {},
	}, nil
}
