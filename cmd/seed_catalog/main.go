// seed_catalog carga productos en la tabla products de PostgreSQL.
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.csv]
// Sin argumento carga el catálogo de demostración. El CSV se lee con CATALOG_CHARSET
// (windows-1256 para exportaciones de Excel en árabe).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/compras-grid/internal/domain"
	"github.com/jhoicas/compras-grid/internal/infrastructure/memory"
	"github.com/jhoicas/compras-grid/internal/infrastructure/postgres"
	"github.com/jhoicas/compras-grid/pkg/config"
	"github.com/jhoicas/compras-grid/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	catalog := memory.DefaultCatalog()
	if len(os.Args) > 1 {
		catalog, err = memory.LoadCatalogFile(os.Args[1], cfg.Grid.CatalogCharset)
		if err != nil {
			log.Fatal().Err(err).Msg("leer catálogo")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema")
	}

	products, _ := catalog.ListCatalog(ctx)
	repo := postgres.NewProductCatalogRepository(pool)
	created, updated := 0, 0
	for _, p := range products {
		// distingue altas de actualizaciones para el resumen
		_, err := repo.GetByCode(ctx, p.Code)
		switch {
		case err == nil:
			updated++
		case errors.Is(err, domain.ErrNotFound):
			created++
		default:
			log.Fatal().Err(err).Str("code", p.Code).Msg("consultar producto")
		}
		if err := repo.Upsert(ctx, p); err != nil {
			log.Fatal().Err(err).Str("code", p.Code).Msg("guardar producto")
		}
	}
	log.Info().Int("created", created).Int("updated", updated).Msg("catálogo cargado")
}
