package bootstrap_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/compras-grid/internal/bootstrap"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
	"github.com/jhoicas/compras-grid/pkg/config"
	"github.com/jhoicas/compras-grid/pkg/logger"
)

func TestBuild_MemoriaPorDefecto(t *testing.T) {
	cfg := &config.Config{Grid: config.GridConfig{CatalogSource: config.CatalogMemory}}
	a, err := bootstrap.Build(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer a.Close()

	list, err := a.Catalog.ListCatalog(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, list)
	assert.NotNil(t, a.Saver)

	// lo guardado se lee por el mismo almacén
	require.NoError(t, a.Saver.SaveInvoice(context.Background(), &entity.Invoice{ID: "f-9"}))
	got, err := a.Invoices.GetByID(context.Background(), "f-9")
	require.NoError(t, err)
	assert.Equal(t, "f-9", got.ID)
}

func TestBuild_CatalogoDesdeCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogo.csv")
	require.NoError(t, os.WriteFile(path, []byte("code,name,price\nX-1,صنف,5\n"), 0o600))

	cfg := &config.Config{Grid: config.GridConfig{CatalogSource: config.CatalogMemory, CatalogFile: path}}
	a, err := bootstrap.Build(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)

	list, _ := a.Catalog.ListCatalog(context.Background())
	require.Len(t, list, 1)
	assert.Equal(t, "X-1", list[0].Code)
}

func TestBuild_ArchivoInexistente(t *testing.T) {
	cfg := &config.Config{Grid: config.GridConfig{CatalogSource: config.CatalogMemory, CatalogFile: "/no/existe.csv"}}
	_, err := bootstrap.Build(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}
