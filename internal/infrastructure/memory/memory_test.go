package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/compras-grid/internal/application/grid"
	"github.com/jhoicas/compras-grid/internal/domain"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
	"github.com/jhoicas/compras-grid/internal/infrastructure/memory"
)

func TestCatalog_DevuelveCopia(t *testing.T) {
	c := memory.DefaultCatalog()
	list, err := c.ListCatalog(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, list)

	list[0].Name = "modificado"
	again, _ := c.ListCatalog(context.Background())
	assert.NotEqual(t, "modificado", again[0].Name, "el catálogo es de solo lectura")
}

func TestInvoiceStore_GuardaCopia(t *testing.T) {
	store := memory.NewInvoiceStore()
	inv := &entity.Invoice{ID: "f-1", Items: []entity.LineItem{{Name: "A"}}}
	require.NoError(t, store.SaveInvoice(context.Background(), inv))
	require.NoError(t, store.SaveInvoice(context.Background(), inv))

	inv.Items[0].Name = "B"
	got, err := store.GetByID(context.Background(), "f-1")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Items[0].Name)
	assert.Len(t, store.List(), 1)

	_, err = store.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecorder_Drain(t *testing.T) {
	r := memory.NewRecorder()
	r.Notify(grid.Notification{Kind: grid.NotifySuccess, Message: "ok"})
	r.Notify(grid.Notification{Kind: grid.NotifyValidation, Message: "mal"})

	got := r.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, grid.NotifyValidation, got[1].Kind)
	assert.Empty(t, r.Drain())
}
