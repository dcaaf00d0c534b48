package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/compras-grid/internal/application/grid"
	"github.com/jhoicas/compras-grid/internal/application/purchase"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
)

var (
	_ grid.InvoiceSaver      = (*TxRunner)(nil)
	_ purchase.InvoiceReader = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el repo atado a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repo *PurchaseInvoiceRepo) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPurchaseInvoiceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// SaveInvoice guarda cabecera y líneas en una sola transacción.
func (r *TxRunner) SaveInvoice(ctx context.Context, inv *entity.Invoice) error {
	return r.Run(ctx, func(repo *PurchaseInvoiceRepo) error {
		if err := repo.UpsertHeader(ctx, inv); err != nil {
			return err
		}
		return repo.ReplaceItems(ctx, inv.ID, inv.Items)
	})
}

// GetByID lee una factura guardada fuera de transacción.
func (r *TxRunner) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return NewPurchaseInvoiceRepository(r.pool).GetByID(ctx, id)
}
