package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/compras-grid/internal/domain"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
	"github.com/jhoicas/compras-grid/internal/domain/invoicecalc"
)

// PurchaseInvoiceRepo persistencia de facturas de compra (usable con pool o tx).
type PurchaseInvoiceRepo struct {
	q Querier
}

// NewPurchaseInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseInvoiceRepository(q Querier) *PurchaseInvoiceRepo {
	return &PurchaseInvoiceRepo{q: q}
}

// UpsertHeader guarda la cabecera con los totales derivados en el momento del guardado.
func (r *PurchaseInvoiceRepo) UpsertHeader(ctx context.Context, inv *entity.Invoice) error {
	t := invoicecalc.ComputeTotals(inv)
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_invoices (id, number, supplier, date, notes, discount, discount_type, tax, expenses,
			amount_paid, subtotal, total_amount, remaining, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now())
		ON CONFLICT (id) DO UPDATE SET
			number = EXCLUDED.number, supplier = EXCLUDED.supplier, date = EXCLUDED.date, notes = EXCLUDED.notes,
			discount = EXCLUDED.discount, discount_type = EXCLUDED.discount_type, tax = EXCLUDED.tax,
			expenses = EXCLUDED.expenses, amount_paid = EXCLUDED.amount_paid, subtotal = EXCLUDED.subtotal,
			total_amount = EXCLUDED.total_amount, remaining = EXCLUDED.remaining, updated_at = now()`,
		inv.ID, nullIfEmpty(inv.Number), nullIfEmpty(inv.Supplier), inv.Date, inv.Notes,
		inv.Discount, string(inv.DiscountType), inv.Tax, inv.Expenses, inv.AmountPaid,
		t.Subtotal, t.TotalAmount, t.Remaining, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de factura duplicado", domain.ErrInvalidInput)
		}
		return fmt.Errorf("upsert purchase invoice: %w", err)
	}
	return nil
}

// ReplaceItems borra las líneas previas de la factura e inserta las actuales en orden.
func (r *PurchaseInvoiceRepo) ReplaceItems(ctx context.Context, invoiceID string, items []entity.LineItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete purchase invoice items: %w", err)
	}
	for i, it := range items {
		id := it.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_invoice_items (id, invoice_id, position, code, name, manufacturer, size, unit, notes,
				quantity, price, discount, discount_type, tax, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			id, invoiceID, i, it.Code, it.Name, it.Manufacturer, it.Size, it.Unit, it.Notes,
			it.Quantity, it.Price, it.Discount, string(it.DiscountType), it.Tax, it.Total,
		)
		if err != nil {
			return fmt.Errorf("insert purchase invoice item %d: %w", i, err)
		}
	}
	return nil
}

// GetByID carga la factura con sus líneas; ErrNotFound si no existe.
func (r *PurchaseInvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	var (
		inv              entity.Invoice
		number, supplier *string
		discountType     string
	)
	err := r.q.QueryRow(ctx, `
		SELECT id, number, supplier, date, notes, discount, discount_type, tax, expenses, amount_paid, created_at
		FROM purchase_invoices WHERE id = $1`, id).Scan(
		&inv.ID, &number, &supplier, &inv.Date, &inv.Notes, &inv.Discount, &discountType,
		&inv.Tax, &inv.Expenses, &inv.AmountPaid, &inv.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get purchase invoice: %w", err)
	}
	if number != nil {
		inv.Number = *number
	}
	if supplier != nil {
		inv.Supplier = *supplier
	}
	inv.DiscountType = entity.DiscountType(discountType)

	rows, err := r.q.Query(ctx, `
		SELECT id, code, name, manufacturer, size, unit, notes, quantity, price, discount, discount_type, tax, total
		FROM purchase_invoice_items WHERE invoice_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list purchase invoice items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.LineItem
		var dt string
		if err := rows.Scan(&it.ID, &it.Code, &it.Name, &it.Manufacturer, &it.Size, &it.Unit, &it.Notes,
			&it.Quantity, &it.Price, &it.Discount, &dt, &it.Tax, &it.Total); err != nil {
			return nil, fmt.Errorf("scan purchase invoice item: %w", err)
		}
		it.DiscountType = entity.DiscountType(dt)
		inv.Items = append(inv.Items, it)
	}
	return &inv, rows.Err()
}
