package postgres

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id         TEXT PRIMARY KEY,
		code       TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		price      NUMERIC NOT NULL DEFAULT 0,
		quantity   NUMERIC NOT NULL DEFAULT 0,
		unit       TEXT NOT NULL DEFAULT '',
		category   TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS purchase_invoices (
		id            TEXT PRIMARY KEY,
		number        TEXT,
		supplier      TEXT,
		date          TIMESTAMPTZ NOT NULL,
		notes         TEXT NOT NULL DEFAULT '',
		discount      NUMERIC NOT NULL DEFAULT 0,
		discount_type TEXT NOT NULL DEFAULT 'percentage',
		tax           NUMERIC NOT NULL DEFAULT 0,
		expenses      NUMERIC NOT NULL DEFAULT 0,
		amount_paid   NUMERIC NOT NULL DEFAULT 0,
		subtotal      NUMERIC NOT NULL DEFAULT 0,
		total_amount  NUMERIC NOT NULL DEFAULT 0,
		remaining     NUMERIC NOT NULL DEFAULT 0,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS purchase_invoices_number_key
		ON purchase_invoices (number) WHERE number IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS purchase_invoice_items (
		id            TEXT PRIMARY KEY,
		invoice_id    TEXT NOT NULL REFERENCES purchase_invoices(id) ON DELETE CASCADE,
		position      INT NOT NULL,
		code          TEXT NOT NULL DEFAULT '',
		name          TEXT NOT NULL DEFAULT '',
		manufacturer  TEXT NOT NULL DEFAULT '',
		size          TEXT NOT NULL DEFAULT '',
		unit          TEXT NOT NULL DEFAULT '',
		notes         TEXT NOT NULL DEFAULT '',
		quantity      NUMERIC NOT NULL,
		price         NUMERIC NOT NULL,
		discount      NUMERIC NOT NULL DEFAULT 0,
		discount_type TEXT NOT NULL,
		tax           NUMERIC NOT NULL DEFAULT 0,
		total         NUMERIC NOT NULL
	)`,
	// tablas creadas con precisión fija: se amplían a NUMERIC sin escala
	`ALTER TABLE products
		ALTER COLUMN price TYPE NUMERIC,
		ALTER COLUMN quantity TYPE NUMERIC`,
	`ALTER TABLE purchase_invoices
		ALTER COLUMN discount TYPE NUMERIC,
		ALTER COLUMN tax TYPE NUMERIC,
		ALTER COLUMN expenses TYPE NUMERIC,
		ALTER COLUMN amount_paid TYPE NUMERIC,
		ALTER COLUMN subtotal TYPE NUMERIC,
		ALTER COLUMN total_amount TYPE NUMERIC,
		ALTER COLUMN remaining TYPE NUMERIC`,
	`ALTER TABLE purchase_invoice_items
		ALTER COLUMN quantity TYPE NUMERIC,
		ALTER COLUMN price TYPE NUMERIC,
		ALTER COLUMN discount TYPE NUMERIC,
		ALTER COLUMN tax TYPE NUMERIC,
		ALTER COLUMN total TYPE NUMERIC`,
}

// EnsureSchema crea las tablas si no existen (idempotente).
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
