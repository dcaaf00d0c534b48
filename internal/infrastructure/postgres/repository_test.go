package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/compras-grid/internal/domain"
)

// fakeQuerier registra las sentencias ejecutadas y devuelve rowErr en QueryRow.
type fakeQuerier struct {
	execs  []string
	rowErr error
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return pgconn.CommandTag{}, nil
}

func (f *fakeQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("no implementado")
}

func (f *fakeQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{err: f.rowErr}
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas puntuales
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByCode_Inexistente(t *testing.T) {
	repo := NewProductCatalogRepository(&fakeQuerier{rowErr: pgx.ErrNoRows})
	_, err := repo.GetByCode(context.Background(), "X")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByCode_ErrorDeConexion(t *testing.T) {
	repo := NewProductCatalogRepository(&fakeQuerier{rowErr: errors.New("conexión cerrada")})
	_, err := repo.GetByCode(context.Background(), "X")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchaseInvoiceGetByID_Inexistente(t *testing.T) {
	repo := NewPurchaseInvoiceRepository(&fakeQuerier{rowErr: pgx.ErrNoRows})
	_, err := repo.GetByID(context.Background(), "f-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Esquema
// ──────────────────────────────────────────────────────────────────────────────

func TestEnsureSchema_NumericosSinPrecisionFija(t *testing.T) {
	q := &fakeQuerier{}
	require.NoError(t, EnsureSchema(context.Background(), q))
	require.NotEmpty(t, q.execs)

	for _, stmt := range q.execs {
		assert.NotContains(t, stmt, "NUMERIC(", "los montos aceptan cualquier escala, p. ej. impuesto >= 10000")
	}
	joined := strings.Join(q.execs, "\n")
	assert.Contains(t, joined, "ALTER COLUMN tax TYPE NUMERIC", "las tablas existentes se amplían")
}
