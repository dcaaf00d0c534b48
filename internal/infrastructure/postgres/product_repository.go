package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/compras-grid/internal/application/grid"
	"github.com/jhoicas/compras-grid/internal/domain"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
)

var _ grid.ProductCatalog = (*ProductCatalogRepo)(nil)

// ProductCatalogRepo catálogo de productos sobre PostgreSQL (pool o tx).
type ProductCatalogRepo struct {
	q Querier
}

// NewProductCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductCatalogRepository(q Querier) *ProductCatalogRepo {
	return &ProductCatalogRepo{q: q}
}

const productColumns = `id, code, name, price, quantity, unit, category`

// ListCatalog devuelve todo el catálogo ordenado por código.
func (r *ProductCatalogRepo) ListCatalog(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Price, &p.Quantity, &p.Unit, &p.Category); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetByCode obtiene un producto por código; ErrNotFound si no existe.
func (r *ProductCatalogRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE code = $1`, code).
		Scan(&p.ID, &p.Code, &p.Name, &p.Price, &p.Quantity, &p.Unit, &p.Category)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product by code: %w", err)
	}
	return &p, nil
}

// Upsert inserta o actualiza por código (usado para sembrar el catálogo).
func (r *ProductCatalogRepo) Upsert(ctx context.Context, p entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name, price = EXCLUDED.price, quantity = EXCLUDED.quantity,
			unit = EXCLUDED.unit, category = EXCLUDED.category`,
		p.ID, p.Code, p.Name, p.Price, p.Quantity, p.Unit, p.Category,
	)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}
