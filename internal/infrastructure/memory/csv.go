package memory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/compras-grid/internal/domain"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
)

// Columnas esperadas: code,name,price,quantity,unit,category (la primera fila es cabecera).
var csvHeader = []string{"code", "name", "price", "quantity", "unit", "category"}

// ReadCatalogCSV lee productos desde CSV. encoding "windows-1256" convierte exportaciones
// de Excel en árabe; cualquier otro valor se trata como UTF-8.
func ReadCatalogCSV(r io.Reader, encoding string) ([]entity.Product, error) {
	if strings.EqualFold(encoding, "windows-1256") || strings.EqualFold(encoding, "cp1256") {
		r = transform.NewReader(r, charmap.Windows1256.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("catálogo csv: cabecera: %w", err)
	}
	idx := make(map[string]int, len(head))
	for i, h := range head {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, h := range csvHeader[:2] {
		if _, ok := idx[h]; !ok {
			return nil, fmt.Errorf("%w: falta la columna %q", domain.ErrInvalidInput, h)
		}
	}

	var out []entity.Product
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catálogo csv: línea %d: %w", line, err)
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		p := entity.Product{
			ID:       uuid.New().String(),
			Code:     get("code"),
			Name:     get("name"),
			Unit:     get("unit"),
			Category: get("category"),
		}
		if p.Code == "" && p.Name == "" {
			continue
		}
		if p.Price, err = parseAmount(get("price")); err != nil {
			return nil, fmt.Errorf("catálogo csv: línea %d: precio: %w", line, err)
		}
		if p.Quantity, err = parseAmount(get("quantity")); err != nil {
			return nil, fmt.Errorf("catálogo csv: línea %d: cantidad: %w", line, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidInput, s)
	}
	return d, nil
}

// LoadCatalogFile abre path y construye el catálogo en memoria.
func LoadCatalogFile(path, encoding string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir catálogo: %w", err)
	}
	defer f.Close()
	products, err := ReadCatalogCSV(f, encoding)
	if err != nil {
		return nil, err
	}
	return NewCatalog(products), nil
}
