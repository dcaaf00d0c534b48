package grid

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/compras-grid/internal/domain/entity"
)

// DefaultLookupLimit cantidad de resultados visibles en el buscador.
const DefaultLookupLimit = 5

// Lookup buscador de productos que se abre sobre las celdas de código y nombre.
// El catálogo se inyecta; el buscador nunca lo modifica.
type Lookup struct {
	catalog []entity.Product
	index   []foldedProduct
	limit   int
	caser   cases.Caser

	open    bool
	field   entity.Field
	row     int // -1 = formulario de fila nueva
	query   string
	gen     uint64
	applied uint64
	results []entity.Product
	cursor  int // -1 = nada resaltado
}

type foldedProduct struct {
	code, name, category string
}

// NewLookup construye el buscador sobre catalog. limit <= 0 usa DefaultLookupLimit.
func NewLookup(catalog []entity.Product, limit int) *Lookup {
	if limit <= 0 {
		limit = DefaultLookupLimit
	}
	l := &Lookup{
		catalog: catalog,
		limit:   limit,
		caser:   cases.Fold(),
		row:     -1,
		cursor:  -1,
	}
	l.index = make([]foldedProduct, len(catalog))
	for i, p := range catalog {
		l.index[i] = foldedProduct{
			code:     l.caser.String(p.Code),
			name:     l.caser.String(p.Name),
			category: l.caser.String(p.Category),
		}
	}
	return l
}

// Open abre el buscador para la columna field (código o nombre) y filtra de inmediato con query.
func (l *Lookup) Open(field entity.Field, query string, row int) {
	l.open = true
	l.field = field
	l.row = row
	l.query = query
	l.gen++
	l.apply()
}

// SetQuery cambia el texto buscado y devuelve la generación a aplicar con Flush cuando venza el debounce.
func (l *Lookup) SetQuery(query string) uint64 {
	l.query = query
	l.gen++
	return l.gen
}

// Flush aplica el filtro pendiente. Una generación vieja o un buscador cerrado no hacen nada.
func (l *Lookup) Flush(gen uint64) bool {
	if !l.open || gen != l.gen {
		return false
	}
	l.apply()
	return true
}

// Search aplica de inmediato una consulta pendiente (Enter antes de que venza el debounce).
func (l *Lookup) Search() {
	if l.open && l.applied != l.gen {
		l.apply()
	}
}

func (l *Lookup) apply() {
	l.results = l.match(l.query, l.field)
	l.cursor = -1
	l.applied = l.gen
}

// Close cierra el buscador sin seleccionar.
func (l *Lookup) Close() {
	l.open = false
	l.results = nil
	l.cursor = -1
	l.row = -1
	l.gen++
}

// MoveDown baja el cursor sin pasar del último resultado. Sin cursor el primero ya es el
// resaltado implícito, así que la primera pulsación pasa al segundo.
func (l *Lookup) MoveDown() {
	if len(l.results) == 0 {
		return
	}
	switch {
	case l.cursor < 0 && len(l.results) > 1:
		l.cursor = 1
	case l.cursor < len(l.results)-1:
		l.cursor++
	}
}

// MoveUp sube el cursor sin pasar del primero.
func (l *Lookup) MoveUp() {
	if len(l.results) == 0 {
		return
	}
	if l.cursor > 0 {
		l.cursor--
	} else {
		l.cursor = 0
	}
}

// Highlighted producto resaltado, o el primero si no hay ninguno.
func (l *Lookup) Highlighted() (entity.Product, bool) {
	if !l.open || len(l.results) == 0 {
		return entity.Product{}, false
	}
	if l.cursor < 0 {
		return l.results[0], true
	}
	return l.results[l.cursor], true
}

// At resultado en la posición i (clic directo sobre un resultado).
func (l *Lookup) At(i int) (entity.Product, bool) {
	if !l.open || i < 0 || i >= len(l.results) {
		return entity.Product{}, false
	}
	return l.results[i], true
}

func (l *Lookup) IsOpen() bool              { return l.open }
func (l *Lookup) Field() entity.Field       { return l.field }
func (l *Lookup) Row() int                  { return l.row }
func (l *Lookup) Query() string             { return l.query }
func (l *Lookup) Cursor() int               { return l.cursor }
func (l *Lookup) Generation() uint64        { return l.gen }
func (l *Lookup) Results() []entity.Product { return append([]entity.Product(nil), l.results...) }

// match filtra el catálogo sin distinguir mayúsculas. Buscando por código se listan primero las
// coincidencias de código; buscando por nombre, nombre, luego categoría y al final código.
func (l *Lookup) match(query string, field entity.Field) []entity.Product {
	q := l.caser.String(strings.TrimSpace(query))
	out := make([]entity.Product, 0, l.limit)
	if q == "" {
		for i := 0; i < len(l.catalog) && len(out) < l.limit; i++ {
			out = append(out, l.catalog[i])
		}
		return out
	}

	var passes []func(foldedProduct) bool
	byCode := func(f foldedProduct) bool { return strings.Contains(f.code, q) }
	byName := func(f foldedProduct) bool { return strings.Contains(f.name, q) }
	byCategory := func(f foldedProduct) bool { return strings.Contains(f.category, q) }
	if field == entity.FieldCode {
		passes = append(passes, byCode, byName)
	} else {
		passes = append(passes, byName, byCategory, byCode)
	}

	seen := make(map[int]bool)
	for _, pass := range passes {
		for i, f := range l.index {
			if len(out) == l.limit {
				return out
			}
			if !seen[i] && pass(f) {
				seen[i] = true
				out = append(out, l.catalog[i])
			}
		}
	}
	return out
}

// Search filtra catalog sin abrir un buscador (consulta puntual del API).
func Search(catalog []entity.Product, field entity.Field, query string, limit int) []entity.Product {
	return NewLookup(catalog, limit).match(query, field)
}
