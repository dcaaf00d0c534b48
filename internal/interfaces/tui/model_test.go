package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/compras-grid/internal/application/grid"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
	"github.com/jhoicas/compras-grid/internal/infrastructure/memory"
)

// ─── helpers ──────────────────────────────────────────────────────────────────

func newTestModel(t *testing.T) (Model, *grid.Session, *memory.InvoiceStore) {
	t.Helper()
	products, err := memory.DefaultCatalog().ListCatalog(context.Background())
	require.NoError(t, err)
	rec := memory.NewRecorder()
	store := memory.NewInvoiceStore()
	s, err := grid.NewSession(grid.Options{Catalog: products, Saver: store, Notifier: rec})
	require.NoError(t, err)
	return New(Options{Session: s, Notifications: rec}), s, store
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, r := range text {
		var next tea.Model
		next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
)

// ─── formulario de alta ───────────────────────────────────────────────────────

func TestTUI_AltaConBuscador(t *testing.T) {
	m, s, _ := newTestModel(t)

	m = press(t, m, runes("a"))
	require.Equal(t, grid.ModeAddingRow, s.Mode().Kind)

	// primer campo = código; escribir abre el buscador
	m, cmd := typeText(t, m, "P004")
	require.NotNil(t, cmd, "la búsqueda se programa con debounce")
	require.True(t, s.Lookup().IsOpen())

	m = press(t, m, keyEnter) // selecciona el resultado (aplica la consulta pendiente)
	assert.Equal(t, "P004", m.input.Value())
	assert.False(t, s.Lookup().IsOpen())

	m = press(t, m, keyEnter) // guarda la fila
	assert.Equal(t, grid.ModeIdle, s.Mode().Kind)
	inv := s.Invoice()
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "رمل ناعم", inv.Items[0].Name)
	require.NotNil(t, m.toast)
	assert.Equal(t, grid.NotifySuccess, m.toast.Kind)
}

func TestTUI_BusquedaConDebounce(t *testing.T) {
	m, s, _ := newTestModel(t)
	m = press(t, m, runes("a"))

	m, _ = typeText(t, m, "P00")
	gen := s.Lookup().Generation()
	m, _ = typeText(t, m, "9")

	// el tick viejo no aplica nada
	next, _ := m.Update(searchMsg{gen: gen})
	m = next.(Model)
	assert.NotEqual(t, "P009", s.Lookup().Results()[0].Code)

	next, _ = m.Update(searchMsg{gen: s.Lookup().Generation()})
	m = next.(Model)
	require.NotEmpty(t, s.Lookup().Results())
	assert.Equal(t, "P009", s.Lookup().Results()[0].Code)
	_ = m
}

func TestTUI_FormularioIncompleto(t *testing.T) {
	m, s, _ := newTestModel(t)
	m = press(t, m, runes("a"), keyEnter)

	assert.Equal(t, grid.ModeAddingRow, s.Mode().Kind, "el formulario sigue abierto")
	require.NotNil(t, m.toast)
	assert.Equal(t, grid.NotifyValidation, m.toast.Kind)

	m = press(t, m, keyEsc)
	assert.Equal(t, grid.ModeIdle, s.Mode().Kind)
}

// ─── edición en línea ─────────────────────────────────────────────────────────

func TestTUI_EdicionDeCelda(t *testing.T) {
	m, s, _ := newTestModel(t)
	_, err := s.AddItem(entity.LineItemPatch{Name: ptr("X"), Price: ptr(d("10"))})
	require.NoError(t, err)

	// cursor en (0, cantidad)
	for i := 0; i < 5; i++ {
		m = press(t, m, keyRight)
	}
	m = press(t, m, keyEnter)
	require.True(t, s.Mode().IsCell(0, entity.FieldQuantity))
	assert.Equal(t, "1", m.input.Value())

	// el primer carácter reemplaza el valor seleccionado
	m, _ = typeText(t, m, "4")
	assert.Equal(t, "4", m.input.Value())

	m = press(t, m, keyEnter)
	assert.Equal(t, grid.ModeIdle, s.Mode().Kind)
	assert.True(t, s.Invoice().Items[0].Total.Equal(d("40")))
}

func TestTUI_EscapeDescarta(t *testing.T) {
	m, s, _ := newTestModel(t)
	_, err := s.AddItem(entity.LineItemPatch{Name: ptr("X"), Price: ptr(d("10"))})
	require.NoError(t, err)

	m = press(t, m, keyEnter) // código
	m, _ = typeText(t, m, "zzz")
	m = press(t, m, keyEsc)
	assert.Equal(t, grid.ModeIdle, s.Mode().Kind)
	assert.Equal(t, "", s.Invoice().Items[0].Code)
	_ = m
}

func TestTUI_TabConfirmaYAvanza(t *testing.T) {
	m, s, _ := newTestModel(t)
	_, err := s.AddItem(entity.LineItemPatch{Name: ptr("X")})
	require.NoError(t, err)

	m = press(t, m, keyRight, keyRight, keyEnter) // fabricante
	m, _ = typeText(t, m, "ACME")
	m = press(t, m, keyTab)

	assert.Equal(t, grid.ModeIdle, s.Mode().Kind)
	assert.Equal(t, "ACME", s.Invoice().Items[0].Manufacturer)
	assert.Equal(t, 3, m.col)
}

// ─── eliminar / guardar ───────────────────────────────────────────────────────

func TestTUI_EliminarYGuardar(t *testing.T) {
	m, s, store := newTestModel(t)
	_, _ = s.AddItem(entity.LineItemPatch{Name: ptr("A")})
	_, _ = s.AddItem(entity.LineItemPatch{Name: ptr("B")})

	m = press(t, m, runes("d"))
	require.Len(t, s.Invoice().Items, 1)
	assert.Equal(t, "B", s.Invoice().Items[0].Name)

	m = press(t, m, runes("s"))
	require.NotNil(t, m.toast)
	assert.Equal(t, grid.NotifySuccess, m.toast.Kind)
	assert.Len(t, store.List(), 1)
}

func TestTUI_CursorNoPasaDeLaFilaDeAlta(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, keyDown, keyDown, keyDown)
	assert.Equal(t, 0, m.row)

	m = press(t, m, keyEnter) // fila de alta rápida
	assert.Contains(t, m.View(), "إضافة صنف")
}

func TestTUI_View(t *testing.T) {
	m, s, _ := newTestModel(t)
	_, err := s.AddItem(entity.LineItemPatch{Name: ptr("حديد"), Price: ptr(d("3100"))})
	require.NoError(t, err)

	out := m.View()
	assert.Contains(t, out, "3100.00")
	assert.Contains(t, out, "فاتورة مشتريات")
	assert.Contains(t, out, "الإجمالي")
}
