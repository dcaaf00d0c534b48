// Package tui cliente de terminal de la grilla de factura de compra (bubbletea).
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhoicas/compras-grid/internal/application/grid"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
)

// NotificationSource cola de avisos que la grilla va produciendo (toasts).
type NotificationSource interface {
	Drain() []grid.Notification
}

// Options dependencias del modelo.
type Options struct {
	Session       *grid.Session
	Notifications NotificationSource
	Debounce      time.Duration
	SaveTimeout   time.Duration
}

type searchMsg struct{ gen uint64 }

// draftFields columnas del formulario de fila, en orden de tabulación.
var draftFields = func() []entity.Field {
	var out []entity.Field
	for _, f := range entity.Columns {
		if f.Editable() {
			out = append(out, f)
		}
	}
	return out
}()

// Model estado de la pantalla: la sesión más el cursor de navegación y el input de texto.
type Model struct {
	session     *grid.Session
	notes       NotificationSource
	debounce    time.Duration
	saveTimeout time.Duration

	input         textinput.Model
	replaceOnType bool

	row, col int // cursor; row == len(items) es la fila de alta rápida
	draftIdx int

	toast  *grid.Notification
	status string
	width  int
}

// New construye el modelo sobre una sesión ya creada.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 120
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	if opts.SaveTimeout <= 0 {
		opts.SaveTimeout = 10 * time.Second
	}
	return Model{
		session:     opts.Session,
		notes:       opts.Notifications,
		debounce:    opts.Debounce,
		saveTimeout: opts.SaveTimeout,
		input:       ti,
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case searchMsg:
		m.session.FlushSearch(msg.gen)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.session.Mode().Kind {
		case grid.ModeEditingCell:
			return m.updateCell(msg)
		case grid.ModeAddingRow, grid.ModeEditingRow:
			return m.updateDraft(msg)
		default:
			return m.updateIdle(msg)
		}
	}
	return m, nil
}

func (m Model) itemCount() int { return len(m.session.Invoice().Items) }

func (m Model) updateIdle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.itemCount()
	var err error
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "down", "j":
		if m.row < n {
			m.row++
		}
	case "left", "h":
		if m.col > 0 {
			m.col--
		}
	case "right", "l":
		if m.col < len(entity.Columns)-1 {
			m.col++
		}
	case "enter":
		if m.row == n {
			err = m.openAddRow()
			break
		}
		if err = m.session.ClickCell(m.row, entity.Columns[m.col]); err == nil {
			m.startCellInput()
		}
	case "a":
		err = m.openAddRow()
	case "e":
		if m.row < n {
			if err = m.session.OpenEditRow(m.row); err == nil {
				m.focusDraft(0)
			}
		}
	case "d":
		if m.row < n {
			_, err = m.session.RemoveItem(m.row)
		}
	case "s":
		ctx, cancel := context.WithTimeout(context.Background(), m.saveTimeout)
		_, err = m.session.Save(ctx)
		cancel()
	}
	m.sync(err)
	return m, nil
}

func (m *Model) openAddRow() error {
	if err := m.session.OpenAddRow(); err != nil {
		return err
	}
	m.focusDraft(0)
	return nil
}

// startCellInput pasa el texto de la celda activa al input; el primer carácter tecleado lo reemplaza.
func (m *Model) startCellInput() {
	mode := m.session.Mode()
	v := m.session.View()
	for _, c := range v.Rows[mode.Row].Cells {
		if c.Field == mode.Field {
			m.input.SetValue(c.Input)
			m.replaceOnType = c.Selected
		}
	}
	m.input.CursorEnd()
	m.input.Focus()
}

func (m Model) updateCell(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	switch msg.Type {
	case tea.KeyEnter:
		err = m.session.KeyDown(grid.KeyEnter)
	case tea.KeyEsc:
		err = m.session.KeyDown(grid.KeyEscape)
	case tea.KeyUp:
		err = m.session.KeyDown(grid.KeyUp)
	case tea.KeyDown:
		err = m.session.KeyDown(grid.KeyDown)
	case tea.KeyTab:
		err = m.session.Blur()
		if m.col < len(entity.Columns)-1 {
			m.col++
		}
	default:
		if m.replaceOnType && msg.Type == tea.KeyRunes {
			m.input.SetValue("")
		}
		m.replaceOnType = false
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() == before {
			return m, cmd
		}
		gen, err := m.session.Input(m.input.Value())
		m.sync(err)
		return m, tea.Batch(cmd, m.scheduleSearch(gen))
	}
	m.sync(err)
	return m, nil
}

func (m Model) updateDraft(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	field := draftFields[m.draftIdx]
	switch msg.Type {
	case tea.KeyEnter:
		err = m.session.KeyDown(grid.KeyEnter)
		if m.session.Mode().RowEditor() {
			m.focusDraft(m.draftIdx)
		}
	case tea.KeyEsc:
		err = m.session.KeyDown(grid.KeyEscape)
	case tea.KeyUp:
		err = m.session.KeyDown(grid.KeyUp)
	case tea.KeyDown:
		err = m.session.KeyDown(grid.KeyDown)
	case tea.KeyTab:
		m.focusDraft(m.draftIdx + 1)
	case tea.KeyShiftTab:
		m.focusDraft(m.draftIdx - 1)
	default:
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() == before {
			return m, cmd
		}
		lk := m.session.Lookup()
		if field.Searchable() && (!lk.IsOpen() || lk.Field() != field) {
			if err := m.session.SearchDraft(field); err != nil {
				m.sync(err)
				return m, cmd
			}
		}
		gen, err := m.session.SetDraftField(field, m.input.Value())
		m.sync(err)
		return m, tea.Batch(cmd, m.scheduleSearch(gen))
	}
	m.sync(err)
	return m, nil
}

// focusDraft enfoca la columna i del formulario (con vuelta) y cierra el buscador de la anterior.
func (m *Model) focusDraft(i int) {
	n := len(draftFields)
	i = ((i % n) + n) % n
	if m.draftIdx != i && m.session.Lookup().IsOpen() {
		_ = m.session.KeyDown(grid.KeyEscape)
	}
	m.draftIdx = i
	if d := m.session.View().Draft; d != nil {
		m.input.SetValue(d.Values[draftFields[i]])
	}
	m.input.CursorEnd()
	m.input.Focus()
}

func (m Model) scheduleSearch(gen uint64) tea.Cmd {
	if gen == 0 {
		return nil
	}
	return tea.Tick(m.debounce, func(time.Time) tea.Msg { return searchMsg{gen: gen} })
}

// sync refleja el resultado de la última acción: error, avisos y cursor dentro de rango.
func (m *Model) sync(err error) {
	m.status = ""
	if err != nil {
		m.status = err.Error()
	}
	if m.notes != nil {
		if ns := m.notes.Drain(); len(ns) > 0 {
			last := ns[len(ns)-1]
			m.toast = &last
		}
	}
	if n := m.itemCount(); m.row > n {
		m.row = n
	}
	if m.session.Mode().Kind == grid.ModeIdle {
		m.input.Blur()
		m.replaceOnType = false
	}
}
