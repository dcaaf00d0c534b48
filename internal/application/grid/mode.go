package grid

import (
	"fmt"

	"github.com/jhoicas/compras-grid/internal/domain/entity"
)

// ModeKind modo de edición de la grilla. Solo hay uno activo a la vez.
type ModeKind int

const (
	ModeIdle ModeKind = iota
	ModeAddingRow
	ModeEditingRow
	ModeEditingCell
)

func (k ModeKind) String() string {
	switch k {
	case ModeAddingRow:
		return "adding_row"
	case ModeEditingRow:
		return "editing_row"
	case ModeEditingCell:
		return "editing_cell"
	}
	return "idle"
}

// Mode valor único que reemplaza las banderas sueltas de "agregando", "editando fila" y "celda activa".
// Row vale para EditingRow y EditingCell; Field solo para EditingCell.
type Mode struct {
	Kind  ModeKind
	Row   int
	Field entity.Field
}

// Idle modo sin edición.
func Idle() Mode { return Mode{Kind: ModeIdle, Row: -1} }

// AddingRow formulario de nueva fila abierto.
func AddingRow() Mode { return Mode{Kind: ModeAddingRow, Row: -1} }

// EditingRow diálogo de edición de la fila index.
func EditingRow(index int) Mode { return Mode{Kind: ModeEditingRow, Row: index} }

// EditingCell celda (index, field) en edición en línea.
func EditingCell(index int, field entity.Field) Mode {
	return Mode{Kind: ModeEditingCell, Row: index, Field: field}
}

// RowEditor indica si hay un editor de fila completa abierto (bloquea la edición en línea).
func (m Mode) RowEditor() bool {
	return m.Kind == ModeAddingRow || m.Kind == ModeEditingRow
}

// IsCell indica si (row, field) es la celda activa.
func (m Mode) IsCell(row int, field entity.Field) bool {
	return m.Kind == ModeEditingCell && m.Row == row && m.Field == field
}

// afterRemoval reubica el modo tras borrar la fila removed: si apuntaba a ella vuelve a Idle,
// si apuntaba a una fila posterior baja una posición para seguir en el mismo ítem.
func (m Mode) afterRemoval(removed int) Mode {
	if m.Kind != ModeEditingCell && m.Kind != ModeEditingRow {
		return m
	}
	switch {
	case m.Row == removed:
		return Idle()
	case m.Row > removed:
		m.Row--
	}
	return m
}

func (m Mode) String() string {
	switch m.Kind {
	case ModeEditingRow:
		return fmt.Sprintf("%s(%d)", m.Kind, m.Row)
	case ModeEditingCell:
		return fmt.Sprintf("%s(%d,%s)", m.Kind, m.Row, m.Field)
	}
	return m.Kind.String()
}
