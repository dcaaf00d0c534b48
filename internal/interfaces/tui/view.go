package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jhoicas/compras-grid/internal/application/grid"
)

const numberWidth = 4

func (m Model) View() string {
	v := m.session.View()
	var b strings.Builder

	b.WriteString(titleStyle.Render("فاتورة مشتريات"))
	b.WriteString(fmt.Sprintf("  رقم: %s  المورد: %s  التاريخ: %s\n\n",
		orDash(v.Number), orDash(v.Supplier), v.Date))

	b.WriteString(m.renderTable(v))
	if v.Popover != nil {
		b.WriteString(renderPopover(*v.Popover) + "\n")
	}
	if v.Draft != nil {
		b.WriteString(m.renderDraft(*v.Draft) + "\n")
	}
	b.WriteString(renderTotals(v.Totals) + "\n")

	if m.toast != nil {
		style := successStyle
		if m.toast.Kind == grid.NotifyValidation {
			style = errorStyle
		}
		b.WriteString(style.Render(m.toast.Message) + "\n")
	}
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status) + "\n")
	}
	b.WriteString(helpStyle.Render(m.help(v)))
	return b.String()
}

func (m Model) renderTable(v grid.GridView) string {
	var b strings.Builder

	head := []string{pad(headerStyle, "#", numberWidth)}
	for _, f := range v.Columns {
		head = append(head, pad(headerStyle, columnLabels[f], columnWidths[f]))
	}
	b.WriteString(strings.Join(head, " ") + "\n")

	idle := v.Mode == grid.ModeIdle.String()
	for i, r := range v.Rows {
		line := []string{pad(dimStyle, fmt.Sprint(r.Number), numberWidth)}
		for j, c := range r.Cells {
			w := columnWidths[c.Field]
			switch {
			case c.Editing:
				line = append(line, pad(editStyle, m.input.View(), w))
			case idle && i == m.row && j == m.col:
				line = append(line, pad(cursorStyle, c.Text, w))
			default:
				line = append(line, pad(cellStyle, c.Text, w))
			}
		}
		b.WriteString(strings.Join(line, " ") + "\n")
	}
	for i := 0; i < v.PaddingRows; i++ {
		b.WriteString(pad(dimStyle, fmt.Sprint(len(v.Rows)+i+1), numberWidth) + "\n")
	}
	if v.QuickAddRow {
		style := dimStyle
		if idle && m.row == len(v.Rows) {
			style = cursorStyle
		}
		b.WriteString(style.Render("+ إضافة صنف جديد") + "\n")
	}
	return b.String() + "\n"
}

func renderPopover(p grid.PopoverView) string {
	if len(p.Results) == 0 {
		return popoverStyle.Render(dimStyle.Render("لا توجد نتائج"))
	}
	lines := make([]string, 0, len(p.Results))
	for i, r := range p.Results {
		line := fmt.Sprintf("%-8s %s  %s  (%s %s)", r.Code, r.Name, r.Price, r.Quantity, r.Unit)
		if i == p.Cursor {
			line = cursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return popoverStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderDraft(d grid.DraftView) string {
	title := "إضافة صنف"
	if d.Row >= 0 {
		title = fmt.Sprintf("تعديل الصنف %d", d.Row+1)
	}
	lines := []string{headerStyle.Render(title)}
	for i, f := range draftFields {
		value := d.Values[f]
		if i == m.draftIdx {
			value = editStyle.Render(m.input.View())
		}
		lines = append(lines, fmt.Sprintf("%-14s %s", columnLabels[f]+":", value))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func renderTotals(t grid.TotalsView) string {
	rows := [][2]string{
		{"المجموع الفرعي", t.Subtotal},
		{"الخصم (" + t.Discount + ")", t.DiscountValue},
		{"الضريبة", t.TaxValue},
		{"المصاريف", t.Expenses},
		{"الإجمالي", t.TotalAmount},
		{"المدفوع", t.AmountPaid},
		{"المتبقي", t.Remaining},
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-18s %12s", r[0], r[1]))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) help(v grid.GridView) string {
	switch v.Mode {
	case grid.ModeEditingCell.String():
		return "enter: confirmar/seleccionar · esc: cancelar · ↑/↓: resultados · tab: siguiente celda"
	case grid.ModeAddingRow.String(), grid.ModeEditingRow.String():
		return "tab/shift+tab: campo · enter: guardar fila/seleccionar · esc: cerrar buscador/cancelar"
	}
	return "flechas: mover · enter: editar · a: agregar · e: editar fila · d: eliminar · s: guardar · q: salir"
}

func pad(style lipgloss.Style, s string, width int) string {
	return style.Width(width).MaxWidth(width).Render(s)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
