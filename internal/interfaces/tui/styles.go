package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jhoicas/compras-grid/internal/domain/entity"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#00467F")).Padding(0, 1)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00467F"))
	cellStyle    = lipgloss.NewStyle()
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	editStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#FFD866"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	popoverStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#00467F")).Padding(0, 1)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E7D32")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C62828")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// columnLabels encabezados de la grilla (la UI es en árabe).
var columnLabels = map[entity.Field]string{
	entity.FieldCode:         "الكود",
	entity.FieldName:         "اسم الصنف",
	entity.FieldManufacturer: "الشركة المصنعة",
	entity.FieldSize:         "المقاس",
	entity.FieldUnit:         "الوحدة",
	entity.FieldQuantity:     "الكمية",
	entity.FieldPrice:        "السعر",
	entity.FieldDiscount:     "الخصم",
	entity.FieldDiscountType: "نوع الخصم",
	entity.FieldTax:          "الضريبة",
	entity.FieldTotal:        "الإجمالي",
	entity.FieldNotes:        "ملاحظات",
}

var columnWidths = map[entity.Field]int{
	entity.FieldCode:         8,
	entity.FieldName:         20,
	entity.FieldManufacturer: 12,
	entity.FieldSize:         7,
	entity.FieldUnit:         7,
	entity.FieldQuantity:     7,
	entity.FieldPrice:        10,
	entity.FieldDiscount:     10,
	entity.FieldDiscountType: 8,
	entity.FieldTax:          8,
	entity.FieldTotal:        11,
	entity.FieldNotes:        12,
}
