package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/compras-grid/internal/application/grid"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
)

func cellText(v grid.GridView, row int, f entity.Field) string {
	for _, c := range v.Rows[row].Cells {
		if c.Field == f {
			return c.Text
		}
	}
	return ""
}

func TestView_FilasRellenoYAltaRapida(t *testing.T) {
	f := newFixture(t, named("A"), named("B"), named("C"))
	v := f.s.View()

	require.Len(t, v.Rows, 3)
	assert.Equal(t, 1, v.Rows[0].Number)
	assert.Equal(t, 3, v.Rows[2].Number)
	assert.Equal(t, 7, v.PaddingRows)
	assert.True(t, v.QuickAddRow)
	assert.True(t, v.InlineEditing)
	assert.Equal(t, "idle", v.Mode)
	assert.Nil(t, v.Popover)
	assert.Nil(t, v.Draft)
}

func TestView_SinRellenoConDiezOMas(t *testing.T) {
	prefill := make([]entity.LineItemPatch, 12)
	for i := range prefill {
		prefill[i] = named("X")
	}
	f := newFixture(t, prefill...)
	v := f.s.View()
	assert.Len(t, v.Rows, 12)
	assert.Zero(t, v.PaddingRows)
	assert.True(t, v.QuickAddRow)
}

func TestView_FormatoDeCeldas(t *testing.T) {
	f := newFixture(t,
		entity.LineItemPatch{Name: ptr("A"), Quantity: ptr(d("3")), Price: ptr(d("100")), Discount: ptr(d("10")), Tax: ptr(d("15"))},
		entity.LineItemPatch{Name: ptr("B"), Quantity: ptr(d("2")), Price: ptr(d("50")), Discount: ptr(d("20")), DiscountType: ptr(entity.DiscountFixed)},
	)
	v := f.s.View()

	assert.Equal(t, "3.00", cellText(v, 0, entity.FieldQuantity))
	assert.Equal(t, "100.00", cellText(v, 0, entity.FieldPrice))
	assert.Equal(t, "10.00%", cellText(v, 0, entity.FieldDiscount))
	assert.Equal(t, "15.00%", cellText(v, 0, entity.FieldTax))
	assert.Equal(t, "310.50", cellText(v, 0, entity.FieldTotal))
	assert.Equal(t, "20.00 "+grid.DefaultCurrency, cellText(v, 1, entity.FieldDiscount))
	assert.Equal(t, "80.00", cellText(v, 1, entity.FieldTotal))
	assert.Equal(t, grid.DefaultUnit, cellText(v, 1, entity.FieldUnit))

	assert.Equal(t, "390.50", v.Totals.Subtotal)
	assert.Equal(t, "390.50", v.Totals.TotalAmount)
	assert.Equal(t, "0.00%", v.Totals.Discount)
}

func TestView_FormularioYBuscador(t *testing.T) {
	f := newFixture(t, named("A"))
	s := f.s

	require.NoError(t, s.OpenAddRow())
	require.NoError(t, s.SearchDraft(entity.FieldCode))
	v := s.View()

	assert.False(t, v.InlineEditing)
	assert.Equal(t, "adding_row", v.Mode)
	require.NotNil(t, v.Draft)
	assert.Equal(t, -1, v.Draft.Row)
	assert.Equal(t, "1", v.Draft.Values[entity.FieldQuantity])
	require.NotNil(t, v.Popover)
	assert.Equal(t, entity.FieldCode, v.Popover.Field)
	assert.Len(t, v.Popover.Results, grid.DefaultLookupLimit)
	assert.Equal(t, -1, v.Popover.Cursor)
}
