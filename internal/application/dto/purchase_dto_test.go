package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/compras-grid/internal/application/dto"
	"github.com/jhoicas/compras-grid/internal/domain"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
)

func TestLineItemInput_ToPatch(t *testing.T) {
	var in dto.LineItemInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":"أسمنت","quantity":"2","price":50.5,"discount_type":"قيمة"}`), &in))

	p, err := in.ToPatch()
	require.NoError(t, err)
	assert.Equal(t, "أسمنت", *p.Name)
	assert.Equal(t, "2", p.Quantity.String())
	assert.Equal(t, "50.5", p.Price.String())
	assert.Equal(t, entity.DiscountFixed, *p.DiscountType)
	assert.Nil(t, p.Code, "los campos ausentes no se tocan")
}

func TestLineItemInput_Invalido(t *testing.T) {
	var in dto.LineItemInput
	require.NoError(t, json.Unmarshal([]byte(`{"discount_type":"otro"}`), &in))
	_, err := in.ToPatch()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, json.Unmarshal([]byte(`{"quantity":-1}`), &in))
	in.DiscountType = nil
	_, err = in.ToPatch()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHeaderRequest_ParsedDate(t *testing.T) {
	d, err := dto.HeaderRequest{Date: "2024-03-15"}.ParsedDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = dto.HeaderRequest{}.ParsedDate()
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = dto.HeaderRequest{Date: "15/03/2024"}.ParsedDate()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
