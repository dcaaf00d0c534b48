package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/compras-grid/internal/domain/entity"
	"github.com/jhoicas/compras-grid/internal/infrastructure/pdf"
)

func TestGeneratePurchaseInvoicePDF(t *testing.T) {
	inv := &entity.Invoice{
		ID:           "f-1",
		Number:       "PI-0001",
		Supplier:     "Acme",
		Date:         time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		DiscountType: entity.DiscountPercentage,
		AmountPaid:   decimal.NewFromInt(100),
		Items: []entity.LineItem{{
			ID: "l-1", Code: "P001", Name: "Cement",
			Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(50),
			DiscountType: entity.DiscountPercentage, Total: decimal.NewFromInt(100),
		}},
	}

	out, err := pdf.NewMarotoPDFGenerator("SAR").GeneratePurchaseInvoicePDF(context.Background(), inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestGeneratePurchaseInvoicePDF_SinItems(t *testing.T) {
	inv := &entity.Invoice{ID: "f-2", Date: time.Now()}
	out, err := pdf.NewMarotoPDFGenerator("SAR").GeneratePurchaseInvoicePDF(context.Background(), inv)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
