package memory_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/compras-grid/internal/domain"
	"github.com/jhoicas/compras-grid/internal/infrastructure/memory"
)

func TestReadCatalogCSV(t *testing.T) {
	in := "\ufeffCode,Name,Price,Quantity,Unit\n" +
		"C-1,أسمنت,22.50,100,كيس\n" +
		",,,,\n" +
		"C-2,رمل,,,\n"

	got, err := memory.ReadCatalogCSV(strings.NewReader(in), "utf-8")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "C-1", got[0].Code)
	assert.Equal(t, "أسمنت", got[0].Name)
	assert.Equal(t, "22.5", got[0].Price.String())
	assert.Equal(t, "كيس", got[0].Unit)
	assert.True(t, got[1].Price.IsZero())
	assert.NotEmpty(t, got[1].ID)
}

func TestReadCatalogCSV_Windows1256(t *testing.T) {
	enc, err := charmap.Windows1256.NewEncoder().String("code,name\nR-1,رمل\n")
	require.NoError(t, err)

	got, err := memory.ReadCatalogCSV(bytes.NewBufferString(enc), "windows-1256")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "رمل", got[0].Name)
}

func TestReadCatalogCSV_Errores(t *testing.T) {
	_, err := memory.ReadCatalogCSV(strings.NewReader("code,price\nA,1\n"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "falta la columna name")

	_, err = memory.ReadCatalogCSV(strings.NewReader("code,name,price\nA,B,abc\n"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
