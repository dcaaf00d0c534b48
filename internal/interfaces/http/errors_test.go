package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/compras-grid/internal/application/dto"
	"github.com/jhoicas/compras-grid/internal/domain"
)

func errorStatus(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return writeError(c, err) })
	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, testErr)
	defer resp.Body.Close()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestWriteError_NoAutorizado(t *testing.T) {
	err := unauthorized("INVALID_TOKEN", "token inválido o expirado")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	status, body := errorStatus(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body.Code)

	status, body = errorStatus(t, fmt.Errorf("sesión: %w", domain.ErrUnauthorized))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body.Code)
}

func TestWriteError_Mapeo(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrIndexOutOfRange, http.StatusNotFound, "ROW_NOT_FOUND"},
		{domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{domain.ErrModeConflict, http.StatusConflict, "MODE_CONFLICT"},
		{domain.ErrValidation, http.StatusUnprocessableEntity, "INVOICE_INVALID"},
		{fmt.Errorf("otro"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		status, body := errorStatus(t, tc.err)
		assert.Equal(t, tc.status, status, tc.code)
		assert.Equal(t, tc.code, body.Code)
	}
}
