package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/compras-grid/internal/application/dto"
	"github.com/jhoicas/compras-grid/internal/application/grid"
	"github.com/jhoicas/compras-grid/internal/application/purchase"
	"github.com/jhoicas/compras-grid/internal/domain"
)

// writeError traduce los errores de dominio a estado HTTP + ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ROW_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrModeConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "MODE_CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrNoActiveCell):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_CELL", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		code := "UNAUTHORIZED"
		var ae authError
		if errors.As(err, &ae) {
			code = ae.code
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVOICE_INVALID", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// writeResult responde la vista de la grilla; en fallos de validación (422) adjunta la vista y los avisos.
func writeResult(c *fiber.Ctx, status int, res purchase.Result, gen uint64, err error) error {
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
				ErrorResponse: dto.ErrorResponse{Code: "INVOICE_INVALID", Message: err.Error()},
				View:          res.View,
				Notifications: notifications(res),
			})
		}
		return writeError(c, err)
	}
	return c.Status(status).JSON(dto.GridResponse{
		View:             res.View,
		Notifications:    notifications(res),
		SearchGeneration: gen,
	})
}

func notifications(res purchase.Result) []grid.Notification {
	if res.Notifications == nil {
		return []grid.Notification{}
	}
	return res.Notifications
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
