package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrIndexOutOfRange = errors.New("índice de fila fuera de rango")
	ErrModeConflict    = errors.New("la grilla está en otro modo de edición")
	ErrNoActiveCell    = errors.New("no hay una celda activa")
	ErrValidation      = errors.New("la factura no pasó la validación")
	ErrUnauthorized    = errors.New("no autorizado")
)
