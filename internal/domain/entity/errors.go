package entity

import (
	"fmt"

	"github.com/jhoicas/compras-grid/internal/domain"
)

var (
	errNegative     = fmt.Errorf("%w: los valores numéricos no pueden ser negativos", domain.ErrInvalidInput)
	errDiscountType = fmt.Errorf("%w: tipo de descuento desconocido", domain.ErrInvalidInput)
	errUnknownField = fmt.Errorf("%w: columna desconocida", domain.ErrInvalidInput)
)
