package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNoStockChange     = errors.New("el stock ya es correcto")
	ErrLinkedMovement    = errors.New("movimiento ligado a un documento; modifíquelo a través del documento")
	ErrConflict          = errors.New("conflicto con el estado actual")
)

// StockError detalle de una validación de stock fallida. Incluye material, bodega,
// stock actual y delta intentado para que el fallo sea accionable desde el caller.
type StockError struct {
	MaterialID int64
	WorkshopID int64
	Current    decimal.Decimal
	Delta      decimal.Decimal
}

func (e *StockError) Error() string {
	return fmt.Sprintf(
		"el stock quedaría negativo: material %d, taller %d, actual %s, cambio %s, resultado %s",
		e.MaterialID, e.WorkshopID,
		e.Current.String(), e.Delta.String(), e.Current.Add(e.Delta).String(),
	)
}

// Is permite errors.Is(err, ErrInsufficientStock) sobre un *StockError.
func (e *StockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
