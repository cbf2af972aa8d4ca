// Package stock contiene la validación pura de movimientos de inventario:
// un movimiento propuesto nunca puede dejar el balance negativo.
package stock

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Result resultado de validar un cambio de stock propuesto.
type Result struct {
	Valid        bool
	CurrentStock decimal.Decimal
	NewStock     decimal.Decimal
	Message      string
}

// Validate comprueba si aplicar delta sobre current dejaría el stock negativo.
// Exactamente cero está permitido. El caller debe leer current bajo el bloqueo de
// fila de la misma transacción que escribe (check-then-act no es seguro sin eso).
func Validate(current, delta decimal.Decimal) Result {
	newStock := current.Add(delta)
	if newStock.IsNegative() {
		return Result{
			Valid:        false,
			CurrentStock: current,
			NewStock:     newStock,
			Message: fmt.Sprintf(
				"el stock quedaría negativo. actual: %s, cambio: %s, resultado: %s",
				current.String(), delta.String(), newStock.String(),
			),
		}
	}
	return Result{Valid: true, CurrentStock: current, NewStock: newStock, Message: "OK"}
}
