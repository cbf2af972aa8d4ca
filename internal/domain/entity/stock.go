package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock balance materializado de un material en un taller. Se mantiene en la misma
// transacción que cada movimiento; el libro de movimientos sigue siendo la fuente
// de verdad para auditoría y puede reconstruir esta fila.
type Stock struct {
	MaterialID int64
	WorkshopID int64
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}

// ProductStock unidades terminadas de un producto en un taller.
type ProductStock struct {
	WorkshopID int64
	ProductID  int64
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
