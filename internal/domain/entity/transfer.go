package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer traslado de materiales entre dos talleres. Cada línea produce
// exactamente dos movimientos con el mismo origen: transfer_out en el taller
// origen y transfer_in en el destino, creados juntos o ninguno.
type Transfer struct {
	ID               int64
	SourceWorkshopID int64
	TargetWorkshopID int64
	Note             string
	CreatedAt        time.Time
	Items            []TransferItem
}

// TransferItem línea de traslado.
type TransferItem struct {
	ID         int64
	TransferID int64
	MaterialID int64
	Quantity   decimal.Decimal
	Note       string
}
