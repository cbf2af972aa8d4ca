package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind clasifica un movimiento del libro de inventario.
type MovementKind string

// Tipos de movimiento. La cantidad se guarda SIEMPRE con signo aplicado:
// entradas positivas, salidas negativas. El stock es la suma simple de cantidades.
const (
	KindDelivery       MovementKind = "delivery"       // entrada por lieferung/entrega
	KindConsumption    MovementKind = "consumption"    // salida por fabricación o uso
	KindLoss           MovementKind = "loss"           // salida por pérdida/merma
	KindAdjustment     MovementKind = "adjustment"     // ajuste manual (signo libre)
	KindReconciliation MovementKind = "reconciliation" // delta calculado por inventario físico
	KindTransferOut    MovementKind = "transfer_out"   // salida en bodega origen de un traslado
	KindTransferIn     MovementKind = "transfer_in"    // entrada en bodega destino de un traslado
)

// Valid indica si el tipo es uno de los conocidos.
func (k MovementKind) Valid() bool {
	switch k {
	case KindDelivery, KindConsumption, KindLoss, KindAdjustment,
		KindReconciliation, KindTransferOut, KindTransferIn:
		return true
	}
	return false
}

// Direction devuelve +1 para tipos de entrada, -1 para tipos de salida y 0 para
// los tipos cuyo signo viene dado por la cantidad (adjustment, reconciliation).
func (k MovementKind) Direction() int {
	switch k {
	case KindDelivery, KindTransferIn:
		return 1
	case KindConsumption, KindLoss, KindTransferOut:
		return -1
	}
	return 0
}

// SignedQuantity normaliza una cantidad según el tipo: para tipos direccionales
// la magnitud recibe el signo del tipo; para adjustment/reconciliation se respeta
// el signo recibido.
func (k MovementKind) SignedQuantity(quantity decimal.Decimal) decimal.Decimal {
	switch k.Direction() {
	case 1:
		return quantity.Abs()
	case -1:
		return quantity.Abs().Neg()
	}
	return quantity
}

// OriginKind identifica el tipo de documento que generó un movimiento.
type OriginKind string

const (
	OriginDelivery OriginKind = "delivery"
	OriginTransfer OriginKind = "transfer"
)

// Origin referencia débil al documento origen de un movimiento. Sirve solo para
// auditoría y para el reemplazo en cascada; no es una relación de propiedad.
type Origin struct {
	Kind OriginKind
	ID   int64
}

// Movement es un registro append-only de cambio de stock para (material, bodega).
// Los movimientos con Origin != nil solo se crean/eliminan vía su documento.
type Movement struct {
	ID            int64
	TransactionID string // agrupa los movimientos escritos en una misma operación
	WorkshopID    int64
	MaterialID    int64
	Kind          MovementKind
	Quantity      decimal.Decimal // con signo aplicado
	Note          string
	CreatedAt     time.Time
	Origin        *Origin
}

// Linked indica si el movimiento está ligado a un documento (no editable directo).
func (m *Movement) Linked() bool {
	return m.Origin != nil
}
