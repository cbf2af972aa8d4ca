package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Delivery entrega de materiales a un taller, opcionalmente ligada a una orden de
// compra. Si IsHistorical (o la orden ligada lo es) la entrega no genera movimientos.
type Delivery struct {
	ID           int64
	WorkshopID   int64
	OrderID      *int64
	Note         string
	IsHistorical bool
	CreatedAt    time.Time
	Items        []DeliveryItem
}

// DeliveryItem línea de entrega: material y cantidad recibida.
type DeliveryItem struct {
	ID         int64
	DeliveryID int64
	MaterialID int64
	Quantity   decimal.Decimal
	Note       string
}
