package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order orden de compra de materiales. No está acotada a un taller: las cantidades
// pedidas alimentan el cálculo de requerimientos como "on order" global.
type Order struct {
	ID           int64
	OrderNumber  string
	OrderedAt    time.Time
	DeliveredAt  *time.Time
	ShippingCost decimal.Decimal
	Note         string
	IsHistorical bool
	Items        []OrderItem
}

// Open indica si la orden aún cuenta como suministro pendiente: ni histórica ni entregada.
func (o *Order) Open() bool {
	return !o.IsHistorical && o.DeliveredAt == nil
}

// OrderItem línea de orden de compra.
type OrderItem struct {
	ID           int64
	OrderID      int64
	MaterialID   int64
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
}

// PriceWithShipping reparte el costo de envío de la orden proporcional a la
// cantidad de la línea y lo suma al precio unitario (redondeo a 2 decimales).
func (i OrderItem) PriceWithShipping(order *Order, totalQuantity decimal.Decimal) decimal.Decimal {
	if order.ShippingCost.IsZero() || totalQuantity.IsZero() || i.Quantity.IsZero() {
		return i.PricePerUnit
	}
	share := i.Quantity.Div(totalQuantity).Mul(order.ShippingCost)
	return i.PricePerUnit.Add(share.Div(i.Quantity)).Round(2)
}
