package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto terminado fabricado a partir de materiales.
type Product struct {
	ID            int64
	Name          string
	ArticleNumber string
	CreatedAt     time.Time
}

// BOMLine línea de la lista de materiales (bill of materials): cuántas unidades
// de un material consume cada unidad fabricada del producto.
type BOMLine struct {
	ID              int64
	ProductID       int64
	MaterialID      int64
	QuantityPerUnit decimal.Decimal
}
