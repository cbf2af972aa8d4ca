package requirements

import (
	"context"

	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

// TxRunner ejecuta la fabricación dentro de una transacción: los consumos de
// todas las líneas de la BOM y el alta de producto terminado son atómicos.
type TxRunner interface {
	RunManufacture(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		productStockRepo repository.ProductStockRepository,
	) error) error
}
