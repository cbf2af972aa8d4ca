package ledger

import (
	"context"

	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre el movimiento y el
// balance materializado.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error) error
}
