package documents

import (
	"context"

	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

// TxRunner ejecuta los sincronizadores de documentos dentro de una transacción,
// pasando repositorios atados a esa tx. Todo el ciclo validar + reemplazar +
// escribir de un documento ocurre dentro de una sola transacción: ningún estado
// intermedio es observable desde fuera.
type TxRunner interface {
	RunDelivery(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		deliveryRepo repository.DeliveryRepository,
	) error) error

	RunTransfer(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
	) error) error

	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
	) error) error
}
