package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prodflux/prodflux-api/internal/application/documents"
	"github.com/prodflux/prodflux-api/internal/application/ledger"
	"github.com/prodflux/prodflux-api/internal/application/requirements"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

// Ensure TxRunner implements los puertos de transacción de cada caso de uso.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ documents.TxRunner = (*TxRunner)(nil)
var _ requirements.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, pasando
// repositorios atados a la tx. Commit si fn retorna nil, Rollback si no.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLedger transacción para movimientos manuales y reconciliaciones.
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewMovementRepository(q), NewStockRepository(q))
	})
}

// RunDelivery transacción para el sincronizador de entregas.
func (r *TxRunner) RunDelivery(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	deliveryRepo repository.DeliveryRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewMovementRepository(q), NewStockRepository(q), NewDeliveryRepository(q))
	})
}

// RunTransfer transacción para el sincronizador de traslados.
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	transferRepo repository.TransferRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewMovementRepository(q), NewStockRepository(q), NewTransferRepository(q))
	})
}

// RunOrder transacción para órdenes de compra.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewOrderRepository(q))
	})
}

// RunManufacture transacción para fabricar: consumos + stock de producto terminado.
func (r *TxRunner) RunManufacture(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	productStockRepo repository.ProductStockRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewMovementRepository(q), NewStockRepository(q), NewProductStockRepository(q))
	})
}
