package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prodflux/prodflux-api/internal/domain"
	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

// OrderUseCase administra órdenes de compra. Las órdenes no generan movimientos:
// alimentan el cálculo de requerimientos como cantidad "pedida" y marcan entregas
// ligadas como históricas cuando corresponde.
type OrderUseCase struct {
	txRunner     TxRunner
	orderRepo    repository.OrderRepository
	materialRepo repository.MaterialRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner TxRunner, orderRepo repository.OrderRepository, materialRepo repository.MaterialRepository) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, orderRepo: orderRepo, materialRepo: materialRepo}
}

// OrderItemInput línea de orden en una petición de crear/actualizar.
type OrderItemInput struct {
	MaterialID   int64
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
}

// OrderInput entrada para crear o actualizar una orden de compra.
type OrderInput struct {
	OrderNumber  string
	OrderedAt    time.Time
	DeliveredAt  *time.Time
	ShippingCost decimal.Decimal
	Note         string
	IsHistorical bool
	Items        []OrderItemInput
}

// Create persiste la orden y sus líneas en una transacción. Si no trae número se
// genera ORD-<año>-<id:05d> como en el sistema anterior.
func (uc *OrderUseCase) Create(ctx context.Context, input OrderInput) (*entity.Order, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}
	order := &entity.Order{
		OrderNumber:  input.OrderNumber,
		OrderedAt:    input.OrderedAt,
		DeliveredAt:  input.DeliveredAt,
		ShippingCost: input.ShippingCost,
		Note:         input.Note,
		IsHistorical: input.IsHistorical,
	}
	err := uc.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		if order.OrderNumber == "" {
			order.OrderNumber = fmt.Sprintf("ORD-%d-%05d", order.OrderedAt.Year(), order.ID)
			if err := orderRepo.Update(order); err != nil {
				return err
			}
		}
		return uc.writeItems(orderRepo, order, input.Items)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(order.ID)
}

// Update reemplaza campos base y líneas (las líneas se borran y recrean).
func (uc *OrderUseCase) Update(ctx context.Context, id int64, input OrderInput) (*entity.Order, error) {
	existing, err := uc.Get(id)
	if err != nil {
		return nil, err
	}
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}
	existing.OrderNumber = input.OrderNumber
	existing.OrderedAt = input.OrderedAt
	existing.DeliveredAt = input.DeliveredAt
	existing.ShippingCost = input.ShippingCost
	existing.Note = input.Note
	existing.IsHistorical = input.IsHistorical

	err = uc.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository) error {
		if existing.OrderNumber == "" {
			existing.OrderNumber = fmt.Sprintf("ORD-%d-%05d", existing.OrderedAt.Year(), existing.ID)
		}
		if err := orderRepo.Update(existing); err != nil {
			return err
		}
		if err := orderRepo.DeleteItems(id); err != nil {
			return err
		}
		return uc.writeItems(orderRepo, existing, input.Items)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(id)
}

// Delete elimina la orden y sus líneas.
func (uc *OrderUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.Get(id); err != nil {
		return err
	}
	return uc.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository) error {
		if err := orderRepo.DeleteItems(id); err != nil {
			return err
		}
		return orderRepo.Delete(id)
	})
}

// Get obtiene una orden con sus líneas.
func (uc *OrderUseCase) Get(id int64) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List lista órdenes (más recientes primero).
func (uc *OrderUseCase) List(limit, offset int) ([]*entity.Order, error) {
	return uc.orderRepo.List(limit, offset)
}

func (uc *OrderUseCase) writeItems(orderRepo repository.OrderRepository, order *entity.Order, items []OrderItemInput) error {
	for _, item := range items {
		if err := orderRepo.CreateItem(&entity.OrderItem{
			OrderID:      order.ID,
			MaterialID:   item.MaterialID,
			Quantity:     item.Quantity,
			PricePerUnit: item.PricePerUnit,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (uc *OrderUseCase) validateInput(input OrderInput) error {
	if input.OrderedAt.IsZero() {
		return domain.ErrInvalidInput
	}
	for _, item := range input.Items {
		if !item.Quantity.IsPositive() {
			return domain.ErrInvalidInput
		}
		material, err := uc.materialRepo.GetByID(item.MaterialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}
