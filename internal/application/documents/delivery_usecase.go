package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prodflux/prodflux-api/internal/application/ledger"
	"github.com/prodflux/prodflux-api/internal/domain"
	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

// DeliveryUseCase sincroniza entregas con el libro de movimientos: crear genera
// un movimiento de entrada por línea, actualizar reemplaza el conjunto completo
// (borrar por origen + recrear) y borrar lo elimina en cascada. Entregas
// históricas (o ligadas a una orden histórica) no generan movimientos.
type DeliveryUseCase struct {
	txRunner     TxRunner
	deliveryRepo repository.DeliveryRepository
	orderRepo    repository.OrderRepository
	materialRepo repository.MaterialRepository
	workshopRepo repository.WorkshopRepository
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(
	txRunner TxRunner,
	deliveryRepo repository.DeliveryRepository,
	orderRepo repository.OrderRepository,
	materialRepo repository.MaterialRepository,
	workshopRepo repository.WorkshopRepository,
) *DeliveryUseCase {
	return &DeliveryUseCase{
		txRunner:     txRunner,
		deliveryRepo: deliveryRepo,
		orderRepo:    orderRepo,
		materialRepo: materialRepo,
		workshopRepo: workshopRepo,
	}
}

// DeliveryItemInput línea de entrega en una petición de crear/actualizar.
type DeliveryItemInput struct {
	MaterialID int64
	Quantity   decimal.Decimal
	Note       string
}

// DeliveryInput entrada para crear o actualizar una entrega.
type DeliveryInput struct {
	WorkshopID   int64
	OrderID      *int64
	Note         string
	IsHistorical bool
	Items        []DeliveryItemInput
}

// Create valida todas las líneas, persiste la entrega y sus movimientos de
// entrada en una sola transacción. Todo o nada.
func (uc *DeliveryUseCase) Create(ctx context.Context, input DeliveryInput) (*entity.Delivery, error) {
	historical, err := uc.validateInput(&input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	delivery := &entity.Delivery{
		WorkshopID:   input.WorkshopID,
		OrderID:      input.OrderID,
		Note:         input.Note,
		IsHistorical: input.IsHistorical,
		CreatedAt:    now,
	}

	err = uc.txRunner.RunDelivery(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		deliveryRepo repository.DeliveryRepository,
	) error {
		if err := deliveryRepo.Create(delivery); err != nil {
			return err
		}
		return uc.writeItems(movRepo, stockRepo, deliveryRepo, delivery, input.Items, historical, now)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(delivery.ID)
}

// Update reemplaza items y movimientos de la entrega: semánticamente es
// "borrar y volver a crear", nunca un parche en sitio. Una sola transacción.
func (uc *DeliveryUseCase) Update(ctx context.Context, id int64, input DeliveryInput) (*entity.Delivery, error) {
	existing, err := uc.Get(id)
	if err != nil {
		return nil, err
	}
	historical, err := uc.validateInput(&input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	existing.WorkshopID = input.WorkshopID
	existing.OrderID = input.OrderID
	existing.Note = input.Note
	existing.IsHistorical = input.IsHistorical

	err = uc.txRunner.RunDelivery(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		deliveryRepo repository.DeliveryRepository,
	) error {
		if _, err := reverseOriginMovements(movRepo, stockRepo, entity.OriginDelivery, id, now); err != nil {
			return err
		}
		if err := deliveryRepo.DeleteItems(id); err != nil {
			return err
		}
		if err := deliveryRepo.Update(existing); err != nil {
			return err
		}
		return uc.writeItems(movRepo, stockRepo, deliveryRepo, existing, input.Items, historical, now)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(id)
}

// Delete elimina la entrega, sus items y sus movimientos por búsqueda de origen,
// revirtiendo el balance. Una sola transacción.
func (uc *DeliveryUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.Get(id); err != nil {
		return err
	}
	now := time.Now()
	return uc.txRunner.RunDelivery(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		deliveryRepo repository.DeliveryRepository,
	) error {
		if _, err := reverseOriginMovements(movRepo, stockRepo, entity.OriginDelivery, id, now); err != nil {
			return err
		}
		if err := deliveryRepo.DeleteItems(id); err != nil {
			return err
		}
		return deliveryRepo.Delete(id)
	})
}

// Get obtiene una entrega con sus items.
func (uc *DeliveryUseCase) Get(id int64) (*entity.Delivery, error) {
	delivery, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if delivery == nil {
		return nil, domain.ErrNotFound
	}
	return delivery, nil
}

// List lista entregas (más recientes primero).
func (uc *DeliveryUseCase) List(limit, offset int) ([]*entity.Delivery, error) {
	return uc.deliveryRepo.List(limit, offset)
}

// writeItems persiste items y, si la entrega no es histórica, un movimiento de
// entrada por línea con el mismo origen y transaction_id.
func (uc *DeliveryUseCase) writeItems(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	deliveryRepo repository.DeliveryRepository,
	delivery *entity.Delivery,
	items []DeliveryItemInput,
	historical bool,
	now time.Time,
) error {
	txID := uuid.New().String()
	for _, item := range items {
		if err := deliveryRepo.CreateItem(&entity.DeliveryItem{
			DeliveryID: delivery.ID,
			MaterialID: item.MaterialID,
			Quantity:   item.Quantity,
			Note:       item.Note,
		}); err != nil {
			return err
		}
		if historical {
			continue
		}
		movement := &entity.Movement{
			TransactionID: txID,
			WorkshopID:    delivery.WorkshopID,
			MaterialID:    item.MaterialID,
			Kind:          entity.KindDelivery,
			Quantity:      item.Quantity.Abs(),
			Note:          fmt.Sprintf("Entrega #%d - %s", delivery.ID, item.Note),
			CreatedAt:     now,
			Origin:        &entity.Origin{Kind: entity.OriginDelivery, ID: delivery.ID},
		}
		if err := ledger.ApplyMovement(movRepo, stockRepo, movement, now); err != nil {
			return err
		}
	}
	return nil
}

// validateInput comprueba referencias y cantidades, y resuelve si la entrega
// debe suprimir movimientos (histórica o ligada a orden histórica).
func (uc *DeliveryUseCase) validateInput(input *DeliveryInput) (historical bool, err error) {
	if len(input.Items) == 0 {
		return false, domain.ErrInvalidInput
	}
	workshop, err := uc.workshopRepo.GetByID(input.WorkshopID)
	if err != nil {
		return false, err
	}
	if workshop == nil {
		return false, domain.ErrNotFound
	}
	historical = input.IsHistorical
	if input.OrderID != nil {
		order, err := uc.orderRepo.GetByID(*input.OrderID)
		if err != nil {
			return false, err
		}
		if order == nil {
			return false, domain.ErrNotFound
		}
		historical = historical || order.IsHistorical
	}
	for _, item := range input.Items {
		if !item.Quantity.IsPositive() {
			return false, domain.ErrInvalidInput
		}
		material, err := uc.materialRepo.GetByID(item.MaterialID)
		if err != nil {
			return false, err
		}
		if material == nil {
			return false, domain.ErrNotFound
		}
	}
	return historical, nil
}
