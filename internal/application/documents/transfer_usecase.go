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
	"github.com/prodflux/prodflux-api/internal/domain/stock"
)

// TransferUseCase sincroniza traslados entre talleres con el libro de
// movimientos. Cada línea produce exactamente dos movimientos con el mismo
// origen y transaction_id: transfer_out en el taller origen y transfer_in en el
// destino, creados juntos o ninguno. Todas las líneas se validan contra el stock
// del origen ANTES de escribir nada: una línea inválida rechaza el documento entero.
type TransferUseCase struct {
	txRunner     TxRunner
	transferRepo repository.TransferRepository
	materialRepo repository.MaterialRepository
	workshopRepo repository.WorkshopRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	transferRepo repository.TransferRepository,
	materialRepo repository.MaterialRepository,
	workshopRepo repository.WorkshopRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:     txRunner,
		transferRepo: transferRepo,
		materialRepo: materialRepo,
		workshopRepo: workshopRepo,
	}
}

// TransferItemInput línea de traslado en una petición de crear/actualizar.
type TransferItemInput struct {
	MaterialID int64
	Quantity   decimal.Decimal
	Note       string
}

// TransferInput entrada para crear o actualizar un traslado.
type TransferInput struct {
	SourceWorkshopID int64
	TargetWorkshopID int64
	Note             string
	Items            []TransferItemInput
}

// Create valida todas las líneas contra el stock del taller origen bajo bloqueo
// y, solo si todas pasan, persiste el traslado, sus items y el par de
// movimientos por línea. Una sola transacción, todo o nada.
func (uc *TransferUseCase) Create(ctx context.Context, input TransferInput) (*entity.Transfer, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	transfer := &entity.Transfer{
		SourceWorkshopID: input.SourceWorkshopID,
		TargetWorkshopID: input.TargetWorkshopID,
		Note:             input.Note,
		CreatedAt:        now,
	}

	err := uc.txRunner.RunTransfer(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
	) error {
		if err := uc.validateSourceStock(stockRepo, input, nil); err != nil {
			return err
		}
		if err := transferRepo.Create(transfer); err != nil {
			return err
		}
		return uc.writeItems(movRepo, stockRepo, transferRepo, transfer, input.Items, now)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(transfer.ID)
}

// Update reemplaza items y los dos movimientos de cada línea: borrar por origen,
// recalcular balances, revalidar las líneas nuevas y recrear. Una sola transacción.
func (uc *TransferUseCase) Update(ctx context.Context, id int64, input TransferInput) (*entity.Transfer, error) {
	existing, err := uc.Get(id)
	if err != nil {
		return nil, err
	}
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	existing.SourceWorkshopID = input.SourceWorkshopID
	existing.TargetWorkshopID = input.TargetWorkshopID
	existing.Note = input.Note

	err = uc.txRunner.RunTransfer(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
	) error {
		touched, err := reverseOriginMovements(movRepo, stockRepo, entity.OriginTransfer, id, now)
		if err != nil {
			return err
		}
		// Revalidar contra el balance ya sin los movimientos viejos.
		if err := uc.validateSourceStock(stockRepo, input, touched); err != nil {
			return err
		}
		if err := transferRepo.DeleteItems(id); err != nil {
			return err
		}
		if err := transferRepo.Update(existing); err != nil {
			return err
		}
		return uc.writeItems(movRepo, stockRepo, transferRepo, existing, input.Items, now)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(id)
}

// Delete elimina el traslado y revierte ambos lados de cada línea: el stock del
// origen y del destino vuelven a sus valores previos.
func (uc *TransferUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.Get(id); err != nil {
		return err
	}
	now := time.Now()
	return uc.txRunner.RunTransfer(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
	) error {
		if _, err := reverseOriginMovements(movRepo, stockRepo, entity.OriginTransfer, id, now); err != nil {
			return err
		}
		if err := transferRepo.DeleteItems(id); err != nil {
			return err
		}
		return transferRepo.Delete(id)
	})
}

// Get obtiene un traslado con sus items.
func (uc *TransferUseCase) Get(id int64) (*entity.Transfer, error) {
	transfer, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	return transfer, nil
}

// List lista traslados (más recientes primero).
func (uc *TransferUseCase) List(limit, offset int) ([]*entity.Transfer, error) {
	return uc.transferRepo.List(limit, offset)
}

// validateSourceStock valida todas las líneas contra el stock del origen bajo
// bloqueo, acumulando las salidas por material para que varias líneas del mismo
// material no pasen individualmente lo que juntas no cabe. No escribe nada.
func (uc *TransferUseCase) validateSourceStock(stockRepo repository.StockRepository, input TransferInput, alreadyLocked map[stockPair]struct{}) error {
	pairs := make(map[stockPair]struct{}, len(input.Items)*2)
	for _, item := range input.Items {
		pairs[stockPair{MaterialID: item.MaterialID, WorkshopID: input.SourceWorkshopID}] = struct{}{}
		pairs[stockPair{MaterialID: item.MaterialID, WorkshopID: input.TargetWorkshopID}] = struct{}{}
	}
	for p := range alreadyLocked {
		pairs[p] = struct{}{}
	}
	if err := lockPairs(stockRepo, pairs); err != nil {
		return err
	}

	running := make(map[int64]decimal.Decimal, len(input.Items))
	for _, item := range input.Items {
		current, ok := running[item.MaterialID]
		if !ok {
			row, err := stockRepo.GetForUpdate(item.MaterialID, input.SourceWorkshopID)
			if err != nil {
				return err
			}
			current = row.Quantity
		}
		delta := item.Quantity.Neg()
		if res := stock.Validate(current, delta); !res.Valid {
			return &domain.StockError{
				MaterialID: item.MaterialID,
				WorkshopID: input.SourceWorkshopID,
				Current:    res.CurrentStock,
				Delta:      delta,
			}
		}
		running[item.MaterialID] = current.Add(delta)
	}
	return nil
}

// writeItems persiste items y el par transfer_out/transfer_in por línea.
func (uc *TransferUseCase) writeItems(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	transferRepo repository.TransferRepository,
	transfer *entity.Transfer,
	items []TransferItemInput,
	now time.Time,
) error {
	txID := uuid.New().String()
	origin := &entity.Origin{Kind: entity.OriginTransfer, ID: transfer.ID}
	for _, item := range items {
		if err := transferRepo.CreateItem(&entity.TransferItem{
			TransferID: transfer.ID,
			MaterialID: item.MaterialID,
			Quantity:   item.Quantity,
			Note:       item.Note,
		}); err != nil {
			return err
		}
		note := fmt.Sprintf("Traslado #%d - %s", transfer.ID, item.Note)
		out := &entity.Movement{
			TransactionID: txID,
			WorkshopID:    transfer.SourceWorkshopID,
			MaterialID:    item.MaterialID,
			Kind:          entity.KindTransferOut,
			Quantity:      item.Quantity.Abs().Neg(),
			Note:          note,
			CreatedAt:     now,
			Origin:        origin,
		}
		if err := ledger.ApplyMovement(movRepo, stockRepo, out, now); err != nil {
			return err
		}
		in := &entity.Movement{
			TransactionID: txID,
			WorkshopID:    transfer.TargetWorkshopID,
			MaterialID:    item.MaterialID,
			Kind:          entity.KindTransferIn,
			Quantity:      item.Quantity.Abs(),
			Note:          note,
			CreatedAt:     now,
			Origin:        origin,
		}
		if err := ledger.ApplyMovement(movRepo, stockRepo, in, now); err != nil {
			return err
		}
	}
	return nil
}

func (uc *TransferUseCase) validateInput(input TransferInput) error {
	if len(input.Items) == 0 || input.SourceWorkshopID == input.TargetWorkshopID {
		return domain.ErrInvalidInput
	}
	for _, workshopID := range []int64{input.SourceWorkshopID, input.TargetWorkshopID} {
		workshop, err := uc.workshopRepo.GetByID(workshopID)
		if err != nil {
			return err
		}
		if workshop == nil {
			return domain.ErrNotFound
		}
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
