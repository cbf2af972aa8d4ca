package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prodflux/prodflux-api/internal/domain"
	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
	"github.com/prodflux/prodflux-api/internal/domain/stock"
)

// MovementUseCase registra movimientos manuales y reconciliaciones de inventario
// de forma transaccional, con bloqueo de fila (SELECT FOR UPDATE) sobre el
// balance durante validar+escribir, y sirve las consultas de stock.
type MovementUseCase struct {
	txRunner      TxRunner
	movementRepo  repository.MovementRepository
	stockRepo     repository.StockRepository
	materialRepo  repository.MaterialRepository
	workshopRepo  repository.WorkshopRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	movementRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	materialRepo repository.MaterialRepository,
	workshopRepo repository.WorkshopRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:     txRunner,
		movementRepo: movementRepo,
		stockRepo:    stockRepo,
		materialRepo: materialRepo,
		workshopRepo: workshopRepo,
	}
}

// MovementInput entrada para registrar un movimiento manual (sin documento).
// Quantity es magnitud para tipos direccionales y cantidad con signo para
// adjustment; el tipo reconciliation no se registra por aquí (ver Reconcile).
type MovementInput struct {
	WorkshopID int64
	MaterialID int64
	Kind       entity.MovementKind
	Quantity   decimal.Decimal
	Note       string
}

// Register valida y persiste un movimiento manual. Las salidas (y los ajustes
// negativos) se validan contra el balance bloqueado; un rechazo no escribe nada.
func (uc *MovementUseCase) Register(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	if !input.Kind.Valid() || input.Kind == entity.KindReconciliation ||
		input.Kind == entity.KindTransferOut || input.Kind == entity.KindTransferIn {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkRefs(input.MaterialID, input.WorkshopID); err != nil {
		return nil, err
	}

	signed := input.Kind.SignedQuantity(input.Quantity)
	now := time.Now()
	movement := &entity.Movement{
		TransactionID: uuid.New().String(),
		WorkshopID:    input.WorkshopID,
		MaterialID:    input.MaterialID,
		Kind:          input.Kind,
		Quantity:      signed,
		Note:          input.Note,
		CreatedAt:     now,
	}

	err := uc.txRunner.RunLedger(ctx, func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
		return ApplyMovement(movRepo, stockRepo, movement, now)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// Reconcile registra una reconciliación por conteo físico: un único movimiento
// con quantity = objetivo − stock actual. Un delta de exactamente cero se
// rechaza como no-op en lugar de registrarse, y el delta pasa por la misma
// validación que cualquier corrección (un objetivo negativo no es un conteo).
func (uc *MovementUseCase) Reconcile(ctx context.Context, materialID, workshopID int64, target decimal.Decimal, note string) (*entity.Movement, error) {
	if err := uc.checkRefs(materialID, workshopID); err != nil {
		return nil, err
	}

	now := time.Now()
	var movement *entity.Movement
	err := uc.txRunner.RunLedger(ctx, func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
		current, err := stockRepo.GetForUpdate(materialID, workshopID)
		if err != nil {
			return err
		}
		delta := target.Sub(current.Quantity)
		if delta.IsZero() {
			return domain.ErrNoStockChange
		}
		if res := stock.Validate(current.Quantity, delta); !res.Valid {
			return &domain.StockError{
				MaterialID: materialID,
				WorkshopID: workshopID,
				Current:    res.CurrentStock,
				Delta:      delta,
			}
		}
		autoNote := fmt.Sprintf(
			"Reconciliación de inventario: objetivo %s - actual %s = diferencia %s",
			target.String(), current.Quantity.String(), delta.String(),
		)
		if note != "" {
			autoNote += " - " + note
		}
		movement = &entity.Movement{
			TransactionID: uuid.New().String(),
			WorkshopID:    workshopID,
			MaterialID:    materialID,
			Kind:          entity.KindReconciliation,
			Quantity:      delta,
			Note:          autoNote,
			CreatedAt:     now,
		}
		current.Quantity = target
		current.UpdatedAt = now
		if err := stockRepo.Upsert(current); err != nil {
			return err
		}
		return movRepo.Create(movement)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// UpdateMovement edita cantidad y nota de un movimiento manual. Los movimientos
// ligados a un documento no se editan directamente.
func (uc *MovementUseCase) UpdateMovement(ctx context.Context, id int64, quantity decimal.Decimal, note string) (*entity.Movement, error) {
	var updated *entity.Movement
	err := uc.txRunner.RunLedger(ctx, func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
		movement, err := movRepo.GetByID(id)
		if err != nil {
			return err
		}
		if movement == nil {
			return domain.ErrNotFound
		}
		if movement.Linked() {
			return domain.ErrLinkedMovement
		}
		signed := movement.Kind.SignedQuantity(quantity)
		if signed.IsZero() {
			return domain.ErrInvalidInput
		}

		current, err := stockRepo.GetForUpdate(movement.MaterialID, movement.WorkshopID)
		if err != nil {
			return err
		}
		// El balance cambia por la diferencia entre la cantidad nueva y la vieja.
		delta := signed.Sub(movement.Quantity)
		if res := stock.Validate(current.Quantity, delta); !res.Valid {
			return &domain.StockError{
				MaterialID: movement.MaterialID,
				WorkshopID: movement.WorkshopID,
				Current:    res.CurrentStock,
				Delta:      delta,
			}
		}
		current.Quantity = current.Quantity.Add(delta)
		current.UpdatedAt = time.Now()
		if err := stockRepo.Upsert(current); err != nil {
			return err
		}
		movement.Quantity = signed
		movement.Note = note
		if err := movRepo.Update(movement); err != nil {
			return err
		}
		updated = movement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteMovement elimina un movimiento manual revirtiendo su efecto en el
// balance. Un movimiento ligado a un documento solo cae con su documento.
func (uc *MovementUseCase) DeleteMovement(ctx context.Context, id int64) error {
	return uc.txRunner.RunLedger(ctx, func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
		movement, err := movRepo.GetByID(id)
		if err != nil {
			return err
		}
		if movement == nil {
			return domain.ErrNotFound
		}
		if movement.Linked() {
			return domain.ErrLinkedMovement
		}
		current, err := stockRepo.GetForUpdate(movement.MaterialID, movement.WorkshopID)
		if err != nil {
			return err
		}
		delta := movement.Quantity.Neg()
		if res := stock.Validate(current.Quantity, delta); !res.Valid {
			return &domain.StockError{
				MaterialID: movement.MaterialID,
				WorkshopID: movement.WorkshopID,
				Current:    res.CurrentStock,
				Delta:      delta,
			}
		}
		current.Quantity = current.Quantity.Add(delta)
		current.UpdatedAt = time.Now()
		if err := stockRepo.Upsert(current); err != nil {
			return err
		}
		return movRepo.Delete(id)
	})
}

// CurrentStock devuelve el balance actual del par (material, taller).
func (uc *MovementUseCase) CurrentStock(materialID, workshopID int64) (decimal.Decimal, error) {
	s, err := uc.stockRepo.Get(materialID, workshopID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.Quantity, nil
}

// AlternativeStock stock de una alternativa concreta dentro del desglose.
type AlternativeStock struct {
	Material *entity.Material
	Stock    decimal.Decimal
}

// StockWithAlternatives stock del material más el de todas sus alternativas
// simétricas en el mismo taller, con desglose por alternativa.
type StockWithAlternatives struct {
	Material     *entity.Material
	WorkshopID   int64
	OwnStock     decimal.Decimal
	Total        decimal.Decimal
	Alternatives []AlternativeStock
}

// StockWithAlternatives calcula el stock disponible del cierre {material} ∪ alternativas.
func (uc *MovementUseCase) StockWithAlternatives(materialID, workshopID int64) (*StockWithAlternatives, error) {
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	own, err := uc.CurrentStock(materialID, workshopID)
	if err != nil {
		return nil, err
	}
	result := &StockWithAlternatives{
		Material:   material,
		WorkshopID: workshopID,
		OwnStock:   own,
		Total:      own,
	}
	alternatives, err := uc.materialRepo.ListAlternatives(materialID)
	if err != nil {
		return nil, err
	}
	for _, alt := range alternatives {
		altStock, err := uc.CurrentStock(alt.ID, workshopID)
		if err != nil {
			return nil, err
		}
		result.Total = result.Total.Add(altStock)
		result.Alternatives = append(result.Alternatives, AlternativeStock{Material: alt, Stock: altStock})
	}
	return result, nil
}

// MaterialStockRow fila del resumen de stock de un taller.
type MaterialStockRow struct {
	Material *entity.Material
	Stock    decimal.Decimal
}

// WorkshopStockOverview stock de todos los materiales en un taller. Materiales
// sin movimientos aparecen con stock cero.
func (uc *MovementUseCase) WorkshopStockOverview(workshopID int64) ([]MaterialStockRow, error) {
	if _, err := uc.workshop(workshopID); err != nil {
		return nil, err
	}
	materials, err := uc.materialRepo.List(0, 0)
	if err != nil {
		return nil, err
	}
	stocks, err := uc.stockRepo.ListByWorkshop(workshopID)
	if err != nil {
		return nil, err
	}
	byMaterial := make(map[int64]decimal.Decimal, len(stocks))
	for _, s := range stocks {
		byMaterial[s.MaterialID] = s.Quantity
	}
	rows := make([]MaterialStockRow, 0, len(materials))
	for _, m := range materials {
		rows = append(rows, MaterialStockRow{Material: m, Stock: byMaterial[m.ID]})
	}
	return rows, nil
}

// ListMovements lista movimientos de un material, opcionalmente filtrados por taller.
func (uc *MovementUseCase) ListMovements(materialID int64, workshopID *int64, limit, offset int) ([]*entity.Movement, error) {
	if material, err := uc.materialRepo.GetByID(materialID); err != nil {
		return nil, err
	} else if material == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movementRepo.ListByMaterial(materialID, workshopID, limit, offset)
}

// GetMovement obtiene un movimiento por ID.
func (uc *MovementUseCase) GetMovement(id int64) (*entity.Movement, error) {
	movement, err := uc.movementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, domain.ErrNotFound
	}
	return movement, nil
}

// RebuildStock recalcula el balance materializado de un par desde el libro de
// movimientos (reparación tras importaciones o correcciones directas en BD).
func (uc *MovementUseCase) RebuildStock(ctx context.Context, materialID, workshopID int64) (decimal.Decimal, error) {
	if err := uc.checkRefs(materialID, workshopID); err != nil {
		return decimal.Zero, err
	}
	var total decimal.Decimal
	err := uc.txRunner.RunLedger(ctx, func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
		current, err := stockRepo.GetForUpdate(materialID, workshopID)
		if err != nil {
			return err
		}
		total, err = movRepo.SumQuantity(materialID, workshopID)
		if err != nil {
			return err
		}
		current.Quantity = total
		current.UpdatedAt = time.Now()
		return stockRepo.Upsert(current)
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (uc *MovementUseCase) checkRefs(materialID, workshopID int64) error {
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return err
	}
	if material == nil {
		return domain.ErrNotFound
	}
	_, err = uc.workshop(workshopID)
	return err
}

func (uc *MovementUseCase) workshop(workshopID int64) (*entity.Workshop, error) {
	workshop, err := uc.workshopRepo.GetByID(workshopID)
	if err != nil {
		return nil, err
	}
	if workshop == nil {
		return nil, domain.ErrNotFound
	}
	return workshop, nil
}

// ApplyMovement valida (si resta) y aplica un movimiento sobre el balance
// bloqueado, y lo persiste dentro de la transacción del caller. Lo comparten los
// movimientos manuales y los sincronizadores de documentos.
func ApplyMovement(movRepo repository.MovementRepository, stockRepo repository.StockRepository, movement *entity.Movement, now time.Time) error {
	current, err := stockRepo.GetForUpdate(movement.MaterialID, movement.WorkshopID)
	if err != nil {
		return err
	}
	if movement.Quantity.IsNegative() {
		if res := stock.Validate(current.Quantity, movement.Quantity); !res.Valid {
			return &domain.StockError{
				MaterialID: movement.MaterialID,
				WorkshopID: movement.WorkshopID,
				Current:    res.CurrentStock,
				Delta:      movement.Quantity,
			}
		}
	}
	current.Quantity = current.Quantity.Add(movement.Quantity)
	current.UpdatedAt = now
	if err := stockRepo.Upsert(current); err != nil {
		return err
	}
	return movRepo.Create(movement)
}
