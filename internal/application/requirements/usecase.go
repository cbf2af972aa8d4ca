package requirements

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prodflux/prodflux-api/internal/application/ledger"
	"github.com/prodflux/prodflux-api/internal/domain"
	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
	"github.com/prodflux/prodflux-api/internal/domain/stock"
)

// Engine deriva cantidades fabricables y reportes de faltantes a partir de la
// BOM, el stock del taller (incluyendo alternativas simétricas) y las cantidades
// pendientes en órdenes de compra. También ejecuta la fabricación consumiendo
// materiales del libro.
type Engine struct {
	txRunner         TxRunner
	bomRepo          repository.BOMRepository
	stockRepo        repository.StockRepository
	productStockRepo repository.ProductStockRepository
	materialRepo     repository.MaterialRepository
	orderRepo        repository.OrderRepository
	productRepo      repository.ProductRepository
	workshopRepo     repository.WorkshopRepository
}

// NewEngine construye el motor de requerimientos.
func NewEngine(
	txRunner TxRunner,
	bomRepo repository.BOMRepository,
	stockRepo repository.StockRepository,
	productStockRepo repository.ProductStockRepository,
	materialRepo repository.MaterialRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	workshopRepo repository.WorkshopRepository,
) *Engine {
	return &Engine{
		txRunner:         txRunner,
		bomRepo:          bomRepo,
		stockRepo:        stockRepo,
		productStockRepo: productStockRepo,
		materialRepo:     materialRepo,
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		workshopRepo:     workshopRepo,
	}
}

// RequirementLine faltante de un material para una corrida de fabricación.
// missing = max(0, required − (available + on_order)).
type RequirementLine struct {
	Material  *entity.Material
	Required  decimal.Decimal
	Available decimal.Decimal // stock del material y sus alternativas en el taller
	OnOrder   decimal.Decimal // pedido en órdenes abiertas, global (no por taller)
	Missing   decimal.Decimal
}

// ProductDemand un producto y la cantidad deseada, para cálculos agregados.
type ProductDemand struct {
	ProductID int64
	Quantity  decimal.Decimal
}

// MaterialRequirements requerimientos para fabricar quantity unidades de un
// producto en un taller.
func (e *Engine) MaterialRequirements(productID int64, quantity decimal.Decimal, workshopID int64) ([]RequirementLine, error) {
	return e.AggregatedRequirements([]ProductDemand{{ProductID: productID, Quantity: quantity}}, workshopID)
}

// AggregatedRequirements agrega los requerimientos de varios productos: el
// requerido se suma POR MATERIAL a través de todos los productos pedidos, y el
// faltante se calcula una sola vez sobre ese total.
func (e *Engine) AggregatedRequirements(demands []ProductDemand, workshopID int64) ([]RequirementLine, error) {
	if len(demands) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := e.checkWorkshop(workshopID); err != nil {
		return nil, err
	}

	requiredByMaterial := make(map[int64]decimal.Decimal)
	for _, demand := range demands {
		if !demand.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		if err := e.checkProduct(demand.ProductID); err != nil {
			return nil, err
		}
		lines, err := e.bomRepo.ListByProduct(demand.ProductID)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			required := line.QuantityPerUnit.Mul(demand.Quantity)
			requiredByMaterial[line.MaterialID] = requiredByMaterial[line.MaterialID].Add(required)
		}
	}

	materialIDs := make([]int64, 0, len(requiredByMaterial))
	for id := range requiredByMaterial {
		materialIDs = append(materialIDs, id)
	}
	sort.Slice(materialIDs, func(i, j int) bool { return materialIDs[i] < materialIDs[j] })

	result := make([]RequirementLine, 0, len(materialIDs))
	for _, materialID := range materialIDs {
		material, err := e.materialRepo.GetByID(materialID)
		if err != nil {
			return nil, err
		}
		if material == nil {
			return nil, domain.ErrNotFound
		}
		available, err := e.availableStock(materialID, workshopID)
		if err != nil {
			return nil, err
		}
		onOrder, err := e.orderRepo.OpenQuantityByMaterial(materialID)
		if err != nil {
			return nil, err
		}
		required := requiredByMaterial[materialID]
		missing := required.Sub(available.Add(onOrder))
		if missing.IsNegative() {
			missing = decimal.Zero
		}
		result = append(result, RequirementLine{
			Material:  material,
			Required:  required,
			Available: available,
			OnOrder:   onOrder,
			Missing:   missing,
		})
	}
	return result, nil
}

// ProducibleUnits unidades enteras fabricables de un producto en un taller:
// floor(min sobre líneas BOM de disponible/cantidad_por_unidad). Una línea con
// cantidad_por_unidad <= 0 aporta 0 (falla cerrado, no "sin límite"); un
// producto sin BOM tampoco es fabricable.
func (e *Engine) ProducibleUnits(productID, workshopID int64) (int64, error) {
	if err := e.checkProduct(productID); err != nil {
		return 0, err
	}
	if err := e.checkWorkshop(workshopID); err != nil {
		return 0, err
	}
	lines, err := e.bomRepo.ListByProduct(productID)
	if err != nil {
		return 0, err
	}
	if len(lines) == 0 {
		return 0, nil
	}
	var min int64
	for i, line := range lines {
		var limit int64
		if line.QuantityPerUnit.IsPositive() {
			available, err := e.availableStock(line.MaterialID, workshopID)
			if err != nil {
				return 0, err
			}
			if available.IsPositive() {
				limit = available.Div(line.QuantityPerUnit).Floor().IntPart()
			}
		}
		if i == 0 || limit < min {
			min = limit
		}
	}
	return min, nil
}

// ProducibleOverviewRow unidades fabricables de un producto.
type ProducibleOverviewRow struct {
	Product       *entity.Product
	PossibleUnits int64
}

// ProducibleOverview unidades fabricables de todos los productos en un taller.
func (e *Engine) ProducibleOverview(workshopID int64) ([]ProducibleOverviewRow, error) {
	if err := e.checkWorkshop(workshopID); err != nil {
		return nil, err
	}
	products, err := e.productRepo.List(0, 0)
	if err != nil {
		return nil, err
	}
	rows := make([]ProducibleOverviewRow, 0, len(products))
	for _, product := range products {
		units, err := e.ProducibleUnits(product.ID, workshopID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, ProducibleOverviewRow{Product: product, PossibleUnits: units})
	}
	return rows, nil
}

// Manufacture fabrica quantity unidades: valida y escribe un consumo por línea
// de la BOM (todo o nada, una transacción) y suma al stock de producto terminado.
func (e *Engine) Manufacture(ctx context.Context, productID int64, quantity decimal.Decimal, workshopID int64) error {
	if !quantity.IsPositive() {
		return domain.ErrInvalidInput
	}
	product, err := e.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := e.checkWorkshop(workshopID); err != nil {
		return err
	}
	lines, err := e.bomRepo.ListByProduct(productID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	txID := uuid.New().String()
	note := fmt.Sprintf("Fabricación %sx %s", quantity.String(), product.Name)

	return e.txRunner.RunManufacture(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		productStockRepo repository.ProductStockRepository,
	) error {
		// Validar todos los consumos antes de escribir nada, acumulando por material.
		running := make(map[int64]decimal.Decimal, len(lines))
		for _, line := range lines {
			current, ok := running[line.MaterialID]
			if !ok {
				row, err := stockRepo.GetForUpdate(line.MaterialID, workshopID)
				if err != nil {
					return err
				}
				current = row.Quantity
			}
			delta := line.QuantityPerUnit.Mul(quantity).Neg()
			if res := stock.Validate(current, delta); !res.Valid {
				return &domain.StockError{
					MaterialID: line.MaterialID,
					WorkshopID: workshopID,
					Current:    res.CurrentStock,
					Delta:      delta,
				}
			}
			running[line.MaterialID] = current.Add(delta)
		}
		for _, line := range lines {
			movement := &entity.Movement{
				TransactionID: txID,
				WorkshopID:    workshopID,
				MaterialID:    line.MaterialID,
				Kind:          entity.KindConsumption,
				Quantity:      line.QuantityPerUnit.Mul(quantity).Neg(),
				Note:          note,
				CreatedAt:     now,
			}
			if err := ledger.ApplyMovement(movRepo, stockRepo, movement, now); err != nil {
				return err
			}
		}
		productStock, err := productStockRepo.Get(workshopID, productID)
		if err != nil {
			return err
		}
		productStock.Quantity = productStock.Quantity.Add(quantity)
		productStock.UpdatedAt = now
		return productStockRepo.Upsert(productStock)
	})
}

// ProductStock stock de producto terminado en un taller.
func (e *Engine) ProductStock(workshopID, productID int64) (decimal.Decimal, error) {
	if err := e.checkWorkshop(workshopID); err != nil {
		return decimal.Zero, err
	}
	if err := e.checkProduct(productID); err != nil {
		return decimal.Zero, err
	}
	s, err := e.productStockRepo.Get(workshopID, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.Quantity, nil
}

// availableStock stock del cierre {material} ∪ alternativas en el taller.
func (e *Engine) availableStock(materialID, workshopID int64) (decimal.Decimal, error) {
	own, err := e.stockRepo.Get(materialID, workshopID)
	if err != nil {
		return decimal.Zero, err
	}
	total := own.Quantity
	alternatives, err := e.materialRepo.ListAlternatives(materialID)
	if err != nil {
		return decimal.Zero, err
	}
	for _, alt := range alternatives {
		altStock, err := e.stockRepo.Get(alt.ID, workshopID)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(altStock.Quantity)
	}
	return total, nil
}

func (e *Engine) checkWorkshop(workshopID int64) error {
	workshop, err := e.workshopRepo.GetByID(workshopID)
	if err != nil {
		return err
	}
	if workshop == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (e *Engine) checkProduct(productID int64) error {
	product, err := e.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return nil
}
