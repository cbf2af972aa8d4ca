package requirements_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodflux/prodflux-api/internal/application/requirements"
	"github.com/prodflux/prodflux-api/internal/domain"
	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/infrastructure/memory"
)

// reqFixture monta el motor sobre los repositorios en memoria con un taller,
// dos materiales y un producto cuya BOM consume 2x matA y 1x matB por unidad.
type reqFixture struct {
	store            *memory.Store
	engine           *requirements.Engine
	stockRepo        *memory.StockRepo
	productStockRepo *memory.ProductStockRepo
	materialRepo     *memory.MaterialRepo
	movementRepo     *memory.MovementRepo
	orderRepo        *memory.OrderRepo
	bomRepo          *memory.BOMRepo
	productRepo      *memory.ProductRepo
	workshop         *entity.Workshop
	matA             *entity.Material
	matB             *entity.Material
	product          *entity.Product
}

func newReqFixture(t *testing.T) *reqFixture {
	t.Helper()
	store := memory.NewStore()
	f := &reqFixture{
		store:            store,
		stockRepo:        memory.NewStockRepository(store),
		productStockRepo: memory.NewProductStockRepository(store),
		materialRepo:     memory.NewMaterialRepository(store),
		movementRepo:     memory.NewMovementRepository(store),
		orderRepo:        memory.NewOrderRepository(store),
		bomRepo:          memory.NewBOMRepository(store),
		productRepo:      memory.NewProductRepository(store),
		workshop:         &entity.Workshop{Name: "Taller Central"},
		matA:             &entity.Material{Name: "Perfil de aluminio"},
		matB:             &entity.Material{Name: "Controlador"},
		product:          &entity.Product{Name: "Luminaria L40"},
	}
	workshopRepo := memory.NewWorkshopRepository(store)
	require.NoError(t, workshopRepo.Create(f.workshop))
	require.NoError(t, f.materialRepo.Create(f.matA))
	require.NoError(t, f.materialRepo.Create(f.matB))
	require.NoError(t, f.productRepo.Create(f.product))
	require.NoError(t, f.bomRepo.CreateLine(&entity.BOMLine{
		ProductID: f.product.ID, MaterialID: f.matA.ID, QuantityPerUnit: decimal.NewFromInt(2),
	}))
	require.NoError(t, f.bomRepo.CreateLine(&entity.BOMLine{
		ProductID: f.product.ID, MaterialID: f.matB.ID, QuantityPerUnit: decimal.NewFromInt(1),
	}))

	f.engine = requirements.NewEngine(
		memory.NewTxRunner(store), f.bomRepo, f.stockRepo, f.productStockRepo,
		f.materialRepo, f.orderRepo, f.productRepo, workshopRepo,
	)
	return f
}

func (f *reqFixture) setStock(t *testing.T, materialID int64, qty string) {
	t.Helper()
	require.NoError(t, f.stockRepo.Upsert(&entity.Stock{
		MaterialID: materialID,
		WorkshopID: f.workshop.ID,
		Quantity:   decimal.RequireFromString(qty),
	}))
}

func TestMaterialRequirements_CalculaFaltantes(t *testing.T) {
	f := newReqFixture(t)
	f.setStock(t, f.matA.ID, "5")

	order := &entity.Order{OrderNumber: "PO-1", OrderedAt: time.Now()}
	require.NoError(t, f.orderRepo.Create(order))
	require.NoError(t, f.orderRepo.CreateItem(&entity.OrderItem{
		OrderID: order.ID, MaterialID: f.matB.ID, Quantity: decimal.NewFromInt(4),
	}))

	lines, err := f.engine.MaterialRequirements(f.product.ID, decimal.NewFromInt(10), f.workshop.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	// Orden ascendente por material: matA, matB.
	a, b := lines[0], lines[1]
	assert.Equal(t, f.matA.ID, a.Material.ID)
	assert.True(t, a.Required.Equal(decimal.NewFromInt(20)))
	assert.True(t, a.Available.Equal(decimal.NewFromInt(5)))
	assert.True(t, a.Missing.Equal(decimal.NewFromInt(15)))

	assert.Equal(t, f.matB.ID, b.Material.ID)
	assert.True(t, b.Required.Equal(decimal.NewFromInt(10)))
	assert.True(t, b.OnOrder.Equal(decimal.NewFromInt(4)), "lo pedido descuenta del faltante")
	assert.True(t, b.Missing.Equal(decimal.NewFromInt(6)))
}

func TestMaterialRequirements_FaltanteNuncaNegativo(t *testing.T) {
	f := newReqFixture(t)
	f.setStock(t, f.matA.ID, "100")
	f.setStock(t, f.matB.ID, "100")

	lines, err := f.engine.MaterialRequirements(f.product.ID, decimal.NewFromInt(3), f.workshop.ID)
	require.NoError(t, err)
	for _, line := range lines {
		assert.True(t, line.Missing.IsZero(), "sobra material, faltante cero para %s", line.Material.Name)
	}
}

func TestAggregatedRequirements_SumaPorMaterial(t *testing.T) {
	f := newReqFixture(t)

	// Segundo producto que también consume matA.
	other := &entity.Product{Name: "Luminaria L60"}
	require.NoError(t, f.productRepo.Create(other))
	require.NoError(t, f.bomRepo.CreateLine(&entity.BOMLine{
		ProductID: other.ID, MaterialID: f.matA.ID, QuantityPerUnit: decimal.NewFromInt(3),
	}))
	f.setStock(t, f.matA.ID, "10")

	lines, err := f.engine.AggregatedRequirements([]requirements.ProductDemand{
		{ProductID: f.product.ID, Quantity: decimal.NewFromInt(2)}, // 4x matA, 2x matB
		{ProductID: other.ID, Quantity: decimal.NewFromInt(5)},    // 15x matA
	}, f.workshop.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	a := lines[0]
	assert.Equal(t, f.matA.ID, a.Material.ID)
	assert.True(t, a.Required.Equal(decimal.NewFromInt(19)), "el requerido se agrega entre productos")
	assert.True(t, a.Missing.Equal(decimal.NewFromInt(9)))
}

func TestAggregatedRequirements_EntradasInvalidas(t *testing.T) {
	f := newReqFixture(t)

	_, err := f.engine.AggregatedRequirements(nil, f.workshop.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.engine.AggregatedRequirements([]requirements.ProductDemand{
		{ProductID: f.product.ID, Quantity: decimal.Zero},
	}, f.workshop.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.engine.AggregatedRequirements([]requirements.ProductDemand{
		{ProductID: 999, Quantity: decimal.NewFromInt(1)},
	}, f.workshop.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProducibleUnits_MinimoSobreLineas(t *testing.T) {
	f := newReqFixture(t)
	f.setStock(t, f.matA.ID, "7") // 7/2 = 3.5 -> 3
	f.setStock(t, f.matB.ID, "5") // 5/1 = 5

	units, err := f.engine.ProducibleUnits(f.product.ID, f.workshop.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), units, "limita la línea más escasa, redondeando hacia abajo")
}

func TestProducibleUnits_AlternativasCuentan(t *testing.T) {
	f := newReqFixture(t)
	alt := &entity.Material{Name: "Perfil de aluminio (alt)"}
	require.NoError(t, f.materialRepo.Create(alt))
	require.NoError(t, f.materialRepo.AddAlternative(f.matA.ID, alt.ID))

	f.setStock(t, f.matA.ID, "3")
	f.setStock(t, alt.ID, "5") // disponible de matA: 3+5 = 8 -> 4 unidades
	f.setStock(t, f.matB.ID, "10")

	units, err := f.engine.ProducibleUnits(f.product.ID, f.workshop.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), units)
}

func TestProducibleUnits_CasosDegenerados(t *testing.T) {
	f := newReqFixture(t)

	// Sin BOM no hay nada que fabricar.
	vacio := &entity.Product{Name: "Sin receta"}
	require.NoError(t, f.productRepo.Create(vacio))
	units, err := f.engine.ProducibleUnits(vacio.ID, f.workshop.ID)
	require.NoError(t, err)
	assert.Zero(t, units)

	// Una línea con cantidad por unidad cero falla cerrado: 0, no infinito.
	raro := &entity.Product{Name: "Receta corrupta"}
	require.NoError(t, f.productRepo.Create(raro))
	require.NoError(t, f.bomRepo.CreateLine(&entity.BOMLine{
		ProductID: raro.ID, MaterialID: f.matA.ID, QuantityPerUnit: decimal.Zero,
	}))
	f.setStock(t, f.matA.ID, "100")
	units, err = f.engine.ProducibleUnits(raro.ID, f.workshop.ID)
	require.NoError(t, err)
	assert.Zero(t, units)
}

func TestProducibleOverview(t *testing.T) {
	f := newReqFixture(t)
	f.setStock(t, f.matA.ID, "4")
	f.setStock(t, f.matB.ID, "4")

	rows, err := f.engine.ProducibleOverview(f.workshop.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, f.product.ID, rows[0].Product.ID)
	assert.Equal(t, int64(2), rows[0].PossibleUnits)
}

func TestManufacture_ConsumeYAcredita(t *testing.T) {
	f := newReqFixture(t)
	f.setStock(t, f.matA.ID, "10")
	f.setStock(t, f.matB.ID, "10")

	err := f.engine.Manufacture(context.Background(), f.product.ID, decimal.NewFromInt(3), f.workshop.ID)
	require.NoError(t, err)

	// 3 unidades: 6x matA y 3x matB consumidos, 3 productos acreditados.
	a, err := f.stockRepo.Get(f.matA.ID, f.workshop.ID)
	require.NoError(t, err)
	assert.True(t, a.Quantity.Equal(decimal.NewFromInt(4)))
	b, err := f.stockRepo.Get(f.matB.ID, f.workshop.ID)
	require.NoError(t, err)
	assert.True(t, b.Quantity.Equal(decimal.NewFromInt(7)))

	units, err := f.engine.ProductStock(f.workshop.ID, f.product.ID)
	require.NoError(t, err)
	assert.True(t, units.Equal(decimal.NewFromInt(3)))

	// Los consumos quedan en el libro como movimientos de consumo con la misma
	// transacción.
	movs, err := f.movementRepo.ListByMaterial(f.matA.ID, &f.workshop.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.KindConsumption, movs[0].Kind)
	assert.True(t, movs[0].Quantity.Equal(decimal.NewFromInt(-6)))
}

func TestManufacture_InsuficienteNoEscribeNada(t *testing.T) {
	f := newReqFixture(t)
	f.setStock(t, f.matA.ID, "10")
	f.setStock(t, f.matB.ID, "2")

	err := f.engine.Manufacture(context.Background(), f.product.ID, decimal.NewFromInt(3), f.workshop.ID)
	var stockErr *domain.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, f.matB.ID, stockErr.MaterialID)

	// Ni consumos parciales ni producto acreditado.
	a, err := f.stockRepo.Get(f.matA.ID, f.workshop.ID)
	require.NoError(t, err)
	assert.True(t, a.Quantity.Equal(decimal.NewFromInt(10)))
	units, err := f.engine.ProductStock(f.workshop.ID, f.product.ID)
	require.NoError(t, err)
	assert.True(t, units.IsZero())
}

func TestManufacture_SinBOMRechazada(t *testing.T) {
	f := newReqFixture(t)
	vacio := &entity.Product{Name: "Sin receta"}
	require.NoError(t, f.productRepo.Create(vacio))

	err := f.engine.Manufacture(context.Background(), vacio.ID, decimal.NewFromInt(1), f.workshop.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
