package documents_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodflux/prodflux-api/internal/application/documents"
	"github.com/prodflux/prodflux-api/internal/domain"
	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/infrastructure/memory"
)

// docFixture monta los casos de uso de documentos sobre los repositorios en
// memoria con dos talleres y dos materiales de prueba.
type docFixture struct {
	store        *memory.Store
	movementRepo *memory.MovementRepo
	stockRepo    *memory.StockRepo
	orderRepo    *memory.OrderRepo
	deliveryUC   *documents.DeliveryUseCase
	transferUC   *documents.TransferUseCase
	orderUC      *documents.OrderUseCase
	matA         *entity.Material
	matB         *entity.Material
	wsNorth      *entity.Workshop
	wsSouth      *entity.Workshop
}

func newDocFixture(t *testing.T) *docFixture {
	t.Helper()
	store := memory.NewStore()
	movementRepo := memory.NewMovementRepository(store)
	stockRepo := memory.NewStockRepository(store)
	materialRepo := memory.NewMaterialRepository(store)
	workshopRepo := memory.NewWorkshopRepository(store)
	deliveryRepo := memory.NewDeliveryRepository(store)
	transferRepo := memory.NewTransferRepository(store)
	orderRepo := memory.NewOrderRepository(store)
	runner := memory.NewTxRunner(store)

	f := &docFixture{
		store:        store,
		movementRepo: movementRepo,
		stockRepo:    stockRepo,
		orderRepo:    orderRepo,
		deliveryUC:   documents.NewDeliveryUseCase(runner, deliveryRepo, orderRepo, materialRepo, workshopRepo),
		transferUC:   documents.NewTransferUseCase(runner, transferRepo, materialRepo, workshopRepo),
		orderUC:      documents.NewOrderUseCase(runner, orderRepo, materialRepo),
		matA:         &entity.Material{Name: "Platine v2"},
		matB:         &entity.Material{Name: "Kabelbaum"},
		wsNorth:      &entity.Workshop{Name: "Taller Norte"},
		wsSouth:      &entity.Workshop{Name: "Taller Sur"},
	}
	require.NoError(t, materialRepo.Create(f.matA))
	require.NoError(t, materialRepo.Create(f.matB))
	require.NoError(t, workshopRepo.Create(f.wsNorth))
	require.NoError(t, workshopRepo.Create(f.wsSouth))
	return f
}

func (f *docFixture) stock(t *testing.T, materialID, workshopID int64) decimal.Decimal {
	t.Helper()
	s, err := f.stockRepo.Get(materialID, workshopID)
	require.NoError(t, err)
	return s.Quantity
}

func (f *docFixture) originMovements(t *testing.T, kind entity.OriginKind, id int64) []*entity.Movement {
	t.Helper()
	list, err := f.movementRepo.ListByOrigin(kind, id)
	require.NoError(t, err)
	return list
}

func TestDeliveryCreate_GeneraMovimientosLigados(t *testing.T) {
	f := newDocFixture(t)

	delivery, err := f.deliveryUC.Create(context.Background(), documents.DeliveryInput{
		WorkshopID: f.wsNorth.ID,
		Note:       "pedido agosto",
		Items: []documents.DeliveryItemInput{
			{MaterialID: f.matA.ID, Quantity: decimal.NewFromInt(10)},
			{MaterialID: f.matB.ID, Quantity: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	require.Len(t, delivery.Items, 2)

	movements := f.originMovements(t, entity.OriginDelivery, delivery.ID)
	require.Len(t, movements, 2)
	for _, m := range movements {
		assert.Equal(t, entity.KindDelivery, m.Kind)
		assert.True(t, m.Linked())
		assert.Equal(t, movements[0].TransactionID, m.TransactionID,
			"todas las líneas comparten transaction_id")
	}
	assert.True(t, f.stock(t, f.matA.ID, f.wsNorth.ID).Equal(decimal.NewFromInt(10)))
	assert.True(t, f.stock(t, f.matB.ID, f.wsNorth.ID).Equal(decimal.NewFromInt(5)))
}

func TestDeliveryCreate_HistoricaNoMueveStock(t *testing.T) {
	f := newDocFixture(t)

	delivery, err := f.deliveryUC.Create(context.Background(), documents.DeliveryInput{
		WorkshopID:   f.wsNorth.ID,
		IsHistorical: true,
		Items:        []documents.DeliveryItemInput{{MaterialID: f.matA.ID, Quantity: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	assert.Empty(t, f.originMovements(t, entity.OriginDelivery, delivery.ID))
	assert.True(t, f.stock(t, f.matA.ID, f.wsNorth.ID).IsZero())
}

func TestDeliveryCreate_OrdenHistoricaSuprimeMovimientos(t *testing.T) {
	f := newDocFixture(t)

	order := &entity.Order{OrderNumber: "ORD-X", IsHistorical: true}
	require.NoError(t, f.orderRepo.Create(order))

	delivery, err := f.deliveryUC.Create(context.Background(), documents.DeliveryInput{
		WorkshopID: f.wsNorth.ID,
		OrderID:    &order.ID,
		Items:      []documents.DeliveryItemInput{{MaterialID: f.matA.ID, Quantity: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	assert.Empty(t, f.originMovements(t, entity.OriginDelivery, delivery.ID))
	assert.True(t, f.stock(t, f.matA.ID, f.wsNorth.ID).IsZero())
}

func TestDeliveryUpdate_ReemplazaPorOrigen(t *testing.T) {
	f := newDocFixture(t)

	delivery, err := f.deliveryUC.Create(context.Background(), documents.DeliveryInput{
		WorkshopID: f.wsNorth.ID,
		Items:      []documents.DeliveryItemInput{{MaterialID: f.matA.ID, Quantity: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	// Cambiar la línea de 10 a 4 no parchea: borra y recrea.
	updated, err := f.deliveryUC.Update(context.Background(), delivery.ID, documents.DeliveryInput{
		WorkshopID: f.wsNorth.ID,
		Items:      []documents.DeliveryItemInput{{MaterialID: f.matA.ID, Quantity: decimal.NewFromInt(4)}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.True(t, updated.Items[0].Quantity.Equal(decimal.NewFromInt(4)))

	movements := f.originMovements(t, entity.OriginDelivery, delivery.ID)
	require.Len(t, movements, 1, "el movimiento viejo desaparece con la actualización")
	assert.True(t, f.stock(t, f.matA.ID, f.wsNorth.ID).Equal(decimal.NewFromInt(4)))
}

func TestDeliveryUpdate_EsIdempotenteEnElBalance(t *testing.T) {
	f := newDocFixture(t)

	input := documents.DeliveryInput{
		WorkshopID: f.wsNorth.ID,
		Items:      []documents.DeliveryItemInput{{MaterialID: f.matA.ID, Quantity: decimal.NewFromInt(10)}},
	}
	delivery, err := f.deliveryUC.Create(context.Background(), input)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = f.deliveryUC.Update(context.Background(), delivery.ID, input)
		require.NoError(t, err)
	}
	assert.True(t, f.stock(t, f.matA.ID, f.wsNorth.ID).Equal(decimal.NewFromInt(10)),
		"actualizar con los mismos datos no duplica el efecto")
}

func TestDeliveryDelete_RevierteElBalance(t *testing.T) {
	f := newDocFixture(t)

	delivery, err := f.deliveryUC.Create(context.Background(), documents.DeliveryInput{
		WorkshopID: f.wsNorth.ID,
		Items:      []documents.DeliveryItemInput{{MaterialID: f.matA.ID, Quantity: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	require.NoError(t, f.deliveryUC.Delete(context.Background(), delivery.ID))

	assert.True(t, f.stock(t, f.matA.ID, f.wsNorth.ID).IsZero())
	assert.Empty(t, f.originMovements(t, entity.OriginDelivery, delivery.ID))
	_, err = f.deliveryUC.Get(delivery.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeliveryCreate_EntradasInvalidas(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()

	_, err := f.deliveryUC.Create(ctx, documents.DeliveryInput{WorkshopID: f.wsNorth.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = f.deliveryUC.Create(ctx, documents.DeliveryInput{
		WorkshopID: f.wsNorth.ID,
		Items:      []documents.DeliveryItemInput{{MaterialID: f.matA.ID, Quantity: decimal.NewFromInt(-1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad no positiva")

	_, err = f.deliveryUC.Create(ctx, documents.DeliveryInput{
		WorkshopID: 999,
		Items:      []documents.DeliveryItemInput{{MaterialID: f.matA.ID, Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "taller inexistente")
}
