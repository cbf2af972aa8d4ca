package documents_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodflux/prodflux-api/internal/application/documents"
	"github.com/prodflux/prodflux-api/internal/domain"
	"github.com/prodflux/prodflux-api/internal/domain/entity"
)

func TestOrderCreate_NumeroAutogenerado(t *testing.T) {
	f := newDocFixture(t)
	orderedAt := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	order, err := f.orderUC.Create(context.Background(), documents.OrderInput{
		OrderedAt: orderedAt,
		Items:     []documents.OrderItemInput{{MaterialID: f.matA.ID, Quantity: decimal.NewFromInt(20)}},
	})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("ORD-2026-%05d", order.ID), order.OrderNumber)
	require.Len(t, order.Items, 1)
}

func TestOrderCreate_RespetaNumeroExplicito(t *testing.T) {
	f := newDocFixture(t)

	order, err := f.orderUC.Create(context.Background(), documents.OrderInput{
		OrderNumber: "PO-777",
		OrderedAt:   time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, "PO-777", order.OrderNumber)
}

func TestOrderCreate_NoMueveStock(t *testing.T) {
	f := newDocFixture(t)

	_, err := f.orderUC.Create(context.Background(), documents.OrderInput{
		OrderedAt: time.Now(),
		Items:     []documents.OrderItemInput{{MaterialID: f.matA.ID, Quantity: decimal.NewFromInt(20)}},
	})
	require.NoError(t, err)

	assert.True(t, f.stock(t, f.matA.ID, f.wsNorth.ID).IsZero(),
		"pedir material no es recibirlo")
}

func TestOrder_CantidadAbiertaPorMaterial(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()

	open, err := f.orderUC.Create(ctx, documents.OrderInput{
		OrderedAt: time.Now(),
		Items:     []documents.OrderItemInput{{MaterialID: f.matA.ID, Quantity: decimal.NewFromInt(20)}},
	})
	require.NoError(t, err)

	delivered := time.Now()
	_, err = f.orderUC.Create(ctx, documents.OrderInput{
		OrderedAt:   time.Now(),
		DeliveredAt: &delivered,
		Items:       []documents.OrderItemInput{{MaterialID: f.matA.ID, Quantity: decimal.NewFromInt(50)}},
	})
	require.NoError(t, err)

	_, err = f.orderUC.Create(ctx, documents.OrderInput{
		OrderedAt:    time.Now(),
		IsHistorical: true,
		Items:        []documents.OrderItemInput{{MaterialID: f.matA.ID, Quantity: decimal.NewFromInt(30)}},
	})
	require.NoError(t, err)

	// Solo cuenta la orden abierta: ni la entregada ni la histórica.
	qty, err := f.orderRepo.OpenQuantityByMaterial(f.matA.ID)
	require.NoError(t, err)
	assert.True(t, qty.Equal(decimal.NewFromInt(20)))

	// Marcarla como entregada la saca del acumulado.
	_, err = f.orderUC.Update(ctx, open.ID, documents.OrderInput{
		OrderNumber: open.OrderNumber,
		OrderedAt:   open.OrderedAt,
		DeliveredAt: &delivered,
		Items:       []documents.OrderItemInput{{MaterialID: f.matA.ID, Quantity: decimal.NewFromInt(20)}},
	})
	require.NoError(t, err)
	qty, err = f.orderRepo.OpenQuantityByMaterial(f.matA.ID)
	require.NoError(t, err)
	assert.True(t, qty.IsZero())
}

func TestOrderUpdate_ReemplazaLineas(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()

	order, err := f.orderUC.Create(ctx, documents.OrderInput{
		OrderedAt: time.Now(),
		Items:     []documents.OrderItemInput{{MaterialID: f.matA.ID, Quantity: decimal.NewFromInt(20)}},
	})
	require.NoError(t, err)

	updated, err := f.orderUC.Update(ctx, order.ID, documents.OrderInput{
		OrderNumber: order.OrderNumber,
		OrderedAt:   order.OrderedAt,
		Items: []documents.OrderItemInput{
			{MaterialID: f.matB.ID, Quantity: decimal.NewFromInt(7), PricePerUnit: decimal.RequireFromString("1.25")},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, f.matB.ID, updated.Items[0].MaterialID)
	assert.True(t, updated.Items[0].PricePerUnit.Equal(decimal.RequireFromString("1.25")))
}

func TestOrderDelete(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()

	order, err := f.orderUC.Create(ctx, documents.OrderInput{
		OrderedAt: time.Now(),
		Items:     []documents.OrderItemInput{{MaterialID: f.matA.ID, Quantity: decimal.NewFromInt(20)}},
	})
	require.NoError(t, err)

	require.NoError(t, f.orderUC.Delete(ctx, order.ID))
	_, err = f.orderUC.Get(order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	qty, err := f.orderRepo.OpenQuantityByMaterial(f.matA.ID)
	require.NoError(t, err)
	assert.True(t, qty.IsZero(), "las líneas caen con la orden")
}

func TestOrder_Abierta(t *testing.T) {
	now := time.Now()
	abierta := entity.Order{OrderedAt: now}
	entregada := entity.Order{OrderedAt: now, DeliveredAt: &now}
	historica := entity.Order{OrderedAt: now, IsHistorical: true}

	assert.True(t, abierta.Open())
	assert.False(t, entregada.Open())
	assert.False(t, historica.Open())
}

func TestOrderCreate_EntradasInvalidas(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()

	_, err := f.orderUC.Create(ctx, documents.OrderInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin fecha de pedido")

	_, err = f.orderUC.Create(ctx, documents.OrderInput{
		OrderedAt: time.Now(),
		Items:     []documents.OrderItemInput{{MaterialID: f.matA.ID, Quantity: decimal.Zero}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = f.orderUC.Create(ctx, documents.OrderInput{
		OrderedAt: time.Now(),
		Items:     []documents.OrderItemInput{{MaterialID: 999, Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "material inexistente")
}
