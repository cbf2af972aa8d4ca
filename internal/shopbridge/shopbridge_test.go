package shopbridge_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodflux/prodflux-api/internal/shopbridge"
	"github.com/prodflux/prodflux-api/pkg/logger"
)

// fakeFetcher respuesta programable para el worker.
type fakeFetcher struct {
	calls  atomic.Int32
	orders []shopbridge.Order
	err    error
}

func (f *fakeFetcher) FetchOrders(_ context.Context) ([]shopbridge.Order, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.orders, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "disabled"})
}

func TestCache_GetDevuelveCopia(t *testing.T) {
	cache := shopbridge.NewCache()
	cache.SetOrders([]shopbridge.Order{{ID: 1, Number: "1001"}}, time.Now())

	snap := cache.Get()
	snap.Orders[0].Number = "mutado"

	assert.Equal(t, "1001", cache.Get().Orders[0].Number,
		"mutar el snapshot del caller no toca la caché")
}

func TestCache_ErrorConservaPedidos(t *testing.T) {
	cache := shopbridge.NewCache()
	refreshedAt := time.Now()
	cache.SetOrders([]shopbridge.Order{{ID: 1}}, refreshedAt)

	cache.SetError(errors.New("timeout de la tienda"))

	snap := cache.Get()
	assert.Len(t, snap.Orders, 1, "un refresco fallido no descarta los pedidos viejos")
	assert.Equal(t, "timeout de la tienda", snap.LastError)
	assert.True(t, snap.RefreshedAt.Equal(refreshedAt))

	// Un refresco exitoso posterior limpia el error.
	cache.SetOrders(nil, time.Now())
	assert.Empty(t, cache.Get().LastError)
}

func TestSnapshot_Fresh(t *testing.T) {
	now := time.Now()

	assert.False(t, shopbridge.Snapshot{}.Fresh(time.Hour, now), "nunca refrescada")
	assert.True(t, shopbridge.Snapshot{RefreshedAt: now.Add(-time.Minute)}.Fresh(time.Hour, now))
	assert.False(t, shopbridge.Snapshot{RefreshedAt: now.Add(-2 * time.Hour)}.Fresh(time.Hour, now))
}

func TestService_TriggerRefreshDescartaDuplicados(t *testing.T) {
	// Sin arrancar el worker, el canal con buffer 1 admite exactamente un
	// disparo pendiente.
	svc := shopbridge.NewService(&fakeFetcher{}, time.Hour, testLogger())

	assert.True(t, svc.TriggerRefresh())
	assert.False(t, svc.TriggerRefresh(), "el segundo disparo se descarta, no se encola")
}

func TestService_RefrescaYReportaEstado(t *testing.T) {
	fetcher := &fakeFetcher{orders: []shopbridge.Order{{ID: 1, Number: "1001"}, {ID: 2, Number: "1002"}}}
	svc := shopbridge.NewService(fetcher, time.Hour, testLogger())
	require.NoError(t, svc.Start())
	defer svc.Stop()

	require.Eventually(t, func() bool {
		return !svc.Snapshot().RefreshedAt.IsZero()
	}, 2*time.Second, 10*time.Millisecond, "el refresco inicial debe completarse")

	status := svc.Status()
	assert.Equal(t, 2, status.OrderCount)
	assert.Empty(t, status.LastError)
	assert.Equal(t, time.Hour.String(), status.Interval)
	assert.GreaterOrEqual(t, fetcher.calls.Load(), int32(1))
}

func TestService_ErrorDeFetchQuedaEnElEstado(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("HTTP 503")}
	svc := shopbridge.NewService(fetcher, time.Hour, testLogger())
	require.NoError(t, svc.Start())
	defer svc.Stop()

	require.Eventually(t, func() bool {
		return svc.Status().LastError != ""
	}, 2*time.Second, 10*time.Millisecond)

	status := svc.Status()
	assert.Zero(t, status.OrderCount)
	assert.Contains(t, status.LastError, "503")
	assert.True(t, status.RefreshedAt.IsZero(), "un fallo no cuenta como refresco")
}
