// Package memory implementa los repositorios sobre mapas en memoria. Se usa
// en pruebas de los casos de uso, sin necesidad de una base de datos real.
package memory

import (
	"context"
	"sync"

	"github.com/prodflux/prodflux-api/internal/application/documents"
	"github.com/prodflux/prodflux-api/internal/application/ledger"
	"github.com/prodflux/prodflux-api/internal/application/requirements"
	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

type stockKey struct {
	MaterialID int64
	WorkshopID int64
}

type productStockKey struct {
	WorkshopID int64
	ProductID  int64
}

type pairKey struct {
	A int64
	B int64
}

// Store guarda todas las tablas en memoria. Los repositorios comparten el
// mismo Store y su mutex.
type Store struct {
	mu sync.Mutex

	movements    map[int64]*entity.Movement
	stock        map[stockKey]*entity.Stock
	productStock map[productStockKey]*entity.ProductStock

	materials    map[int64]*entity.Material
	categories   map[int64]*entity.MaterialCategory
	alternatives map[pairKey]struct{}
	workshops    map[int64]*entity.Workshop

	deliveries    map[int64]*entity.Delivery
	deliveryItems map[int64]*entity.DeliveryItem
	transfers     map[int64]*entity.Transfer
	transferItems map[int64]*entity.TransferItem
	orders        map[int64]*entity.Order
	orderItems    map[int64]*entity.OrderItem

	products map[int64]*entity.Product
	bomLines map[int64]*entity.BOMLine

	seq map[string]int64
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		movements:     make(map[int64]*entity.Movement),
		stock:         make(map[stockKey]*entity.Stock),
		productStock:  make(map[productStockKey]*entity.ProductStock),
		materials:     make(map[int64]*entity.Material),
		categories:    make(map[int64]*entity.MaterialCategory),
		alternatives:  make(map[pairKey]struct{}),
		workshops:     make(map[int64]*entity.Workshop),
		deliveries:    make(map[int64]*entity.Delivery),
		deliveryItems: make(map[int64]*entity.DeliveryItem),
		transfers:     make(map[int64]*entity.Transfer),
		transferItems: make(map[int64]*entity.TransferItem),
		orders:        make(map[int64]*entity.Order),
		orderItems:    make(map[int64]*entity.OrderItem),
		products:      make(map[int64]*entity.Product),
		bomLines:      make(map[int64]*entity.BOMLine),
		seq:           make(map[string]int64),
	}
}

func (s *Store) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// snapshot copia profunda de todo el estado, para poder deshacer una
// transacción fallida.
func (s *Store) snapshot() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := NewStore()
	for id, m := range s.movements {
		snap.movements[id] = cloneMovement(m)
	}
	for k, st := range s.stock {
		c := *st
		snap.stock[k] = &c
	}
	for k, st := range s.productStock {
		c := *st
		snap.productStock[k] = &c
	}
	for id, m := range s.materials {
		c := *m
		snap.materials[id] = &c
	}
	for id, cat := range s.categories {
		c := *cat
		snap.categories[id] = &c
	}
	for k := range s.alternatives {
		snap.alternatives[k] = struct{}{}
	}
	for id, w := range s.workshops {
		c := *w
		snap.workshops[id] = &c
	}
	for id, d := range s.deliveries {
		c := *d
		c.Items = append([]entity.DeliveryItem(nil), d.Items...)
		snap.deliveries[id] = &c
	}
	for id, it := range s.deliveryItems {
		c := *it
		snap.deliveryItems[id] = &c
	}
	for id, t := range s.transfers {
		c := *t
		c.Items = append([]entity.TransferItem(nil), t.Items...)
		snap.transfers[id] = &c
	}
	for id, it := range s.transferItems {
		c := *it
		snap.transferItems[id] = &c
	}
	for id, o := range s.orders {
		c := *o
		c.Items = append([]entity.OrderItem(nil), o.Items...)
		snap.orders[id] = &c
	}
	for id, it := range s.orderItems {
		c := *it
		snap.orderItems[id] = &c
	}
	for id, p := range s.products {
		c := *p
		snap.products[id] = &c
	}
	for id, l := range s.bomLines {
		c := *l
		snap.bomLines[id] = &c
	}
	for table, n := range s.seq {
		snap.seq[table] = n
	}
	return snap
}

func (s *Store) restore(snap *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements = snap.movements
	s.stock = snap.stock
	s.productStock = snap.productStock
	s.materials = snap.materials
	s.categories = snap.categories
	s.alternatives = snap.alternatives
	s.workshops = snap.workshops
	s.deliveries = snap.deliveries
	s.deliveryItems = snap.deliveryItems
	s.transfers = snap.transfers
	s.transferItems = snap.transferItems
	s.orders = snap.orders
	s.orderItems = snap.orderItems
	s.products = snap.products
	s.bomLines = snap.bomLines
	s.seq = snap.seq
}

func cloneMovement(m *entity.Movement) *entity.Movement {
	c := *m
	if m.Origin != nil {
		o := *m.Origin
		c.Origin = &o
	}
	return &c
}

var _ ledger.TxRunner = (*TxRunner)(nil)
var _ documents.TxRunner = (*TxRunner)(nil)
var _ requirements.TxRunner = (*TxRunner)(nil)

// TxRunner serializa transacciones con un mutex propio. Antes de ejecutar el
// callback toma una copia del estado y la restaura si el callback falla, para
// conservar la semántica todo-o-nada.
type TxRunner struct {
	txMu  sync.Mutex
	store *Store
}

// NewTxRunner construye el runner sobre el store dado.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) run(fn func() error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	snap := r.store.snapshot()
	if err := fn(); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	return r.run(func() error {
		return fn(NewMovementRepository(r.store), NewStockRepository(r.store))
	})
}

func (r *TxRunner) RunDelivery(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	deliveryRepo repository.DeliveryRepository,
) error) error {
	return r.run(func() error {
		return fn(NewMovementRepository(r.store), NewStockRepository(r.store), NewDeliveryRepository(r.store))
	})
}

func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	transferRepo repository.TransferRepository,
) error) error {
	return r.run(func() error {
		return fn(NewMovementRepository(r.store), NewStockRepository(r.store), NewTransferRepository(r.store))
	})
}

func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
) error) error {
	return r.run(func() error {
		return fn(NewOrderRepository(r.store))
	})
}

func (r *TxRunner) RunManufacture(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	productStockRepo repository.ProductStockRepository,
) error) error {
	return r.run(func() error {
		return fn(NewMovementRepository(r.store), NewStockRepository(r.store), NewProductStockRepository(r.store))
	})
}
