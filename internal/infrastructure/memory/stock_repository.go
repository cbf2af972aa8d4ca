package memory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo saldos materializados en memoria.
type StockRepo struct {
	s *Store
}

func NewStockRepository(s *Store) *StockRepo {
	return &StockRepo{s: s}
}

func (r *StockRepo) Get(materialID, workshopID int64) (*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if st, ok := r.s.stock[stockKey{materialID, workshopID}]; ok {
		c := *st
		return &c, nil
	}
	return &entity.Stock{MaterialID: materialID, WorkshopID: workshopID, Quantity: decimal.Zero}, nil
}

// GetForUpdate en memoria equivale a Get: las transacciones ya se serializan
// con el mutex del TxRunner.
func (r *StockRepo) GetForUpdate(materialID, workshopID int64) (*entity.Stock, error) {
	return r.Get(materialID, workshopID)
}

func (r *StockRepo) Upsert(stock *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *stock
	r.s.stock[stockKey{stock.MaterialID, stock.WorkshopID}] = &c
	return nil
}

func (r *StockRepo) ListByWorkshop(workshopID int64) ([]*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var list []*entity.Stock
	for k, st := range r.s.stock {
		if k.WorkshopID == workshopID {
			c := *st
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].MaterialID < list[j].MaterialID })
	return list, nil
}

var _ repository.ProductStockRepository = (*ProductStockRepo)(nil)

// ProductStockRepo stock de producto terminado en memoria.
type ProductStockRepo struct {
	s *Store
}

func NewProductStockRepository(s *Store) *ProductStockRepo {
	return &ProductStockRepo{s: s}
}

func (r *ProductStockRepo) Get(workshopID, productID int64) (*entity.ProductStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if st, ok := r.s.productStock[productStockKey{workshopID, productID}]; ok {
		c := *st
		return &c, nil
	}
	return &entity.ProductStock{WorkshopID: workshopID, ProductID: productID, Quantity: decimal.Zero}, nil
}

func (r *ProductStockRepo) Upsert(stock *entity.ProductStock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *stock
	r.s.productStock[productStockKey{stock.WorkshopID, stock.ProductID}] = &c
	return nil
}

func (r *ProductStockRepo) ListByWorkshop(workshopID int64) ([]*entity.ProductStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var list []*entity.ProductStock
	for k, st := range r.s.productStock {
		if k.WorkshopID == workshopID {
			c := *st
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ProductID < list[j].ProductID })
	return list, nil
}
