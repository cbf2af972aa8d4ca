package repository

import "github.com/prodflux/prodflux-api/internal/domain/entity"

// StockRepository puerto para el balance materializado por (material, taller).
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Get(materialID, workshopID int64) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE) durante la tx.
	GetForUpdate(materialID, workshopID int64) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	ListByWorkshop(workshopID int64) ([]*entity.Stock, error)
}

// ProductStockRepository puerto para unidades terminadas por (taller, producto).
type ProductStockRepository interface {
	Get(workshopID, productID int64) (*entity.ProductStock, error)
	Upsert(stock *entity.ProductStock) error
	ListByWorkshop(workshopID int64) ([]*entity.ProductStock, error)
}
