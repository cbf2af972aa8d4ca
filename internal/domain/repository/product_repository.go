package repository

import "github.com/prodflux/prodflux-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	Update(p *entity.Product) error
	Delete(id int64) error
	List(limit, offset int) ([]*entity.Product, error)
}

// BOMRepository puerto de persistencia para la lista de materiales por producto.
type BOMRepository interface {
	CreateLine(line *entity.BOMLine) error
	UpdateLine(line *entity.BOMLine) error
	DeleteLine(id int64) error
	GetLine(id int64) (*entity.BOMLine, error)
	ListByProduct(productID int64) ([]*entity.BOMLine, error)
}
