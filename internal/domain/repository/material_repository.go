package repository

import "github.com/prodflux/prodflux-api/internal/domain/entity"

// MaterialRepository puerto de persistencia para materiales y su relación
// simétrica de alternativas (tabla de pares con orden canónico a < b).
type MaterialRepository interface {
	Create(m *entity.Material) error
	GetByID(id int64) (*entity.Material, error)
	Update(m *entity.Material) error
	Delete(id int64) error
	List(limit, offset int) ([]*entity.Material, error)
	AddAlternative(materialID, alternativeID int64) error
	RemoveAlternative(materialID, alternativeID int64) error
	ListAlternatives(materialID int64) ([]*entity.Material, error)
	CreateCategory(c *entity.MaterialCategory) error
	UpdateCategory(c *entity.MaterialCategory) error
	DeleteCategory(id int64) error
	ListCategories() ([]*entity.MaterialCategory, error)
}

// WorkshopRepository puerto de persistencia para talleres.
type WorkshopRepository interface {
	Create(w *entity.Workshop) error
	GetByID(id int64) (*entity.Workshop, error)
	Update(w *entity.Workshop) error
	Delete(id int64) error
	List() ([]*entity.Workshop, error)
}
