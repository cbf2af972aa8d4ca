package repository

import (
	"github.com/shopspring/decimal"

	"github.com/prodflux/prodflux-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del libro de movimientos.
// Los movimientos son append-only: Update/Delete existen solo para movimientos
// manuales (sin origen); los ligados a documentos se reemplazan por origen.
type MovementRepository interface {
	Create(m *entity.Movement) error
	GetByID(id int64) (*entity.Movement, error)
	Update(m *entity.Movement) error
	Delete(id int64) error
	ListByMaterial(materialID int64, workshopID *int64, limit, offset int) ([]*entity.Movement, error)
	ListByOrigin(kind entity.OriginKind, originID int64) ([]*entity.Movement, error)
	DeleteByOrigin(kind entity.OriginKind, originID int64) error
	// SumQuantity suma con signo todas las cantidades del par (material, taller).
	SumQuantity(materialID, workshopID int64) (decimal.Decimal, error)
}
