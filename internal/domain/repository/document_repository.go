package repository

import (
	"github.com/shopspring/decimal"

	"github.com/prodflux/prodflux-api/internal/domain/entity"
)

// DeliveryRepository puerto de persistencia para entregas y sus líneas.
// GetByID devuelve la entrega con sus items cargados.
type DeliveryRepository interface {
	Create(d *entity.Delivery) error
	CreateItem(item *entity.DeliveryItem) error
	GetByID(id int64) (*entity.Delivery, error)
	Update(d *entity.Delivery) error
	DeleteItems(deliveryID int64) error
	Delete(id int64) error
	List(limit, offset int) ([]*entity.Delivery, error)
}

// TransferRepository puerto de persistencia para traslados y sus líneas.
type TransferRepository interface {
	Create(t *entity.Transfer) error
	CreateItem(item *entity.TransferItem) error
	GetByID(id int64) (*entity.Transfer, error)
	Update(t *entity.Transfer) error
	DeleteItems(transferID int64) error
	Delete(id int64) error
	List(limit, offset int) ([]*entity.Transfer, error)
}

// OrderRepository puerto de persistencia para órdenes de compra.
type OrderRepository interface {
	Create(o *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id int64) (*entity.Order, error)
	Update(o *entity.Order) error
	DeleteItems(orderID int64) error
	Delete(id int64) error
	List(limit, offset int) ([]*entity.Order, error)
	// OpenQuantityByMaterial suma las cantidades pedidas del material en órdenes
	// abiertas (ni históricas ni entregadas), sin acotar por taller.
	OpenQuantityByMaterial(materialID int64) (decimal.Decimal, error)
}
