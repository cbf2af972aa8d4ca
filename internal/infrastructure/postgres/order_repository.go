package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo órdenes de compra a proveedores y sus líneas.
type OrderRepo struct {
	q Querier
}

func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func (r *OrderRepo) Create(o *entity.Order) error {
	query := `
		INSERT INTO orders (order_number, ordered_at, delivered_at, shipping_cost, note, is_historical)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		o.OrderNumber, o.OrderedAt, o.DeliveredAt, o.ShippingCost, o.Note, o.IsHistorical).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, material_id, quantity, price_per_unit)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.OrderID, item.MaterialID, item.Quantity, item.PricePerUnit).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("create order item: %w", err)
	}
	return nil
}

// GetByID devuelve la orden con sus items cargados. nil si no existe.
func (r *OrderRepo) GetByID(id int64) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(context.Background(), `
		SELECT id, order_number, ordered_at, delivered_at, shipping_cost, note, is_historical
		FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.OrderNumber, &o.OrderedAt, &o.DeliveredAt, &o.ShippingCost, &o.Note, &o.IsHistorical)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	items, err := r.listItems(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepo) Update(o *entity.Order) error {
	query := `
		UPDATE orders
		SET order_number = $1, ordered_at = $2, delivered_at = $3, shipping_cost = $4, note = $5, is_historical = $6
		WHERE id = $7`
	_, err := r.q.Exec(context.Background(), query,
		o.OrderNumber, o.OrderedAt, o.DeliveredAt, o.ShippingCost, o.Note, o.IsHistorical, o.ID)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

func (r *OrderRepo) DeleteItems(orderID int64) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return nil
}

func (r *OrderRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// List órdenes más recientes primero, con items.
func (r *OrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, order_number, ordered_at, delivered_at, shipping_cost, note, is_historical
		FROM orders ORDER BY ordered_at DESC, id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.OrderedAt, &o.DeliveredAt, &o.ShippingCost, &o.Note, &o.IsHistorical); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range list {
		items, err := r.listItems(o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return list, nil
}

// OpenQuantityByMaterial cantidad pendiente de recibir del material: suma de
// líneas en órdenes abiertas (no históricas y sin fecha de entrega).
func (r *OrderRepo) OpenQuantityByMaterial(materialID int64) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.material_id = $1
		  AND o.is_historical = FALSE
		  AND o.delivered_at IS NULL`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, materialID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("open quantity by material: %w", err)
	}
	return total, nil
}

func (r *OrderRepo) listItems(orderID int64) ([]entity.OrderItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, order_id, material_id, quantity, price_per_unit
		FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MaterialID, &it.Quantity, &it.PricePerUnit); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
