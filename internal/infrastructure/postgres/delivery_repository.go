package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo entregas de material y sus líneas.
type DeliveryRepo struct {
	q Querier
}

func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

func (r *DeliveryRepo) Create(d *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (workshop_id, order_id, note, is_historical, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		d.WorkshopID, d.OrderID, d.Note, d.IsHistorical, d.CreatedAt).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("create delivery: %w", err)
	}
	return nil
}

func (r *DeliveryRepo) CreateItem(item *entity.DeliveryItem) error {
	query := `
		INSERT INTO delivery_items (delivery_id, material_id, quantity, note)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.DeliveryID, item.MaterialID, item.Quantity, item.Note).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("create delivery item: %w", err)
	}
	return nil
}

// GetByID devuelve la entrega con sus items cargados. nil si no existe.
func (r *DeliveryRepo) GetByID(id int64) (*entity.Delivery, error) {
	var d entity.Delivery
	err := r.q.QueryRow(context.Background(), `
		SELECT id, workshop_id, order_id, note, is_historical, created_at
		FROM deliveries WHERE id = $1`, id).
		Scan(&d.ID, &d.WorkshopID, &d.OrderID, &d.Note, &d.IsHistorical, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}

	items, err := r.listItems(d.ID)
	if err != nil {
		return nil, err
	}
	d.Items = items
	return &d, nil
}

func (r *DeliveryRepo) Update(d *entity.Delivery) error {
	query := `
		UPDATE deliveries
		SET workshop_id = $1, order_id = $2, note = $3, is_historical = $4
		WHERE id = $5`
	_, err := r.q.Exec(context.Background(), query,
		d.WorkshopID, d.OrderID, d.Note, d.IsHistorical, d.ID)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	return nil
}

func (r *DeliveryRepo) DeleteItems(deliveryID int64) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM delivery_items WHERE delivery_id = $1`, deliveryID)
	if err != nil {
		return fmt.Errorf("delete delivery items: %w", err)
	}
	return nil
}

func (r *DeliveryRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM deliveries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	return nil
}

// List entregas más recientes primero, con items.
func (r *DeliveryRepo) List(limit, offset int) ([]*entity.Delivery, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, workshop_id, order_id, note, is_historical, created_at
		FROM deliveries ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var list []*entity.Delivery
	for rows.Next() {
		var d entity.Delivery
		if err := rows.Scan(&d.ID, &d.WorkshopID, &d.OrderID, &d.Note, &d.IsHistorical, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, d := range list {
		items, err := r.listItems(d.ID)
		if err != nil {
			return nil, err
		}
		d.Items = items
	}
	return list, nil
}

func (r *DeliveryRepo) listItems(deliveryID int64) ([]entity.DeliveryItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, delivery_id, material_id, quantity, note
		FROM delivery_items WHERE delivery_id = $1 ORDER BY id`, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("list delivery items: %w", err)
	}
	defer rows.Close()

	var items []entity.DeliveryItem
	for rows.Next() {
		var it entity.DeliveryItem
		if err := rows.Scan(&it.ID, &it.DeliveryID, &it.MaterialID, &it.Quantity, &it.Note); err != nil {
			return nil, fmt.Errorf("scan delivery item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
