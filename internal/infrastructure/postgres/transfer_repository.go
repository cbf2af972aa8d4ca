package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo traslados entre talleres y sus líneas.
type TransferRepo struct {
	q Querier
}

func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

func (r *TransferRepo) Create(t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (source_workshop_id, target_workshop_id, note, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		t.SourceWorkshopID, t.TargetWorkshopID, t.Note, t.CreatedAt).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}

func (r *TransferRepo) CreateItem(item *entity.TransferItem) error {
	query := `
		INSERT INTO transfer_items (transfer_id, material_id, quantity, note)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.TransferID, item.MaterialID, item.Quantity, item.Note).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("create transfer item: %w", err)
	}
	return nil
}

// GetByID devuelve el traslado con sus items cargados. nil si no existe.
func (r *TransferRepo) GetByID(id int64) (*entity.Transfer, error) {
	var t entity.Transfer
	err := r.q.QueryRow(context.Background(), `
		SELECT id, source_workshop_id, target_workshop_id, note, created_at
		FROM transfers WHERE id = $1`, id).
		Scan(&t.ID, &t.SourceWorkshopID, &t.TargetWorkshopID, &t.Note, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}

	items, err := r.listItems(t.ID)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return &t, nil
}

func (r *TransferRepo) Update(t *entity.Transfer) error {
	query := `
		UPDATE transfers
		SET source_workshop_id = $1, target_workshop_id = $2, note = $3
		WHERE id = $4`
	_, err := r.q.Exec(context.Background(), query,
		t.SourceWorkshopID, t.TargetWorkshopID, t.Note, t.ID)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	return nil
}

func (r *TransferRepo) DeleteItems(transferID int64) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM transfer_items WHERE transfer_id = $1`, transferID)
	if err != nil {
		return fmt.Errorf("delete transfer items: %w", err)
	}
	return nil
}

func (r *TransferRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM transfers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transfer: %w", err)
	}
	return nil
}

// List traslados más recientes primero, con items.
func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, source_workshop_id, target_workshop_id, note, created_at
		FROM transfers ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := rows.Scan(&t.ID, &t.SourceWorkshopID, &t.TargetWorkshopID, &t.Note, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, t := range list {
		items, err := r.listItems(t.ID)
		if err != nil {
			return nil, err
		}
		t.Items = items
	}
	return list, nil
}

func (r *TransferRepo) listItems(transferID int64) ([]entity.TransferItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, transfer_id, material_id, quantity, note
		FROM transfer_items WHERE transfer_id = $1 ORDER BY id`, transferID)
	if err != nil {
		return nil, fmt.Errorf("list transfer items: %w", err)
	}
	defer rows.Close()

	var items []entity.TransferItem
	for rows.Next() {
		var it entity.TransferItem
		if err := rows.Scan(&it.ID, &it.TransferID, &it.MaterialID, &it.Quantity, &it.Note); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
