package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/prodflux/prodflux-api/internal/domain"
	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

var _ repository.WorkshopRepository = (*WorkshopRepo)(nil)

// WorkshopRepo talleres (ubicaciones de inventario).
type WorkshopRepo struct {
	q Querier
}

func NewWorkshopRepository(q Querier) *WorkshopRepo {
	return &WorkshopRepo{q: q}
}

func (r *WorkshopRepo) Create(w *entity.Workshop) error {
	query := `INSERT INTO workshops (name) VALUES ($1) RETURNING id`
	if err := r.q.QueryRow(context.Background(), query, w.Name).Scan(&w.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create workshop: %w", err)
	}
	return nil
}

func (r *WorkshopRepo) GetByID(id int64) (*entity.Workshop, error) {
	var w entity.Workshop
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name FROM workshops WHERE id = $1`, id).Scan(&w.ID, &w.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get workshop: %w", err)
	}
	return &w, nil
}

func (r *WorkshopRepo) Update(w *entity.Workshop) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE workshops SET name = $1 WHERE id = $2`, w.Name, w.ID)
	if err != nil {
		return fmt.Errorf("update workshop: %w", err)
	}
	return nil
}

func (r *WorkshopRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM workshops WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete workshop: %w", err)
	}
	return nil
}

func (r *WorkshopRepo) List() ([]*entity.Workshop, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, name FROM workshops ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list workshops: %w", err)
	}
	defer rows.Close()

	var list []*entity.Workshop
	for rows.Next() {
		var w entity.Workshop
		if err := rows.Scan(&w.ID, &w.Name); err != nil {
			return nil, fmt.Errorf("scan workshop: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}
