package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo catálogo de materiales y sus alternativas intercambiables.
type MaterialRepo struct {
	q Querier
}

func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, name, manufacturer_name, order_number, category_id, deprecated`

func (r *MaterialRepo) Create(m *entity.Material) error {
	query := `
		INSERT INTO materials (name, manufacturer_name, order_number, category_id, deprecated)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		m.Name, m.ManufacturerName, m.OrderNumber, m.CategoryID, m.Deprecated).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("create material: %w", err)
	}
	return nil
}

func (r *MaterialRepo) GetByID(id int64) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	m, err := scanMaterial(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

func (r *MaterialRepo) Update(m *entity.Material) error {
	query := `
		UPDATE materials
		SET name = $1, manufacturer_name = $2, order_number = $3, category_id = $4, deprecated = $5
		WHERE id = $6`
	_, err := r.q.Exec(context.Background(), query,
		m.Name, m.ManufacturerName, m.OrderNumber, m.CategoryID, m.Deprecated, m.ID)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

func (r *MaterialRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	return nil
}

func (r *MaterialRepo) List(limit, offset int) ([]*entity.Material, error) {
	// limit 0 = sin límite (NULLIF lo convierte en LIMIT NULL).
	query := `SELECT ` + materialColumns + ` FROM materials ORDER BY name, id LIMIT NULLIF($1, 0) OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	return collectMaterials(rows)
}

// AddAlternative registra una equivalencia entre dos materiales. El par se
// guarda normalizado (menor ID primero) para que la relación sea simétrica.
func (r *MaterialRepo) AddAlternative(materialID, alternativeID int64) error {
	a, b := orderedPair(materialID, alternativeID)
	query := `
		INSERT INTO material_alternatives (material_a_id, material_b_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`
	_, err := r.q.Exec(context.Background(), query, a, b)
	if err != nil {
		return fmt.Errorf("add alternative: %w", err)
	}
	return nil
}

func (r *MaterialRepo) RemoveAlternative(materialID, alternativeID int64) error {
	a, b := orderedPair(materialID, alternativeID)
	query := `DELETE FROM material_alternatives WHERE material_a_id = $1 AND material_b_id = $2`
	_, err := r.q.Exec(context.Background(), query, a, b)
	if err != nil {
		return fmt.Errorf("remove alternative: %w", err)
	}
	return nil
}

// ListAlternatives materiales equivalentes a uno dado, en cualquier dirección del par.
func (r *MaterialRepo) ListAlternatives(materialID int64) ([]*entity.Material, error) {
	query := `
		SELECT m.id, m.name, m.manufacturer_name, m.order_number, m.category_id, m.deprecated
		FROM materials m
		JOIN material_alternatives ma
		  ON (ma.material_a_id = $1 AND ma.material_b_id = m.id)
		  OR (ma.material_b_id = $1 AND ma.material_a_id = m.id)
		ORDER BY m.id`
	rows, err := r.q.Query(context.Background(), query, materialID)
	if err != nil {
		return nil, fmt.Errorf("list alternatives: %w", err)
	}
	defer rows.Close()
	return collectMaterials(rows)
}

func (r *MaterialRepo) CreateCategory(c *entity.MaterialCategory) error {
	query := `INSERT INTO material_categories (name, sort_order) VALUES ($1, $2) RETURNING id`
	if err := r.q.QueryRow(context.Background(), query, c.Name, c.Order).Scan(&c.ID); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *MaterialRepo) UpdateCategory(c *entity.MaterialCategory) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE material_categories SET name = $1, sort_order = $2 WHERE id = $3`,
		c.Name, c.Order, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (r *MaterialRepo) DeleteCategory(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM material_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ListCategories ordenadas por su posición configurada.
func (r *MaterialRepo) ListCategories() ([]*entity.MaterialCategory, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, sort_order FROM material_categories ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.MaterialCategory
	for rows.Next() {
		var c entity.MaterialCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Order); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func orderedPair(x, y int64) (int64, int64) {
	if x > y {
		return y, x
	}
	return x, y
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(&m.ID, &m.Name, &m.ManufacturerName, &m.OrderNumber, &m.CategoryID, &m.Deprecated)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMaterials(rows pgx.Rows) ([]*entity.Material, error) {
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
