package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos fabricables.
type ProductRepo struct {
	q Querier
}

func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (name, article_number, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		p.Name, p.ArticleNumber, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), `
		SELECT id, name, article_number, created_at
		FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.ArticleNumber, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET name = $1, article_number = $2 WHERE id = $3`,
		p.Name, p.ArticleNumber, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *ProductRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, name, article_number, created_at
		FROM products ORDER BY name, id LIMIT NULLIF($1, 0) OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.ArticleNumber, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo lista de materiales por producto (cantidad por unidad fabricada).
type BOMRepo struct {
	q Querier
}

func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

func (r *BOMRepo) CreateLine(line *entity.BOMLine) error {
	query := `
		INSERT INTO bom_lines (product_id, material_id, quantity_per_unit)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		line.ProductID, line.MaterialID, line.QuantityPerUnit).Scan(&line.ID)
	if err != nil {
		return fmt.Errorf("create bom line: %w", err)
	}
	return nil
}

func (r *BOMRepo) UpdateLine(line *entity.BOMLine) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE bom_lines SET material_id = $1, quantity_per_unit = $2 WHERE id = $3`,
		line.MaterialID, line.QuantityPerUnit, line.ID)
	if err != nil {
		return fmt.Errorf("update bom line: %w", err)
	}
	return nil
}

func (r *BOMRepo) DeleteLine(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM bom_lines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bom line: %w", err)
	}
	return nil
}

func (r *BOMRepo) GetLine(id int64) (*entity.BOMLine, error) {
	var line entity.BOMLine
	err := r.q.QueryRow(context.Background(), `
		SELECT id, product_id, material_id, quantity_per_unit
		FROM bom_lines WHERE id = $1`, id).
		Scan(&line.ID, &line.ProductID, &line.MaterialID, &line.QuantityPerUnit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bom line: %w", err)
	}
	return &line, nil
}

func (r *BOMRepo) ListByProduct(productID int64) ([]*entity.BOMLine, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, product_id, material_id, quantity_per_unit
		FROM bom_lines WHERE product_id = $1 ORDER BY material_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list bom lines: %w", err)
	}
	defer rows.Close()

	var list []*entity.BOMLine
	for rows.Next() {
		var line entity.BOMLine
		if err := rows.Scan(&line.ID, &line.ProductID, &line.MaterialID, &line.QuantityPerUnit); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		list = append(list, &line)
	}
	return list, rows.Err()
}
