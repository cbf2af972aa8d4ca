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

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo stock materializado por (material, taller).
type StockRepo struct {
	q Querier
}

func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get devuelve el saldo actual. Si no hay fila devuelve saldo cero, el par
// simplemente nunca tuvo movimientos.
func (r *StockRepo) Get(materialID, workshopID int64) (*entity.Stock, error) {
	query := `
		SELECT material_id, workshop_id, quantity, updated_at
		FROM stock WHERE material_id = $1 AND workshop_id = $2`
	return r.get(query, materialID, workshopID)
}

// GetForUpdate igual que Get pero bloqueando la fila (SELECT ... FOR UPDATE).
// Si el par todavía no tiene fila, primero la materializa en cero: sin fila no
// hay nada que bloquear y dos transacciones que estrenan el par leerían ambas
// cero y se pisarían el saldo. Llamar solo dentro de una transacción.
func (r *StockRepo) GetForUpdate(materialID, workshopID int64) (*entity.Stock, error) {
	query := `
		SELECT material_id, workshop_id, quantity, updated_at
		FROM stock WHERE material_id = $1 AND workshop_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, materialID, workshopID).
		Scan(&s.MaterialID, &s.WorkshopID, &s.Quantity, &s.UpdatedAt)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}

	// El INSERT espera a cualquier transacción concurrente que ya haya creado
	// la fila; el re-SELECT entonces encuentra y bloquea la fila siempre.
	insert := `
		INSERT INTO stock (material_id, workshop_id, quantity)
		VALUES ($1, $2, 0)
		ON CONFLICT (material_id, workshop_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, materialID, workshopID); err != nil {
		return nil, fmt.Errorf("init stock row: %w", err)
	}
	err = r.q.QueryRow(context.Background(), query, materialID, workshopID).
		Scan(&s.MaterialID, &s.WorkshopID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

func (r *StockRepo) get(query string, materialID, workshopID int64) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, materialID, workshopID).
		Scan(&s.MaterialID, &s.WorkshopID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{MaterialID: materialID, WorkshopID: workshopID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el saldo materializado.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (material_id, workshop_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (material_id, workshop_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		stock.MaterialID, stock.WorkshopID, stock.Quantity, stock.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByWorkshop todos los saldos de un taller, ordenados por material.
func (r *StockRepo) ListByWorkshop(workshopID int64) ([]*entity.Stock, error) {
	query := `
		SELECT material_id, workshop_id, quantity, updated_at
		FROM stock WHERE workshop_id = $1 ORDER BY material_id`
	rows, err := r.q.Query(context.Background(), query, workshopID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.MaterialID, &s.WorkshopID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

var _ repository.ProductStockRepository = (*ProductStockRepo)(nil)

// ProductStockRepo stock de producto terminado por taller.
type ProductStockRepo struct {
	q Querier
}

func NewProductStockRepository(q Querier) *ProductStockRepo {
	return &ProductStockRepo{q: q}
}

// Get saldo de producto terminado. Cero si no existe la fila.
func (r *ProductStockRepo) Get(workshopID, productID int64) (*entity.ProductStock, error) {
	query := `
		SELECT workshop_id, product_id, quantity, updated_at
		FROM product_stock WHERE workshop_id = $1 AND product_id = $2`
	var s entity.ProductStock
	err := r.q.QueryRow(context.Background(), query, workshopID, productID).
		Scan(&s.WorkshopID, &s.ProductID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.ProductStock{WorkshopID: workshopID, ProductID: productID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get product stock: %w", err)
	}
	return &s, nil
}

func (r *ProductStockRepo) Upsert(stock *entity.ProductStock) error {
	query := `
		INSERT INTO product_stock (workshop_id, product_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (workshop_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		stock.WorkshopID, stock.ProductID, stock.Quantity, stock.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert product stock: %w", err)
	}
	return nil
}

func (r *ProductStockRepo) ListByWorkshop(workshopID int64) ([]*entity.ProductStock, error) {
	query := `
		SELECT workshop_id, product_id, quantity, updated_at
		FROM product_stock WHERE workshop_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, workshopID)
	if err != nil {
		return nil, fmt.Errorf("list product stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductStock
	for rows.Next() {
		var s entity.ProductStock
		if err := rows.Scan(&s.WorkshopID, &s.ProductID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
