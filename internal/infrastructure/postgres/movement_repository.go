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

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, transaction_id, workshop_id, material_id, change_kind, quantity, note, created_at, origin_kind, origin_id`

// Create persiste un movimiento y asigna su ID.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movements (transaction_id, workshop_id, material_id, change_kind, quantity, note, created_at, origin_kind, origin_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	var originKind *string
	var originID *int64
	if m.Origin != nil {
		kind := string(m.Origin.Kind)
		originKind = &kind
		originID = &m.Origin.ID
	}
	err := r.q.QueryRow(context.Background(), query,
		m.TransactionID, m.WorkshopID, m.MaterialID, string(m.Kind),
		m.Quantity, m.Note, m.CreatedAt, originKind, originID,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil si no existe.
func (r *MovementRepo) GetByID(id int64) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Update actualiza cantidad y nota de un movimiento (solo manuales, lo garantiza
// el caso de uso).
func (r *MovementRepo) Update(m *entity.Movement) error {
	query := `UPDATE movements SET quantity = $1, note = $2 WHERE id = $3`
	_, err := r.q.Exec(context.Background(), query, m.Quantity, m.Note, m.ID)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	return nil
}

// Delete elimina un movimiento por ID.
func (r *MovementRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

// ListByMaterial lista movimientos de un material, opcionalmente por taller,
// más recientes primero.
func (r *MovementRepo) ListByMaterial(materialID int64, workshopID *int64, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE material_id = $1`
	args := []any{materialID}
	pos := 2
	if workshopID != nil {
		query += fmt.Sprintf(" AND workshop_id = $%d", pos)
		args = append(args, *workshopID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByOrigin lista los movimientos generados por un documento.
func (r *MovementRepo) ListByOrigin(kind entity.OriginKind, originID int64) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE origin_kind = $1 AND origin_id = $2 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, string(kind), originID)
	if err != nil {
		return nil, fmt.Errorf("list movements by origin: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// DeleteByOrigin elimina todos los movimientos de un documento (reemplazo en cascada).
func (r *MovementRepo) DeleteByOrigin(kind entity.OriginKind, originID int64) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM movements WHERE origin_kind = $1 AND origin_id = $2`, string(kind), originID)
	if err != nil {
		return fmt.Errorf("delete movements by origin: %w", err)
	}
	return nil
}

// SumQuantity suma con signo las cantidades del par (material, taller).
func (r *MovementRepo) SumQuantity(materialID, workshopID int64) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM movements WHERE material_id = $1 AND workshop_id = $2`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, materialID, workshopID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum movements: %w", err)
	}
	return total, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var kind string
	var originKind *string
	var originID *int64
	err := row.Scan(&m.ID, &m.TransactionID, &m.WorkshopID, &m.MaterialID, &kind,
		&m.Quantity, &m.Note, &m.CreatedAt, &originKind, &originID)
	if err != nil {
		return nil, err
	}
	m.Kind = entity.MovementKind(kind)
	if originKind != nil && originID != nil {
		m.Origin = &entity.Origin{Kind: entity.OriginKind(*originKind), ID: *originID}
	}
	return &m, nil
}

func collectMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
