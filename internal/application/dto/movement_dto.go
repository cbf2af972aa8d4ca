package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/prodflux/prodflux-api/internal/domain/entity"
)

// CreateMovementRequest body para POST /api/movements.
type CreateMovementRequest struct {
	WorkshopID int64           `json:"workshop_id"`
	MaterialID int64           `json:"material_id"`
	Kind       string          `json:"kind"`
	Quantity   decimal.Decimal `json:"quantity"`
	Note       string          `json:"note,omitempty"`
}

// UpdateMovementRequest body para PATCH /api/movements/:id.
type UpdateMovementRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Note     string          `json:"note,omitempty"`
}

// ReconcileRequest body para POST /api/stock/reconcile: fija el stock del par
// al valor contado físicamente.
type ReconcileRequest struct {
	MaterialID     int64           `json:"material_id"`
	WorkshopID     int64           `json:"workshop_id"`
	TargetQuantity decimal.Decimal `json:"target_quantity"`
	Note           string          `json:"note,omitempty"`
}

// MovementResponse un movimiento del libro.
type MovementResponse struct {
	ID            int64           `json:"id"`
	TransactionID string          `json:"transaction_id"`
	WorkshopID    int64           `json:"workshop_id"`
	MaterialID    int64           `json:"material_id"`
	Kind          string          `json:"kind"`
	Quantity      decimal.Decimal `json:"quantity"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	OriginKind    string          `json:"origin_kind,omitempty"`
	OriginID      int64           `json:"origin_id,omitempty"`
}

// FromMovement convierte la entidad a su representación HTTP.
func FromMovement(m *entity.Movement) MovementResponse {
	resp := MovementResponse{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		WorkshopID:    m.WorkshopID,
		MaterialID:    m.MaterialID,
		Kind:          string(m.Kind),
		Quantity:      m.Quantity,
		Note:          m.Note,
		CreatedAt:     m.CreatedAt,
	}
	if m.Origin != nil {
		resp.OriginKind = string(m.Origin.Kind)
		resp.OriginID = m.Origin.ID
	}
	return resp
}

// FromMovements convierte una lista de movimientos.
func FromMovements(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMovement(m))
	}
	return out
}

// StockResponse balance actual de un par (material, taller).
type StockResponse struct {
	MaterialID int64           `json:"material_id"`
	WorkshopID int64           `json:"workshop_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// RebuildStockRequest body para POST /api/stock/rebuild.
type RebuildStockRequest struct {
	MaterialID int64 `json:"material_id"`
	WorkshopID int64 `json:"workshop_id"`
}
