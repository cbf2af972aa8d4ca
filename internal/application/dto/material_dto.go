package dto

import (
	"github.com/shopspring/decimal"

	"github.com/prodflux/prodflux-api/internal/application/ledger"
	"github.com/prodflux/prodflux-api/internal/domain/entity"
)

// MaterialRequest body para crear/actualizar un material.
type MaterialRequest struct {
	Name             string `json:"name"`
	ManufacturerName string `json:"manufacturer_name,omitempty"`
	OrderNumber      string `json:"order_number,omitempty"`
	CategoryID       *int64 `json:"category_id,omitempty"`
	Deprecated       bool   `json:"deprecated,omitempty"`
}

// MaterialResponse un material del catálogo.
type MaterialResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	ManufacturerName string `json:"manufacturer_name,omitempty"`
	OrderNumber      string `json:"order_number,omitempty"`
	CategoryID       *int64 `json:"category_id,omitempty"`
	Deprecated       bool   `json:"deprecated"`
}

// FromMaterial convierte la entidad a su representación HTTP.
func FromMaterial(m *entity.Material) MaterialResponse {
	return MaterialResponse{
		ID:               m.ID,
		Name:             m.Name,
		ManufacturerName: m.ManufacturerName,
		OrderNumber:      m.OrderNumber,
		CategoryID:       m.CategoryID,
		Deprecated:       m.Deprecated,
	}
}

// FromMaterials convierte una lista de materiales.
func FromMaterials(list []*entity.Material) []MaterialResponse {
	out := make([]MaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMaterial(m))
	}
	return out
}

// CategoryRequest body para crear/actualizar una categoría.
type CategoryRequest struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// CategoryResponse una categoría de materiales.
type CategoryResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// AddAlternativeRequest body para vincular dos materiales intercambiables.
type AddAlternativeRequest struct {
	AlternativeID int64 `json:"alternative_id"`
}

// AlternativeStockResponse desglose del stock de una alternativa.
type AlternativeStockResponse struct {
	Material MaterialResponse `json:"material"`
	Stock    decimal.Decimal  `json:"stock"`
}

// MaterialStockResponse stock de un material más sus alternativas en un taller.
type MaterialStockResponse struct {
	Material     MaterialResponse           `json:"material"`
	WorkshopID   int64                      `json:"workshop_id"`
	OwnStock     decimal.Decimal            `json:"own_stock"`
	Total        decimal.Decimal            `json:"total"`
	Alternatives []AlternativeStockResponse `json:"alternatives"`
}

// FromStockWithAlternatives convierte el resultado del caso de uso.
func FromStockWithAlternatives(s *ledger.StockWithAlternatives) MaterialStockResponse {
	resp := MaterialStockResponse{
		Material:     FromMaterial(s.Material),
		WorkshopID:   s.WorkshopID,
		OwnStock:     s.OwnStock,
		Total:        s.Total,
		Alternatives: make([]AlternativeStockResponse, 0, len(s.Alternatives)),
	}
	for _, alt := range s.Alternatives {
		resp.Alternatives = append(resp.Alternatives, AlternativeStockResponse{
			Material: FromMaterial(alt.Material),
			Stock:    alt.Stock,
		})
	}
	return resp
}

// WorkshopStockRow fila del resumen de stock de un taller.
type WorkshopStockRow struct {
	Material MaterialResponse `json:"material"`
	Stock    decimal.Decimal  `json:"stock"`
}

// FromStockOverview convierte el resumen de stock del taller.
func FromStockOverview(rows []ledger.MaterialStockRow) []WorkshopStockRow {
	out := make([]WorkshopStockRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, WorkshopStockRow{Material: FromMaterial(row.Material), Stock: row.Stock})
	}
	return out
}

// WorkshopRequest body para crear/actualizar un taller.
type WorkshopRequest struct {
	Name string `json:"name"`
}

// WorkshopResponse un taller.
type WorkshopResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FromWorkshop convierte la entidad a su representación HTTP.
func FromWorkshop(w *entity.Workshop) WorkshopResponse {
	return WorkshopResponse{ID: w.ID, Name: w.Name}
}
