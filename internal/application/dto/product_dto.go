package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/prodflux/prodflux-api/internal/application/requirements"
	"github.com/prodflux/prodflux-api/internal/domain/entity"
)

// ProductRequest body para crear/actualizar un producto.
type ProductRequest struct {
	Name          string `json:"name"`
	ArticleNumber string `json:"article_number,omitempty"`
}

// ProductResponse un producto fabricable.
type ProductResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	ArticleNumber string    `json:"article_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// FromProduct convierte la entidad a su representación HTTP.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		ArticleNumber: p.ArticleNumber,
		CreatedAt:     p.CreatedAt,
	}
}

// FromProducts convierte una lista de productos.
func FromProducts(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromProduct(p))
	}
	return out
}

// BOMLineRequest body para crear/actualizar una línea de la BOM.
type BOMLineRequest struct {
	MaterialID      int64           `json:"material_id"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
}

// BOMLineResponse una línea de la BOM.
type BOMLineResponse struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"product_id"`
	MaterialID      int64           `json:"material_id"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
}

// FromBOMLine convierte la entidad a su representación HTTP.
func FromBOMLine(line *entity.BOMLine) BOMLineResponse {
	return BOMLineResponse{
		ID:              line.ID,
		ProductID:       line.ProductID,
		MaterialID:      line.MaterialID,
		QuantityPerUnit: line.QuantityPerUnit,
	}
}

// FromBOMLines convierte una lista de líneas.
func FromBOMLines(list []*entity.BOMLine) []BOMLineResponse {
	out := make([]BOMLineResponse, 0, len(list))
	for _, line := range list {
		out = append(out, FromBOMLine(line))
	}
	return out
}

// ProductDemandRequest demanda de un producto en una consulta agregada.
type ProductDemandRequest struct {
	ProductID int64           `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// AggregatedRequirementsRequest body para POST /api/requirements/aggregated.
type AggregatedRequirementsRequest struct {
	WorkshopID int64                  `json:"workshop_id"`
	Products   []ProductDemandRequest `json:"products"`
}

// ToDemands convierte el body a demandas del motor.
func (r AggregatedRequirementsRequest) ToDemands() []requirements.ProductDemand {
	demands := make([]requirements.ProductDemand, 0, len(r.Products))
	for _, p := range r.Products {
		demands = append(demands, requirements.ProductDemand{ProductID: p.ProductID, Quantity: p.Quantity})
	}
	return demands
}

// RequirementLineResponse faltante de un material.
type RequirementLineResponse struct {
	Material  MaterialResponse `json:"material"`
	Required  decimal.Decimal  `json:"required"`
	Available decimal.Decimal  `json:"available"`
	OnOrder   decimal.Decimal  `json:"on_order"`
	Missing   decimal.Decimal  `json:"missing"`
}

// FromRequirementLines convierte el resultado del motor.
func FromRequirementLines(lines []requirements.RequirementLine) []RequirementLineResponse {
	out := make([]RequirementLineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, RequirementLineResponse{
			Material:  FromMaterial(line.Material),
			Required:  line.Required,
			Available: line.Available,
			OnOrder:   line.OnOrder,
			Missing:   line.Missing,
		})
	}
	return out
}

// ProducibleResponse unidades fabricables de un producto en un taller.
type ProducibleResponse struct {
	ProductID     int64 `json:"product_id"`
	WorkshopID    int64 `json:"workshop_id"`
	PossibleUnits int64 `json:"possible_units"`
}

// ProducibleOverviewRowResponse fila del resumen de fabricables.
type ProducibleOverviewRowResponse struct {
	Product       ProductResponse `json:"product"`
	PossibleUnits int64           `json:"possible_units"`
}

// FromProducibleOverview convierte el resumen de fabricables.
func FromProducibleOverview(rows []requirements.ProducibleOverviewRow) []ProducibleOverviewRowResponse {
	out := make([]ProducibleOverviewRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, ProducibleOverviewRowResponse{
			Product:       FromProduct(row.Product),
			PossibleUnits: row.PossibleUnits,
		})
	}
	return out
}

// ManufactureRequest body para POST /api/products/:id/manufacture.
type ManufactureRequest struct {
	WorkshopID int64           `json:"workshop_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}
