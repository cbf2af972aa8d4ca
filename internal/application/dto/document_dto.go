package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/prodflux/prodflux-api/internal/application/documents"
	"github.com/prodflux/prodflux-api/internal/domain/entity"
)

// DeliveryItemRequest línea de entrega.
type DeliveryItemRequest struct {
	MaterialID int64           `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Note       string          `json:"note,omitempty"`
}

// DeliveryRequest body para crear/actualizar una entrega.
type DeliveryRequest struct {
	WorkshopID   int64                 `json:"workshop_id"`
	OrderID      *int64                `json:"order_id,omitempty"`
	Note         string                `json:"note,omitempty"`
	IsHistorical bool                  `json:"is_historical,omitempty"`
	Items        []DeliveryItemRequest `json:"items"`
}

// ToInput convierte el body al input del caso de uso.
func (r DeliveryRequest) ToInput() documents.DeliveryInput {
	input := documents.DeliveryInput{
		WorkshopID:   r.WorkshopID,
		OrderID:      r.OrderID,
		Note:         r.Note,
		IsHistorical: r.IsHistorical,
	}
	for _, item := range r.Items {
		input.Items = append(input.Items, documents.DeliveryItemInput{
			MaterialID: item.MaterialID,
			Quantity:   item.Quantity,
			Note:       item.Note,
		})
	}
	return input
}

// DeliveryItemResponse línea de entrega persistida.
type DeliveryItemResponse struct {
	ID         int64           `json:"id"`
	MaterialID int64           `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Note       string          `json:"note,omitempty"`
}

// DeliveryResponse una entrega con sus líneas.
type DeliveryResponse struct {
	ID           int64                  `json:"id"`
	WorkshopID   int64                  `json:"workshop_id"`
	OrderID      *int64                 `json:"order_id,omitempty"`
	Note         string                 `json:"note,omitempty"`
	IsHistorical bool                   `json:"is_historical"`
	CreatedAt    time.Time              `json:"created_at"`
	Items        []DeliveryItemResponse `json:"items"`
}

// FromDelivery convierte la entidad a su representación HTTP.
func FromDelivery(d *entity.Delivery) DeliveryResponse {
	resp := DeliveryResponse{
		ID:           d.ID,
		WorkshopID:   d.WorkshopID,
		OrderID:      d.OrderID,
		Note:         d.Note,
		IsHistorical: d.IsHistorical,
		CreatedAt:    d.CreatedAt,
		Items:        make([]DeliveryItemResponse, 0, len(d.Items)),
	}
	for _, item := range d.Items {
		resp.Items = append(resp.Items, DeliveryItemResponse{
			ID:         item.ID,
			MaterialID: item.MaterialID,
			Quantity:   item.Quantity,
			Note:       item.Note,
		})
	}
	return resp
}

// FromDeliveries convierte una lista de entregas.
func FromDeliveries(list []*entity.Delivery) []DeliveryResponse {
	out := make([]DeliveryResponse, 0, len(list))
	for _, d := range list {
		out = append(out, FromDelivery(d))
	}
	return out
}

// TransferItemRequest línea de traslado.
type TransferItemRequest struct {
	MaterialID int64           `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Note       string          `json:"note,omitempty"`
}

// TransferRequest body para crear/actualizar un traslado.
type TransferRequest struct {
	SourceWorkshopID int64                 `json:"source_workshop_id"`
	TargetWorkshopID int64                 `json:"target_workshop_id"`
	Note             string                `json:"note,omitempty"`
	Items            []TransferItemRequest `json:"items"`
}

// ToInput convierte el body al input del caso de uso.
func (r TransferRequest) ToInput() documents.TransferInput {
	input := documents.TransferInput{
		SourceWorkshopID: r.SourceWorkshopID,
		TargetWorkshopID: r.TargetWorkshopID,
		Note:             r.Note,
	}
	for _, item := range r.Items {
		input.Items = append(input.Items, documents.TransferItemInput{
			MaterialID: item.MaterialID,
			Quantity:   item.Quantity,
			Note:       item.Note,
		})
	}
	return input
}

// TransferItemResponse línea de traslado persistida.
type TransferItemResponse struct {
	ID         int64           `json:"id"`
	MaterialID int64           `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Note       string          `json:"note,omitempty"`
}

// TransferResponse un traslado con sus líneas.
type TransferResponse struct {
	ID               int64                  `json:"id"`
	SourceWorkshopID int64                  `json:"source_workshop_id"`
	TargetWorkshopID int64                  `json:"target_workshop_id"`
	Note             string                 `json:"note,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	Items            []TransferItemResponse `json:"items"`
}

// FromTransfer convierte la entidad a su representación HTTP.
func FromTransfer(t *entity.Transfer) TransferResponse {
	resp := TransferResponse{
		ID:               t.ID,
		SourceWorkshopID: t.SourceWorkshopID,
		TargetWorkshopID: t.TargetWorkshopID,
		Note:             t.Note,
		CreatedAt:        t.CreatedAt,
		Items:            make([]TransferItemResponse, 0, len(t.Items)),
	}
	for _, item := range t.Items {
		resp.Items = append(resp.Items, TransferItemResponse{
			ID:         item.ID,
			MaterialID: item.MaterialID,
			Quantity:   item.Quantity,
			Note:       item.Note,
		})
	}
	return resp
}

// FromTransfers convierte una lista de traslados.
func FromTransfers(list []*entity.Transfer) []TransferResponse {
	out := make([]TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, FromTransfer(t))
	}
	return out
}

// OrderItemRequest línea de orden de compra.
type OrderItemRequest struct {
	MaterialID   int64           `json:"material_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
}

// OrderRequest body para crear/actualizar una orden de compra.
type OrderRequest struct {
	OrderNumber  string             `json:"order_number,omitempty"`
	OrderedAt    time.Time          `json:"ordered_at"`
	DeliveredAt  *time.Time         `json:"delivered_at,omitempty"`
	ShippingCost decimal.Decimal    `json:"shipping_cost,omitempty"`
	Note         string             `json:"note,omitempty"`
	IsHistorical bool               `json:"is_historical,omitempty"`
	Items        []OrderItemRequest `json:"items"`
}

// ToInput convierte el body al input del caso de uso.
func (r OrderRequest) ToInput() documents.OrderInput {
	input := documents.OrderInput{
		OrderNumber:  r.OrderNumber,
		OrderedAt:    r.OrderedAt,
		DeliveredAt:  r.DeliveredAt,
		ShippingCost: r.ShippingCost,
		Note:         r.Note,
		IsHistorical: r.IsHistorical,
	}
	for _, item := range r.Items {
		input.Items = append(input.Items, documents.OrderItemInput{
			MaterialID:   item.MaterialID,
			Quantity:     item.Quantity,
			PricePerUnit: item.PricePerUnit,
		})
	}
	return input
}

// OrderItemResponse línea de orden persistida. EffectivePrice incluye la parte
// proporcional del costo de envío de la orden.
type OrderItemResponse struct {
	ID             int64           `json:"id"`
	MaterialID     int64           `json:"material_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	PricePerUnit   decimal.Decimal `json:"price_per_unit"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
}

// OrderResponse una orden de compra con sus líneas.
type OrderResponse struct {
	ID           int64               `json:"id"`
	OrderNumber  string              `json:"order_number"`
	OrderedAt    time.Time           `json:"ordered_at"`
	DeliveredAt  *time.Time          `json:"delivered_at,omitempty"`
	ShippingCost decimal.Decimal     `json:"shipping_cost"`
	Note         string              `json:"note,omitempty"`
	IsHistorical bool                `json:"is_historical"`
	Open         bool                `json:"open"`
	Items        []OrderItemResponse `json:"items"`
}

// FromOrder convierte la entidad a su representación HTTP.
func FromOrder(o *entity.Order) OrderResponse {
	resp := OrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		OrderedAt:    o.OrderedAt,
		DeliveredAt:  o.DeliveredAt,
		ShippingCost: o.ShippingCost,
		Note:         o.Note,
		IsHistorical: o.IsHistorical,
		Open:         o.Open(),
		Items:        make([]OrderItemResponse, 0, len(o.Items)),
	}
	var totalQuantity decimal.Decimal
	for _, item := range o.Items {
		totalQuantity = totalQuantity.Add(item.Quantity)
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:             item.ID,
			MaterialID:     item.MaterialID,
			Quantity:       item.Quantity,
			PricePerUnit:   item.PricePerUnit,
			EffectivePrice: item.PriceWithShipping(o, totalQuantity),
		})
	}
	return resp
}

// FromOrders convierte una lista de órdenes.
func FromOrders(list []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, FromOrder(o))
	}
	return out
}
