package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/prodflux/prodflux-api/internal/application/dto"
	"github.com/prodflux/prodflux-api/internal/application/requirements"
	"github.com/prodflux/prodflux-api/internal/domain"
)

// RequirementsHandler maneja las consultas de requerimientos, fabricables y la
// orden de fabricar.
type RequirementsHandler struct {
	engine *requirements.Engine
}

// NewRequirementsHandler construye el handler.
func NewRequirementsHandler(engine *requirements.Engine) *RequirementsHandler {
	return &RequirementsHandler{engine: engine}
}

// Requirements faltantes para fabricar N unidades de un producto.
// GET /api/products/:id/requirements?workshop_id=&quantity=
func (h *RequirementsHandler) Requirements(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	workshopID, err := queryID(c, "workshop_id")
	if err != nil {
		return respondError(c, err)
	}
	quantity, err := decimal.NewFromString(c.Query("quantity", "1"))
	if err != nil || !quantity.IsPositive() {
		return respondError(c, domain.ErrInvalidInput)
	}
	lines, err := h.engine.MaterialRequirements(productID, quantity, workshopID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"product_id":   productID,
		"workshop_id":  workshopID,
		"quantity":     quantity,
		"requirements": dto.FromRequirementLines(lines),
	})
}

// Aggregated faltantes agregados de varios productos a la vez.
func (h *RequirementsHandler) Aggregated(c *fiber.Ctx) error {
	var in dto.AggregatedRequirementsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	lines, err := h.engine.AggregatedRequirements(in.ToDemands(), in.WorkshopID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"workshop_id":  in.WorkshopID,
		"requirements": dto.FromRequirementLines(lines),
	})
}

// Producible unidades fabricables de un producto en un taller.
func (h *RequirementsHandler) Producible(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	workshopID, err := queryID(c, "workshop_id")
	if err != nil {
		return respondError(c, err)
	}
	units, err := h.engine.ProducibleUnits(productID, workshopID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProducibleResponse{
		ProductID:     productID,
		WorkshopID:    workshopID,
		PossibleUnits: units,
	})
}

// ProducibleOverview unidades fabricables de todos los productos en un taller.
func (h *RequirementsHandler) ProducibleOverview(c *fiber.Ctx) error {
	workshopID, err := queryID(c, "workshop_id")
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.engine.ProducibleOverview(workshopID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"workshop_id": workshopID,
		"products":    dto.FromProducibleOverview(rows),
	})
}

// Manufacture fabrica N unidades consumiendo materiales del libro.
func (h *RequirementsHandler) Manufacture(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ManufactureRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.engine.Manufacture(c.Context(), productID, in.Quantity, in.WorkshopID); err != nil {
		return respondError(c, err)
	}
	stock, err := h.engine.ProductStock(in.WorkshopID, productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"product_id":    productID,
		"workshop_id":   in.WorkshopID,
		"manufactured":  in.Quantity,
		"product_stock": stock,
	})
}

// ProductStock stock de producto terminado en un taller.
func (h *RequirementsHandler) ProductStock(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	workshopID, err := queryID(c, "workshop_id")
	if err != nil {
		return respondError(c, err)
	}
	stock, err := h.engine.ProductStock(workshopID, productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"product_id":  productID,
		"workshop_id": workshopID,
		"quantity":    stock,
	})
}
