package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prodflux/prodflux-api/internal/application/documents"
	"github.com/prodflux/prodflux-api/internal/application/dto"
)

// OrderHandler maneja las peticiones HTTP de órdenes de compra. Las órdenes no
// tocan el libro de movimientos; el material entra al stock con la entrega.
type OrderHandler struct {
	uc *documents.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *documents.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create registra una orden de compra.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.uc.Create(c.Context(), in.ToInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromOrder(order))
}

// List órdenes paginadas.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	list, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":  len(list),
		"orders": dto.FromOrders(list),
	})
}

// Get una orden con sus líneas.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	order, err := h.uc.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromOrder(order))
}

// Update reemplaza cabecera y líneas de la orden.
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.uc.Update(c.Context(), id, in.ToInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromOrder(order))
}

// Delete elimina la orden y sus líneas.
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
