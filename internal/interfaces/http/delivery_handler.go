package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prodflux/prodflux-api/internal/application/documents"
	"github.com/prodflux/prodflux-api/internal/application/dto"
)

// DeliveryHandler maneja las peticiones HTTP de entregas. Crear, actualizar y
// borrar pasan por el sincronizador, que mantiene el libro coherente.
type DeliveryHandler struct {
	uc *documents.DeliveryUseCase
}

// NewDeliveryHandler construye el handler.
func NewDeliveryHandler(uc *documents.DeliveryUseCase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc}
}

// Create registra una entrega y sus movimientos de entrada.
func (h *DeliveryHandler) Create(c *fiber.Ctx) error {
	var in dto.DeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	delivery, err := h.uc.Create(c.Context(), in.ToInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromDelivery(delivery))
}

// List entregas paginadas.
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
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
		"total":      len(list),
		"deliveries": dto.FromDeliveries(list),
	})
}

// Get una entrega con sus líneas.
func (h *DeliveryHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	delivery, err := h.uc.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromDelivery(delivery))
}

// Update reemplaza líneas y movimientos de la entrega.
func (h *DeliveryHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.DeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	delivery, err := h.uc.Update(c.Context(), id, in.ToInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromDelivery(delivery))
}

// Delete elimina la entrega y revierte sus movimientos.
func (h *DeliveryHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
