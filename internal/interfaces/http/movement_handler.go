package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prodflux/prodflux-api/internal/application/dto"
	"github.com/prodflux/prodflux-api/internal/application/ledger"
	"github.com/prodflux/prodflux-api/internal/domain/entity"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos.
type MovementHandler struct {
	uc *ledger.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Create registra un movimiento manual (delivery, consumption, loss, adjustment).
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	movement, err := h.uc.Register(c.Context(), ledger.MovementInput{
		WorkshopID: in.WorkshopID,
		MaterialID: in.MaterialID,
		Kind:       entity.MovementKind(in.Kind),
		Quantity:   in.Quantity,
		Note:       in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovement(movement))
}

// List movimientos de un material, opcionalmente filtrados por taller.
func (h *MovementHandler) List(c *fiber.Ctx) error {
	materialID, err := queryID(c, "material_id")
	if err != nil {
		return respondError(c, err)
	}
	workshopID, err := optionalQueryID(c, "workshop_id")
	if err != nil {
		return respondError(c, err)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	list, err := h.uc.ListMovements(materialID, workshopID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":     len(list),
		"movements": dto.FromMovements(list),
	})
}

// Get un movimiento por ID.
func (h *MovementHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	movement, err := h.uc.GetMovement(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromMovement(movement))
}

// Update edita cantidad y nota de un movimiento manual.
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	movement, err := h.uc.UpdateMovement(c.Context(), id, in.Quantity, in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromMovement(movement))
}

// Delete elimina un movimiento manual revirtiendo su efecto.
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteMovement(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reconcile fija el stock de un par al valor contado físicamente.
func (h *MovementHandler) Reconcile(c *fiber.Ctx) error {
	var in dto.ReconcileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	movement, err := h.uc.Reconcile(c.Context(), in.MaterialID, in.WorkshopID, in.TargetQuantity, in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovement(movement))
}

// RebuildStock recalcula el balance materializado de un par desde el libro.
func (h *MovementHandler) RebuildStock(c *fiber.Ctx) error {
	var in dto.RebuildStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	total, err := h.uc.RebuildStock(c.Context(), in.MaterialID, in.WorkshopID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockResponse{
		MaterialID: in.MaterialID,
		WorkshopID: in.WorkshopID,
		Quantity:   total,
	})
}
