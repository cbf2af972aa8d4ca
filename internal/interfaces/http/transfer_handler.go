package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prodflux/prodflux-api/internal/application/documents"
	"github.com/prodflux/prodflux-api/internal/application/dto"
)

// TransferHandler maneja las peticiones HTTP de traslados entre talleres.
type TransferHandler struct {
	uc *documents.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *documents.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create registra un traslado y su par de movimientos por línea.
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	transfer, err := h.uc.Create(c.Context(), in.ToInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTransfer(transfer))
}

// List traslados paginados.
func (h *TransferHandler) List(c *fiber.Ctx) error {
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
		"total":     len(list),
		"transfers": dto.FromTransfers(list),
	})
}

// Get un traslado con sus líneas.
func (h *TransferHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	transfer, err := h.uc.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromTransfer(transfer))
}

// Update reemplaza líneas y movimientos del traslado.
func (h *TransferHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	transfer, err := h.uc.Update(c.Context(), id, in.ToInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromTransfer(transfer))
}

// Delete elimina el traslado y revierte ambos lados.
func (h *TransferHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
