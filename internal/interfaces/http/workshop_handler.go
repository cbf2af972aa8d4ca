package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prodflux/prodflux-api/internal/application/dto"
	"github.com/prodflux/prodflux-api/internal/application/ledger"
	"github.com/prodflux/prodflux-api/internal/domain"
	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

// WorkshopHandler maneja las peticiones HTTP de talleres y su resumen de stock.
type WorkshopHandler struct {
	workshopRepo repository.WorkshopRepository
	ledgerUC     *ledger.MovementUseCase
}

// NewWorkshopHandler construye el handler.
func NewWorkshopHandler(workshopRepo repository.WorkshopRepository, ledgerUC *ledger.MovementUseCase) *WorkshopHandler {
	return &WorkshopHandler{workshopRepo: workshopRepo, ledgerUC: ledgerUC}
}

// Create da de alta un taller.
func (h *WorkshopHandler) Create(c *fiber.Ctx) error {
	var in dto.WorkshopRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return respondError(c, domain.ErrInvalidInput)
	}
	workshop := &entity.Workshop{Name: in.Name}
	if err := h.workshopRepo.Create(workshop); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromWorkshop(workshop))
}

// List todos los talleres.
func (h *WorkshopHandler) List(c *fiber.Ctx) error {
	list, err := h.workshopRepo.List()
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.WorkshopResponse, 0, len(list))
	for _, w := range list {
		out = append(out, dto.FromWorkshop(w))
	}
	return c.JSON(out)
}

// Get un taller por ID.
func (h *WorkshopHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	workshop, err := h.workshopRepo.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if workshop == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(dto.FromWorkshop(workshop))
}

// Update renombra un taller.
func (h *WorkshopHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.WorkshopRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return respondError(c, domain.ErrInvalidInput)
	}
	existing, err := h.workshopRepo.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if existing == nil {
		return respondError(c, domain.ErrNotFound)
	}
	existing.Name = in.Name
	if err := h.workshopRepo.Update(existing); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromWorkshop(existing))
}

// Delete elimina un taller.
func (h *WorkshopHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	existing, err := h.workshopRepo.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if existing == nil {
		return respondError(c, domain.ErrNotFound)
	}
	if err := h.workshopRepo.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// StockOverview stock de todos los materiales en el taller (cero incluido).
func (h *WorkshopHandler) StockOverview(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.ledgerUC.WorkshopStockOverview(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"workshop_id": id,
		"materials":   dto.FromStockOverview(rows),
	})
}
