package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prodflux/prodflux-api/internal/application/dto"
	"github.com/prodflux/prodflux-api/internal/application/ledger"
	"github.com/prodflux/prodflux-api/internal/domain"
	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

// MaterialHandler maneja las peticiones HTTP del catálogo de materiales,
// categorías, alternativas y consultas de stock por material.
type MaterialHandler struct {
	materialRepo repository.MaterialRepository
	ledgerUC     *ledger.MovementUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(materialRepo repository.MaterialRepository, ledgerUC *ledger.MovementUseCase) *MaterialHandler {
	return &MaterialHandler{materialRepo: materialRepo, ledgerUC: ledgerUC}
}

// Create da de alta un material.
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.MaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return respondError(c, domain.ErrInvalidInput)
	}
	material := &entity.Material{
		Name:             in.Name,
		ManufacturerName: in.ManufacturerName,
		OrderNumber:      in.OrderNumber,
		CategoryID:       in.CategoryID,
		Deprecated:       in.Deprecated,
	}
	if err := h.materialRepo.Create(material); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMaterial(material))
}

// List materiales paginados.
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	list, err := h.materialRepo.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":     len(list),
		"materials": dto.FromMaterials(list),
	})
}

// Get un material por ID.
func (h *MaterialHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	material, err := h.materialRepo.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if material == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(dto.FromMaterial(material))
}

// Update actualiza un material.
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.MaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return respondError(c, domain.ErrInvalidInput)
	}
	existing, err := h.materialRepo.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if existing == nil {
		return respondError(c, domain.ErrNotFound)
	}
	existing.Name = in.Name
	existing.ManufacturerName = in.ManufacturerName
	existing.OrderNumber = in.OrderNumber
	existing.CategoryID = in.CategoryID
	existing.Deprecated = in.Deprecated
	if err := h.materialRepo.Update(existing); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromMaterial(existing))
}

// Delete elimina un material.
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	existing, err := h.materialRepo.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if existing == nil {
		return respondError(c, domain.ErrNotFound)
	}
	if err := h.materialRepo.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddAlternative vincula un material intercambiable.
func (h *MaterialHandler) AddAlternative(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AddAlternativeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.AlternativeID <= 0 || in.AlternativeID == id {
		return respondError(c, domain.ErrInvalidInput)
	}
	for _, materialID := range []int64{id, in.AlternativeID} {
		material, err := h.materialRepo.GetByID(materialID)
		if err != nil {
			return respondError(c, err)
		}
		if material == nil {
			return respondError(c, domain.ErrNotFound)
		}
	}
	if err := h.materialRepo.AddAlternative(id, in.AlternativeID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveAlternative desvincula un material intercambiable.
func (h *MaterialHandler) RemoveAlternative(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	altID, err := paramID(c, "altId")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.materialRepo.RemoveAlternative(id, altID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListAlternatives alternativas de un material.
func (h *MaterialHandler) ListAlternatives(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	material, err := h.materialRepo.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if material == nil {
		return respondError(c, domain.ErrNotFound)
	}
	list, err := h.materialRepo.ListAlternatives(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromMaterials(list))
}

// Stock stock del material y sus alternativas en un taller.
func (h *MaterialHandler) Stock(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	workshopID, err := queryID(c, "workshop_id")
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.ledgerUC.StockWithAlternatives(id, workshopID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockWithAlternatives(result))
}

// CreateCategory da de alta una categoría de materiales.
func (h *MaterialHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return respondError(c, domain.ErrInvalidInput)
	}
	category := &entity.MaterialCategory{Name: in.Name, Order: in.Order}
	if err := h.materialRepo.CreateCategory(category); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CategoryResponse{ID: category.ID, Name: category.Name, Order: category.Order})
}

// ListCategories categorías ordenadas.
func (h *MaterialHandler) ListCategories(c *fiber.Ctx) error {
	list, err := h.materialRepo.ListCategories()
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, cat := range list {
		out = append(out, dto.CategoryResponse{ID: cat.ID, Name: cat.Name, Order: cat.Order})
	}
	return c.JSON(out)
}

// UpdateCategory actualiza nombre y orden de una categoría.
func (h *MaterialHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return respondError(c, domain.ErrInvalidInput)
	}
	category := &entity.MaterialCategory{ID: id, Name: in.Name, Order: in.Order}
	if err := h.materialRepo.UpdateCategory(category); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CategoryResponse{ID: category.ID, Name: category.Name, Order: category.Order})
}

// DeleteCategory elimina una categoría.
func (h *MaterialHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.materialRepo.DeleteCategory(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
