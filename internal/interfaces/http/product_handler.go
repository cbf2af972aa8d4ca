package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/prodflux/prodflux-api/internal/application/dto"
	"github.com/prodflux/prodflux-api/internal/domain"
	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

// ProductHandler maneja las peticiones HTTP de productos y sus listas de
// materiales (BOM).
type ProductHandler struct {
	productRepo repository.ProductRepository
	bomRepo     repository.BOMRepository
}

// NewProductHandler construye el handler.
func NewProductHandler(productRepo repository.ProductRepository, bomRepo repository.BOMRepository) *ProductHandler {
	return &ProductHandler{productRepo: productRepo, bomRepo: bomRepo}
}

// Create da de alta un producto.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return respondError(c, domain.ErrInvalidInput)
	}
	product := &entity.Product{
		Name:          in.Name,
		ArticleNumber: in.ArticleNumber,
		CreatedAt:     time.Now(),
	}
	if err := h.productRepo.Create(product); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromProduct(product))
}

// List productos paginados.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	list, err := h.productRepo.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":    len(list),
		"products": dto.FromProducts(list),
	})
}

// Get un producto por ID.
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	product, err := h.productRepo.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if product == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(dto.FromProduct(product))
}

// Update actualiza un producto.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return respondError(c, domain.ErrInvalidInput)
	}
	existing, err := h.productRepo.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if existing == nil {
		return respondError(c, domain.ErrNotFound)
	}
	existing.Name = in.Name
	existing.ArticleNumber = in.ArticleNumber
	if err := h.productRepo.Update(existing); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromProduct(existing))
}

// Delete elimina un producto.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	existing, err := h.productRepo.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if existing == nil {
		return respondError(c, domain.ErrNotFound)
	}
	if err := h.productRepo.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListBOM líneas de la BOM de un producto.
func (h *ProductHandler) ListBOM(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	product, err := h.productRepo.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if product == nil {
		return respondError(c, domain.ErrNotFound)
	}
	lines, err := h.bomRepo.ListByProduct(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromBOMLines(lines))
}

// AddBOMLine agrega una línea a la BOM del producto.
func (h *ProductHandler) AddBOMLine(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.BOMLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.MaterialID <= 0 || !in.QuantityPerUnit.IsPositive() {
		return respondError(c, domain.ErrInvalidInput)
	}
	product, err := h.productRepo.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if product == nil {
		return respondError(c, domain.ErrNotFound)
	}
	line := &entity.BOMLine{
		ProductID:       id,
		MaterialID:      in.MaterialID,
		QuantityPerUnit: in.QuantityPerUnit,
	}
	if err := h.bomRepo.CreateLine(line); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromBOMLine(line))
}

// UpdateBOMLine actualiza una línea de la BOM.
func (h *ProductHandler) UpdateBOMLine(c *fiber.Ctx) error {
	lineID, err := paramID(c, "lineId")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.BOMLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.MaterialID <= 0 || !in.QuantityPerUnit.IsPositive() {
		return respondError(c, domain.ErrInvalidInput)
	}
	line, err := h.bomRepo.GetLine(lineID)
	if err != nil {
		return respondError(c, err)
	}
	if line == nil {
		return respondError(c, domain.ErrNotFound)
	}
	line.MaterialID = in.MaterialID
	line.QuantityPerUnit = in.QuantityPerUnit
	if err := h.bomRepo.UpdateLine(line); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromBOMLine(line))
}

// DeleteBOMLine elimina una línea de la BOM.
func (h *ProductHandler) DeleteBOMLine(c *fiber.Ctx) error {
	lineID, err := paramID(c, "lineId")
	if err != nil {
		return respondError(c, err)
	}
	line, err := h.bomRepo.GetLine(lineID)
	if err != nil {
		return respondError(c, err)
	}
	if line == nil {
		return respondError(c, domain.ErrNotFound)
	}
	if err := h.bomRepo.DeleteLine(lineID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
