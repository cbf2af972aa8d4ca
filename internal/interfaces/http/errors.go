package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/prodflux/prodflux-api/internal/application/dto"
	"github.com/prodflux/prodflux-api/internal/domain"
)

// respondError traduce errores de dominio a respuestas HTTP. El rechazo por
// stock insuficiente lleva el contexto completo del par afectado.
func respondError(c *fiber.Ctx, err error) error {
	var stockErr *domain.StockError
	switch {
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusConflict).JSON(dto.StockErrorResponse{
			Code:           "INSUFFICIENT_STOCK",
			Message:        stockErr.Error(),
			MaterialID:     stockErr.MaterialID,
			WorkshopID:     stockErr.WorkshopID,
			CurrentStock:   stockErr.Current,
			Delta:          stockErr.Delta,
			ResultingStock: stockErr.Current.Add(stockErr.Delta),
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrLinkedMovement):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "LINKED_MOVEMENT", Message: "el movimiento pertenece a un documento; edítelo a través del documento"})
	case errors.Is(err, domain.ErrNoStockChange):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_STOCK_CHANGE", Message: "el conteo coincide con el stock actual; nada que reconciliar"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el recurso ya existe"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// paramID parsea el parámetro de ruta :id como int64.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}

// queryID parsea un query param numérico obligatorio.
func queryID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}

// optionalQueryID parsea un query param numérico opcional; nil si está ausente.
func optionalQueryID(c *fiber.Ctx, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return &id, nil
}
