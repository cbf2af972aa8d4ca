package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prodflux/prodflux-api/internal/shopbridge"
)

// ShopbridgeHandler expone la caché de pedidos de la tienda y su estado.
type ShopbridgeHandler struct {
	service *shopbridge.Service
}

// NewShopbridgeHandler construye el handler.
func NewShopbridgeHandler(service *shopbridge.Service) *ShopbridgeHandler {
	return &ShopbridgeHandler{service: service}
}

// Orders pedidos de la tienda desde la caché (nunca va a la tienda en línea).
func (h *ShopbridgeHandler) Orders(c *fiber.Ctx) error {
	snap := h.service.Snapshot()
	return c.JSON(fiber.Map{
		"orders":       snap.Orders,
		"refreshed_at": snap.RefreshedAt,
		"last_error":   snap.LastError,
	})
}

// Status estado del puente.
func (h *ShopbridgeHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}

// Refresh encola un refresco manual. 202 si se encoló, 200 si ya había uno
// pendiente.
func (h *ShopbridgeHandler) Refresh(c *fiber.Ctx) error {
	if h.service.TriggerRefresh() {
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"queued": true})
	}
	return c.JSON(fiber.Map{"queued": false, "message": "ya hay un refresco pendiente"})
}
