package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prodflux/prodflux-api/internal/application/documents"
	"github.com/prodflux/prodflux-api/internal/application/ledger"
	"github.com/prodflux/prodflux-api/internal/application/requirements"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
	"github.com/prodflux/prodflux-api/internal/shopbridge"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MovementUC   *ledger.MovementUseCase
	DeliveryUC   *documents.DeliveryUseCase
	TransferUC   *documents.TransferUseCase
	OrderUC      *documents.OrderUseCase
	Requirements *requirements.Engine
	MaterialRepo repository.MaterialRepository
	WorkshopRepo repository.WorkshopRepository
	ProductRepo  repository.ProductRepository
	BOMRepo      repository.BOMRepository
	Shopbridge   *shopbridge.Service // nil si el puente está deshabilitado
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Materiales, categorías y alternativas
	materials := api.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialRepo, deps.MovementUC)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.Get)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", materialHandler.Delete)
	materials.Get("/:id/stock", materialHandler.Stock)
	materials.Get("/:id/alternatives", materialHandler.ListAlternatives)
	materials.Post("/:id/alternatives", materialHandler.AddAlternative)
	materials.Delete("/:id/alternatives/:altId", materialHandler.RemoveAlternative)

	categories := api.Group("/material-categories")
	categories.Post("/", materialHandler.CreateCategory)
	categories.Get("/", materialHandler.ListCategories)
	categories.Put("/:id", materialHandler.UpdateCategory)
	categories.Delete("/:id", materialHandler.DeleteCategory)

	// Talleres
	workshops := api.Group("/workshops")
	workshopHandler := NewWorkshopHandler(deps.WorkshopRepo, deps.MovementUC)
	workshops.Post("/", workshopHandler.Create)
	workshops.Get("/", workshopHandler.List)
	workshops.Get("/:id", workshopHandler.Get)
	workshops.Put("/:id", workshopHandler.Update)
	workshops.Delete("/:id", workshopHandler.Delete)
	workshops.Get("/:id/stock", workshopHandler.StockOverview)

	// Movimientos del libro
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.Get)
	movements.Patch("/:id", movementHandler.Update)
	movements.Delete("/:id", movementHandler.Delete)

	// Stock: reconciliación por conteo y reconstrucción desde el libro
	stockGroup := api.Group("/stock")
	stockGroup.Post("/reconcile", movementHandler.Reconcile)
	stockGroup.Post("/rebuild", movementHandler.RebuildStock)

	// Entregas
	deliveries := api.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC)
	deliveries.Post("/", deliveryHandler.Create)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/:id", deliveryHandler.Get)
	deliveries.Put("/:id", deliveryHandler.Update)
	deliveries.Delete("/:id", deliveryHandler.Delete)

	// Traslados
	transfers := api.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.Get)
	transfers.Put("/:id", transferHandler.Update)
	transfers.Delete("/:id", transferHandler.Delete)

	// Órdenes de compra
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.Get)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)

	// Productos, BOM, requerimientos y fabricación
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductRepo, deps.BOMRepo)
	requirementsHandler := NewRequirementsHandler(deps.Requirements)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/bom", productHandler.ListBOM)
	products.Post("/:id/bom", productHandler.AddBOMLine)
	products.Put("/:id/bom/:lineId", productHandler.UpdateBOMLine)
	products.Delete("/:id/bom/:lineId", productHandler.DeleteBOMLine)
	products.Get("/:id/requirements", requirementsHandler.Requirements)
	products.Get("/:id/producible", requirementsHandler.Producible)
	products.Get("/:id/stock", requirementsHandler.ProductStock)
	products.Post("/:id/manufacture", requirementsHandler.Manufacture)

	api.Post("/requirements/aggregated", requirementsHandler.Aggregated)
	api.Get("/producible", requirementsHandler.ProducibleOverview)

	// Puente con la tienda (solo si está habilitado)
	if deps.Shopbridge != nil {
		shopbridgeHandler := NewShopbridgeHandler(deps.Shopbridge)
		shop := api.Group("/shopbridge")
		shop.Get("/orders", shopbridgeHandler.Orders)
		shop.Get("/status", shopbridgeHandler.Status)
		shop.Post("/refresh", shopbridgeHandler.Refresh)
	}
}
