package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-hogar/internal/application/analytics"
	"github.com/jhoicas/Inventario-hogar/internal/application/history"
	"github.com/jhoicas/Inventario-hogar/internal/application/inventory"
	"github.com/jhoicas/Inventario-hogar/internal/application/usecase"
	"github.com/jhoicas/Inventario-hogar/internal/application/validation"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LocationUC  *usecase.LocationUseCase
	ItemUC      *usecase.ItemUseCase
	CategoryUC  *usecase.CategoryUseCase
	InventorySv *inventory.Service
	Validator   *validation.Validator
	HistorySv   *history.Service
	DashboardUC *analytics.DashboardUseCase
	PDFGen      LocationReportPDFGenerator
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Locations
	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)

	// Items
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Inventory (mutaciones del libro + consultas)
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventorySv, deps.Validator, deps.DashboardUC, deps.PDFGen)
	inv.Post("/entries", inventoryHandler.CreateEntry)
	inv.Post("/move", inventoryHandler.Move)
	inv.Post("/split", inventoryHandler.Split)
	inv.Post("/merge", inventoryHandler.Merge)
	inv.Post("/adjust", inventoryHandler.Adjust)
	inv.Delete("/entries/:item_id/:location_id", inventoryHandler.DeleteEntry)
	inv.Get("/items/:item_id/locations", inventoryHandler.ItemLocations)
	inv.Get("/locations/:location_id/items", inventoryHandler.LocationItems)
	inv.Get("/locations/:location_id/report", inventoryHandler.LocationReport)

	// Validation (consulta pura: siempre 200 con el veredicto)
	val := api.Group("/validation")
	validationHandler := NewValidationHandler(deps.Validator)
	val.Post("/movement", validationHandler.ValidateMovement)
	val.Post("/bulk", validationHandler.ValidateBulk)
	val.Get("/rules", validationHandler.GetRules)
	val.Put("/rules", validationHandler.UpdateRules)
	val.Get("/report", validationHandler.Report)

	// History (solo lectura)
	hist := api.Group("/history")
	historyHandler := NewHistoryHandler(deps.HistorySv)
	hist.Get("/", historyHandler.List)
	hist.Get("/summary", historyHandler.Summary)
	hist.Get("/location-pairs", historyHandler.LocationPairStats)
	hist.Get("/items/:item_id", historyHandler.ItemTimeline)

	// Dashboard
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)
}
