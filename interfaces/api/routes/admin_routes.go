package routes

import (
	"github.com/gofiber/fiber/v2"

	"cardapio-digital/interfaces/api/handlers"
	"cardapio-digital/interfaces/api/middleware"
)

func SetupAdminRoutes(api fiber.Router, h *handlers.Handlers, opts Options) {
	admin := api.Group("/admin", middleware.Protected(opts.JWTSecret))

	categories := admin.Group("/categories")
	categories.Post("/", h.AdminCatalogHandler.CreateCategory)
	categories.Put("/:id", h.AdminCatalogHandler.UpdateCategory)
	categories.Delete("/:id", h.AdminCatalogHandler.DeleteCategory)

	items := admin.Group("/menu-items")
	items.Post("/", h.AdminCatalogHandler.CreateMenuItem)
	items.Put("/:id", h.AdminCatalogHandler.UpdateMenuItem)
	items.Delete("/:id", h.AdminCatalogHandler.DeleteMenuItem)

	admin.Post("/snapshots", h.MaintenanceHandler.CreateSnapshot)
	admin.Get("/jobs", h.MaintenanceHandler.ListJobs)
}
