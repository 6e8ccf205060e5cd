package routes

import (
	"github.com/gofiber/fiber/v2"

	"cardapio-digital/interfaces/api/handlers"
)

func SetupCatalogRoutes(api fiber.Router, h *handlers.Handlers) {
	categories := api.Group("/categories")
	categories.Get("/", h.CatalogHandler.ListCategories)
	categories.Get("/slug/:slug", h.CatalogHandler.GetCategoryBySlug)
	categories.Get("/:id", h.CatalogHandler.GetCategory)
	categories.Get("/:id/items", h.CatalogHandler.ListMenuItems)

	api.Get("/menu-items", h.CatalogHandler.ListAllMenuItems)
	api.Get("/promotions", h.CatalogHandler.ListPromotions)
}
