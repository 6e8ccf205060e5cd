package routes

import (
	"github.com/gofiber/fiber/v2"

	"cardapio-digital/interfaces/api/handlers"
	"cardapio-digital/interfaces/api/middleware"
)

func SetupCartRoutes(api fiber.Router, h *handlers.Handlers, opts Options) {
	cart := api.Group("/cart", middleware.CartSession(opts.CartTTL, opts.SecureCookies))

	cart.Get("/", h.CartHandler.Get)
	cart.Delete("/", h.CartHandler.Clear)
	cart.Post("/items", h.CartHandler.AddItem)
	cart.Patch("/items/:uniqueId", h.CartHandler.UpdateQuantity)
	cart.Delete("/items/:uniqueId", h.CartHandler.RemoveItem)
	cart.Post("/checkout", h.CartHandler.Checkout)
}
