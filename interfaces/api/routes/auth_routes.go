package routes

import (
	"github.com/gofiber/fiber/v2"

	"cardapio-digital/interfaces/api/handlers"
	"cardapio-digital/interfaces/api/middleware"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers, opts Options) {
	auth := api.Group("/auth")
	auth.Post("/login", h.AuthHandler.Login)
	auth.Get("/me", middleware.Protected(opts.JWTSecret), h.AuthHandler.Me)
}
