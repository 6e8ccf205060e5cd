package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"cardapio-digital/interfaces/api/handlers"
)

// Options carries the settings route groups need beyond the handlers
type Options struct {
	JWTSecret     string
	CartTTL       time.Duration
	SecureCookies bool
}

func SetupRoutes(app *fiber.App, h *handlers.Handlers, opts Options) {
	SetupHealthRoutes(app, h)

	api := app.Group("/api/v1")

	SetupCatalogRoutes(api, h)
	SetupAuthRoutes(api, h, opts)
	SetupAdminRoutes(api, h, opts)
	SetupCartRoutes(api, h, opts)

	SetupWebSocketRoutes(app, h)
}
