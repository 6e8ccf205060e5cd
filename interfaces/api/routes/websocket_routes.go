package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"cardapio-digital/interfaces/api/handlers"
)

func SetupWebSocketRoutes(app *fiber.App, h *handlers.Handlers) {
	app.Use("/ws", h.WebSocketHandler.Upgrade)
	app.Get("/ws/catalog", websocket.New(h.WebSocketHandler.Handle))
}
