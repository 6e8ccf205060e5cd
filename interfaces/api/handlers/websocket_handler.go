package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	wshub "cardapio-digital/infrastructure/websocket"
	"cardapio-digital/pkg/logger"
)

// WebSocketHandler streams catalog changes to storefront and admin pages
type WebSocketHandler struct {
	hub *wshub.Hub
}

func NewWebSocketHandler(hub *wshub.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

func (h *WebSocketHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *WebSocketHandler) Handle(c *websocket.Conn) {
	h.hub.Register(c)
	defer h.hub.Unregister(c)

	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("WebSocket closed", "error", err)
			return
		}
		h.hub.HandleMessage(c, message)
	}
}
