package handlers

import (
	"cardapio-digital/domain/services"
	wshub "cardapio-digital/infrastructure/websocket"
)

// Services contains all the services needed for handlers
type Services struct {
	CatalogQueryService  services.CatalogQueryService
	CatalogActionService services.CatalogActionService
	CartService          services.CartService
	CheckoutService      services.CheckoutService
	AuthService          services.AuthService
	MaintenanceService   services.MaintenanceService
	Hub                  *wshub.Hub
	AppName              string
}

// Handlers contains all HTTP handlers
type Handlers struct {
	CatalogHandler      *CatalogHandler
	AdminCatalogHandler *AdminCatalogHandler
	CartHandler         *CartHandler
	AuthHandler         *AuthHandler
	MaintenanceHandler  *MaintenanceHandler
	HealthHandler       *HealthHandler
	WebSocketHandler    *WebSocketHandler
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		CatalogHandler:      NewCatalogHandler(services.CatalogQueryService),
		AdminCatalogHandler: NewAdminCatalogHandler(services.CatalogActionService),
		CartHandler:         NewCartHandler(services.CartService, services.CheckoutService),
		AuthHandler:         NewAuthHandler(services.AuthService),
		MaintenanceHandler:  NewMaintenanceHandler(services.MaintenanceService),
		HealthHandler:       NewHealthHandler(services.MaintenanceService, services.AppName),
		WebSocketHandler:    NewWebSocketHandler(services.Hub),
	}
}
