package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cardapio-digital/domain/services"
)

type HealthHandler struct {
	maintenanceService services.MaintenanceService
	appName            string
}

func NewHealthHandler(maintenanceService services.MaintenanceService, appName string) *HealthHandler {
	return &HealthHandler{maintenanceService: maintenanceService, appName: appName}
}

// Health reports 503 while the catalog store is unreachable
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	status := "ok"
	code := fiber.StatusOK
	if err := h.maintenanceService.CheckStore(c.UserContext()); err != nil {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"service": h.appName,
	})
}
