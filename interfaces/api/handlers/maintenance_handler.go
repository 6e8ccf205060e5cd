package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cardapio-digital/domain/services"
	"cardapio-digital/pkg/logger"
	"cardapio-digital/pkg/utils"
)

// MaintenanceHandler exposes the snapshot trigger and the scheduled job list
type MaintenanceHandler struct {
	maintenanceService services.MaintenanceService
}

func NewMaintenanceHandler(maintenanceService services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

func (h *MaintenanceHandler) CreateSnapshot(c *fiber.Ctx) error {
	ctx := c.UserContext()

	resp, err := h.maintenanceService.RunSnapshot(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Manual snapshot failed", "error", err)
		return queryError(c, err)
	}
	return utils.CreatedResponse(c, resp)
}

func (h *MaintenanceHandler) ListJobs(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, h.maintenanceService.ListJobs(c.UserContext()))
}
