package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cardapio-digital/domain/dto"
	"cardapio-digital/domain/services"
	"cardapio-digital/pkg/logger"
	"cardapio-digital/pkg/utils"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	resp, err := h.authService.Login(ctx, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			logger.WarnContext(ctx, "Login failed", "username", req.Username)
			return utils.UnauthorizedResponse(c, "Usuário ou senha inválidos")
		}
		logger.ErrorContext(ctx, "Login error", "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	logger.InfoContext(ctx, "Admin logged in", "username", req.Username)
	return utils.SuccessResponse(c, resp)
}

// Me returns the admin behind the current token
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	admin, err := utils.GetAdminFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}
	return utils.SuccessResponse(c, fiber.Map{
		"username":  admin.Username,
		"role":      admin.Role,
		"expiresAt": admin.ExpiresAt,
	})
}
