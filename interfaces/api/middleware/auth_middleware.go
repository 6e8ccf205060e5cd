package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cardapio-digital/pkg/logger"
	"cardapio-digital/pkg/utils"
)

// Protected validates the admin bearer token and stores the admin in locals
func Protected(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.UnauthorizedResponse(c, "Missing authorization header")
		}

		token := utils.ExtractTokenFromHeader(authHeader)
		if token == "" {
			return utils.UnauthorizedResponse(c, "Invalid authorization header format")
		}

		admin, err := utils.ValidateAdminToken(token, jwtSecret)
		if err != nil {
			logger.WarnContext(c.UserContext(), "Token validation failed", "error", err)
			switch {
			case errors.Is(err, utils.ErrExpiredToken):
				return utils.UnauthorizedResponse(c, "Token has expired")
			case errors.Is(err, utils.ErrInvalidToken):
				return utils.UnauthorizedResponse(c, "Invalid token")
			default:
				return utils.UnauthorizedResponse(c, "Token validation failed")
			}
		}

		c.Locals("admin", admin)
		return c.Next()
	}
}
