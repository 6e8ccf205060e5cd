package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cardapio-digital/domain/repositories"
	"cardapio-digital/pkg/logger"
	"cardapio-digital/pkg/utils"
)

func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := utils.ErrCodeInternalError
		message := "Internal server error"

		var fe *fiber.Error
		switch {
		case errors.As(err, &fe):
			code = fe.Code
			message = fe.Message
			switch code {
			case fiber.StatusBadRequest:
				errCode = utils.ErrCodeBadRequest
			case fiber.StatusUnauthorized:
				errCode = utils.ErrCodeUnauthorized
			case fiber.StatusNotFound:
				errCode = utils.ErrCodeNotFound
			}
		case errors.Is(err, repositories.ErrStoreUnavailable):
			code = fiber.StatusServiceUnavailable
			errCode = utils.ErrCodeStoreUnavailable
			message = "Cardápio indisponível no momento"
		}

		if code >= fiber.StatusInternalServerError {
			logger.ErrorContext(c.UserContext(), "Request failed", "path", c.Path(), "error", err)
		}

		return utils.ErrorResponse(c, code, errCode, message, nil)
	}
}
