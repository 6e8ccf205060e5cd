package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"cardapio-digital/pkg/logger"
)

// LoggerMiddleware writes one structured line per completed request
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		logFunc := logger.InfoContext
		if status >= 500 {
			logFunc = logger.ErrorContext
		} else if status >= 400 {
			logFunc = logger.WarnContext
		}

		logFunc(c.UserContext(), "Request completed",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"ip", c.IP(),
			"latency", time.Since(start).String(),
			"bytes", len(c.Response().Body()),
		)

		return err
	}
}
