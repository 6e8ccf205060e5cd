package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"

	"cardapio-digital/pkg/logger"
)

const (
	CartSessionCookie = "cart_session"
	CartSessionHeader = "X-Cart-Session"
)

// CartSession resolves the cart session from the header or cookie and issues a new one when missing
func CartSession(ttl time.Duration, secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// copied: the id outlives the request buffer as a lock and store key
		sessionID := fiberutils.CopyString(c.Get(CartSessionHeader))
		if sessionID == "" {
			sessionID = fiberutils.CopyString(c.Cookies(CartSessionCookie))
		}

		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     CartSessionCookie,
				Value:    sessionID,
				Path:     "/",
				Expires:  time.Now().Add(ttl),
				HTTPOnly: true,
				Secure:   secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		c.Set(CartSessionHeader, sessionID)
		c.Locals("cart_session", sessionID)
		c.SetUserContext(logger.ContextWithSessionID(c.UserContext(), sessionID))

		return c.Next()
	}
}

func GetCartSession(c *fiber.Ctx) string {
	if sessionID, ok := c.Locals("cart_session").(string); ok {
		return sessionID
	}
	return ""
}
