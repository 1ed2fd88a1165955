package middleware

import (
	"github.com/corrigo/corrigo/pkg/id"
	"github.com/gofiber/fiber/v2"
)

// RequestMiddleware tags every request with an id, keeping a caller
// supplied X-Request-Id so ids correlate across services.
func RequestMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestId := c.Request().Header.Peek("X-Request-Id")
		if len(requestId) == 0 {
			requestId = []byte(id.GetUUID())
		}
		c.Request().Header.Set("X-Request-Id", string(requestId))
		c.Set("X-Request-Id", string(requestId))
		c.Locals("request_id", string(requestId))
		return c.Next()
	}
}
