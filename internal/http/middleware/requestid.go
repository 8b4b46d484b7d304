package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the standard header name used to propagate request IDs.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is the key used to store the request ID in Fiber's context locals.
	RequestIDLocalKey = "request_id"
)

// RequestID ensures every request carries a request ID: the incoming
// X-Request-ID header is propagated, or a fresh UUID is generated. The value
// lands in context locals under RequestIDLocalKey and on the response header.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		// Store in context for downstream handlers/middlewares
		c.Locals(RequestIDLocalKey, id)

		// Ensure the response carries the request ID
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
