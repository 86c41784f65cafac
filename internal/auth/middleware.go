package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"

	"github.com/wichananm65/mill-store-backend/internal/httpx"
	"github.com/wichananm65/mill-store-backend/internal/logging"
)

// publicGETPrefixes lists read-only paths that never require a token, even
// when they are reached after the middleware has been installed.
var publicGETPrefixes = []string{
	"/health",
	"/api/products",
	"/api/categories",
	"/api/banners",
	"/api/reviews/",
	"/uploads/",
}

// Middleware guards every route registered after it. A missing or invalid
// bearer token ends the request with a 401 envelope.
func Middleware(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    []byte(secret),
		SigningMethod: "HS256",
		ContextKey:    ContextKey,
		Filter:        isPublic,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			logging.FromCtx(c).WithError(err).Debug("rejected token")
			return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
		},
	})
}

func isPublic(c *fiber.Ctx) bool {
	if c.Method() == fiber.MethodOptions {
		return true
	}
	if c.Method() != fiber.MethodGet {
		return false
	}
	p := c.Path()
	for _, prefix := range publicGETPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}
