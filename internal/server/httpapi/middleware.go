package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/taskboard-dev/taskboard/internal/common"
	"github.com/taskboard-dev/taskboard/internal/server/auth"
)

const identityLocalsKey = "identity"

// AuthMiddleware requires a valid bearer token. Every failure mode, from a
// missing header to an expired token, yields the same 401 so callers learn
// nothing about why verification failed.
func AuthMiddleware(secretKey []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(common.AuthorizationHeaderName)

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != common.BearerPrefix {
			return unauthorized(c)
		}

		identity, err := auth.VerifyToken(parts[1], secretKey)
		if err != nil {
			return unauthorized(c)
		}

		c.Locals(identityLocalsKey, identity)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
}

// identityFromCtx returns the identity stored by AuthMiddleware, or nil on
// routes the middleware does not guard.
func identityFromCtx(c *fiber.Ctx) *auth.Identity {
	identity, _ := c.Locals(identityLocalsKey).(*auth.Identity)
	return identity
}
