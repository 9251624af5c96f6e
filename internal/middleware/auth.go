// Package middleware provides HTTP middleware for the fiber app.
package middleware

import (
	"strings"

	"kobopay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Auth validates the bearer token and stores the claims in request locals.
func Auth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return utils.Unauthorized(c, "missing bearer token")
		}

		claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return utils.Unauthorized(c, "invalid token")
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}

// RequireRole rejects requests whose claims carry a different role.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractClaims(c)
		if err != nil {
			return utils.Unauthorized(c, "invalid claims")
		}
		if claims.Role != role {
			return utils.Forbidden(c, "insufficient permissions")
		}
		return c.Next()
	}
}
