package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nikolamilosevic/TransferHub/internal/pkg/env"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/security"
)

// RequireInternalToken guards internal endpoints reachable without a user
// session, such as the by-email subscription hook. Callers must present the
// shared secret in X-Internal-Token. With no secret configured the routes
// stay closed instead of open.
func RequireInternalToken(c *fiber.Ctx) error {
	configured := env.GetEnv("INTERNAL_API_TOKEN", "")
	if configured == "" {
		log.Print("internal token middleware: INTERNAL_API_TOKEN not configured, rejecting request")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "unavailable",
			"message": "Internal endpoint is not configured",
		})
	}

	presented := strings.TrimSpace(c.Get("X-Internal-Token"))
	if !security.VerifyInternalToken(presented, configured) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "Invalid internal token",
		})
	}
	return c.Next()
}
