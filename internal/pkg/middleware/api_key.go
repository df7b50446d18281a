package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// APIKeyAuthMiddleware authenticates requests carrying the shared API key
// in X-API-Key or as a bearer token.
func APIKeyAuthMiddleware(expected string) fiber.Handler {
	expected = strings.TrimSpace(expected)
	if expected == "" {
		log.Warn("[API] API_KEY is not configured, protected routes will reject every request")
	}

	return func(c *fiber.Ctx) error {
		if expected == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "service_unavailable", "message": "API key not configured"})
		}

		apiKey := extractAPIKeyFromHeader(c)
		if apiKey == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing API key"})
		}
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid API key"})
		}

		return c.Next()
	}
}

func extractAPIKeyFromHeader(c *fiber.Ctx) string {
	apiKey := strings.TrimSpace(c.Get("X-API-Key"))
	if apiKey != "" {
		return apiKey
	}
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
