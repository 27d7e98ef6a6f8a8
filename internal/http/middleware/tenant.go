package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	// TenantIDHeader carries the tenant of an authoring request.
	TenantIDHeader = "X-Tenant-ID"
	// TenantIDLocalKey is the locals key the tenant ID is stored under.
	TenantIDLocalKey = "tenant_id"
)

// Tenant rejects requests without a tenant header with 400.
func Tenant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Get(TenantIDHeader))
		if id == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Tenant ID not found in request")
		}
		c.Locals(TenantIDLocalKey, id)
		return c.Next()
	}
}

// GetTenantID returns the tenant stored by Tenant, or "".
func GetTenantID(c *fiber.Ctx) string {
	id, _ := c.Locals(TenantIDLocalKey).(string)
	return id
}
