package middleware

import (
	"context"

	"go-reporting/internal/features/audit"

	"github.com/gofiber/fiber/v2"
)

const ActorHeader = "X-Actor"

// ActorMiddleware extracts the X-Actor header and adds it to the context so view
// changes are attributed in the audit trail
func ActorMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := c.Get(ActorHeader)
		if actor != "" {
			ctx := context.WithValue(c.UserContext(), audit.ActorKey, actor)
			c.SetUserContext(ctx)
		}
		return c.Next()
	}
}
