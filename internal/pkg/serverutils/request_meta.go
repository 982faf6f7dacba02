package serverutils

import (
	"trade-advisor-be/pkg/advisor/moderation"

	"github.com/gofiber/fiber/v2"
)

// RequestMetaMiddleware attaches caller id, IP and user agent to the user
// context for the moderation audit log. Register it after the JWT middleware.
func RequestMetaMiddleware(ctx *fiber.Ctx) error {
	userId, _ := ctx.Locals("user_id").(string)
	ctx.SetUserContext(moderation.WithRequestMeta(ctx.UserContext(), moderation.RequestMeta{
		CallerID:  userId,
		IPAddress: ctx.IP(),
		UserAgent: ctx.Get(fiber.HeaderUserAgent),
	}))
	return ctx.Next()
}
