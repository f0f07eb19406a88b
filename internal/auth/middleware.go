package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Authenticate extracts and validates the bearer token on every inbound
// request. A missing, malformed or invalid token is not an error here: the
// request simply proceeds without an identity and the policy decides whether
// anonymous access is acceptable for the route. The middleware never produces
// a terminal response and must run before Policy.Enforce.
func Authenticate(codec *Codec, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Idempotent against duplicate registration: an identity already
		// established for this request is never overwritten.
		if _, ok := IdentityFromContext(c); ok {
			return c.Next()
		}

		tokenStr, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Next()
		}

		claims, err := codec.Validate(tokenStr)
		if err != nil {
			logger.Warn("token rejected",
				zap.String("reason", err.Error()),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
			)
			return c.Next()
		}

		c.Locals(identityKey, Identity{Subject: claims.Subject, Roles: claims.Roles})
		return c.Next()
	}
}

// bearerToken parses an "Authorization: Bearer <token>" header value.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
