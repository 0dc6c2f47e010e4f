package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/domain"
	"storeadmin/internal/log"
	"storeadmin/internal/services"
)

// Identify attaches the caller to the request: a bearer token wins, the sid
// session cookie is the fallback. Anonymous requests pass through; the
// services decide what they may do.
func Identify(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw, ok := bearer(c); ok {
			u, err := auth.Verify(c.UserContext(), raw)
			if err != nil {
				log.Security(c, "auth.token.invalid", nil)
				return c.Next()
			}
			c.Locals("user", u)
			return c.Next()
		}
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := auth.CurrentUser(c.UserContext(), sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	}
}

// RequireUser rejects anonymous callers with 401.
func RequireUser(c *fiber.Ctx) error {
	if currentUser(c) == nil {
		return fail(c, domain.ErrUnauthorized)
	}
	return c.Next()
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

func bearer(c *fiber.Ctx) (string, bool) {
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(h[7:])
	return tok, tok != ""
}
