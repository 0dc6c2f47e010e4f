package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"storeadmin/internal/log"
	"storeadmin/internal/services"
	"storeadmin/internal/validate"
)

type AuthHandler struct {
	Auth         *services.AuthService
	CookieSecure bool
}

type credentials struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// setSID issues the session cookie. An empty sid expires it.
func (h *AuthHandler) setSID(c *fiber.Ctx, sid string) {
	ck := &fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.CookieSecure,
	}
	if sid == "" {
		ck.Expires = time.Now().Add(-1 * time.Hour)
	}
	c.Cookie(ck)
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return fail(c, &bodyError{err})
	}
	u, err := h.Auth.Register(c.UserContext(), in.Email, in.Name, in.Password)
	if err != nil {
		return fail(c, err)
	}
	c.Status(fiber.StatusCreated)
	log.Audit(c, "auth.register", map[string]any{"user_id": u.ID})
	return c.JSON(u)
}

// POST /api/auth/login binds the sid cookie and returns a bearer token for
// API clients.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return fail(c, &bodyError{err})
	}
	if _, ok := validate.Email(in.Email); !ok {
		c.Status(fiber.StatusUnauthorized)
		log.Security(c, "auth.login.fail", map[string]any{"email": in.Email, "reason": "bad_format"})
		return c.SendString("Invalid email or password")
	}

	// never adopt a session id chosen by the client
	sid := uuid.NewString()
	u, tok, err := h.Auth.Login(c.UserContext(), sid, in.Email, in.Password)
	if errors.Is(err, services.ErrBadCreds) {
		c.Status(fiber.StatusUnauthorized)
		log.Security(c, "auth.login.fail", map[string]any{"email": in.Email})
		return c.SendString("Invalid email or password")
	}
	if err != nil {
		return fail(c, err)
	}
	if old := c.Cookies("sid"); old != "" {
		if err := h.Auth.Logout(c.UserContext(), old); err != nil {
			return fail(c, err)
		}
	}
	h.setSID(c, sid)
	c.Locals("user", u)
	log.Audit(c, "auth.login.success", map[string]any{"email": u.Email})
	return c.JSON(fiber.Map{"user": u, "token": tok})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies("sid"); sid != "" {
		if err := h.Auth.Logout(c.UserContext(), sid); err != nil {
			return fail(c, err)
		}
	}
	h.setSID(c, "")
	log.Audit(c, "auth.logout", nil)
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}
