package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/domain"
	"storeadmin/internal/log"
)

// fail is the one place domain errors become HTTP statuses. Bodies are plain
// text so the dashboard can show them in a toast as-is.
func fail(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	var ce *domain.ConflictError
	var be *bodyError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.Status(fiber.StatusUnauthorized)
		log.Security(c, "access.denied.auth", nil)
		return c.SendString("Unauthenticated")
	case errors.Is(err, domain.ErrForbidden):
		c.Status(fiber.StatusForbidden)
		log.Security(c, "access.denied.store", map[string]any{"store_id": c.Params("storeId")})
		return c.SendString("Unauthorized")
	case errors.As(err, &be):
		c.Status(fiber.StatusBadRequest)
		log.Security(c, "validation.fail", map[string]any{"field": "body", "error": be.err.Error()})
		return c.SendString("Invalid JSON body")
	case errors.As(err, &ve):
		c.Status(fiber.StatusBadRequest)
		log.Security(c, "validation.fail", map[string]any{"field": ve.Field})
		return c.SendString(capitalize(ve.Error()))
	case errors.Is(err, domain.ErrNotFound):
		c.Status(fiber.StatusNotFound)
		return c.SendString("Not found")
	case errors.As(err, &ce):
		c.Status(fiber.StatusConflict)
		log.Info(c, ce.Kind+".delete.blocked", map[string]any{"dependents": ce.Dependents})
		return c.SendString(capitalize(ce.Error()))
	}
	c.Status(fiber.StatusInternalServerError)
	log.Error(c, "server.error", err, nil)
	return c.SendString("Something went wrong. Please try again.")
}

type bodyError struct{ err error }

func (e *bodyError) Error() string { return "invalid body: " + e.err.Error() }

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
