package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/log"
	"storeadmin/internal/services"
	"storeadmin/internal/validate"
)

// EntityHandler exposes one entity manager under /api/:storeId/<resource>.
// Reads are public; writes need an identity that owns :storeId.
type EntityHandler[T services.Entity, F any] struct {
	M *services.Manager[T, F]
}

func NewEntityHandler[T services.Entity, F any](m *services.Manager[T, F]) *EntityHandler[T, F] {
	return &EntityHandler[T, F]{M: m}
}

func (h *EntityHandler[T, F]) Mount(r fiber.Router, path string) {
	r.Get(path, h.List)
	r.Post(path, h.Create)
	r.Get(path+"/:id", h.Get)
	r.Patch(path+"/:id", h.Update)
	r.Delete(path+"/:id", h.Delete)
}

func (h *EntityHandler[T, F]) List(c *fiber.Ctx) error {
	items, err := h.M.List(c.UserContext(), c.Params("storeId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

func (h *EntityHandler[T, F]) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).SendString("Not found")
	}
	out, err := h.M.Get(c.UserContext(), c.Params("storeId"), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

func (h *EntityHandler[T, F]) Create(c *fiber.Ctx) error {
	storeID := c.Params("storeId")
	var in F
	if err := h.decode(c, storeID, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.M.Create(c.UserContext(), storeID, currentUser(c), in)
	if err != nil {
		return fail(c, err)
	}
	c.Status(fiber.StatusCreated)
	log.Audit(c, h.M.Kind()+".create", map[string]any{"store_id": storeID, "id": (*out).EntityID()})
	return c.JSON(out)
}

func (h *EntityHandler[T, F]) Update(c *fiber.Ctx) error {
	storeID, id := c.Params("storeId"), c.Params("id")
	var in F
	if err := h.decode(c, storeID, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.M.Update(c.UserContext(), storeID, id, currentUser(c), in)
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, h.M.Kind()+".update", map[string]any{"store_id": storeID, "id": id})
	return c.JSON(out)
}

func (h *EntityHandler[T, F]) Delete(c *fiber.Ctx) error {
	storeID, id := c.Params("storeId"), c.Params("id")
	out, err := h.M.Delete(c.UserContext(), storeID, id, currentUser(c))
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, h.M.Kind()+".delete", map[string]any{"store_id": storeID, "id": id})
	return c.JSON(out)
}

// decode parses the JSON body. An undecodable body from a caller who may not
// write to the store is still reported as an authorization failure.
func (h *EntityHandler[T, F]) decode(c *fiber.Ctx, storeID string, in *F) error {
	if err := c.BodyParser(in); err != nil {
		if aerr := h.M.Authorize(c.UserContext(), storeID, currentUser(c)); aerr != nil {
			return aerr
		}
		return &bodyError{err}
	}
	return nil
}
