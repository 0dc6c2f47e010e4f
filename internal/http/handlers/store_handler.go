package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/domain"
	"storeadmin/internal/log"
	"storeadmin/internal/services"
)

type StoreHandler struct {
	Stores *services.StoreService
}

// GET /api/stores (store switcher)
func (h *StoreHandler) List(c *fiber.Ctx) error {
	out, err := h.Stores.ListMine(c.UserContext(), currentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GET /api/stores/:storeId
func (h *StoreHandler) Get(c *fiber.Ctx) error {
	st, err := h.Stores.Get(c.UserContext(), c.Params("storeId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(st)
}

// POST /api/stores
func (h *StoreHandler) Create(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return fail(c, domain.ErrUnauthorized)
	}
	var in domain.StoreInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, &bodyError{err})
	}
	st, err := h.Stores.Create(c.UserContext(), u, in)
	if err != nil {
		return fail(c, err)
	}
	c.Status(fiber.StatusCreated)
	log.Audit(c, "store.create", map[string]any{"store_id": st.ID})
	return c.JSON(st)
}

// PATCH /api/stores/:storeId (settings form)
func (h *StoreHandler) Update(c *fiber.Ctx) error {
	id := c.Params("storeId")
	var in domain.StoreInput
	if err := c.BodyParser(&in); err != nil {
		if aerr := h.Stores.Authorize(c.UserContext(), currentUser(c), id); aerr != nil {
			return fail(c, aerr)
		}
		return fail(c, &bodyError{err})
	}
	st, err := h.Stores.Rename(c.UserContext(), currentUser(c), id, in)
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, "store.update", map[string]any{"store_id": id})
	return c.JSON(st)
}

// DELETE /api/stores/:storeId
func (h *StoreHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("storeId")
	st, err := h.Stores.Delete(c.UserContext(), currentUser(c), id)
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, "store.delete", map[string]any{"store_id": id})
	return c.JSON(st)
}
