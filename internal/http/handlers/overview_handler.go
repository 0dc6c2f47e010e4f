package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/domain"
	"storeadmin/internal/log"
	"storeadmin/internal/services"
)

type OverviewHandler struct {
	Overview *services.OverviewService
}

// Endpoint is one line of the API panel on the settings page.
type Endpoint struct {
	Method string `json:"method"`
	URL    string `json:"url"`
	Access string `json:"access"`
}

var panelResources = []string{"billboards", "categories", "sizes", "colors", "products", "orders"}

func endpoints(base, storeID string) []Endpoint {
	var out []Endpoint
	for _, r := range panelResources {
		url := base + "/api/" + storeID + "/" + r
		out = append(out,
			Endpoint{"GET", url, "public"},
			Endpoint{"GET", url + "/{id}", "public"},
			Endpoint{"POST", url, "admin"},
			Endpoint{"PATCH", url + "/{id}", "admin"},
			Endpoint{"DELETE", url + "/{id}", "admin"},
		)
	}
	return out
}

// GET /api/:storeId/overview
func (h *OverviewHandler) JSON(c *fiber.Ctx) error {
	storeID := c.Params("storeId")
	ov, err := h.Overview.Overview(c.UserContext(), storeID, currentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"overview": ov, "api": endpoints(c.BaseURL(), storeID)})
}

// GET /:storeId renders the dashboard page.
func (h *OverviewHandler) Page(c *fiber.Ctx) error {
	storeID := c.Params("storeId")
	ov, err := h.Overview.Overview(c.UserContext(), storeID, currentUser(c))
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		log.Security(c, "access.denied.auth", nil)
		return page(c, fiber.StatusUnauthorized, "Please sign in to view this store.")
	case errors.Is(err, domain.ErrForbidden):
		log.Security(c, "access.denied.store", map[string]any{"store_id": storeID})
		return page(c, fiber.StatusNotFound, "Store not found")
	case err != nil:
		log.Error(c, "overview.load", err, map[string]any{"store_id": storeID})
		return page(c, fiber.StatusInternalServerError, "Could not load this store")
	}
	return render(c, "dashboard", fiber.Map{"Overview": ov, "API": endpoints(c.BaseURL(), storeID)})
}
