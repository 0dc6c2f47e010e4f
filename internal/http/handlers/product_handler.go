package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/domain"
	"storeadmin/internal/services"
	"storeadmin/internal/validate"
)

// ProductHandler adds the public storefront listing to the product routes.
type ProductHandler struct {
	*EntityHandler[domain.Product, domain.ProductInput]
	Catalog *services.CatalogService
}

// GET /api/:storeId/storefront/products?categoryId=&sizeId=&colorId=&isFeatured=true
func (h *ProductHandler) Storefront(c *fiber.Ctx) error {
	q := services.CatalogQuery{Featured: c.QueryBool("isFeatured")}
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"categoryId", &q.CategoryID},
		{"sizeId", &q.SizeID},
		{"colorId", &q.ColorID},
	} {
		v := c.Query(f.name)
		if v == "" {
			continue
		}
		id, ok := validate.ID(v)
		if !ok {
			return fail(c, domain.Invalid(f.name, "is not a valid id"))
		}
		*f.dst = id
	}
	out, err := h.Catalog.Products(c.UserContext(), c.Params("storeId"), q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
