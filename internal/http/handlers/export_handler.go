package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/export"
	"storeadmin/internal/log"
	"storeadmin/internal/services"
)

// ExportHandler serves owner-only downloads of a store's tables.
type ExportHandler struct {
	Stores     *services.StoreService
	ProductMgr *services.ProductManager
	OrderMgr   *services.OrderManager
}

// GET /api/:storeId/products/export.xlsx
func (h *ExportHandler) Products(c *fiber.Ctx) error {
	storeID := c.Params("storeId")
	if err := h.Stores.Authorize(c.UserContext(), currentUser(c), storeID); err != nil {
		return fail(c, err)
	}
	products, err := h.ProductMgr.List(c.UserContext(), storeID)
	if err != nil {
		return fail(c, err)
	}
	file, err := export.ProductsXLSX(products)
	if err != nil {
		return fail(c, err)
	}
	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return fail(c, err)
	}
	log.Audit(c, "products.export", map[string]any{"store_id": storeID, "rows": len(products)})
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.xlsx"`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}

// GET /api/:storeId/orders/report.pdf
func (h *ExportHandler) Orders(c *fiber.Ctx) error {
	storeID := c.Params("storeId")
	if err := h.Stores.Authorize(c.UserContext(), currentUser(c), storeID); err != nil {
		return fail(c, err)
	}
	st, err := h.Stores.Get(c.UserContext(), storeID)
	if err != nil {
		return fail(c, err)
	}
	orders, err := h.OrderMgr.List(c.UserContext(), storeID)
	if err != nil {
		return fail(c, err)
	}
	pdf, err := export.OrdersPDF(*st, orders)
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, "orders.report", map[string]any{"store_id": storeID, "rows": len(orders)})
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orders.pdf"`)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}
