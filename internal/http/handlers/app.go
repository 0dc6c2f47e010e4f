package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"storeadmin/internal/config"
	"storeadmin/internal/http/views"
	"storeadmin/internal/log"
)

// Limits are variables so tests can tighten them.
var (
	RequestsPerMinute = 120
	LoginAttempts     = 5
	LoginWindow       = 10 * time.Minute
)

// NewApp builds the fiber app with the middleware chain and every route.
func NewApp(cfg config.Config, d *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:     views.Engine(),
		BodyLimit: 1 << 20, // 1 MiB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				log.Error(c, "server.error", err, nil)
				return c.Status(code).SendString("Something went wrong. Please try again.")
			}
			return c.Status(code).SendString(fe.Message)
		},
	})

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Csrf-Token",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        RequestsPerMinute,
		Expiration: time.Minute,
		Storage:    d.Storage,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "header:" + csrf.HeaderName,
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.CookieSecure,
		ContextKey:     "csrf",
		Storage:        d.Storage,
		// only cookie sessions need the double-submit token
		Next: func(c *fiber.Ctx) bool {
			_, ok := bearer(c)
			return ok || c.Cookies("sid") == ""
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Security(c, "csrf.fail", map[string]any{"error": err.Error()})
			return c.Status(fiber.StatusForbidden).SendString("Security check failed. Please refresh and try again.")
		},
	}))
	app.Use(Identify(d.AuthSvc))

	Routes(app, d)
	return app
}

func Routes(app *fiber.App, d *Deps) {
	auth := app.Group("/api/auth")
	auth.Post("/register", d.Auth.Register)
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        LoginAttempts,
		Expiration: LoginWindow,
		Storage:    d.Storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "login|" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many attempts. Please try again later.")
		},
	}), d.Auth.Login)
	auth.Post("/logout", d.Auth.Logout)
	auth.Get("/me", RequireUser, d.Auth.Me)

	app.Get("/api/stores", RequireUser, d.Stores.List)
	app.Post("/api/stores", d.Stores.Create)
	app.Get("/api/stores/:storeId", d.Stores.Get)
	app.Patch("/api/stores/:storeId", d.Stores.Update)
	app.Delete("/api/stores/:storeId", d.Stores.Delete)

	store := app.Group("/api/:storeId")
	store.Get("/overview", d.Overview.JSON)
	store.Get("/products/export.xlsx", d.Export.Products)
	store.Get("/orders/report.pdf", d.Export.Orders)
	store.Get("/storefront/products", d.Products.Storefront)
	d.Billboards.Mount(store, "/billboards")
	d.Categories.Mount(store, "/categories")
	d.Sizes.Mount(store, "/sizes")
	d.Colors.Mount(store, "/colors")
	d.Products.Mount(store, "/products")
	d.Orders.Mount(store, "/orders")

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/:storeId", d.Overview.Page)
	app.Use(func(c *fiber.Ctx) error {
		return page(c, fiber.StatusNotFound, "Page not found")
	})
}
