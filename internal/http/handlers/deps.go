package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"storeadmin/internal/config"
	"storeadmin/internal/domain"
	"storeadmin/internal/events"
	"storeadmin/internal/repos"
	"storeadmin/internal/services"
)

type Deps struct {
	Auth       *AuthHandler
	Stores     *StoreHandler
	Billboards *EntityHandler[domain.Billboard, domain.BillboardInput]
	Categories *EntityHandler[domain.Category, domain.CategoryInput]
	Sizes      *EntityHandler[domain.Size, domain.SizeInput]
	Colors     *EntityHandler[domain.Color, domain.ColorInput]
	Products   *ProductHandler
	Orders     *EntityHandler[domain.Order, domain.OrderInput]
	Overview   *OverviewHandler
	Export     *ExportHandler

	AuthSvc *services.AuthService
	// Storage backs the limiter and csrf middlewares; nil means in-memory.
	Storage fiber.Storage
}

func NewDeps(db *sqlx.DB, cfg config.Config, pub events.Publisher) *Deps {
	if pub == nil {
		pub = events.Nop{}
	}
	userRepo := repos.NewUserRepo(db)
	storeRepo := repos.NewStoreRepo(db)
	prodRepo := repos.NewProductRepo(db)

	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.ServiceName)
	storeSvc := services.NewStoreService(storeRepo, pub, cfg.ServiceName)
	m := services.NewManagers(db, pub, cfg.ServiceName)

	return &Deps{
		Auth:       &AuthHandler{Auth: authSvc, CookieSecure: cfg.CookieSecure},
		Stores:     &StoreHandler{Stores: storeSvc},
		Billboards: NewEntityHandler(m.Billboards),
		Categories: NewEntityHandler(m.Categories),
		Sizes:      NewEntityHandler(m.Sizes),
		Colors:     NewEntityHandler(m.Colors),
		Products: &ProductHandler{
			EntityHandler: NewEntityHandler(m.Products),
			Catalog:       services.NewCatalogService(prodRepo),
		},
		Orders:   NewEntityHandler(m.Orders),
		Overview: &OverviewHandler{Overview: services.NewOverviewService(storeRepo, repos.NewStatsRepo(db))},
		Export:   &ExportHandler{Stores: storeSvc, ProductMgr: m.Products, OrderMgr: m.Orders},
		AuthSvc:  authSvc,
	}
}
