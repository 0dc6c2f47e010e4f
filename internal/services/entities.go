package services

import (
	"github.com/jmoiron/sqlx"

	"storeadmin/internal/domain"
	"storeadmin/internal/events"
	"storeadmin/internal/repos"
	"storeadmin/internal/validate"
)

type (
	BillboardManager = Manager[domain.Billboard, domain.BillboardInput]
	CategoryManager  = Manager[domain.Category, domain.CategoryInput]
	SizeManager      = Manager[domain.Size, domain.SizeInput]
	ColorManager     = Manager[domain.Color, domain.ColorInput]
	ProductManager   = Manager[domain.Product, domain.ProductInput]
	OrderManager     = Manager[domain.Order, domain.OrderInput]
)

// Managers holds one entity manager per store-scoped resource.
type Managers struct {
	Billboards *BillboardManager
	Categories *CategoryManager
	Sizes      *SizeManager
	Colors     *ColorManager
	Products   *ProductManager
	Orders     *OrderManager
}

func NewManagers(db *sqlx.DB, pub events.Publisher, producer string) Managers {
	owners := repos.NewStoreRepo(db)
	refs := repos.NewRefRepo(db)

	return Managers{
		Billboards: &BillboardManager{
			Policy: Policy[domain.BillboardInput]{
				Kind:       "billboard",
				Dependents: "categories",
				Validate:   validate.Billboard,
			},
			Repo: repos.NewBillboardRepo(db), Owners: owners, RefCheck: refs, Events: pub, Producer: producer,
		},
		Categories: &CategoryManager{
			Policy: Policy[domain.CategoryInput]{
				Kind:       "category",
				Dependents: "products",
				Validate:   validate.Category,
				Refs: func(in *domain.CategoryInput) []repos.Ref {
					return []repos.Ref{{Field: "billboardId", Table: "billboards", ID: in.BillboardID}}
				},
			},
			Repo: repos.NewCategoryRepo(db), Owners: owners, RefCheck: refs, Events: pub, Producer: producer,
		},
		Sizes: &SizeManager{
			Policy: Policy[domain.SizeInput]{
				Kind:       "size",
				Dependents: "products",
				Validate:   validate.Size,
			},
			Repo: repos.NewSizeRepo(db), Owners: owners, RefCheck: refs, Events: pub, Producer: producer,
		},
		Colors: &ColorManager{
			Policy: Policy[domain.ColorInput]{
				Kind:       "color",
				Dependents: "products",
				Validate:   validate.Color,
			},
			Repo: repos.NewColorRepo(db), Owners: owners, RefCheck: refs, Events: pub, Producer: producer,
		},
		Products: &ProductManager{
			Policy: Policy[domain.ProductInput]{
				Kind:       "product",
				Dependents: "orders",
				Validate:   validate.Product,
				Refs: func(in *domain.ProductInput) []repos.Ref {
					return []repos.Ref{
						{Field: "categoryId", Table: "categories", ID: in.CategoryID},
						{Field: "sizeId", Table: "sizes", ID: in.SizeID},
						{Field: "colorId", Table: "colors", ID: in.ColorID},
					}
				},
			},
			Repo: repos.NewProductRepo(db), Owners: owners, RefCheck: refs, Events: pub, Producer: producer,
		},
		// order lines are checked against the store while being priced
		Orders: &OrderManager{
			Policy: Policy[domain.OrderInput]{
				Kind:     "order",
				Validate: validate.Order,
			},
			Repo: repos.NewOrderRepo(db), Owners: owners, RefCheck: refs, Events: pub, Producer: producer,
		},
	}
}
