package services

import (
	"context"

	"storeadmin/internal/domain"
	"storeadmin/internal/repos"
)

// CatalogService serves the public storefront view of a store's products:
// archived products are hidden and the optional filters applied.
type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

type CatalogQuery struct {
	CategoryID string
	SizeID     string
	ColorID    string
	Featured   bool
}

func (s *CatalogService) Products(ctx context.Context, storeID string, q CatalogQuery) ([]domain.Product, error) {
	return s.Prods.Search(ctx, storeID, repos.ProductFilter{
		CategoryID:   q.CategoryID,
		SizeID:       q.SizeID,
		ColorID:      q.ColorID,
		FeaturedOnly: q.Featured,
		HideArchived: true,
	})
}
