package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"storeadmin/internal/domain"
	"storeadmin/internal/repos"
)

type OverviewService struct {
	Stores *repos.StoreRepo
	Stats  *repos.StatsRepo
}

func NewOverviewService(stores *repos.StoreRepo, stats *repos.StatsRepo) *OverviewService {
	return &OverviewService{Stores: stores, Stats: stats}
}

// Overview is the dashboard of one store, visible to its owner only.
func (s *OverviewService) Overview(ctx context.Context, storeID string, u *domain.User) (*domain.Overview, error) {
	if err := authorize(ctx, s.Stores, storeID, u); err != nil {
		return nil, err
	}
	st, err := s.Stores.Get(ctx, storeID)
	if err != nil {
		return nil, err
	}

	out := domain.Overview{Store: *st}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Revenue, err = s.Stats.Revenue(gctx, storeID)
		return err
	})
	g.Go(func() (err error) {
		out.SalesCount, err = s.Stats.SalesCount(gctx, storeID)
		return err
	})
	g.Go(func() (err error) {
		out.StockCount, err = s.Stats.StockCount(gctx, storeID)
		return err
	})
	g.Go(func() (err error) {
		out.Counts, err = s.Stats.Counts(gctx, storeID)
		return err
	})
	g.Go(func() (err error) {
		out.Graph, err = s.Stats.MonthlyRevenue(gctx, storeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
