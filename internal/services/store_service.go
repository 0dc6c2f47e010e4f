package services

import (
	"context"
	"errors"

	"storeadmin/internal/domain"
	"storeadmin/internal/events"
	"storeadmin/internal/repos"
	"storeadmin/internal/validate"
)

// StoreService manages the tenants themselves; the store id doubles as the
// scope being authorized.
type StoreService struct {
	Stores   *repos.StoreRepo
	Events   events.Publisher
	Producer string
}

func NewStoreService(stores *repos.StoreRepo, pub events.Publisher, producer string) *StoreService {
	return &StoreService{Stores: stores, Events: pub, Producer: producer}
}

func (s *StoreService) ListMine(ctx context.Context, u *domain.User) ([]domain.Store, error) {
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	return s.Stores.ListByUser(ctx, u.ID)
}

func (s *StoreService) Get(ctx context.Context, id string) (*domain.Store, error) {
	return s.Stores.Get(ctx, id)
}

func (s *StoreService) Create(ctx context.Context, u *domain.User, in domain.StoreInput) (*domain.Store, error) {
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := validate.Store(&in); err != nil {
		return nil, err
	}
	st, err := s.Stores.Create(ctx, u.ID, in)
	if err != nil {
		return nil, err
	}
	s.publish("store.created", st.ID, u, st)
	return st, nil
}

func (s *StoreService) Rename(ctx context.Context, u *domain.User, id string, in domain.StoreInput) (*domain.Store, error) {
	if err := authorize(ctx, s.Stores, id, u); err != nil {
		return nil, err
	}
	if err := validate.Store(&in); err != nil {
		return nil, err
	}
	st, err := s.Stores.Rename(ctx, u.ID, id, in)
	if err != nil {
		return nil, err
	}
	s.publish("store.updated", id, u, st)
	return st, nil
}

func (s *StoreService) Delete(ctx context.Context, u *domain.User, id string) (*domain.Store, error) {
	if err := authorize(ctx, s.Stores, id, u); err != nil {
		return nil, err
	}
	st, err := s.Stores.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Stores.Delete(ctx, u.ID, id); err != nil {
		if errors.Is(err, domain.ErrDependencyConflict) {
			return nil, &domain.ConflictError{Kind: "store", Dependents: "products and categories", Err: err}
		}
		return nil, err
	}
	s.publish("store.deleted", id, u, nil)
	return st, nil
}

// Authorize is the ownership check for store-wide reads such as exports.
func (s *StoreService) Authorize(ctx context.Context, u *domain.User, storeID string) error {
	return authorize(ctx, s.Stores, storeID, u)
}

func (s *StoreService) publish(eventType, id string, u *domain.User, payload any) {
	if s.Events == nil {
		return
	}
	s.Events.Publish(events.New(s.Producer, eventType, id, id, u.ID, payload))
}
