package services

import (
	"context"
	"errors"

	"storeadmin/internal/domain"
	"storeadmin/internal/events"
	"storeadmin/internal/repos"
)

// Entity is any store-scoped row the manager can publish events about.
type Entity interface {
	EntityID() string
}

// Resource is the store-scoped persistence contract of one entity type.
type Resource[T Entity, F any] interface {
	List(ctx context.Context, storeID string) ([]T, error)
	Get(ctx context.Context, storeID, id string) (*T, error)
	Create(ctx context.Context, storeID string, in F) (*T, error)
	Update(ctx context.Context, storeID, id string, in F) (*T, error)
	Delete(ctx context.Context, storeID, id string) error
}

type Owners interface {
	OwnedBy(ctx context.Context, storeID, userID string) (bool, error)
}

type RefChecker interface {
	Check(ctx context.Context, storeID string, refs ...repos.Ref) error
}

// Policy is what differs between entity types: how input is checked, which
// rows it points at and what blocks its deletion.
type Policy[F any] struct {
	Kind       string // "billboard"
	Dependents string // "categories"; empty when nothing references the kind
	Validate   func(in *F) error
	Refs       func(in *F) []repos.Ref
}

// Manager runs every mutation through the same sequence: identity, store
// ownership, field validation, reference checks, persistence.
type Manager[T Entity, F any] struct {
	Policy   Policy[F]
	Repo     Resource[T, F]
	Owners   Owners
	RefCheck RefChecker
	Events   events.Publisher
	Producer string
}

func (m *Manager[T, F]) Kind() string { return m.Policy.Kind }

// Authorize runs the ownership check alone, for callers that must reject a
// request before they can even decode it.
func (m *Manager[T, F]) Authorize(ctx context.Context, storeID string, u *domain.User) error {
	return authorize(ctx, m.Owners, storeID, u)
}

func (m *Manager[T, F]) List(ctx context.Context, storeID string) ([]T, error) {
	return m.Repo.List(ctx, storeID)
}

func (m *Manager[T, F]) Get(ctx context.Context, storeID, id string) (*T, error) {
	return m.Repo.Get(ctx, storeID, id)
}

func (m *Manager[T, F]) Create(ctx context.Context, storeID string, u *domain.User, in F) (*T, error) {
	if err := authorize(ctx, m.Owners, storeID, u); err != nil {
		return nil, err
	}
	if err := m.check(ctx, storeID, &in); err != nil {
		return nil, err
	}
	out, err := m.Repo.Create(ctx, storeID, in)
	if err != nil {
		return nil, m.writeErr(err)
	}
	m.publish("created", storeID, (*out).EntityID(), u, out)
	return out, nil
}

func (m *Manager[T, F]) Update(ctx context.Context, storeID, id string, u *domain.User, in F) (*T, error) {
	if err := authorize(ctx, m.Owners, storeID, u); err != nil {
		return nil, err
	}
	if err := m.check(ctx, storeID, &in); err != nil {
		return nil, err
	}
	out, err := m.Repo.Update(ctx, storeID, id, in)
	if err != nil {
		return nil, m.writeErr(err)
	}
	m.publish("updated", storeID, id, u, out)
	return out, nil
}

// Delete returns the removed entity. A delete blocked by referencing rows
// comes back as *domain.ConflictError.
func (m *Manager[T, F]) Delete(ctx context.Context, storeID, id string, u *domain.User) (*T, error) {
	if err := authorize(ctx, m.Owners, storeID, u); err != nil {
		return nil, err
	}
	out, err := m.Repo.Get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if err := m.Repo.Delete(ctx, storeID, id); err != nil {
		if errors.Is(err, domain.ErrDependencyConflict) {
			return nil, &domain.ConflictError{Kind: m.Policy.Kind, Dependents: m.Policy.Dependents, Err: err}
		}
		return nil, err
	}
	m.publish("deleted", storeID, id, u, nil)
	return out, nil
}

func (m *Manager[T, F]) check(ctx context.Context, storeID string, in *F) error {
	if m.Policy.Validate != nil {
		if err := m.Policy.Validate(in); err != nil {
			return err
		}
	}
	if m.Policy.Refs != nil && m.RefCheck != nil {
		if err := m.RefCheck.Check(ctx, storeID, m.Policy.Refs(in)...); err != nil {
			return err
		}
	}
	return nil
}

// writeErr turns a foreign-key failure on create/update (a reference deleted
// between check and write) into a validation error.
func (m *Manager[T, F]) writeErr(err error) error {
	if errors.Is(err, domain.ErrDependencyConflict) {
		return domain.Invalid(m.Policy.Kind, "references a record that no longer exists")
	}
	return err
}

func (m *Manager[T, F]) publish(verb, storeID, id string, u *domain.User, payload any) {
	if m.Events == nil {
		return
	}
	m.Events.Publish(events.New(m.Producer, m.Policy.Kind+"."+verb, storeID, id, u.ID, payload))
}

// authorize re-derives ownership of storeID on every call.
func authorize(ctx context.Context, owners Owners, storeID string, u *domain.User) error {
	if u == nil {
		return domain.ErrUnauthorized
	}
	ok, err := owners.OwnedBy(ctx, storeID, u.ID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}
