package repos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"storeadmin/internal/domain"
)

type StoreRepo struct{ db *sqlx.DB }

func NewStoreRepo(db *sqlx.DB) *StoreRepo { return &StoreRepo{db: db} }

const storeCols = `id, name, user_id, created_at, updated_at`

func (r *StoreRepo) ListByUser(ctx context.Context, userID string) ([]domain.Store, error) {
	out := []domain.Store{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT `+storeCols+` FROM stores
		WHERE user_id = ?
		ORDER BY created_at DESC`), userID)
	return out, classify(err)
}

func (r *StoreRepo) Get(ctx context.Context, id string) (*domain.Store, error) {
	var s domain.Store
	err := r.db.GetContext(ctx, &s, r.db.Rebind(`SELECT `+storeCols+` FROM stores WHERE id = ?`), id)
	if err != nil {
		return nil, classify(err)
	}
	return &s, nil
}

// OwnedBy reports whether userID owns storeID. A missing store is simply
// not owned.
func (r *StoreRepo) OwnedBy(ctx context.Context, storeID, userID string) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM stores WHERE id = ? AND user_id = ?`), storeID, userID)
	return n > 0, err
}

func (r *StoreRepo) Create(ctx context.Context, userID string, in domain.StoreInput) (*domain.Store, error) {
	ts := now()
	s := domain.Store{ID: uuid.NewString(), Name: in.Name, UserID: userID, CreatedAt: domain.Stamp(ts), UpdatedAt: domain.Stamp(ts)}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO stores(id, name, user_id, created_at, updated_at)
		VALUES(?,?,?,?,?)`), s.ID, s.Name, s.UserID, ts, ts)
	if err != nil {
		return nil, classify(err)
	}
	return &s, nil
}

func (r *StoreRepo) Rename(ctx context.Context, userID, id string, in domain.StoreInput) (*domain.Store, error) {
	err := execScoped(ctx, r.db, r.db.Rebind(`
		UPDATE stores SET name = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`), in.Name, now(), id, userID)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Delete fails with a wrapped domain.ErrDependencyConflict while any child
// row still points at the store.
func (r *StoreRepo) Delete(ctx context.Context, userID, id string) error {
	return execScoped(ctx, r.db, r.db.Rebind(`DELETE FROM stores WHERE id = ? AND user_id = ?`), id, userID)
}
