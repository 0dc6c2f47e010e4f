package repos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"storeadmin/internal/domain"
)

// attributes backs the two name/value tables (sizes, colors).
type attributes struct {
	db    *sqlx.DB
	table string
}

const attributeCols = `id, store_id, name, value, created_at, updated_at`

func (a attributes) list(ctx context.Context, dest any, storeID string) error {
	return classify(a.db.SelectContext(ctx, dest, a.db.Rebind(`
		SELECT `+attributeCols+` FROM `+a.table+`
		WHERE store_id = ?
		ORDER BY created_at DESC`), storeID))
}

func (a attributes) get(ctx context.Context, dest any, storeID, id string) error {
	return classify(a.db.GetContext(ctx, dest, a.db.Rebind(`
		SELECT `+attributeCols+` FROM `+a.table+`
		WHERE store_id = ? AND id = ?`), storeID, id))
}

func (a attributes) insert(ctx context.Context, storeID, name, value string) (string, int64, error) {
	id, ts := uuid.NewString(), now()
	_, err := a.db.ExecContext(ctx, a.db.Rebind(`
		INSERT INTO `+a.table+`(id, store_id, name, value, created_at, updated_at)
		VALUES(?,?,?,?,?,?)`), id, storeID, name, value, ts, ts)
	return id, ts, classify(err)
}

func (a attributes) update(ctx context.Context, storeID, id, name, value string) error {
	return execScoped(ctx, a.db, a.db.Rebind(`
		UPDATE `+a.table+` SET name = ?, value = ?, updated_at = ?
		WHERE store_id = ? AND id = ?`), name, value, now(), storeID, id)
}

func (a attributes) delete(ctx context.Context, storeID, id string) error {
	return execScoped(ctx, a.db, a.db.Rebind(`DELETE FROM `+a.table+` WHERE store_id = ? AND id = ?`), storeID, id)
}

type SizeRepo struct{ attrs attributes }

func NewSizeRepo(db *sqlx.DB) *SizeRepo { return &SizeRepo{attrs: attributes{db: db, table: "sizes"}} }

func (r *SizeRepo) List(ctx context.Context, storeID string) ([]domain.Size, error) {
	out := []domain.Size{}
	return out, r.attrs.list(ctx, &out, storeID)
}

func (r *SizeRepo) Get(ctx context.Context, storeID, id string) (*domain.Size, error) {
	var s domain.Size
	if err := r.attrs.get(ctx, &s, storeID, id); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SizeRepo) Create(ctx context.Context, storeID string, in domain.SizeInput) (*domain.Size, error) {
	id, ts, err := r.attrs.insert(ctx, storeID, in.Name, in.Value)
	if err != nil {
		return nil, err
	}
	return &domain.Size{ID: id, StoreID: storeID, Name: in.Name, Value: in.Value,
		CreatedAt: domain.Stamp(ts), UpdatedAt: domain.Stamp(ts)}, nil
}

func (r *SizeRepo) Update(ctx context.Context, storeID, id string, in domain.SizeInput) (*domain.Size, error) {
	if err := r.attrs.update(ctx, storeID, id, in.Name, in.Value); err != nil {
		return nil, err
	}
	return r.Get(ctx, storeID, id)
}

func (r *SizeRepo) Delete(ctx context.Context, storeID, id string) error {
	return r.attrs.delete(ctx, storeID, id)
}

type ColorRepo struct{ attrs attributes }

func NewColorRepo(db *sqlx.DB) *ColorRepo { return &ColorRepo{attrs: attributes{db: db, table: "colors"}} }

func (r *ColorRepo) List(ctx context.Context, storeID string) ([]domain.Color, error) {
	out := []domain.Color{}
	return out, r.attrs.list(ctx, &out, storeID)
}

func (r *ColorRepo) Get(ctx context.Context, storeID, id string) (*domain.Color, error) {
	var c domain.Color
	if err := r.attrs.get(ctx, &c, storeID, id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ColorRepo) Create(ctx context.Context, storeID string, in domain.ColorInput) (*domain.Color, error) {
	id, ts, err := r.attrs.insert(ctx, storeID, in.Name, in.Value)
	if err != nil {
		return nil, err
	}
	return &domain.Color{ID: id, StoreID: storeID, Name: in.Name, Value: in.Value,
		CreatedAt: domain.Stamp(ts), UpdatedAt: domain.Stamp(ts)}, nil
}

func (r *ColorRepo) Update(ctx context.Context, storeID, id string, in domain.ColorInput) (*domain.Color, error) {
	if err := r.attrs.update(ctx, storeID, id, in.Name, in.Value); err != nil {
		return nil, err
	}
	return r.Get(ctx, storeID, id)
}

func (r *ColorRepo) Delete(ctx context.Context, storeID, id string) error {
	return r.attrs.delete(ctx, storeID, id)
}
