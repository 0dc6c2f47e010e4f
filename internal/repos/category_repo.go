package repos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"storeadmin/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

const categorySelect = `
	SELECT c.id, c.store_id, c.billboard_id, c.name,
	       COALESCE(b.label, '') AS billboard_label,
	       c.created_at, c.updated_at
	FROM categories c
	LEFT JOIN billboards b ON b.id = c.billboard_id`

func (r *CategoryRepo) List(ctx context.Context, storeID string) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(categorySelect+`
		WHERE c.store_id = ?
		ORDER BY c.created_at DESC`), storeID)
	return out, classify(err)
}

func (r *CategoryRepo) Get(ctx context.Context, storeID, id string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.GetContext(ctx, &c, r.db.Rebind(categorySelect+`
		WHERE c.store_id = ? AND c.id = ?`), storeID, id)
	if err != nil {
		return nil, classify(err)
	}
	return &c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, storeID string, in domain.CategoryInput) (*domain.Category, error) {
	id, ts := uuid.NewString(), now()
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO categories(id, store_id, billboard_id, name, created_at, updated_at)
		VALUES(?,?,?,?,?,?)`), id, storeID, in.BillboardID, in.Name, ts, ts)
	if err != nil {
		return nil, classify(err)
	}
	return r.Get(ctx, storeID, id)
}

func (r *CategoryRepo) Update(ctx context.Context, storeID, id string, in domain.CategoryInput) (*domain.Category, error) {
	err := execScoped(ctx, r.db, r.db.Rebind(`
		UPDATE categories SET name = ?, billboard_id = ?, updated_at = ?
		WHERE store_id = ? AND id = ?`), in.Name, in.BillboardID, now(), storeID, id)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, storeID, id)
}

func (r *CategoryRepo) Delete(ctx context.Context, storeID, id string) error {
	return execScoped(ctx, r.db, r.db.Rebind(`DELETE FROM categories WHERE store_id = ? AND id = ?`), storeID, id)
}
