package repos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"storeadmin/internal/domain"
)

type BillboardRepo struct{ db *sqlx.DB }

func NewBillboardRepo(db *sqlx.DB) *BillboardRepo { return &BillboardRepo{db: db} }

const billboardCols = `id, store_id, label, image_url, created_at, updated_at`

func (r *BillboardRepo) List(ctx context.Context, storeID string) ([]domain.Billboard, error) {
	out := []domain.Billboard{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT `+billboardCols+` FROM billboards
		WHERE store_id = ?
		ORDER BY created_at DESC`), storeID)
	return out, classify(err)
}

func (r *BillboardRepo) Get(ctx context.Context, storeID, id string) (*domain.Billboard, error) {
	var b domain.Billboard
	err := r.db.GetContext(ctx, &b, r.db.Rebind(`
		SELECT `+billboardCols+` FROM billboards
		WHERE store_id = ? AND id = ?`), storeID, id)
	if err != nil {
		return nil, classify(err)
	}
	return &b, nil
}

func (r *BillboardRepo) Create(ctx context.Context, storeID string, in domain.BillboardInput) (*domain.Billboard, error) {
	ts := now()
	b := domain.Billboard{
		ID: uuid.NewString(), StoreID: storeID, Label: in.Label, ImageURL: in.ImageURL,
		CreatedAt: domain.Stamp(ts), UpdatedAt: domain.Stamp(ts),
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO billboards(id, store_id, label, image_url, created_at, updated_at)
		VALUES(?,?,?,?,?,?)`), b.ID, storeID, b.Label, b.ImageURL, ts, ts)
	if err != nil {
		return nil, classify(err)
	}
	return &b, nil
}

func (r *BillboardRepo) Update(ctx context.Context, storeID, id string, in domain.BillboardInput) (*domain.Billboard, error) {
	err := execScoped(ctx, r.db, r.db.Rebind(`
		UPDATE billboards SET label = ?, image_url = ?, updated_at = ?
		WHERE store_id = ? AND id = ?`), in.Label, in.ImageURL, now(), storeID, id)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, storeID, id)
}

func (r *BillboardRepo) Delete(ctx context.Context, storeID, id string) error {
	return execScoped(ctx, r.db, r.db.Rebind(`DELETE FROM billboards WHERE store_id = ? AND id = ?`), storeID, id)
}
