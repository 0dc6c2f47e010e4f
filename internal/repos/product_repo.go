package repos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"storeadmin/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// ProductFilter narrows the storefront listing. The zero value lists every
// product of the store, archived ones included.
type ProductFilter struct {
	CategoryID   string
	SizeID       string
	ColorID      string
	FeaturedOnly bool
	HideArchived bool
}

const productSelect = `
	SELECT p.id, p.store_id, p.category_id, p.size_id, p.color_id,
	       p.name, p.description, p.price, p.available_qty,
	       p.is_featured, p.is_archived,
	       COALESCE(c.name, '') AS category_name,
	       COALESCE(s.name, '') AS size_name,
	       COALESCE(co.value, '') AS color_value,
	       p.created_at, p.updated_at
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN sizes s ON s.id = p.size_id
	LEFT JOIN colors co ON co.id = p.color_id`

func (r *ProductRepo) List(ctx context.Context, storeID string) ([]domain.Product, error) {
	return r.Search(ctx, storeID, ProductFilter{})
}

func (r *ProductRepo) Search(ctx context.Context, storeID string, f ProductFilter) ([]domain.Product, error) {
	where := ` WHERE p.store_id = ?`
	args := []any{storeID}
	if f.CategoryID != "" {
		where += ` AND p.category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.SizeID != "" {
		where += ` AND p.size_id = ?`
		args = append(args, f.SizeID)
	}
	if f.ColorID != "" {
		where += ` AND p.color_id = ?`
		args = append(args, f.ColorID)
	}
	if f.FeaturedOnly {
		where += ` AND p.is_featured = ?`
		args = append(args, true)
	}
	if f.HideArchived {
		where += ` AND p.is_archived = ?`
		args = append(args, false)
	}

	out := []domain.Product{}
	q := r.db.Rebind(productSelect + where + ` ORDER BY p.created_at DESC`)
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, classify(err)
	}
	if err := r.attachImages(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProductRepo) Get(ctx context.Context, storeID, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, r.db.Rebind(productSelect+` WHERE p.store_id = ? AND p.id = ?`), storeID, id)
	if err != nil {
		return nil, classify(err)
	}
	one := []domain.Product{p}
	if err := r.attachImages(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (r *ProductRepo) attachImages(ctx context.Context, ps []domain.Product) error {
	if len(ps) == 0 {
		return nil
	}
	ids := make([]string, len(ps))
	for i := range ps {
		ids[i] = ps[i].ID
		ps[i].Images = []domain.Image{}
	}
	q, args, err := sqlx.In(`
		SELECT id, product_id, url, position, created_at
		FROM images
		WHERE product_id IN (?)
		ORDER BY product_id, position`, ids)
	if err != nil {
		return err
	}
	var imgs []domain.Image
	if err := r.db.SelectContext(ctx, &imgs, r.db.Rebind(q), args...); err != nil {
		return classify(err)
	}
	byProduct := make(map[string][]domain.Image, len(ps))
	for _, im := range imgs {
		byProduct[im.ProductID] = append(byProduct[im.ProductID], im)
	}
	for i := range ps {
		if list, ok := byProduct[ps[i].ID]; ok {
			ps[i].Images = list
		}
	}
	return nil
}

func (r *ProductRepo) Create(ctx context.Context, storeID string, in domain.ProductInput) (*domain.Product, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	id, ts := uuid.NewString(), now()
	if _, err := tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO products(id, store_id, category_id, size_id, color_id, name, description,
		                     price, available_qty, is_featured, is_archived, created_at, updated_at)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)`),
		id, storeID, in.CategoryID, in.SizeID, in.ColorID, in.Name, in.Description,
		in.Price.String(), in.AvailableQty, in.IsFeatured, in.IsArchived, ts, ts); err != nil {
		return nil, classify(err)
	}
	if err := insertImages(ctx, tx, id, in.Images); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.Get(ctx, storeID, id)
}

// Update rewrites every field and replaces the image list wholesale. The
// delete and reinsert share one transaction so no reader sees a product
// without images.
func (r *ProductRepo) Update(ctx context.Context, storeID, id string, in domain.ProductInput) (*domain.Product, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := execScoped(ctx, tx, tx.Rebind(`
		UPDATE products
		SET category_id = ?, size_id = ?, color_id = ?, name = ?, description = ?,
		    price = ?, available_qty = ?, is_featured = ?, is_archived = ?, updated_at = ?
		WHERE store_id = ? AND id = ?`),
		in.CategoryID, in.SizeID, in.ColorID, in.Name, in.Description,
		in.Price.String(), in.AvailableQty, in.IsFeatured, in.IsArchived, now(),
		storeID, id); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM images WHERE product_id = ?`), id); err != nil {
		return nil, classify(err)
	}
	if err := insertImages(ctx, tx, id, in.Images); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.Get(ctx, storeID, id)
}

func insertImages(ctx context.Context, tx *sqlx.Tx, productID string, imgs []domain.ImageInput) error {
	q := tx.Rebind(`INSERT INTO images(id, product_id, url, position, created_at) VALUES(?,?,?,?,?)`)
	for i, im := range imgs {
		if _, err := tx.ExecContext(ctx, q, uuid.NewString(), productID, im.URL, i, now()); err != nil {
			return classify(err)
		}
	}
	return nil
}

// Delete removes the product and its images; order lines keep it alive.
func (r *ProductRepo) Delete(ctx context.Context, storeID, id string) error {
	return execScoped(ctx, r.db, r.db.Rebind(`DELETE FROM products WHERE store_id = ? AND id = ?`), storeID, id)
}
