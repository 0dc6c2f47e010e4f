package repos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"storeadmin/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `id, store_id, phone, address, is_paid, total, created_at, updated_at`

func (r *OrderRepo) List(ctx context.Context, storeID string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT `+orderCols+` FROM orders
		WHERE store_id = ?
		ORDER BY created_at DESC`), storeID)
	if err != nil {
		return nil, classify(err)
	}
	if err := r.attachItems(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *OrderRepo) Get(ctx context.Context, storeID, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.GetContext(ctx, &o, r.db.Rebind(`
		SELECT `+orderCols+` FROM orders
		WHERE store_id = ? AND id = ?`), storeID, id)
	if err != nil {
		return nil, classify(err)
	}
	one := []domain.Order{o}
	if err := r.attachItems(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (r *OrderRepo) attachItems(ctx context.Context, os []domain.Order) error {
	if len(os) == 0 {
		return nil
	}
	ids := make([]string, len(os))
	for i := range os {
		ids[i] = os[i].ID
		os[i].Items = []domain.OrderItem{}
	}
	q, args, err := sqlx.In(`
		SELECT oi.id, oi.order_id, oi.product_id, COALESCE(p.name, '') AS product_name,
		       oi.quantity, oi.price
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id IN (?)
		ORDER BY oi.order_id, oi.position`, ids)
	if err != nil {
		return err
	}
	var items []domain.OrderItem
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(q), args...); err != nil {
		return classify(err)
	}
	byOrder := make(map[string][]domain.OrderItem, len(os))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	for i := range os {
		if list, ok := byOrder[os[i].ID]; ok {
			os[i].Items = list
		}
	}
	return nil
}

type pricedProduct struct {
	ID    string          `db:"id"`
	Price decimal.Decimal `db:"price"`
}

// price looks up the current unit price of every ordered product inside the
// store and returns the recomputed total. Totals sent by clients are never
// trusted.
func price(ctx context.Context, tx *sqlx.Tx, storeID string, items []domain.OrderItemInput) (map[string]decimal.Decimal, decimal.Decimal, error) {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	q, args, err := sqlx.In(`SELECT id, price FROM products WHERE store_id = ? AND id IN (?)`, storeID, ids)
	if err != nil {
		return nil, decimal.Zero, err
	}
	var rows []pricedProduct
	if err := tx.SelectContext(ctx, &rows, tx.Rebind(q), args...); err != nil {
		return nil, decimal.Zero, classify(err)
	}
	prices := make(map[string]decimal.Decimal, len(rows))
	for _, p := range rows {
		prices[p.ID] = p.Price.Round(2)
	}

	total := decimal.Zero
	for _, it := range items {
		p, ok := prices[it.ProductID]
		if !ok {
			return nil, decimal.Zero, domain.Invalid("orderItems", "reference a product outside this store")
		}
		total = total.Add(p.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return prices, total, nil
}

func insertItems(ctx context.Context, tx *sqlx.Tx, orderID string, items []domain.OrderItemInput, prices map[string]decimal.Decimal) error {
	q := tx.Rebind(`INSERT INTO order_items(id, order_id, product_id, quantity, price, position) VALUES(?,?,?,?,?,?)`)
	for i, it := range items {
		if _, err := tx.ExecContext(ctx, q, uuid.NewString(), orderID, it.ProductID, it.Quantity, prices[it.ProductID].String(), i); err != nil {
			return classify(err)
		}
	}
	return nil
}

func (r *OrderRepo) Create(ctx context.Context, storeID string, in domain.OrderInput) (*domain.Order, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	prices, total, err := price(ctx, tx, storeID, in.Items)
	if err != nil {
		return nil, err
	}
	id, ts := uuid.NewString(), now()
	if _, err := tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO orders(id, store_id, phone, address, is_paid, total, created_at, updated_at)
		VALUES(?,?,?,?,?,?,?,?)`),
		id, storeID, in.Phone, in.Address, in.IsPaid, total.String(), ts, ts); err != nil {
		return nil, classify(err)
	}
	if err := insertItems(ctx, tx, id, in.Items, prices); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.Get(ctx, storeID, id)
}

// Update replaces the header fields and every line item, repricing from the
// current catalogue.
func (r *OrderRepo) Update(ctx context.Context, storeID, id string, in domain.OrderInput) (*domain.Order, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	prices, total, err := price(ctx, tx, storeID, in.Items)
	if err != nil {
		return nil, err
	}
	if err := execScoped(ctx, tx, tx.Rebind(`
		UPDATE orders SET phone = ?, address = ?, is_paid = ?, total = ?, updated_at = ?
		WHERE store_id = ? AND id = ?`),
		in.Phone, in.Address, in.IsPaid, total.String(), now(), storeID, id); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM order_items WHERE order_id = ?`), id); err != nil {
		return nil, classify(err)
	}
	if err := insertItems(ctx, tx, id, in.Items, prices); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.Get(ctx, storeID, id)
}

func (r *OrderRepo) Delete(ctx context.Context, storeID, id string) error {
	return execScoped(ctx, r.db, r.db.Rebind(`DELETE FROM orders WHERE store_id = ? AND id = ?`), storeID, id)
}
