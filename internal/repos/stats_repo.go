package repos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"storeadmin/internal/domain"
)

type StatsRepo struct{ db *sqlx.DB }

func NewStatsRepo(db *sqlx.DB) *StatsRepo { return &StatsRepo{db: db} }

// Revenue sums the totals of paid orders.
func (r *StatsRepo) Revenue(ctx context.Context, storeID string) (decimal.Decimal, error) {
	var d decimal.Decimal
	err := r.db.GetContext(ctx, &d, r.db.Rebind(`
		SELECT COALESCE(SUM(total), 0) FROM orders
		WHERE store_id = ? AND is_paid = ?`), storeID, true)
	return d.Round(2), classify(err)
}

func (r *StatsRepo) SalesCount(ctx context.Context, storeID string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`
		SELECT COUNT(*) FROM orders WHERE store_id = ? AND is_paid = ?`), storeID, true)
	return n, classify(err)
}

// StockCount adds up availableQty over products still on sale.
func (r *StatsRepo) StockCount(ctx context.Context, storeID string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`
		SELECT COALESCE(SUM(available_qty), 0) FROM products
		WHERE store_id = ? AND is_archived = ?`), storeID, false)
	return n, classify(err)
}

// ChildTables lists every table scoped by store_id, in dashboard order.
var ChildTables = []string{"billboards", "categories", "sizes", "colors", "products", "orders"}

func (r *StatsRepo) Counts(ctx context.Context, storeID string) (map[string]int, error) {
	out := make(map[string]int, len(ChildTables))
	for _, t := range ChildTables {
		var n int
		if err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM `+t+` WHERE store_id = ?`), storeID); err != nil {
			return nil, classify(err)
		}
		out[t] = n
	}
	return out, nil
}

type paidRow struct {
	Total     decimal.Decimal `db:"total"`
	CreatedAt domain.Stamp    `db:"created_at"`
}

// MonthlyRevenue buckets paid order totals by calendar month of creation,
// January first, across all years.
func (r *StatsRepo) MonthlyRevenue(ctx context.Context, storeID string) ([]domain.MonthRevenue, error) {
	var rows []paidRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT total, created_at FROM orders
		WHERE store_id = ? AND is_paid = ?`), storeID, true); err != nil {
		return nil, classify(err)
	}
	var months [12]decimal.Decimal
	for _, row := range rows {
		m := row.CreatedAt.Time().Month() - 1
		months[m] = months[m].Add(row.Total)
	}
	out := make([]domain.MonthRevenue, 12)
	for i := range out {
		out[i] = domain.MonthRevenue{
			Month: time.Month(i + 1).String()[:3],
			Total: months[i].Round(2),
		}
	}
	return out, nil
}
