package repos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"storeadmin/internal/domain"
)

// execScoped runs a store-scoped write and reports domain.ErrNotFound when
// nothing matched. q must already be rebound for the driver.
func execScoped(ctx context.Context, ex sqlx.ExecerContext, q string, args ...any) error {
	res, err := ex.ExecContext(ctx, q, args...)
	if err != nil {
		return classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Ref names a row another entity points at: Field is the input field that
// carried the id, Table where it must live.
type Ref struct {
	Field string
	Table string
	ID    string
}

var refTables = map[string]bool{
	"billboards": true,
	"categories": true,
	"sizes":      true,
	"colors":     true,
	"products":   true,
}

type RefRepo struct{ db *sqlx.DB }

func NewRefRepo(db *sqlx.DB) *RefRepo { return &RefRepo{db: db} }

// Check verifies every ref exists inside storeID. The first miss is returned
// as a validation error on its field.
func (r *RefRepo) Check(ctx context.Context, storeID string, refs ...Ref) error {
	for _, ref := range refs {
		if !refTables[ref.Table] {
			return fmt.Errorf("refs: unknown table %q", ref.Table)
		}
		var n int
		q := r.db.Rebind(`SELECT COUNT(*) FROM ` + ref.Table + ` WHERE store_id = ? AND id = ?`)
		if err := r.db.GetContext(ctx, &n, q, storeID, ref.ID); err != nil {
			return err
		}
		if n == 0 {
			return domain.Invalid(ref.Field, "does not exist in this store")
		}
	}
	return nil
}
