package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeadmin/internal/domain"
	"storeadmin/internal/events"
	"storeadmin/internal/repos"
	"storeadmin/internal/services"
)

func TestStoreLifecycle(t *testing.T) {
	db, m, _ := setup(t)
	ctx := context.Background()
	rec := &events.Recorder{}
	svc := services.NewStoreService(repos.NewStoreRepo(db), rec, "test")

	_, err := svc.Create(ctx, nil, domain.StoreInput{Name: "Shop"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	st, err := svc.Create(ctx, owner, domain.StoreInput{Name: "  Second  "})
	require.NoError(t, err)
	assert.Equal(t, "Second", st.Name)

	mine, err := svc.ListMine(ctx, owner)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, st.ID, mine[0].ID)

	_, err = svc.Rename(ctx, guest, st.ID, domain.StoreInput{Name: "Mine now"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.Rename(ctx, owner, st.ID, domain.StoreInput{})
	var ve *domain.ValidationError
	assert.True(t, errors.As(err, &ve))

	st, err = svc.Rename(ctx, owner, st.ID, domain.StoreInput{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", st.Name)

	_, err = m.Sizes.Create(ctx, st.ID, owner, domain.SizeInput{Name: "S", Value: "S"})
	require.NoError(t, err)
	_, err = svc.Delete(ctx, owner, st.ID)
	require.ErrorIs(t, err, domain.ErrDependencyConflict)
	assert.Contains(t, err.Error(), "this store")

	sizes, err := m.Sizes.List(ctx, st.ID)
	require.NoError(t, err)
	_, err = m.Sizes.Delete(ctx, st.ID, sizes[0].ID, owner)
	require.NoError(t, err)
	_, err = svc.Delete(ctx, owner, st.ID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, st.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{"store.created", "store.updated", "store.deleted"}, rec.Types())
}

func TestAuthRegisterLoginVerify(t *testing.T) {
	db, _, _ := setup(t)
	ctx := context.Background()
	auth := services.NewAuthService(repos.NewUserRepo(db), "secret", time.Hour, "storeadmin")

	_, err := auth.Register(ctx, "new@shop.test", "New", "weak")
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "password", ve.Field)

	u, err := auth.Register(ctx, "new@shop.test", "New", "Str0ng!pw")
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "sid-x", "new@shop.test", "wrong")
	assert.ErrorIs(t, err, services.ErrBadCreds)

	got, tok, err := auth.Login(ctx, "sid-x", "NEW@shop.test", "Str0ng!pw")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	viaToken, err := auth.Verify(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, viaToken.ID)

	viaSession, err := auth.CurrentUser(ctx, "sid-x")
	require.NoError(t, err)
	assert.Equal(t, u.ID, viaSession.ID)

	require.NoError(t, auth.Logout(ctx, "sid-x"))
	_, err = auth.CurrentUser(ctx, "sid-x")
	assert.Error(t, err)
}

func TestAuthRejectsForeignTokens(t *testing.T) {
	db, _, _ := setup(t)
	ctx := context.Background()
	users := repos.NewUserRepo(db)
	auth := services.NewAuthService(users, "secret", time.Hour, "storeadmin")
	other := services.NewAuthService(users, "other-secret", time.Hour, "storeadmin")
	expired := services.NewAuthService(users, "secret", -time.Minute, "storeadmin")

	u, err := users.ByID(ctx, repos.DemoOwnerID)
	require.NoError(t, err)

	tok, err := other.Issue(u)
	require.NoError(t, err)
	_, err = auth.Verify(ctx, tok)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	tok, err = expired.Issue(u)
	require.NoError(t, err)
	_, err = auth.Verify(ctx, tok)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = auth.Verify(ctx, "not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestOverview(t *testing.T) {
	db, m, _ := setup(t)
	ctx := context.Background()
	c := seed(t, m)
	svc := services.NewOverviewService(repos.NewStoreRepo(db), repos.NewStatsRepo(db))

	p, err := m.Products.Create(ctx, repos.DemoStoreID, owner, product(c, "https://img.test/a.png"))
	require.NoError(t, err)
	_, err = m.Orders.Create(ctx, repos.DemoStoreID, owner, domain.OrderInput{IsPaid: true, Items: []domain.OrderItemInput{{ProductID: p.ID, Quantity: 2}}})
	require.NoError(t, err)

	_, err = svc.Overview(ctx, repos.DemoStoreID, guest)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	ov, err := svc.Overview(ctx, repos.DemoStoreID, owner)
	require.NoError(t, err)
	assert.Equal(t, "Demo Store", ov.Store.Name)
	assert.Equal(t, "25.00", ov.Revenue.StringFixed(2))
	assert.Equal(t, 1, ov.SalesCount)
	assert.Equal(t, 2, ov.StockCount)
	assert.Equal(t, 1, ov.Counts["products"])
	assert.Len(t, ov.Graph, 12)
}

func TestCatalogHidesArchived(t *testing.T) {
	db, m, _ := setup(t)
	ctx := context.Background()
	c := seed(t, m)
	cat := services.NewCatalogService(repos.NewProductRepo(db))

	in := product(c, "https://img.test/a.png")
	_, err := m.Products.Create(ctx, repos.DemoStoreID, owner, in)
	require.NoError(t, err)
	in.IsArchived = true
	_, err = m.Products.Create(ctx, repos.DemoStoreID, owner, in)
	require.NoError(t, err)

	got, err := cat.Products(ctx, repos.DemoStoreID, services.CatalogQuery{ColorID: c.color.ID})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = cat.Products(ctx, repos.DemoStoreID, services.CatalogQuery{Featured: true})
	require.NoError(t, err)
	assert.Empty(t, got)
}
