package e2etest

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mokhtarjo21/storehub-client/internal/adapter/client/storehub"
	"github.com/mokhtarjo21/storehub-client/internal/adapter/config"
	"github.com/mokhtarjo21/storehub-client/internal/adapter/session"
	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
	"github.com/mokhtarjo21/storehub-client/internal/core/service"
	"github.com/mokhtarjo21/storehub-client/internal/stubapi"
)

type fixture struct {
	client     *storehub.Client
	reconciler *service.Reconciler
	cache      *service.SnapshotCache
	store      *stubapi.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger, _ := zap.NewProduction()

	store := stubapi.NewStore()
	store.Seed()
	tokens := stubapi.NewTokenService("e2e-secret")
	catalog := stubapi.NewCatalogHandler()
	catalog.SeedDefaults()

	router, err := stubapi.NewRouter(store, tokens, catalog, logger)
	require.NoError(t, err)

	srv := httptest.NewServer(router.Engine)
	t.Cleanup(srv.Close)

	sess, err := session.NewFileSession(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	client, err := storehub.NewClient(&config.API{BaseURL: srv.URL, Timeout: 5 * time.Second}, sess, logger)
	require.NoError(t, err)

	cache := service.NewSnapshotCache()
	reconciler, err := service.NewReconciler(client, cache, logger)
	require.NoError(t, err)

	return &fixture{client: client, reconciler: reconciler, cache: cache, store: store}
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	user, err := f.client.Login(context.Background(), "admin@storehub.dev", "admin")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "admin", user.Role)
}

func TestE2E_LoginRequired(t *testing.T) {
	f := newFixture(t)

	_, err := f.client.ListOrders(context.Background(), domain.OrderFilter{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.client.Login(context.Background(), "admin@storehub.dev", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestE2E_SaveConfirmed(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	ctx := context.Background()

	page, err := f.reconciler.List(ctx, domain.OrderFilter{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)

	snap, err := f.reconciler.Open(ctx, "ORD-1002")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, snap.Status)

	require.NoError(t, f.reconciler.SetStatus(domain.OrderStatusConfirmed))
	require.NoError(t, f.reconciler.SetNotes("rush order"))

	result, err := f.reconciler.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, service.OutcomeConfirmed, result.Outcome)
	assert.Equal(t, domain.OrderStatusConfirmed, result.Snapshot.Status)
	assert.Equal(t, "rush order", result.Snapshot.Notes)

	// the stub advanced the timeline: pending done, confirmed active
	view := domain.ProjectTimeline(result.Snapshot.Timeline, result.Snapshot.Status)
	require.Len(t, view.Steps, 5)
	assert.True(t, view.Steps[0].Completed)
	assert.True(t, view.Steps[1].Active)
	assert.False(t, view.Steps[1].Completed)

	// list and detail agree without another list fetch
	rows, _ := f.cache.List()
	for _, row := range rows {
		if row.Number == "ORD-1002" {
			assert.Equal(t, domain.OrderStatusConfirmed, row.Status)
		}
	}

	// server state actually changed
	stored, ok := f.store.GetOrder("ORD-1002")
	require.True(t, ok)
	assert.Equal(t, domain.OrderStatusConfirmed, stored.Status)
}

func TestE2E_SaveNoChange(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	ctx := context.Background()
	_, err := f.reconciler.Open(ctx, "ORD-1004")
	require.NoError(t, err)

	require.NoError(t, f.reconciler.SetTotalPrice(decimal.MustParse("45.00")))

	result, err := f.reconciler.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, service.OutcomeNoChange, result.Outcome)
}

func TestE2E_Cancel(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	ctx := context.Background()
	_, err := f.reconciler.Open(ctx, "ORD-1001")
	require.NoError(t, err)

	_, err = f.reconciler.Cancel(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrEmptyCancelReason)

	result, err := f.reconciler.Cancel(ctx, "out of stock")
	require.NoError(t, err)
	assert.Equal(t, service.OutcomeConfirmed, result.Outcome)
	assert.Equal(t, domain.OrderStatusCancelled, result.Snapshot.Status)
	assert.False(t, result.Snapshot.CanBeEdited)

	assert.Equal(t, "out of stock", f.store.CancelReason("ORD-1001"))

	// a closed order rejects further edits, locally and on the wire
	err = f.reconciler.SetNotes("late edit")
	assert.ErrorIs(t, err, domain.ErrOrderNotEditable)
}

func TestE2E_PaymentClassification(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	ctx := context.Background()

	split, err := f.reconciler.Open(ctx, "ORD-1001")
	require.NoError(t, err)
	summary := domain.ClassifyPayments(split.Transactions, split.TotalPrice)
	assert.Equal(t, domain.PaymentShapeSplit, summary.Shape)
	assert.Equal(t, 0, summary.ProgressPercent().Cmp(decimal.MustParse("40")))

	full, err := f.reconciler.Open(ctx, "ORD-1002")
	require.NoError(t, err)
	summary = domain.ClassifyPayments(full.Transactions, full.TotalPrice)
	assert.Equal(t, domain.PaymentShapeFull, summary.Shape)

	refunded, err := f.reconciler.Open(ctx, "ORD-1003")
	require.NoError(t, err)
	summary = domain.ClassifyPayments(refunded.Transactions, refunded.TotalPrice)
	assert.Equal(t, domain.PaymentShapeRefunded, summary.Shape)
}

func TestE2E_Notifications(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	ctx := context.Background()

	count, err := f.client.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	items, err := f.client.ListNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.NoError(t, f.client.MarkRead(ctx, items[0].ID))
	count, err = f.client.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, f.client.MarkAllRead(ctx))
	count, err = f.client.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, f.client.DeleteNotification(ctx, items[1].ID))
	items, err = f.client.ListNotifications(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, f.client.DeleteAllNotifications(ctx))
	items, err = f.client.ListNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestE2E_OrderFilters(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	ctx := context.Background()

	page, err := f.client.ListOrders(ctx, domain.OrderFilter{Status: domain.OrderStatusPending})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	page, err = f.client.ListOrders(ctx, domain.OrderFilter{Search: "sara"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "ORD-1003", page.Items[0].Number)

	_, err = f.client.GetOrder(ctx, "ORD-9999")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestE2E_Catalog(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	ctx := context.Background()

	products, err := f.client.ListProducts(ctx, domain.CatalogFilter{})
	require.NoError(t, err)
	assert.NotEmpty(t, products.Items)

	brands, err := f.client.ListBrands(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, brands)
}
