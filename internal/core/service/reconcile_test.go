package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
	"github.com/mokhtarjo21/storehub-client/internal/core/port/mock"
	"github.com/mokhtarjo21/storehub-client/internal/core/service"
)

var errBackend = errors.New("backend unavailable")

func pendingOrder() *domain.OrderSnapshot {
	return &domain.OrderSnapshot{
		Number:         "ORD-100",
		Status:         domain.OrderStatusPending,
		TotalPrice:     decimal.MustParse("50"),
		Currency:       "USD",
		CanBeEdited:    true,
		CanBeCancelled: true,
	}
}

func confirmedOrder() *domain.OrderSnapshot {
	o := pendingOrder()
	o.Status = domain.OrderStatusConfirmed
	return o
}

func newReconciler(t *testing.T, api *mock.MockOrderAPI) (*service.Reconciler, *service.SnapshotCache) {
	t.Helper()
	logger, _ := zap.NewProduction()
	cache := service.NewSnapshotCache()
	r, err := service.NewReconciler(api, cache, logger)
	assert.NoError(t, err)
	return r, cache
}

func TestReconciler_SaveNoChanges(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	api := mock.NewMockOrderAPI(mockCtrl)
	r, _ := newReconciler(t, api)

	api.EXPECT().GetOrder(gomock.Any(), "ORD-100").Return(pendingOrder(), nil)
	_, err := r.Open(context.Background(), "ORD-100")
	assert.NoError(t, err)

	// same value as the snapshot: diff must be empty, no request issued
	err = r.SetStatus(domain.OrderStatusPending)
	assert.NoError(t, err)

	result, err := r.Save(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomeNoChange, result.Outcome)
	assert.Equal(t, domain.OrderStatusPending, result.Snapshot.Status)
}

func TestReconciler_SaveConfirmed(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	api := mock.NewMockOrderAPI(mockCtrl)
	r, cache := newReconciler(t, api)

	api.EXPECT().ListOrders(gomock.Any(), gomock.Any()).Return(&domain.Page[domain.OrderSummary]{
		Items: []domain.OrderSummary{{Number: "ORD-100", Status: domain.OrderStatusPending}},
		Total: 1,
	}, nil)
	_, err := r.List(context.Background(), domain.OrderFilter{Page: 1})
	assert.NoError(t, err)

	api.EXPECT().GetOrder(gomock.Any(), "ORD-100").Return(pendingOrder(), nil)
	_, err = r.Open(context.Background(), "ORD-100")
	assert.NoError(t, err)

	err = r.SetStatus(domain.OrderStatusConfirmed)
	assert.NoError(t, err)

	gomock.InOrder(
		api.EXPECT().UpdateOrder(gomock.Any(), "ORD-100", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, patch domain.OrderPatch) error {
				assert.Equal(t, domain.OrderStatusConfirmed, *patch.Status)
				assert.Nil(t, patch.TotalPrice)
				return nil
			}),
		api.EXPECT().GetOrder(gomock.Any(), "ORD-100").Return(confirmedOrder(), nil),
	)

	result, err := r.Save(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomeConfirmed, result.Outcome)
	assert.Equal(t, domain.OrderStatusConfirmed, result.Snapshot.Status)

	// overlay cleared: a second save has nothing to send
	result, err = r.Save(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomeNoChange, result.Outcome)

	// list row patched to match the detail view
	rows, total := cache.List()
	assert.Equal(t, 1, total)
	assert.Equal(t, domain.OrderStatusConfirmed, rows[0].Status)
}

func TestReconciler_SavePartialFailure(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	api := mock.NewMockOrderAPI(mockCtrl)
	r, _ := newReconciler(t, api)

	api.EXPECT().GetOrder(gomock.Any(), "ORD-100").Return(pendingOrder(), nil)
	_, err := r.Open(context.Background(), "ORD-100")
	assert.NoError(t, err)

	err = r.SetStatus(domain.OrderStatusConfirmed)
	assert.NoError(t, err)

	gomock.InOrder(
		api.EXPECT().UpdateOrder(gomock.Any(), "ORD-100", gomock.Any()).Return(errBackend),
		api.EXPECT().GetOrder(gomock.Any(), "ORD-100").Return(pendingOrder(), nil),
	)

	result, err := r.Save(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomePartialFailure, result.Outcome)
	assert.ErrorIs(t, result.PatchErr, errBackend)
	// server truth wins in the snapshot
	assert.Equal(t, domain.OrderStatusPending, result.Snapshot.Status)

	// overlay kept: the attempted edit is still visible for retry
	eff, err := r.Effective()
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, eff.Status)
}

func TestReconciler_SaveUnconfirmed(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	api := mock.NewMockOrderAPI(mockCtrl)
	r, _ := newReconciler(t, api)

	api.EXPECT().GetOrder(gomock.Any(), "ORD-100").Return(pendingOrder(), nil)
	_, err := r.Open(context.Background(), "ORD-100")
	assert.NoError(t, err)

	err = r.SetStatus(domain.OrderStatusConfirmed)
	assert.NoError(t, err)

	gomock.InOrder(
		api.EXPECT().UpdateOrder(gomock.Any(), "ORD-100", gomock.Any()).Return(errBackend),
		api.EXPECT().GetOrder(gomock.Any(), "ORD-100").Return(nil, errBackend),
	)

	result, err := r.Save(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomeUnconfirmed, result.Outcome)
	assert.ErrorIs(t, result.PatchErr, errBackend)
	assert.ErrorIs(t, result.FetchErr, errBackend)
	// best-effort local merge, tagged as unconfirmed
	assert.Equal(t, domain.OrderStatusConfirmed, result.Snapshot.Status)
}

func TestReconciler_CancelGuard(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	api := mock.NewMockOrderAPI(mockCtrl)
	r, _ := newReconciler(t, api)

	api.EXPECT().GetOrder(gomock.Any(), "ORD-100").Return(pendingOrder(), nil)
	_, err := r.Open(context.Background(), "ORD-100")
	assert.NoError(t, err)

	tests := []struct {
		name   string
		reason string
	}{
		{name: "Empty reason", reason: ""},
		{name: "Whitespace reason", reason: "   \t"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := r.Cancel(context.Background(), test.reason)
			assert.ErrorIs(t, err, domain.ErrEmptyCancelReason)
		})
	}
}

func TestReconciler_Cancel(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	api := mock.NewMockOrderAPI(mockCtrl)
	r, _ := newReconciler(t, api)

	api.EXPECT().GetOrder(gomock.Any(), "ORD-100").Return(pendingOrder(), nil)
	_, err := r.Open(context.Background(), "ORD-100")
	assert.NoError(t, err)

	cancelledSnap := pendingOrder()
	cancelledSnap.Status = domain.OrderStatusCancelled
	cancelledSnap.CanBeEdited = false
	cancelledSnap.CanBeCancelled = false

	gomock.InOrder(
		api.EXPECT().UpdateOrder(gomock.Any(), "ORD-100", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, patch domain.OrderPatch) error {
				assert.Equal(t, domain.OrderStatusCancelled, *patch.Status)
				assert.Equal(t, "customer request", *patch.CancelReason)
				return nil
			}),
		api.EXPECT().GetOrder(gomock.Any(), "ORD-100").Return(cancelledSnap, nil),
	)

	result, err := r.Cancel(context.Background(), "customer request")
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomeConfirmed, result.Outcome)
	assert.Equal(t, domain.OrderStatusCancelled, result.Snapshot.Status)
}

func TestReconciler_EditGuards(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	api := mock.NewMockOrderAPI(mockCtrl)
	r, _ := newReconciler(t, api)

	// nothing focused yet
	err := r.SetStatus(domain.OrderStatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrNoFocusedOrder)

	locked := pendingOrder()
	locked.CanBeEdited = false
	locked.CanBeCancelled = false
	api.EXPECT().GetOrder(gomock.Any(), "ORD-100").Return(locked, nil)
	_, err = r.Open(context.Background(), "ORD-100")
	assert.NoError(t, err)

	err = r.SetStatus(domain.OrderStatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrOrderNotEditable)

	_, err = r.Cancel(context.Background(), "too late")
	assert.ErrorIs(t, err, domain.ErrOrderNotCancellable)
}

func TestReconciler_CloseDuringSaveDiscardsResult(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	api := mock.NewMockOrderAPI(mockCtrl)
	r, cache := newReconciler(t, api)

	api.EXPECT().GetOrder(gomock.Any(), "ORD-100").Return(pendingOrder(), nil)
	_, err := r.Open(context.Background(), "ORD-100")
	assert.NoError(t, err)

	err = r.SetStatus(domain.OrderStatusConfirmed)
	assert.NoError(t, err)

	// the order is unfocused while the save is on the wire
	gomock.InOrder(
		api.EXPECT().UpdateOrder(gomock.Any(), "ORD-100", gomock.Any()).
			DoAndReturn(func(context.Context, string, domain.OrderPatch) error {
				r.Close()
				return nil
			}),
		api.EXPECT().GetOrder(gomock.Any(), "ORD-100").Return(confirmedOrder(), nil),
	)

	result, err := r.Save(context.Background())
	assert.ErrorIs(t, err, domain.ErrStaleResponse)
	assert.Nil(t, result)
	assert.Nil(t, cache.Focused())
}

func TestReconciler_CloseDiscardsOverlay(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	api := mock.NewMockOrderAPI(mockCtrl)
	r, cache := newReconciler(t, api)

	api.EXPECT().GetOrder(gomock.Any(), "ORD-100").Return(pendingOrder(), nil)
	_, err := r.Open(context.Background(), "ORD-100")
	assert.NoError(t, err)

	err = r.SetNotes("pending edit")
	assert.NoError(t, err)

	r.Close()

	assert.Nil(t, cache.Focused())
	_, err = r.Effective()
	assert.ErrorIs(t, err, domain.ErrNoFocusedOrder)
}
