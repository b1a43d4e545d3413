package service

import (
	"context"
	"strings"
	"sync"

	"github.com/govalues/decimal"
	"go.uber.org/zap"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
	"github.com/mokhtarjo21/storehub-client/internal/core/port"
)

type reconcilerState int

const (
	stateIdle reconcilerState = iota
	stateSaving
)

// SaveOutcome tags the result of a save so an unconfirmed local merge can
// never be mistaken for server truth.
type SaveOutcome int

const (
	// OutcomeNoChange means the diff was empty and no request was issued.
	OutcomeNoChange SaveOutcome = iota
	// OutcomeConfirmed means patch and re-fetch both succeeded; the snapshot
	// is server truth.
	OutcomeConfirmed
	// OutcomePartialFailure means the patch failed but the re-fetch
	// succeeded; the snapshot is server truth and the overlay is kept so the
	// attempted edits stay visible for retry.
	OutcomePartialFailure
	// OutcomeUnconfirmed means the server could not confirm the result; the
	// snapshot is a best-effort local merge of the patch over the last known
	// state.
	OutcomeUnconfirmed
)

type SaveResult struct {
	Outcome  SaveOutcome
	Snapshot *domain.OrderSnapshot
	PatchErr error
	FetchErr error
}

// Reconciler orchestrates the edit/save cycle of the focused order: it owns
// the edit overlay, runs patch-then-refetch on save, and keeps the snapshot
// cache consistent. Saves never run in parallel; the re-fetch is always
// issued after the patch settles.
type Reconciler struct {
	api    port.OrderAPI
	cache  *SnapshotCache
	logger *zap.Logger

	mu      sync.Mutex
	overlay domain.EditOverlay
	state   reconcilerState
	// gen increments every Open/Close; responses carrying a stale gen are
	// discarded so a late save cannot clobber a newly focused order.
	gen uint64
}

func NewReconciler(api port.OrderAPI, cache *SnapshotCache, logger *zap.Logger) (*Reconciler, error) {
	return &Reconciler{
		api:    api,
		cache:  cache,
		logger: logger,
	}, nil
}

// List fetches a page of orders and replaces the cached list.
func (r *Reconciler) List(ctx context.Context, filter domain.OrderFilter) (*domain.Page[domain.OrderSummary], error) {
	page, err := r.api.ListOrders(ctx, filter)
	if err != nil {
		r.logger.Error("list orders", zap.Error(err))
		return nil, err
	}
	r.cache.SetList(page)
	return page, nil
}

// Open fetches the order and focuses it for editing, discarding any previous
// overlay.
func (r *Reconciler) Open(ctx context.Context, number string) (*domain.OrderSnapshot, error) {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	r.overlay.Reset()
	r.state = stateIdle
	r.mu.Unlock()

	snap, err := r.api.GetOrder(ctx, number)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen != gen {
		return nil, domain.ErrStaleResponse
	}
	r.cache.SetFocused(snap)
	return snap, nil
}

// Close discards the overlay and unfocuses the order.
func (r *Reconciler) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	r.overlay.Reset()
	r.state = stateIdle
	if f := r.cache.Focused(); f != nil {
		r.cache.Invalidate(f.Number)
	}
}

func (r *Reconciler) SetStatus(s domain.OrderStatus) error {
	return r.edit(func(o *domain.EditOverlay) { o.Status = &s })
}

func (r *Reconciler) SetPaymentStatus(s domain.PaymentStatus) error {
	return r.edit(func(o *domain.EditOverlay) { o.PaymentStatus = &s })
}

func (r *Reconciler) SetTotalPrice(p decimal.Decimal) error {
	return r.edit(func(o *domain.EditOverlay) { o.TotalPrice = &p })
}

func (r *Reconciler) SetNotes(n string) error {
	return r.edit(func(o *domain.EditOverlay) { o.Notes = &n })
}

func (r *Reconciler) SetVendor(v string) error {
	return r.edit(func(o *domain.EditOverlay) { o.Vendor = &v })
}

func (r *Reconciler) SetCurrency(c string) error {
	return r.edit(func(o *domain.EditOverlay) { o.Currency = &c })
}

func (r *Reconciler) SetHintNote(h string) error {
	return r.edit(func(o *domain.EditOverlay) { o.HintNote = &h })
}

func (r *Reconciler) edit(apply func(*domain.EditOverlay)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.cache.Focused()
	if snap == nil {
		return domain.ErrNoFocusedOrder
	}
	if !snap.CanBeEdited {
		return domain.ErrOrderNotEditable
	}
	apply(&r.overlay)
	return nil
}

// Effective returns the focused snapshot with the overlay applied, for
// rendering pending edits.
func (r *Reconciler) Effective() (*domain.OrderSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.cache.Focused()
	if snap == nil {
		return nil, domain.ErrNoFocusedOrder
	}
	eff := r.overlay.Effective(*snap)
	return &eff, nil
}

// Save diffs the overlay against the snapshot and commits the delta. An
// empty diff returns OutcomeNoChange without touching the network.
func (r *Reconciler) Save(ctx context.Context) (*SaveResult, error) {
	r.mu.Lock()
	if r.state != stateIdle {
		r.mu.Unlock()
		return nil, domain.ErrSaveInProgress
	}
	snap := r.cache.Focused()
	if snap == nil {
		r.mu.Unlock()
		return nil, domain.ErrNoFocusedOrder
	}
	patch := r.overlay.Diff(*snap)
	if patch.IsEmpty() {
		r.mu.Unlock()
		return &SaveResult{Outcome: OutcomeNoChange, Snapshot: snap}, nil
	}
	r.state = stateSaving
	gen := r.gen
	prev := *snap
	r.mu.Unlock()

	return r.commit(ctx, gen, prev, patch)
}

// Cancel commits a fixed {status: cancelled} patch with the operator's
// reason. A blank reason is rejected before any request is issued.
func (r *Reconciler) Cancel(ctx context.Context, reason string) (*SaveResult, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrEmptyCancelReason
	}

	r.mu.Lock()
	if r.state != stateIdle {
		r.mu.Unlock()
		return nil, domain.ErrSaveInProgress
	}
	snap := r.cache.Focused()
	if snap == nil {
		r.mu.Unlock()
		return nil, domain.ErrNoFocusedOrder
	}
	if !snap.CanBeCancelled {
		r.mu.Unlock()
		return nil, domain.ErrOrderNotCancellable
	}
	cancelled := domain.OrderStatusCancelled
	patch := domain.OrderPatch{Status: &cancelled, CancelReason: &reason}
	r.state = stateSaving
	gen := r.gen
	prev := *snap
	r.mu.Unlock()

	return r.commit(ctx, gen, prev, patch)
}

func (r *Reconciler) commit(ctx context.Context, gen uint64, prev domain.OrderSnapshot, patch domain.OrderPatch) (*SaveResult, error) {
	patchErr := r.api.UpdateOrder(ctx, prev.Number, patch)
	if patchErr != nil {
		r.logger.Warn("order update failed",
			zap.String("order", prev.Number), zap.Error(patchErr))
	}

	// Re-fetch regardless of the patch outcome, never in parallel with it.
	fresh, fetchErr := r.api.GetOrder(ctx, prev.Number)
	if fetchErr != nil {
		r.logger.Warn("order re-fetch failed",
			zap.String("order", prev.Number), zap.Error(fetchErr))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = stateIdle
	if r.gen != gen {
		return nil, domain.ErrStaleResponse
	}

	switch {
	case patchErr == nil && fetchErr == nil:
		r.cache.SetFocused(fresh)
		r.overlay.Reset()
		return &SaveResult{Outcome: OutcomeConfirmed, Snapshot: fresh}, nil
	case fetchErr == nil:
		// Server truth wins; keep the overlay so the attempted edits stay
		// visible for retry.
		r.cache.SetFocused(fresh)
		return &SaveResult{Outcome: OutcomePartialFailure, Snapshot: fresh, PatchErr: patchErr}, nil
	default:
		merged := patch.Apply(prev)
		r.cache.SetFocused(&merged)
		return &SaveResult{
			Outcome:  OutcomeUnconfirmed,
			Snapshot: &merged,
			PatchErr: patchErr,
			FetchErr: fetchErr,
		}, nil
	}
}
