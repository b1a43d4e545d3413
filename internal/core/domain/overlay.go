package domain

import (
	"github.com/govalues/decimal"
)

// EditOverlay is the sparse set of operator edits layered over an order
// snapshot. A nil field means "not touched, read it from the snapshot".
// The overlay only stores values; edit permission is enforced by the caller.
type EditOverlay struct {
	TotalPrice    *decimal.Decimal
	Status        *OrderStatus
	PaymentStatus *PaymentStatus
	Notes         *string
	Vendor        *string
	Currency      *string
	HintNote      *string
}

func (o *EditOverlay) IsEmpty() bool {
	return o.TotalPrice == nil &&
		o.Status == nil &&
		o.PaymentStatus == nil &&
		o.Notes == nil &&
		o.Vendor == nil &&
		o.Currency == nil &&
		o.HintNote == nil
}

func (o *EditOverlay) Reset() {
	*o = EditOverlay{}
}

// Effective resolves the overlay over the snapshot: every touched field reads
// from the overlay, every other field from the snapshot. The snapshot itself
// is not mutated.
func (o *EditOverlay) Effective(s OrderSnapshot) OrderSnapshot {
	if o.TotalPrice != nil {
		s.TotalPrice = *o.TotalPrice
	}
	if o.Status != nil {
		s.Status = *o.Status
	}
	if o.PaymentStatus != nil {
		s.PaymentStatus = *o.PaymentStatus
	}
	if o.Notes != nil {
		s.Notes = *o.Notes
	}
	if o.Vendor != nil {
		s.Vendor = *o.Vendor
	}
	if o.Currency != nil {
		s.Currency = *o.Currency
	}
	if o.HintNote != nil {
		s.HintNote = *o.HintNote
	}
	return s
}

// Diff compares the overlay field by field against the snapshot and returns
// a patch holding only the fields that actually changed. Monetary values are
// compared numerically, so an overlay of 50.00 over a snapshot of 50 does not
// register as a change. All other fields compare as plain strings.
func (o *EditOverlay) Diff(s OrderSnapshot) OrderPatch {
	var p OrderPatch
	if o.TotalPrice != nil && o.TotalPrice.Cmp(s.TotalPrice) != 0 {
		p.TotalPrice = o.TotalPrice
	}
	if o.Status != nil && *o.Status != s.Status {
		p.Status = o.Status
	}
	if o.PaymentStatus != nil && *o.PaymentStatus != s.PaymentStatus {
		p.PaymentStatus = o.PaymentStatus
	}
	if o.Notes != nil && *o.Notes != s.Notes {
		p.Notes = o.Notes
	}
	if o.Vendor != nil && *o.Vendor != s.Vendor {
		p.Vendor = o.Vendor
	}
	if o.Currency != nil && *o.Currency != s.Currency {
		p.Currency = o.Currency
	}
	if o.HintNote != nil && *o.HintNote != s.HintNote {
		p.HintNote = o.HintNote
	}
	return p
}

// OrderPatch is the minimal field-level delta sent on save. Nil fields are
// left out of the request body so concurrent edits to other fields are never
// clobbered.
type OrderPatch struct {
	TotalPrice    *decimal.Decimal
	Status        *OrderStatus
	PaymentStatus *PaymentStatus
	Notes         *string
	Vendor        *string
	Currency      *string
	HintNote      *string
	CancelReason  *string
}

func (p OrderPatch) IsEmpty() bool {
	return p.TotalPrice == nil &&
		p.Status == nil &&
		p.PaymentStatus == nil &&
		p.Notes == nil &&
		p.Vendor == nil &&
		p.Currency == nil &&
		p.HintNote == nil &&
		p.CancelReason == nil
}

// Apply lays the patch over a snapshot copy. Used for the degraded-mode local
// merge when the server cannot confirm a save.
func (p OrderPatch) Apply(s OrderSnapshot) OrderSnapshot {
	if p.TotalPrice != nil {
		s.TotalPrice = *p.TotalPrice
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.PaymentStatus != nil {
		s.PaymentStatus = *p.PaymentStatus
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	if p.Vendor != nil {
		s.Vendor = *p.Vendor
	}
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.HintNote != nil {
		s.HintNote = *p.HintNote
	}
	return s
}
