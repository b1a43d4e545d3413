package domain

import "time"

// TimelineStep is a derived view row, regenerated on every projection.
type TimelineStep struct {
	Status    OrderStatus
	Label     string
	Timestamp *time.Time
	Completed bool
	Active    bool
}

// TimelineView is the projected lifecycle of an order. A cancelled order
// collapses into a single terminal marker regardless of its history.
type TimelineView struct {
	Cancelled bool
	Steps     []TimelineStep
}

var statusLabels = map[OrderStatus]string{
	OrderStatusPending:   "Order Placed",
	OrderStatusConfirmed: "Confirmed",
	OrderStatusPreparing: "Preparing",
	OrderStatusShipped:   "Shipped",
	OrderStatusDelivered: "Delivered",
	OrderStatusCancelled: "Cancelled",
}

func StatusLabel(s OrderStatus) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// ProjectTimeline annotates the server timeline so that at most one step is
// active (the current status, not yet completed). Steps preceding the active
// one count as completed by position, unless the server explicitly marked a
// step not completed; an explicit server flag always wins over positional
// inference.
func ProjectTimeline(entries []TimelineEntry, current OrderStatus) TimelineView {
	if current == OrderStatusCancelled {
		return TimelineView{
			Cancelled: true,
			Steps: []TimelineStep{{
				Status: OrderStatusCancelled,
				Label:  StatusLabel(OrderStatusCancelled),
				Active: true,
			}},
		}
	}

	activeIdx := -1
	for i, e := range entries {
		if e.Status == current && (e.Completed == nil || !*e.Completed) {
			activeIdx = i
			break
		}
	}

	steps := make([]TimelineStep, len(entries))
	for i, e := range entries {
		completed := false
		switch {
		case e.Completed != nil:
			completed = *e.Completed
		case activeIdx >= 0 && i < activeIdx:
			completed = true
		}
		steps[i] = TimelineStep{
			Status:    e.Status,
			Label:     StatusLabel(e.Status),
			Timestamp: e.Timestamp,
			Completed: completed,
			Active:    i == activeIdx,
		}
	}

	return TimelineView{Steps: steps}
}
