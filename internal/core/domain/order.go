package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type OrderItem struct {
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	// ToBeQuoted marks a line whose price is deferred until the vendor quotes it.
	ToBeQuoted bool
}

// TimelineEntry is one lifecycle milestone as reported by the server.
// Completed is tri-state: nil means the server did not mark the step either
// way, and completion is inferred from position during projection.
type TimelineEntry struct {
	Status    OrderStatus
	Timestamp *time.Time
	Completed *bool
}

// OrderSnapshot is the last server-confirmed representation of an order.
// It is replaced wholesale on every successful fetch and never partially
// mutated by the client.
type OrderSnapshot struct {
	Number         string
	Status         OrderStatus
	PaymentStatus  PaymentStatus
	TotalPrice     decimal.Decimal
	Currency       string
	Notes          string
	HintNote       string
	Vendor         string
	Customer       string
	Items          []OrderItem
	Timeline       []TimelineEntry
	Transactions   []PaymentTransaction
	CanBeEdited    bool
	CanBeCancelled bool
	CreatedAt      time.Time
}

// OrderSummary is a row of the paginated order list.
type OrderSummary struct {
	Number        string
	Status        OrderStatus
	PaymentStatus PaymentStatus
	TotalPrice    decimal.Decimal
	Currency      string
	Customer      string
	CreatedAt     time.Time
}

type OrderFilter struct {
	Search    string
	Status    OrderStatus
	Page      int
	StartDate time.Time
	EndDate   time.Time
}
