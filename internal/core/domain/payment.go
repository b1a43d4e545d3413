package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit TransactionType = "deposit"
	TransactionTypeFinal   TransactionType = "final"
	TransactionTypeFull    TransactionType = "full"
	TransactionTypeRefund  TransactionType = "refund"
)

type TransactionStatus string

const (
	TransactionPending    TransactionStatus = "pending"
	TransactionProcessing TransactionStatus = "processing"
	TransactionCompleted  TransactionStatus = "completed"
	TransactionFailed     TransactionStatus = "failed"
	TransactionCancelled  TransactionStatus = "cancelled"
	TransactionRefunded   TransactionStatus = "refunded"
)

// PaymentTransaction is server-owned; the client only reads and classifies.
type PaymentTransaction struct {
	ID          string
	Type        TransactionType
	Status      TransactionStatus
	Amount      decimal.Decimal
	Method      string
	CompletedAt *time.Time
}

type PaymentShape string

const (
	PaymentShapeFull     PaymentShape = "full"
	PaymentShapeRefunded PaymentShape = "refunded"
	PaymentShapeSplit    PaymentShape = "split"
)

// PaymentSummary drives which payment view renders for an order.
type PaymentSummary struct {
	Shape   PaymentShape
	Refund  *PaymentTransaction
	Full    *PaymentTransaction
	Deposit *PaymentTransaction
	Final   *PaymentTransaction
	// Paid is the sum of completed deposit and final amounts; meaningful for
	// the split shape only.
	Paid  decimal.Decimal
	Total decimal.Decimal
}

// ClassifyPayments resolves the payment shape of an order. Priority order,
// first match wins: a refunded transaction, then a full-payment transaction,
// otherwise the split deposit/final view. An empty transaction list is a
// valid split with zero progress, not an error.
func ClassifyPayments(txs []PaymentTransaction, total decimal.Decimal) PaymentSummary {
	sum := PaymentSummary{Total: total, Paid: decimal.Zero}

	for i := range txs {
		if txs[i].Status == TransactionRefunded {
			sum.Shape = PaymentShapeRefunded
			sum.Refund = &txs[i]
			return sum
		}
	}

	for i := range txs {
		if txs[i].Type == TransactionTypeFull {
			sum.Shape = PaymentShapeFull
			sum.Full = &txs[i]
			return sum
		}
	}

	sum.Shape = PaymentShapeSplit
	for i := range txs {
		switch txs[i].Type {
		case TransactionTypeDeposit:
			if sum.Deposit == nil {
				sum.Deposit = &txs[i]
			}
		case TransactionTypeFinal:
			if sum.Final == nil {
				sum.Final = &txs[i]
			}
		}
	}
	for _, t := range []*PaymentTransaction{sum.Deposit, sum.Final} {
		if t == nil || t.Status != TransactionCompleted {
			continue
		}
		paid, err := sum.Paid.Add(t.Amount)
		if err != nil {
			continue
		}
		sum.Paid = paid
	}

	return sum
}

// ProgressPercent returns paid/total as a percentage. The value is not
// clamped to 100: transactions summing above the total render above 100%.
func (s PaymentSummary) ProgressPercent() decimal.Decimal {
	if s.Total.Cmp(decimal.Zero) == 0 {
		return decimal.Zero
	}
	ratio, err := s.Paid.Quo(s.Total)
	if err != nil {
		return decimal.Zero
	}
	pct, err := ratio.Mul(decimal.Hundred)
	if err != nil {
		return decimal.Zero
	}
	return pct
}
