package domain_test

import (
	"testing"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
)

func TestClassifyPayments(t *testing.T) {
	total := decimal.MustParse("100")

	refunded := domain.PaymentTransaction{
		ID: "tx-r", Type: domain.TransactionTypeRefund,
		Status: domain.TransactionRefunded, Amount: decimal.MustParse("100"),
	}
	full := domain.PaymentTransaction{
		ID: "tx-f", Type: domain.TransactionTypeFull,
		Status: domain.TransactionCompleted, Amount: decimal.MustParse("100"),
	}
	deposit := domain.PaymentTransaction{
		ID: "tx-d", Type: domain.TransactionTypeDeposit,
		Status: domain.TransactionCompleted, Amount: decimal.MustParse("40"),
	}
	finalPending := domain.PaymentTransaction{
		ID: "tx-p", Type: domain.TransactionTypeFinal,
		Status: domain.TransactionPending, Amount: decimal.MustParse("60"),
	}

	tests := []struct {
		name     string
		txs      []domain.PaymentTransaction
		expShape domain.PaymentShape
		expPaid  string
	}{
		{
			name:     "Refunded beats full",
			txs:      []domain.PaymentTransaction{full, refunded},
			expShape: domain.PaymentShapeRefunded,
			expPaid:  "0",
		},
		{
			name:     "Full payment",
			txs:      []domain.PaymentTransaction{full},
			expShape: domain.PaymentShapeFull,
			expPaid:  "0",
		},
		{
			name:     "Split counts completed only",
			txs:      []domain.PaymentTransaction{deposit, finalPending},
			expShape: domain.PaymentShapeSplit,
			expPaid:  "40",
		},
		{
			name:     "No transactions is a valid split",
			txs:      nil,
			expShape: domain.PaymentShapeSplit,
			expPaid:  "0",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sum := domain.ClassifyPayments(test.txs, total)

			assert.Equal(t, test.expShape, sum.Shape)
			assert.Equal(t, 0, sum.Paid.Cmp(decimal.MustParse(test.expPaid)))
			assert.Equal(t, 0, sum.Total.Cmp(total))
		})
	}
}

func TestClassifyPayments_SplitPointers(t *testing.T) {
	deposit := domain.PaymentTransaction{
		ID: "tx-d", Type: domain.TransactionTypeDeposit,
		Status: domain.TransactionCompleted, Amount: decimal.MustParse("40"),
	}
	final := domain.PaymentTransaction{
		ID: "tx-f", Type: domain.TransactionTypeFinal,
		Status: domain.TransactionCompleted, Amount: decimal.MustParse("60"),
	}

	sum := domain.ClassifyPayments([]domain.PaymentTransaction{deposit, final}, decimal.MustParse("100"))

	assert.Equal(t, "tx-d", sum.Deposit.ID)
	assert.Equal(t, "tx-f", sum.Final.ID)
	assert.Equal(t, 0, sum.Paid.Cmp(decimal.MustParse("100")))
	assert.Equal(t, 0, sum.ProgressPercent().Cmp(decimal.MustParse("100")))
}

func TestPaymentSummary_ProgressPercent(t *testing.T) {
	deposit := domain.PaymentTransaction{
		ID: "tx-d", Type: domain.TransactionTypeDeposit,
		Status: domain.TransactionCompleted, Amount: decimal.MustParse("40"),
	}

	sum := domain.ClassifyPayments([]domain.PaymentTransaction{deposit}, decimal.MustParse("80"))
	assert.Equal(t, 0, sum.ProgressPercent().Cmp(decimal.MustParse("50")))

	// zero total never divides
	zero := domain.ClassifyPayments(nil, decimal.Zero)
	assert.Equal(t, 0, zero.ProgressPercent().Cmp(decimal.Zero))
}

func TestPaymentSummary_ProgressNotClamped(t *testing.T) {
	// transactions exceeding the total render above 100%
	deposit := domain.PaymentTransaction{
		ID: "tx-d", Type: domain.TransactionTypeDeposit,
		Status: domain.TransactionCompleted, Amount: decimal.MustParse("90"),
	}
	final := domain.PaymentTransaction{
		ID: "tx-f", Type: domain.TransactionTypeFinal,
		Status: domain.TransactionCompleted, Amount: decimal.MustParse("90"),
	}

	sum := domain.ClassifyPayments([]domain.PaymentTransaction{deposit, final}, decimal.MustParse("100"))
	assert.Equal(t, 0, sum.ProgressPercent().Cmp(decimal.MustParse("180")))
}
