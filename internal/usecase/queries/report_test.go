//go:build unit

package queries_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"tillpoint/internal/usecase/queries"
	queriesmock "tillpoint/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRangeFor(t *testing.T) {
	// Wednesday
	ref := time.Date(2025, 3, 12, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		period   queries.Period
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			name:     "daily covers midnight to midnight",
			period:   queries.PeriodDaily,
			wantFrom: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "weekly starts the preceding Monday",
			period:   queries.PeriodWeekly,
			wantFrom: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "monthly covers the calendar month",
			period:   queries.PeriodMonthly,
			wantFrom: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := queries.RangeFor(tt.period, ref)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}

	t.Run("weekly on a Monday starts that same day", func(t *testing.T) {
		monday := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
		from, _, err := queries.RangeFor(queries.PeriodWeekly, monday)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), from)
	})

	t.Run("unknown period is rejected", func(t *testing.T) {
		_, _, err := queries.RangeFor(queries.Period("hourly"), ref)
		assert.Error(t, err)
	})
}

func receiptFixture(seq uint64, issuedAt time.Time, customerID *uuid.UUID, methods map[string]int64) queries.ReceiptView {
	var total int64
	payments := make([]queries.ReceiptPaymentView, 0, len(methods))
	for m, cents := range methods {
		total += cents
		payments = append(payments, queries.ReceiptPaymentView{Method: m, AmountCents: cents})
	}
	return queries.ReceiptView{
		ID:         uuid.New(),
		SequenceNo: seq,
		OrderID:    uuid.New(),
		CustomerID: customerID,
		Lines: []queries.ReceiptLineView{
			{SKU: "TEA-001", ProductName: "Green Tea", UnitPriceCents: total, Quantity: 2, SubtotalCents: total},
		},
		SubtotalCents:   total,
		GrandTotalCents: total,
		Payments:        payments,
		IssuedAt:        issuedAt,
	}
}

func TestSalesReportBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := queriesmock.NewMockReceiptViewReader(ctrl)
	q := queries.NewSalesReportQuery(reader)

	from := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	customerID := uuid.New()

	t.Run("aggregates totals per method and overall", func(t *testing.T) {
		reader.EXPECT().ListBetween(from, to).Return([]queries.ReceiptView{
			receiptFixture(1, from.Add(9*time.Hour), nil, map[string]int64{"cash": 550}),
			receiptFixture(2, from.Add(10*time.Hour), &customerID, map[string]int64{"card": 1000, "store_credit": 200}),
		}, nil).Times(1)

		report, err := q.Build(context.Background(), from, to)
		require.NoError(t, err)

		assert.Equal(t, 2, report.ReceiptCount)
		assert.Equal(t, int64(1750), report.TotalCents)
		assert.Equal(t, int64(550), report.ByMethodCents["cash"])
		assert.Equal(t, int64(1000), report.ByMethodCents["card"])
		assert.Equal(t, int64(200), report.ByMethodCents["store_credit"])

		require.Len(t, report.Rows, 2)
		assert.Equal(t, "cash", report.Rows[0].Methods)
		assert.Equal(t, "card+store_credit", report.Rows[1].Methods)
		assert.Equal(t, 2, report.Rows[0].ItemCount)
	})

	t.Run("rejects an inverted range without touching the reader", func(t *testing.T) {
		_, err := q.Build(context.Background(), to, from)
		assert.Error(t, err)
	})
}

func TestSalesReportWriteCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := queriesmock.NewMockReceiptViewReader(ctrl)
	q := queries.NewSalesReportQuery(reader)

	from := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	reader.EXPECT().ListBetween(from, to).Return([]queries.ReceiptView{
		receiptFixture(7, from.Add(9*time.Hour), nil, map[string]int64{"cash": 1234}),
	}, nil).Times(1)

	report, err := q.Build(context.Background(), from, to)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, q.WriteCSV(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "receipt_no,issued_at,customer_id,items,total,methods")
	assert.Contains(t, out, "7,2025-03-12T09:00:00Z,,2,12.34,cash")
	assert.Contains(t, out, "total_cash,,,,12.34,")
	assert.Contains(t, out, "total,,,1,12.34,")
}
