//go:build unit

package pricing_test

import (
	"testing"

	"tillpoint/internal/domain/money"
	"tillpoint/internal/domain/pricing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(ls ...pricing.Line) []pricing.Line { return ls }

func line(unitCents int64, qty int) pricing.Line {
	return pricing.Line{UnitPrice: money.New(unitCents), Quantity: qty}
}

func mustTax(t *testing.T, pct float64) pricing.TaxRule {
	t.Helper()
	rule, err := pricing.NewTaxRule("test", pct)
	require.NoError(t, err)
	return rule
}

func TestCompute(t *testing.T) {
	cases := []struct {
		name     string
		lines    []pricing.Line
		tax      pricing.TaxRule
		discount pricing.DiscountRule
		want     pricing.Totals
	}{
		{
			name:     "two lines with 10 percent tax",
			lines:    lines(line(1000, 2), line(500, 1)),
			tax:      mustTax(t, 10),
			discount: pricing.NoDiscount(),
			want: pricing.Totals{
				Subtotal:       money.New(2500),
				DiscountAmount: money.New(0),
				TaxAmount:      money.New(250),
				GrandTotal:     money.New(2750),
			},
		},
		{
			name:     "no tax no discount",
			lines:    lines(line(199, 3)),
			tax:      pricing.NoTax(),
			discount: pricing.NoDiscount(),
			want: pricing.Totals{
				Subtotal:   money.New(597),
				GrandTotal: money.New(597),
			},
		},
		{
			name:     "empty order",
			lines:    nil,
			tax:      mustTax(t, 10),
			discount: pricing.NoDiscount(),
			want:     pricing.Totals{},
		},
		{
			name:     "percentage discount before tax",
			lines:    lines(line(1000, 2), line(500, 1)),
			tax:      mustTax(t, 10),
			discount: mustPercentDiscount(t, 10, true),
			want: pricing.Totals{
				Subtotal:       money.New(2500),
				DiscountAmount: money.New(250),
				TaxAmount:      money.New(225),
				GrandTotal:     money.New(2475),
			},
		},
		{
			name:     "fixed discount after tax",
			lines:    lines(line(1000, 2), line(500, 1)),
			tax:      mustTax(t, 10),
			discount: mustFixedDiscount(t, 500, false),
			want: pricing.Totals{
				Subtotal:       money.New(2500),
				DiscountAmount: money.New(500),
				TaxAmount:      money.New(250),
				GrandTotal:     money.New(2250),
			},
		},
		{
			name:     "tie rounds down to even total",
			lines:    lines(line(100, 1)),
			tax:      mustTax(t, 2.5),
			discount: pricing.NoDiscount(),
			// 102.5 exact: 102 is even
			want: pricing.Totals{
				Subtotal:   money.New(100),
				TaxAmount:  money.New(2),
				GrandTotal: money.New(102),
			},
		},
		{
			name:     "tie rounds up to even total",
			lines:    lines(line(300, 1)),
			tax:      mustTax(t, 2.5),
			discount: pricing.NoDiscount(),
			// 307.5 exact: 308 is even
			want: pricing.Totals{
				Subtotal:   money.New(300),
				TaxAmount:  money.New(8),
				GrandTotal: money.New(308),
			},
		},
		{
			name:     "discount larger than subtotal clamps to zero",
			lines:    lines(line(300, 1)),
			tax:      mustTax(t, 10),
			discount: mustFixedDiscount(t, 10_000, true),
			want: pricing.Totals{
				Subtotal:       money.New(300),
				DiscountAmount: money.New(300),
				TaxAmount:      money.New(0),
				GrandTotal:     money.New(0),
			},
		},
		{
			name:     "full percentage discount",
			lines:    lines(line(250, 4)),
			tax:      mustTax(t, 8),
			discount: mustPercentDiscount(t, 100, true),
			want: pricing.Totals{
				Subtotal:       money.New(1000),
				DiscountAmount: money.New(1000),
				TaxAmount:      money.New(0),
				GrandTotal:     money.New(0),
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := pricing.Compute(c.lines, c.tax, c.discount)
			require.NoError(t, err)
			if diff := cmp.Diff(c.want, got, cmp.Comparer(func(a, b money.Money) bool {
				return a.Equal(b)
			})); diff != "" {
				t.Errorf("totals mismatch (-want +got):\n%s", diff)
			}
			// finalize matches payments against this identity
			assert.Equal(t,
				got.GrandTotal.Cents(),
				got.Subtotal.Cents()-got.DiscountAmount.Cents()+got.TaxAmount.Cents())
		})
	}
}

func TestComputeNoPerLineRounding(t *testing.T) {
	// Summed per-line rounding of 7.25% on three 33-cent lines would give
	// 2+2+2=6 or 3+3+3=9 depending on direction; the single final rounding
	// must be used instead: 99 * 1.0725 = 106.1775 -> 106.
	totals, err := pricing.Compute(
		lines(line(33, 1), line(33, 1), line(33, 1)),
		mustTax(t, 7.25),
		pricing.NoDiscount(),
	)
	require.NoError(t, err)
	assert.EqualValues(t, 106, totals.GrandTotal.Cents())
}

func TestInvalidRules(t *testing.T) {
	t.Run("negative tax rate", func(t *testing.T) {
		_, err := pricing.NewTaxRule("bad", -1)
		require.ErrorIs(t, err, pricing.ErrInvalidRule)
	})
	t.Run("tax rate above 100", func(t *testing.T) {
		_, err := pricing.NewTaxRule("bad", 100.5)
		require.ErrorIs(t, err, pricing.ErrInvalidRule)
	})
	t.Run("negative percentage discount", func(t *testing.T) {
		_, err := pricing.NewPercentageDiscount(-0.01, true)
		require.ErrorIs(t, err, pricing.ErrInvalidRule)
	})
	t.Run("percentage discount above 100", func(t *testing.T) {
		_, err := pricing.NewPercentageDiscount(101, true)
		require.ErrorIs(t, err, pricing.ErrInvalidRule)
	})
	t.Run("negative fixed discount", func(t *testing.T) {
		_, err := pricing.NewFixedDiscount(money.New(-1), true)
		require.ErrorIs(t, err, pricing.ErrInvalidRule)
	})
}

func mustPercentDiscount(t *testing.T, pct float64, beforeTax bool) pricing.DiscountRule {
	t.Helper()
	d, err := pricing.NewPercentageDiscount(pct, beforeTax)
	require.NoError(t, err)
	return d
}

func mustFixedDiscount(t *testing.T, cents int64, beforeTax bool) pricing.DiscountRule {
	t.Helper()
	d, err := pricing.NewFixedDiscount(money.New(cents), beforeTax)
	require.NoError(t, err)
	return d
}
