package pricing

import (
	"tillpoint/internal/domain/money"
)

// Line is the pricing view of an order line: the captured unit price and
// the quantity. Line subtotals are exact in cents, so only the tax and
// discount arithmetic can produce fractions.
type Line struct {
	UnitPrice money.Money
	Quantity  int
}

func (l Line) Subtotal() money.Money {
	return l.UnitPrice.MulQty(l.Quantity)
}

type Totals struct {
	Subtotal       money.Money
	DiscountAmount money.Money
	TaxAmount      money.Money
	GrandTotal     money.Money
}

// Compute derives order totals from the lines and rules. Pure and
// deterministic. Intermediate amounts are exact integers over the rate
// scale (one power per applied rate), so rounding happens once, half to
// even, at the grand total. The displayed tax amount is derived afterwards
// so that Subtotal - Discount + Tax == GrandTotal holds exactly.
func Compute(lines []Line, tax TaxRule, discount DiscountRule) (Totals, error) {
	if err := tax.validate(); err != nil {
		return Totals{}, err
	}
	if err := discount.validate(); err != nil {
		return Totals{}, err
	}

	var sub int64
	for _, l := range lines {
		sub += l.Subtotal().Cents()
	}
	subtotal := money.New(sub)

	taxFactor := rateScale + tax.rateBps

	// disc2 and grand2 are cents scaled by rateScale^2.
	var disc2, grand2 int64
	if discount.AppliesBeforeTax() {
		// disc1/base1 are cents scaled by rateScale.
		var disc1 int64
		if discount.IsPercentage() {
			disc1 = sub * *discount.percentBps
		} else {
			disc1 = discount.AmountOff().Cents() * rateScale
		}
		disc1 = min64(disc1, sub*rateScale)
		base1 := sub*rateScale - disc1
		grand2 = base1 * taxFactor
		disc2 = disc1 * rateScale
	} else {
		taxed1 := sub * taxFactor // cents scaled by rateScale
		if discount.IsPercentage() {
			disc2 = taxed1 * *discount.percentBps
		} else {
			disc2 = discount.AmountOff().Cents() * rateScale * rateScale
		}
		disc2 = min64(disc2, taxed1*rateScale)
		grand2 = taxed1*rateScale - disc2
	}

	grandTotal := money.New(divHalfEven(grand2, rateScale*rateScale))
	discountAmount := money.New(divHalfEven(disc2, rateScale*rateScale))
	taxAmount := grandTotal.Sub(subtotal).Add(discountAmount)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		GrandTotal:     grandTotal,
	}, nil
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// divHalfEven divides num by den rounding half to even. Discounts are
// clamped to their base, so num is never negative.
func divHalfEven(num, den int64) int64 {
	q := num / den
	r := num % den
	switch {
	case 2*r < den:
		return q
	case 2*r > den:
		return q + 1
	case q%2 == 0: // exact tie, keep even
		return q
	default:
		return q + 1
	}
}
