package pricing

import (
	"errors"
	"math"

	"tillpoint/internal/domain/money"
)

var ErrInvalidRule = errors.New("tax or discount rate must be between 0 and 100")

// Rates are held in basis points (hundredths of a percent) so the
// calculator can stay in exact integer arithmetic.
const rateScale = 10_000

func toBasisPoints(ratePercent float64) (int64, error) {
	bps := int64(math.Round(ratePercent * 100))
	if bps < 0 || bps > rateScale {
		return 0, ErrInvalidRule
	}
	return bps, nil
}

// TaxRule is a single percentage rate applied to the taxable base.
type TaxRule struct {
	name    string
	rateBps int64
}

func NewTaxRule(name string, ratePercent float64) (TaxRule, error) {
	bps, err := toBasisPoints(ratePercent)
	if err != nil {
		return TaxRule{}, err
	}
	return TaxRule{name: name, rateBps: bps}, nil
}

func NoTax() TaxRule {
	return TaxRule{name: "none"}
}

func (t TaxRule) Name() string         { return t.name }
func (t TaxRule) RatePercent() float64 { return float64(t.rateBps) / 100 }

func (t TaxRule) validate() error {
	if t.rateBps < 0 || t.rateBps > rateScale {
		return ErrInvalidRule
	}
	return nil
}

// DiscountRule is either a percentage or a fixed amount off. By default the
// discount applies to the subtotal before tax; ApplyBeforeTax=false moves
// it after tax.
type DiscountRule struct {
	amountOff      *money.Money
	percentBps     *int64
	applyBeforeTax bool
}

func NewPercentageDiscount(percentOff float64, applyBeforeTax bool) (DiscountRule, error) {
	bps, err := toBasisPoints(percentOff)
	if err != nil {
		return DiscountRule{}, err
	}
	return DiscountRule{percentBps: &bps, applyBeforeTax: applyBeforeTax}, nil
}

func NewFixedDiscount(amountOff money.Money, applyBeforeTax bool) (DiscountRule, error) {
	if amountOff.IsNegative() {
		return DiscountRule{}, ErrInvalidRule
	}
	return DiscountRule{amountOff: &amountOff, applyBeforeTax: applyBeforeTax}, nil
}

func NoDiscount() DiscountRule {
	return DiscountRule{applyBeforeTax: true}
}

func (d DiscountRule) IsZero() bool {
	return d.amountOff == nil && d.percentBps == nil
}

func (d DiscountRule) IsPercentage() bool {
	return d.percentBps != nil
}

func (d DiscountRule) PercentOff() float64 {
	if d.percentBps != nil {
		return float64(*d.percentBps) / 100
	}
	return 0
}

func (d DiscountRule) AmountOff() money.Money {
	if d.amountOff != nil {
		return *d.amountOff
	}
	return money.New(0)
}

func (d DiscountRule) AppliesBeforeTax() bool { return d.applyBeforeTax }

func (d DiscountRule) validate() error {
	if d.percentBps != nil && (*d.percentBps < 0 || *d.percentBps > rateScale) {
		return ErrInvalidRule
	}
	if d.amountOff != nil && d.amountOff.IsNegative() {
		return ErrInvalidRule
	}
	return nil
}
