package order

import (
	"errors"
	"time"

	"tillpoint/internal/domain/money"
	"tillpoint/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrInvalidState    = errors.New("operation not allowed in current order state")
	ErrEmptyOrder      = errors.New("order has no lines")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrLineNotFound    = errors.New("order line not found")
)

// Order is the mutable in-progress order. Every mutation bumps the version
// counter; the counter drives optimistic concurrency and idempotent
// write-ahead log replay.
type Order struct {
	id         uuid.UUID
	customerID *uuid.UUID
	lines      []Line
	taxRule    pricing.TaxRule
	discount   pricing.DiscountRule
	status     Status
	totals     pricing.Totals
	version    uint64
	createdAt  time.Time
}

func NewOrder(customerID *uuid.UUID, taxRule pricing.TaxRule, discount pricing.DiscountRule, now time.Time) (*Order, error) {
	totals, err := pricing.Compute(nil, taxRule, discount)
	if err != nil {
		return nil, err
	}

	return &Order{
		id:         uuid.New(),
		customerID: customerID,
		taxRule:    taxRule,
		discount:   discount,
		status:     StatusDraft,
		totals:     totals,
		version:    1,
		createdAt:  now,
	}, nil
}

func ReconstructOrder(
	id uuid.UUID,
	customerID *uuid.UUID,
	lines []Line,
	taxRule pricing.TaxRule,
	discount pricing.DiscountRule,
	status Status,
	version uint64,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		id:         id,
		customerID: customerID,
		lines:      lines,
		taxRule:    taxRule,
		discount:   discount,
		status:     status,
		version:    version,
		createdAt:  createdAt,
	}
	if err := o.recompute(); err != nil {
		return nil, err
	}
	return o, nil
}

// AddLine appends a line with the product's current unit price captured as
// a snapshot. Legal only in Draft.
func (o *Order) AddLine(productID uuid.UUID, sku, productName string, unitPrice money.Money, quantity int) (Line, error) {
	if o.status != StatusDraft {
		return Line{}, ErrInvalidState
	}
	if quantity <= 0 {
		return Line{}, ErrInvalidQuantity
	}

	line := Line{
		id:          uuid.New(),
		productID:   productID,
		sku:         sku,
		productName: productName,
		unitPrice:   unitPrice,
		quantity:    quantity,
	}
	o.lines = append(o.lines, line)
	if err := o.recompute(); err != nil {
		o.lines = o.lines[:len(o.lines)-1]
		return Line{}, err
	}
	o.version++
	return line, nil
}

func (o *Order) RemoveLine(lineID uuid.UUID) (Line, error) {
	if o.status != StatusDraft {
		return Line{}, ErrInvalidState
	}

	idx := o.lineIndex(lineID)
	if idx < 0 {
		return Line{}, ErrLineNotFound
	}

	removed := o.lines[idx]
	o.lines = append(o.lines[:idx], o.lines[idx+1:]...)
	if err := o.recompute(); err != nil {
		return Line{}, err
	}
	o.version++
	return removed, nil
}

func (o *Order) UpdateQuantity(lineID uuid.UUID, quantity int) (Line, error) {
	if o.status != StatusDraft {
		return Line{}, ErrInvalidState
	}
	if quantity <= 0 {
		return Line{}, ErrInvalidQuantity
	}

	idx := o.lineIndex(lineID)
	if idx < 0 {
		return Line{}, ErrLineNotFound
	}

	prev := o.lines[idx].quantity
	o.lines[idx].quantity = quantity
	if err := o.recompute(); err != nil {
		o.lines[idx].quantity = prev
		return Line{}, err
	}
	o.version++
	return o.lines[idx], nil
}

// BeginPayment freezes the line items: Draft -> PendingPayment.
func (o *Order) BeginPayment() error {
	if o.status != StatusDraft {
		return ErrInvalidState
	}
	if len(o.lines) == 0 {
		return ErrEmptyOrder
	}
	o.status = StatusPendingPayment
	o.version++
	return nil
}

// Complete marks the order Completed. The caller (the transaction
// coordinator) has already validated the payment aggregate; this method
// only enforces the transition.
func (o *Order) Complete() error {
	if o.status != StatusPendingPayment {
		return ErrInvalidState
	}
	o.status = StatusCompleted
	o.version++
	return nil
}

func (o *Order) Cancel() error {
	if o.status.IsTerminal() {
		return ErrInvalidState
	}
	o.status = StatusCancelled
	o.version++
	return nil
}

func (o *Order) recompute() error {
	pls := make([]pricing.Line, len(o.lines))
	for i, l := range o.lines {
		pls[i] = l.pricingLine()
	}
	totals, err := pricing.Compute(pls, o.taxRule, o.discount)
	if err != nil {
		return err
	}
	o.totals = totals
	return nil
}

func (o *Order) lineIndex(lineID uuid.UUID) int {
	for i, l := range o.lines {
		if l.id == lineID {
			return i
		}
	}
	return -1
}

func (o *Order) ID() uuid.UUID                  { return o.id }
func (o *Order) CustomerID() *uuid.UUID         { return o.customerID }
func (o *Order) Status() Status                 { return o.status }
func (o *Order) Totals() pricing.Totals         { return o.totals }
func (o *Order) GrandTotal() money.Money        { return o.totals.GrandTotal }
func (o *Order) TaxRule() pricing.TaxRule       { return o.taxRule }
func (o *Order) Discount() pricing.DiscountRule { return o.discount }
func (o *Order) Version() uint64                { return o.version }
func (o *Order) CreatedAt() time.Time           { return o.createdAt }

// Lines returns the lines in receipt display order.
func (o *Order) Lines() []Line {
	out := make([]Line, len(o.lines))
	copy(out, o.lines)
	return out
}

func (o *Order) Line(lineID uuid.UUID) (Line, bool) {
	idx := o.lineIndex(lineID)
	if idx < 0 {
		return Line{}, false
	}
	return o.lines[idx], true
}
