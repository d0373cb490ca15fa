package receipt

import (
	"errors"
	"time"

	"tillpoint/internal/domain/money"
	"tillpoint/internal/domain/order"
	"tillpoint/internal/domain/payment"
	"tillpoint/internal/domain/pricing"

	"github.com/google/uuid"
)

var ErrOrderNotCompleted = errors.New("receipt requires a completed order")

// Line is a display row frozen from the order at completion time.
type Line struct {
	SKU         string
	ProductName string
	UnitPrice   money.Money
	Quantity    int
	Subtotal    money.Money
}

// PaymentLine is a frozen view of one payment record.
type PaymentLine struct {
	Method  payment.Method
	Amount  money.Money
	AuthRef *string
}

// Receipt is the immutable snapshot of a completed order. The sequence
// number is the human-facing receipt number and is assigned exactly once,
// by the transaction coordinator inside finalize.
type Receipt struct {
	id         uuid.UUID
	sequenceNo uint64
	orderID    uuid.UUID
	customerID *uuid.UUID
	lines      []Line
	totals     pricing.Totals
	payments   []PaymentLine
	issuedAt   time.Time
}

// Generate freezes a completed order into a receipt. It is only called
// from the finalize path, never independently.
func Generate(sequenceNo uint64, o *order.Order, records []*payment.Record, now time.Time) (*Receipt, error) {
	if o.Status() != order.StatusCompleted {
		return nil, ErrOrderNotCompleted
	}

	orderLines := o.Lines()
	lines := make([]Line, len(orderLines))
	for i, l := range orderLines {
		lines[i] = Line{
			SKU:         l.SKU(),
			ProductName: l.ProductName(),
			UnitPrice:   l.UnitPrice(),
			Quantity:    l.Quantity(),
			Subtotal:    l.Subtotal(),
		}
	}

	payments := make([]PaymentLine, len(records))
	for i, r := range records {
		payments[i] = PaymentLine{
			Method:  r.Method(),
			Amount:  r.Amount(),
			AuthRef: r.AuthRef(),
		}
	}

	return &Receipt{
		id:         uuid.New(),
		sequenceNo: sequenceNo,
		orderID:    o.ID(),
		customerID: o.CustomerID(),
		lines:      lines,
		totals:     o.Totals(),
		payments:   payments,
		issuedAt:   now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	sequenceNo uint64,
	orderID uuid.UUID,
	customerID *uuid.UUID,
	lines []Line,
	totals pricing.Totals,
	payments []PaymentLine,
	issuedAt time.Time,
) *Receipt {
	return &Receipt{
		id:         id,
		sequenceNo: sequenceNo,
		orderID:    orderID,
		customerID: customerID,
		lines:      lines,
		totals:     totals,
		payments:   payments,
		issuedAt:   issuedAt,
	}
}

func (r *Receipt) ID() uuid.UUID          { return r.id }
func (r *Receipt) SequenceNo() uint64     { return r.sequenceNo }
func (r *Receipt) OrderID() uuid.UUID     { return r.orderID }
func (r *Receipt) CustomerID() *uuid.UUID { return r.customerID }
func (r *Receipt) Totals() pricing.Totals { return r.totals }
func (r *Receipt) IssuedAt() time.Time    { return r.issuedAt }

func (r *Receipt) Lines() []Line {
	out := make([]Line, len(r.lines))
	copy(out, r.lines)
	return out
}

func (r *Receipt) Payments() []PaymentLine {
	out := make([]PaymentLine, len(r.payments))
	copy(out, r.payments)
	return out
}
