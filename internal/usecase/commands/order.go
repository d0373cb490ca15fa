package commands

import (
	"context"
	"sync"
	"time"

	"tillpoint/internal/domain/money"
	"tillpoint/internal/domain/order"
	"tillpoint/internal/domain/payment"
	"tillpoint/internal/domain/pricing"
	"tillpoint/internal/domain/receipt"
	"tillpoint/internal/infra/wal"
	"tillpoint/internal/pkg/clock"
	"tillpoint/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreateDraftInput struct {
	CustomerID          *uuid.UUID
	TaxRuleName         string
	TaxRatePercent      float64
	DiscountPercent     *float64
	DiscountAmountCents *int64
	DiscountPreTax      bool
}

type AddLineInput struct {
	SKU      string
	Quantity int
}

type RecordPaymentInput struct {
	Method      string
	AmountCents int64
	AuthRef     *string
}

type PaymentProgress struct {
	PaymentID      uuid.UUID
	RemainingCents int64
}

type FinalizeResult struct {
	ReceiptID  uuid.UUID
	ReceiptSeq uint64
}

// TransactionCoordinator runs the order lifecycle. A single mutex
// serializes all commands: the terminal is single-operator and the journal
// append plus in-memory apply of each command must be indivisible so a
// snapshot never observes a half-applied operation.
type TransactionCoordinator struct {
	mu        sync.Mutex
	orders    OrderRepository
	products  ProductReader
	customers CustomerRepository
	payments  PaymentRepository
	receipts  ReceiptRepository
	ledger    StockLedger
	journal   Journal
	clock     clock.Clock
	activity  map[uuid.UUID]time.Time
}

func NewTransactionCoordinator(
	orders OrderRepository,
	products ProductReader,
	customers CustomerRepository,
	payments PaymentRepository,
	receipts ReceiptRepository,
	ledger StockLedger,
	journal Journal,
	clk clock.Clock,
) *TransactionCoordinator {
	return &TransactionCoordinator{
		orders:    orders,
		products:  products,
		customers: customers,
		payments:  payments,
		receipts:  receipts,
		ledger:    ledger,
		journal:   journal,
		clock:     clk,
		activity:  make(map[uuid.UUID]time.Time),
	}
}

// ResumeOpenOrders restarts the idle clock for orders that survived a
// restart; called once during startup, after recovery.
func (c *TransactionCoordinator) ResumeOpenOrders(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	drafts, err := c.orders.ListOpen()
	if err != nil {
		return err
	}
	now := c.clock.Now()
	for _, d := range drafts {
		c.activity[d.Order.ID()] = now
	}
	return nil
}

func (c *TransactionCoordinator) CreateDraft(ctx context.Context, in CreateDraftInput) (uuid.UUID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tax, err := pricing.NewTaxRule(in.TaxRuleName, in.TaxRatePercent)
	if err != nil {
		return uuid.Nil, err
	}

	discount := pricing.NoDiscount()
	switch {
	case in.DiscountPercent != nil:
		discount, err = pricing.NewPercentageDiscount(*in.DiscountPercent, in.DiscountPreTax)
	case in.DiscountAmountCents != nil:
		discount, err = pricing.NewFixedDiscount(money.New(*in.DiscountAmountCents), in.DiscountPreTax)
	}
	if err != nil {
		return uuid.Nil, err
	}

	if in.CustomerID != nil {
		if _, err := c.customers.Find(*in.CustomerID); err != nil {
			return uuid.Nil, err
		}
	}

	now := c.clock.Now()
	ord, err := order.NewOrder(in.CustomerID, tax, discount, now)
	if err != nil {
		return uuid.Nil, err
	}

	if _, err := c.journal.Append(wal.OpOrderCreated, wal.OrderCreated{
		OrderID:        ord.ID(),
		CustomerID:     in.CustomerID,
		TaxRuleName:    in.TaxRuleName,
		TaxRatePercent: in.TaxRatePercent,
		DiscountPct:    in.DiscountPercent,
		DiscountCents:  in.DiscountAmountCents,
		DiscountPreTax: in.DiscountPreTax,
		Version:        ord.Version(),
		CreatedAt:      now,
	}); err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDurabilityFailure)
	}

	draft := DraftOrder{Order: ord, Reservations: make(map[uuid.UUID]uuid.UUID)}
	if err := c.orders.Save(draft); err != nil {
		return uuid.Nil, err
	}
	c.activity[ord.ID()] = now
	return ord.ID(), nil
}

// AddLine reserves stock first, so an order can never hold a line the
// ledger has not backed.
func (c *TransactionCoordinator) AddLine(ctx context.Context, orderID uuid.UUID, in AddLineInput) (uuid.UUID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft, err := c.orders.Find(orderID)
	if err != nil {
		return uuid.Nil, err
	}
	product, err := c.products.FindBySKU(in.SKU)
	if err != nil {
		return uuid.Nil, err
	}

	resID, err := c.ledger.Reserve(product.ID(), in.Quantity, orderID)
	if err != nil {
		return uuid.Nil, err
	}

	line, err := draft.Order.AddLine(product.ID(), product.SKU(), product.Name(), product.UnitPrice(), in.Quantity)
	if err != nil {
		_ = c.ledger.Release(resID)
		return uuid.Nil, err
	}

	if _, err := c.journal.Append(wal.OpLineAdded, wal.LineAdded{
		OrderID:        orderID,
		LineID:         line.ID(),
		ProductID:      product.ID(),
		SKU:            product.SKU(),
		ProductName:    product.Name(),
		UnitPriceCents: product.UnitPrice().Cents(),
		Quantity:       in.Quantity,
		ReservationID:  resID,
		Version:        draft.Order.Version(),
	}); err != nil {
		_ = c.ledger.Release(resID)
		return uuid.Nil, errs.Mark(err, errs.ErrDurabilityFailure)
	}

	draft.Reservations[line.ID()] = resID
	if err := c.orders.Save(draft); err != nil {
		return uuid.Nil, err
	}
	c.touch(orderID)
	return line.ID(), nil
}

func (c *TransactionCoordinator) RemoveLine(ctx context.Context, orderID, lineID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft, err := c.orders.Find(orderID)
	if err != nil {
		return err
	}

	if _, err := draft.Order.RemoveLine(lineID); err != nil {
		return err
	}

	if _, err := c.journal.Append(wal.OpLineRemoved, wal.LineRemoved{
		OrderID: orderID,
		LineID:  lineID,
		Version: draft.Order.Version(),
	}); err != nil {
		return errs.Mark(err, errs.ErrDurabilityFailure)
	}

	resID := draft.Reservations[lineID]
	delete(draft.Reservations, lineID)
	if err := c.orders.Save(draft); err != nil {
		return err
	}
	if err := c.ledger.Release(resID); err != nil {
		return err
	}
	c.touch(orderID)
	return nil
}

// UpdateQuantity re-reserves: the new hold is placed first (with the old
// hold's quantity counted as free), then the line is updated, then the old
// hold is dropped. A crash in between leaves at worst a stale hold, which
// finalize and cancel both clean up.
func (c *TransactionCoordinator) UpdateQuantity(ctx context.Context, orderID, lineID uuid.UUID, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft, err := c.orders.Find(orderID)
	if err != nil {
		return err
	}
	line, ok := draft.Order.Line(lineID)
	if !ok {
		return errs.Mark(order.ErrLineNotFound, errs.ErrLineNotFound)
	}

	oldRes := draft.Reservations[lineID]
	newRes, err := c.ledger.ReserveReplacing(oldRes, line.ProductID(), quantity, orderID)
	if err != nil {
		return err
	}

	if _, err := draft.Order.UpdateQuantity(lineID, quantity); err != nil {
		_ = c.ledger.Release(newRes)
		return err
	}

	if _, err := c.journal.Append(wal.OpLineQuantityUpdated, wal.LineQuantityUpdated{
		OrderID:       orderID,
		LineID:        lineID,
		Quantity:      quantity,
		ReservationID: newRes,
		Version:       draft.Order.Version(),
	}); err != nil {
		_ = c.ledger.Release(newRes)
		return errs.Mark(err, errs.ErrDurabilityFailure)
	}

	draft.Reservations[lineID] = newRes
	if err := c.orders.Save(draft); err != nil {
		return err
	}
	if err := c.ledger.Release(oldRes); err != nil {
		return err
	}
	c.touch(orderID)
	return nil
}

func (c *TransactionCoordinator) BeginPayment(ctx context.Context, orderID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft, err := c.orders.Find(orderID)
	if err != nil {
		return err
	}
	if err := draft.Order.BeginPayment(); err != nil {
		return err
	}

	if _, err := c.journal.Append(wal.OpPaymentBegun, wal.PaymentBegun{
		OrderID: orderID,
		Version: draft.Order.Version(),
	}); err != nil {
		return errs.Mark(err, errs.ErrDurabilityFailure)
	}

	if err := c.orders.Save(draft); err != nil {
		return err
	}
	c.touch(orderID)
	return nil
}

func (c *TransactionCoordinator) RecordPayment(ctx context.Context, orderID uuid.UUID, in RecordPaymentInput) (PaymentProgress, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft, err := c.orders.Find(orderID)
	if err != nil {
		return PaymentProgress{}, err
	}
	if draft.Order.Status() != order.StatusPendingPayment {
		return PaymentProgress{}, order.ErrInvalidState
	}

	method, err := payment.NewMethod(in.Method)
	if err != nil {
		return PaymentProgress{}, err
	}

	recorded, err := c.payments.ListFor(orderID)
	if err != nil {
		return PaymentProgress{}, err
	}

	remaining := draft.Order.GrandTotal().Sub(payment.Sum(recorded))
	if in.AmountCents > remaining.Cents() {
		return PaymentProgress{}, errs.Mark(errs.New("payment exceeds remaining balance"), errs.ErrPaymentMismatch)
	}

	if method == payment.MethodStoreCredit {
		if err := c.checkStoreCredit(draft.Order, recorded, in.AmountCents); err != nil {
			return PaymentProgress{}, err
		}
	}

	now := c.clock.Now()
	rec, err := payment.NewRecord(orderID, method, money.New(in.AmountCents), in.AuthRef, now)
	if err != nil {
		return PaymentProgress{}, err
	}

	if _, err := c.journal.Append(wal.OpPaymentRecorded, wal.PaymentRecorded{
		PaymentID:   rec.ID(),
		OrderID:     orderID,
		Method:      method.String(),
		AmountCents: in.AmountCents,
		AuthRef:     in.AuthRef,
		RecordedAt:  now,
	}); err != nil {
		return PaymentProgress{}, errs.Mark(err, errs.ErrDurabilityFailure)
	}

	if err := c.payments.Append(rec); err != nil {
		return PaymentProgress{}, err
	}
	c.touch(orderID)
	return PaymentProgress{
		PaymentID:      rec.ID(),
		RemainingCents: remaining.Cents() - in.AmountCents,
	}, nil
}

func (c *TransactionCoordinator) checkStoreCredit(ord *order.Order, recorded []*payment.Record, amountCents int64) error {
	if ord.CustomerID() == nil {
		return errs.Mark(errs.New("store credit requires a customer on the order"), errs.ErrInsufficientCredit)
	}
	cust, err := c.customers.Find(*ord.CustomerID())
	if err != nil {
		return err
	}

	var used int64
	for _, rec := range recorded {
		if rec.Method() == payment.MethodStoreCredit {
			used += rec.Amount().Cents()
		}
	}
	if used+amountCents > cust.StoreCredit().Cents() {
		return errs.ErrInsufficientCredit
	}
	return nil
}

// Finalize is the commit point of the sale. The journal append of the
// finalize record makes the sale durable; everything after the append is
// in-memory application that recovery can redo from the record alone.
func (c *TransactionCoordinator) Finalize(ctx context.Context, orderID uuid.UUID) (FinalizeResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft, err := c.orders.Find(orderID)
	if err != nil {
		return FinalizeResult{}, err
	}
	if draft.Order.Status() != order.StatusPendingPayment {
		return FinalizeResult{}, order.ErrInvalidState
	}

	recorded, err := c.payments.ListFor(orderID)
	if err != nil {
		return FinalizeResult{}, err
	}
	if !payment.Sum(recorded).Equal(draft.Order.GrandTotal()) {
		return FinalizeResult{}, errs.ErrPaymentMismatch
	}

	var creditUsed int64
	for _, rec := range recorded {
		if rec.Method() == payment.MethodStoreCredit {
			creditUsed += rec.Amount().Cents()
		}
	}

	commitIDs := make([]uuid.UUID, 0, len(draft.Reservations))
	for _, resID := range draft.Reservations {
		commitIDs = append(commitIDs, resID)
	}

	// complete the working copy and freeze the receipt before the append;
	// nothing is saved unless the append succeeds
	now := c.clock.Now()
	if err := draft.Order.Complete(); err != nil {
		return FinalizeResult{}, err
	}
	receiptSeq := c.receipts.NextSequence()
	rcpt, err := receipt.Generate(receiptSeq, draft.Order, recorded, now)
	if err != nil {
		return FinalizeResult{}, err
	}

	if _, err := c.journal.Append(wal.OpOrderFinalized, wal.OrderFinalized{
		OrderID:            orderID,
		ReceiptID:          rcpt.ID(),
		ReceiptSeq:         receiptSeq,
		CustomerID:         draft.Order.CustomerID(),
		CreditUsedCents:    creditUsed,
		CommitReservations: commitIDs,
		IssuedAt:           now,
		Version:            draft.Order.Version(),
	}); err != nil {
		return FinalizeResult{}, errs.Mark(err, errs.ErrDurabilityFailure)
	}

	if err := c.ledger.Settle(orderID, commitIDs); err != nil {
		return FinalizeResult{}, err
	}
	if err := c.receipts.Append(rcpt); err != nil {
		return FinalizeResult{}, err
	}

	if draft.Order.CustomerID() != nil && creditUsed > 0 {
		if err := c.customers.DeductCredit(*draft.Order.CustomerID(), money.New(creditUsed)); err != nil {
			return FinalizeResult{}, err
		}
	}

	c.orders.Remove(orderID)
	delete(c.activity, orderID)
	return FinalizeResult{ReceiptID: rcpt.ID(), ReceiptSeq: receiptSeq}, nil
}

// Cancel aborts a non-terminal order and releases its holds. Cancelling
// an order that just completed surfaces the invalid-state error; callers
// that race on purpose (the idle sweeper) ignore it.
func (c *TransactionCoordinator) Cancel(ctx context.Context, orderID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelLocked(orderID)
}

func (c *TransactionCoordinator) cancelLocked(orderID uuid.UUID) error {
	draft, err := c.orders.Find(orderID)
	if err != nil {
		return err
	}
	if err := draft.Order.Cancel(); err != nil {
		return err
	}

	if _, err := c.journal.Append(wal.OpOrderCancelled, wal.OrderCancelled{
		OrderID: orderID,
		Version: draft.Order.Version(),
	}); err != nil {
		return errs.Mark(err, errs.ErrDurabilityFailure)
	}

	if err := c.ledger.ReleaseForOrder(orderID); err != nil {
		return err
	}
	c.orders.Remove(orderID)
	delete(c.activity, orderID)
	return nil
}

// CancelIdle cancels orders untouched for at least idleFor and reports how
// many were swept. Races with a concurrent finalize are benign.
func (c *TransactionCoordinator) CancelIdle(idleFor time.Duration) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	var swept int
	for orderID, last := range c.activity {
		if now.Sub(last) < idleFor {
			continue
		}
		err := c.cancelLocked(orderID)
		switch {
		case err == nil:
			swept++
		case errs.Is(err, order.ErrInvalidState), errs.Is(err, errs.ErrOrderNotFound):
			delete(c.activity, orderID)
		default:
			return swept, err
		}
	}
	return swept, nil
}

func (c *TransactionCoordinator) touch(orderID uuid.UUID) {
	c.activity[orderID] = c.clock.Now()
}

// Quiesce runs fn with all commands blocked; the snapshotter uses it to
// capture store, ledger, and journal at one consistent point.
func (c *TransactionCoordinator) Quiesce(fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn()
}
