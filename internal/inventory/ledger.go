package inventory

import (
	"sync"

	"tillpoint/internal/infra/wal"
	"tillpoint/internal/pkg/errs"

	"github.com/google/uuid"
)

type State string

const (
	StateHeld      State = "held"
	StateCommitted State = "committed"
	StateReleased  State = "released"
)

// ReservationRecord is the persisted form of a hold. Only Held
// reservations survive in memory; committed and released ones are applied
// and dropped, which is what makes Commit and Release idempotent under
// log replay.
type ReservationRecord struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	OrderID   uuid.UUID `json:"order_id"`
	Quantity  int       `json:"quantity"`
	State     State     `json:"state"`
}

// Stock is the ledger's view of catalog stock counters.
type Stock interface {
	StockOf(productID uuid.UUID) (int, bool)
	DecrementStock(productID uuid.UUID, qty int) error
}

// Journal receives every ledger mutation before it takes effect.
type Journal interface {
	Append(op wal.OpType, payload any) (uint64, error)
}

// Ledger owns all stock holds behind a single mutex: no two
// reserve/commit/release calls interleave, so available stock can never go
// negative even across concurrently drafted orders.
type Ledger struct {
	mu      sync.Mutex
	stock   Stock
	journal Journal
	held    map[uuid.UUID]ReservationRecord
}

func NewLedger(stock Stock, journal Journal) *Ledger {
	return &Ledger{
		stock:   stock,
		journal: journal,
		held:    make(map[uuid.UUID]ReservationRecord),
	}
}

// Reserve places a hold against unreserved-available stock.
func (l *Ledger) Reserve(productID uuid.UUID, qty int, orderID uuid.UUID) (uuid.UUID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reserveLocked(productID, qty, orderID, uuid.Nil)
}

// ReserveReplacing reserves a new quantity while an earlier hold for the
// same line still exists; the earlier hold's quantity counts as available
// again for the check. The caller releases the old hold afterwards.
func (l *Ledger) ReserveReplacing(oldID, productID uuid.UUID, qty int, orderID uuid.UUID) (uuid.UUID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reserveLocked(productID, qty, orderID, oldID)
}

func (l *Ledger) reserveLocked(productID uuid.UUID, qty int, orderID, replacing uuid.UUID) (uuid.UUID, error) {
	if qty <= 0 {
		return uuid.Nil, errs.New("reservation quantity must be positive")
	}

	stock, ok := l.stock.StockOf(productID)
	if !ok {
		return uuid.Nil, errs.ErrProductNotFound
	}

	available := stock - l.heldForProductLocked(productID)
	if old, ok := l.held[replacing]; ok && old.ProductID == productID {
		available += old.Quantity
	}
	if qty > available {
		return uuid.Nil, errs.ErrInsufficientStock
	}

	rec := ReservationRecord{
		ID:        uuid.New(),
		ProductID: productID,
		OrderID:   orderID,
		Quantity:  qty,
		State:     StateHeld,
	}

	if _, err := l.journal.Append(wal.OpStockReserved, wal.StockReserved{
		ReservationID: rec.ID,
		ProductID:     rec.ProductID,
		OrderID:       rec.OrderID,
		Quantity:      rec.Quantity,
	}); err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDurabilityFailure)
	}

	l.held[rec.ID] = rec
	return rec.ID, nil
}

// Commit turns a hold into a permanent stock decrement. Committing an
// unknown reservation is a no-op so that replay stays idempotent.
func (l *Ledger) Commit(reservationID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.held[reservationID]
	if !ok {
		return nil
	}

	if _, err := l.journal.Append(wal.OpStockCommitted, wal.StockCommitted{
		ReservationID: reservationID,
	}); err != nil {
		return errs.Mark(err, errs.ErrDurabilityFailure)
	}

	return l.commitLocked(rec)
}

// Release drops a hold with no stock change; idempotent like Commit.
func (l *Ledger) Release(reservationID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[reservationID]; !ok {
		return nil
	}

	if _, err := l.journal.Append(wal.OpStockReleased, wal.StockReleased{
		ReservationID: reservationID,
	}); err != nil {
		return errs.Mark(err, errs.ErrDurabilityFailure)
	}

	delete(l.held, reservationID)
	return nil
}

// Settle commits the listed holds and releases any other hold the order
// still has (stale holds left by a crash mid-mutation).
func (l *Ledger) Settle(orderID uuid.UUID, commitIDs []uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	commit := make(map[uuid.UUID]bool, len(commitIDs))
	for _, id := range commitIDs {
		commit[id] = true
	}

	for id, rec := range l.held {
		if rec.OrderID != orderID {
			continue
		}
		if commit[id] {
			if _, err := l.journal.Append(wal.OpStockCommitted, wal.StockCommitted{ReservationID: id}); err != nil {
				return errs.Mark(err, errs.ErrDurabilityFailure)
			}
			if err := l.commitLocked(rec); err != nil {
				return err
			}
		} else {
			if _, err := l.journal.Append(wal.OpStockReleased, wal.StockReleased{ReservationID: id}); err != nil {
				return errs.Mark(err, errs.ErrDurabilityFailure)
			}
			delete(l.held, id)
		}
	}
	return nil
}

// ReleaseForOrder releases every hold the order has; used by cancel and
// the session sweeper.
func (l *Ledger) ReleaseForOrder(orderID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for id, rec := range l.held {
		if rec.OrderID != orderID {
			continue
		}
		if _, err := l.journal.Append(wal.OpStockReleased, wal.StockReleased{ReservationID: id}); err != nil {
			return errs.Mark(err, errs.ErrDurabilityFailure)
		}
		delete(l.held, id)
	}
	return nil
}

// Available reports unreserved-available stock for a product.
func (l *Ledger) Available(productID uuid.UUID) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stock, ok := l.stock.StockOf(productID)
	if !ok {
		return 0, errs.ErrProductNotFound
	}
	return stock - l.heldForProductLocked(productID), nil
}

func (l *Ledger) commitLocked(rec ReservationRecord) error {
	if err := l.stock.DecrementStock(rec.ProductID, rec.Quantity); err != nil {
		return err
	}
	delete(l.held, rec.ID)
	return nil
}

func (l *Ledger) heldForProductLocked(productID uuid.UUID) int {
	var sum int
	for _, rec := range l.held {
		if rec.ProductID == productID {
			sum += rec.Quantity
		}
	}
	return sum
}

// Snapshot returns the held reservations for checkpointing.
func (l *Ledger) Snapshot() []ReservationRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]ReservationRecord, 0, len(l.held))
	for _, rec := range l.held {
		out = append(out, rec)
	}
	return out
}

// Restore loads held reservations from a checkpoint; no journaling.
func (l *Ledger) Restore(records []ReservationRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, rec := range records {
		if rec.State != StateHeld {
			continue
		}
		l.held[rec.ID] = rec
	}
}

// ApplyReserved/ApplyCommitted/ApplyReleased re-apply journal records
// during recovery without journaling again. All three are idempotent.

func (l *Ledger) ApplyReserved(p wal.StockReserved) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[p.ReservationID]; ok {
		return
	}
	l.held[p.ReservationID] = ReservationRecord{
		ID:        p.ReservationID,
		ProductID: p.ProductID,
		OrderID:   p.OrderID,
		Quantity:  p.Quantity,
		State:     StateHeld,
	}
}

func (l *Ledger) ApplyCommitted(reservationID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.held[reservationID]
	if !ok {
		return nil
	}
	return l.commitLocked(rec)
}

func (l *Ledger) ApplyReleased(reservationID uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, reservationID)
}

// ApplySettled is the recovery form of Settle: same transitions, no
// journaling.
func (l *Ledger) ApplySettled(orderID uuid.UUID, commitIDs []uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	commit := make(map[uuid.UUID]bool, len(commitIDs))
	for _, id := range commitIDs {
		commit[id] = true
	}
	for id, rec := range l.held {
		if rec.OrderID != orderID {
			continue
		}
		if commit[id] {
			if err := l.commitLocked(rec); err != nil {
				return err
			}
		} else {
			delete(l.held, id)
		}
	}
	return nil
}

// ApplyReleasedForOrder is the recovery form of ReleaseForOrder.
func (l *Ledger) ApplyReleasedForOrder(orderID uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for id, rec := range l.held {
		if rec.OrderID == orderID {
			delete(l.held, id)
		}
	}
}

// HeldFor lists the order's current holds, for finalize payloads.
func (l *Ledger) HeldFor(orderID uuid.UUID) []ReservationRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []ReservationRecord
	for _, rec := range l.held {
		if rec.OrderID == orderID {
			out = append(out, rec)
		}
	}
	return out
}
