package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"tillpoint/internal/pkg/errs"

	"github.com/google/uuid"
)

// Store holds the engine's materialized state: catalog, customers, users,
// open orders with their payments, and issued receipts. Everything lives
// in memory; durability comes from the write-ahead log plus periodic
// snapshots.
type Store struct {
	mu         sync.RWMutex
	products   map[uuid.UUID]ProductRecord
	skuIndex   map[string]uuid.UUID
	customers  map[uuid.UUID]CustomerRecord
	users      map[uuid.UUID]UserRecord
	userIndex  map[string]uuid.UUID
	orders     map[uuid.UUID]OrderRecord
	payments   map[uuid.UUID][]PaymentRecord
	receipts   map[uuid.UUID]ReceiptRecord
	receiptSeq uint64
	checkpoint uint64
}

func New() *Store {
	return &Store{
		products:  make(map[uuid.UUID]ProductRecord),
		skuIndex:  make(map[string]uuid.UUID),
		customers: make(map[uuid.UUID]CustomerRecord),
		users:     make(map[uuid.UUID]UserRecord),
		userIndex: make(map[string]uuid.UUID),
		orders:    make(map[uuid.UUID]OrderRecord),
		payments:  make(map[uuid.UUID][]PaymentRecord),
		receipts:  make(map[uuid.UUID]ReceiptRecord),
	}
}

// ---- catalog ----

func (s *Store) PutProduct(rec ProductRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.products[rec.ID]; ok && prev.SKU != rec.SKU {
		delete(s.skuIndex, prev.SKU)
	}
	s.products[rec.ID] = rec
	s.skuIndex[rec.SKU] = rec.ID
}

func (s *Store) ProductByID(id uuid.UUID) (ProductRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.products[id]
	return rec, ok
}

func (s *Store) ProductBySKU(sku string) (ProductRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.skuIndex[sku]
	if !ok {
		return ProductRecord{}, false
	}
	rec, ok := s.products[id]
	return rec, ok
}

func (s *Store) ListProducts() []ProductRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ProductRecord, 0, len(s.products))
	for _, rec := range s.products {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].SKU, out[j].SKU) < 0
	})
	return out
}

func (s *Store) StockOf(productID uuid.UUID) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.products[productID]
	if !ok {
		return 0, false
	}
	return rec.Stock, true
}

func (s *Store) DecrementStock(productID uuid.UUID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.products[productID]
	if !ok {
		return errs.ErrProductNotFound
	}
	if rec.Stock < qty {
		return errs.Mark(errs.New("stock underflow"), errs.ErrInsufficientStock)
	}
	rec.Stock -= qty
	s.products[productID] = rec
	return nil
}

// ---- customers ----

func (s *Store) PutCustomer(rec CustomerRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[rec.ID] = rec
}

func (s *Store) CustomerByID(id uuid.UUID) (CustomerRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.customers[id]
	return rec, ok
}

func (s *Store) ListCustomers() []CustomerRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]CustomerRecord, 0, len(s.customers))
	for _, rec := range s.customers {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].Name, out[j].Name) < 0
	})
	return out
}

func (s *Store) DeductStoreCredit(id uuid.UUID, cents int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.customers[id]
	if !ok {
		return errs.ErrCustomerNotFound
	}
	if rec.StoreCreditCents < cents {
		return errs.ErrInsufficientCredit
	}
	rec.StoreCreditCents -= cents
	s.customers[id] = rec
	return nil
}

// ---- users ----

func (s *Store) PutUser(rec UserRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.users[rec.ID]; ok && prev.Username != rec.Username {
		delete(s.userIndex, prev.Username)
	}
	s.users[rec.ID] = rec
	s.userIndex[rec.Username] = rec.ID
}

func (s *Store) UserByID(id uuid.UUID) (UserRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[id]
	return rec, ok
}

func (s *Store) UserByUsername(username string) (UserRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.userIndex[username]
	if !ok {
		return UserRecord{}, false
	}
	rec, ok := s.users[id]
	return rec, ok
}

// ---- orders ----

func (s *Store) PutOrder(rec OrderRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[rec.ID] = rec
}

func (s *Store) OrderByID(id uuid.UUID) (OrderRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.orders[id]
	return rec, ok
}

func (s *Store) RemoveOrder(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, id)
	delete(s.payments, id)
}

// OpenOrders returns all live orders, oldest first.
func (s *Store) OpenOrders() []OrderRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]OrderRecord, 0, len(s.orders))
	for _, rec := range s.orders {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// ---- payments ----

// AppendPayment is idempotent on the payment ID.
func (s *Store) AppendPayment(rec PaymentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.payments[rec.OrderID] {
		if p.ID == rec.ID {
			return
		}
	}
	s.payments[rec.OrderID] = append(s.payments[rec.OrderID], rec)
}

func (s *Store) PaymentsFor(orderID uuid.UUID) []PaymentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.payments[orderID]
	out := make([]PaymentRecord, len(recs))
	copy(out, recs)
	return out
}

// ---- receipts ----

// AppendReceipt is idempotent on the receipt ID and keeps the sequence
// counter at the highest number seen.
func (s *Store) AppendReceipt(rec ReceiptRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.receipts[rec.ID]; ok {
		return
	}
	s.receipts[rec.ID] = rec
	if rec.SequenceNo > s.receiptSeq {
		s.receiptSeq = rec.SequenceNo
	}
}

// NextReceiptSeq peeks at the number the next receipt will get. The
// counter only advances when the receipt is appended, so a failed
// finalize leaves no gap.
func (s *Store) NextReceiptSeq() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.receiptSeq + 1
}

func (s *Store) ReceiptByOrderID(orderID uuid.UUID) (ReceiptRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.receipts {
		if rec.OrderID == orderID {
			return rec, true
		}
	}
	return ReceiptRecord{}, false
}

func (s *Store) receiptsSorted() []ReceiptRecord {
	out := make([]ReceiptRecord, 0, len(s.receipts))
	for _, rec := range s.receipts {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SequenceNo < out[j].SequenceNo
	})
	return out
}

func (s *Store) ListReceipts() []ReceiptRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.receiptsSorted()
}

// ReceiptsBetween returns receipts with from <= IssuedAt < to.
func (s *Store) ReceiptsBetween(from, to time.Time) []ReceiptRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []ReceiptRecord
	for _, rec := range s.receiptsSorted() {
		if rec.IssuedAt.Before(from) || !rec.IssuedAt.Before(to) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// ---- checkpoint ----

// Checkpoint is the journal sequence the last loaded snapshot covered.
func (s *Store) Checkpoint() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checkpoint
}

func (s *Store) SetCheckpoint(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkpoint = seq
}
