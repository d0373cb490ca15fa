package store

import (
	"encoding/json"
	"os"
	"time"

	"tillpoint/internal/inventory"
	"tillpoint/internal/pkg/errs"

	"github.com/google/uuid"
)

// Snapshot is the full persisted state of the engine at a point in time.
// LastSeq records the journal position the snapshot covers; recovery
// replays everything after it. The snapshot file and the journal file
// together are the backup unit; copying both is a complete backup.
type Snapshot struct {
	SavedAt      time.Time                     `json:"saved_at"`
	LastSeq      uint64                        `json:"last_seq"`
	Products     []ProductRecord               `json:"products"`
	Customers    []CustomerRecord              `json:"customers"`
	Users        []UserRecord                  `json:"users"`
	Orders       []OrderRecord                 `json:"orders"`
	Payments     []PaymentRecord               `json:"payments"`
	Receipts     []ReceiptRecord               `json:"receipts"`
	ReceiptSeq   uint64                        `json:"receipt_seq"`
	Reservations []inventory.ReservationRecord `json:"reservations"`
}

// Export captures the store's state. The caller supplies the journal
// position and the ledger's holds; both must be consistent with the
// store, which the coordinator guarantees by quiescing commands first.
func (s *Store) Export(lastSeq uint64, reservations []inventory.ReservationRecord, now time.Time) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		SavedAt:      now,
		LastSeq:      lastSeq,
		ReceiptSeq:   s.receiptSeq,
		Reservations: reservations,
	}
	for _, rec := range s.products {
		snap.Products = append(snap.Products, rec)
	}
	for _, rec := range s.customers {
		snap.Customers = append(snap.Customers, rec)
	}
	for _, rec := range s.users {
		snap.Users = append(snap.Users, rec)
	}
	for _, rec := range s.orders {
		snap.Orders = append(snap.Orders, rec)
	}
	for _, recs := range s.payments {
		snap.Payments = append(snap.Payments, recs...)
	}
	snap.Receipts = s.receiptsSorted()
	return snap
}

// Import replaces the store's state with the snapshot's and records the
// checkpoint for recovery.
func (s *Store) Import(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make(map[uuid.UUID]ProductRecord, len(snap.Products))
	s.skuIndex = make(map[string]uuid.UUID, len(snap.Products))
	for _, rec := range snap.Products {
		s.products[rec.ID] = rec
		s.skuIndex[rec.SKU] = rec.ID
	}

	s.customers = make(map[uuid.UUID]CustomerRecord, len(snap.Customers))
	for _, rec := range snap.Customers {
		s.customers[rec.ID] = rec
	}

	s.users = make(map[uuid.UUID]UserRecord, len(snap.Users))
	s.userIndex = make(map[string]uuid.UUID, len(snap.Users))
	for _, rec := range snap.Users {
		s.users[rec.ID] = rec
		s.userIndex[rec.Username] = rec.ID
	}

	s.orders = make(map[uuid.UUID]OrderRecord, len(snap.Orders))
	for _, rec := range snap.Orders {
		s.orders[rec.ID] = rec
	}

	s.payments = make(map[uuid.UUID][]PaymentRecord)
	for _, rec := range snap.Payments {
		s.payments[rec.OrderID] = append(s.payments[rec.OrderID], rec)
	}

	s.receipts = make(map[uuid.UUID]ReceiptRecord, len(snap.Receipts))
	for _, rec := range snap.Receipts {
		s.receipts[rec.ID] = rec
	}

	s.receiptSeq = snap.ReceiptSeq
	s.checkpoint = snap.LastSeq
}

// WriteSnapshot persists atomically: write to a temp file, sync, rename.
// A crash mid-write leaves the previous snapshot intact.
func WriteSnapshot(path string, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return errs.Wrap(err, "failed to encode snapshot")
	}

	tmpPath := path + ".tmp"
	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errs.Wrap(err, "failed to create snapshot file")
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errs.Wrap(err, "failed to write snapshot")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errs.Wrap(err, "failed to sync snapshot")
	}
	if err := tmp.Close(); err != nil {
		return errs.Wrap(err, "failed to close snapshot")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errs.Wrap(err, "failed to swap snapshot")
	}
	return nil
}

// ReadSnapshot loads a snapshot; ok is false when none exists yet.
func ReadSnapshot(path string) (Snapshot, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, errs.Wrap(err, "failed to read snapshot")
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, errs.Wrap(err, "failed to decode snapshot")
	}
	return snap, true, nil
}
