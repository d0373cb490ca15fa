//go:build unit

package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"tillpoint/internal/infra/store"
	"tillpoint/internal/inventory"
	"tillpoint/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductLookupBySKU(t *testing.T) {
	s := store.New()
	rec := store.ProductRecord{ID: uuid.New(), SKU: "ESP-001", Name: "Espresso", UnitPriceCents: 350, Stock: 20}
	s.PutProduct(rec)

	got, ok := s.ProductBySKU("ESP-001")
	require.True(t, ok)
	assert.Equal(t, rec, got)

	_, ok = s.ProductBySKU("missing")
	assert.False(t, ok)
}

func TestDecrementStockUnderflow(t *testing.T) {
	s := store.New()
	id := uuid.New()
	s.PutProduct(store.ProductRecord{ID: id, SKU: "A", Name: "a", Stock: 2})

	require.NoError(t, s.DecrementStock(id, 2))
	err := s.DecrementStock(id, 1)
	assert.True(t, errs.Is(err, errs.ErrInsufficientStock))
}

func TestDeductStoreCredit(t *testing.T) {
	s := store.New()
	id := uuid.New()
	s.PutCustomer(store.CustomerRecord{ID: id, Name: "Dana", StoreCreditCents: 1000})

	require.NoError(t, s.DeductStoreCredit(id, 600))
	got, ok := s.CustomerByID(id)
	require.True(t, ok)
	assert.EqualValues(t, 400, got.StoreCreditCents)

	assert.ErrorIs(t, s.DeductStoreCredit(id, 500), errs.ErrInsufficientCredit)
	assert.ErrorIs(t, s.DeductStoreCredit(uuid.New(), 1), errs.ErrCustomerNotFound)
}

func TestAppendPaymentIsIdempotent(t *testing.T) {
	s := store.New()
	orderID := uuid.New()
	rec := store.PaymentRecord{ID: uuid.New(), OrderID: orderID, Method: "cash", AmountCents: 500}

	s.AppendPayment(rec)
	s.AppendPayment(rec)

	assert.Len(t, s.PaymentsFor(orderID), 1)
}

func TestReceiptSequenceAdvancesOnAppend(t *testing.T) {
	s := store.New()
	assert.EqualValues(t, 1, s.NextReceiptSeq())

	s.AppendReceipt(store.ReceiptRecord{ID: uuid.New(), SequenceNo: 1, OrderID: uuid.New()})
	assert.EqualValues(t, 2, s.NextReceiptSeq())

	// idempotent re-append does not advance
	dup := store.ReceiptRecord{ID: uuid.New(), SequenceNo: 2, OrderID: uuid.New()}
	s.AppendReceipt(dup)
	s.AppendReceipt(dup)
	assert.EqualValues(t, 3, s.NextReceiptSeq())
}

func TestReceiptsBetweenIsHalfOpen(t *testing.T) {
	s := store.New()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	for i, at := range []time.Time{base, base.Add(time.Hour), base.Add(2 * time.Hour)} {
		s.AppendReceipt(store.ReceiptRecord{ID: uuid.New(), SequenceNo: uint64(i + 1), IssuedAt: at})
	}

	got := s.ReceiptsBetween(base, base.Add(2*time.Hour))
	require.Len(t, got, 2)
	assert.EqualValues(t, 1, got[0].SequenceNo)
	assert.EqualValues(t, 2, got[1].SequenceNo)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := store.New()
	productID := uuid.New()
	customerID := uuid.New()
	orderID := uuid.New()

	s.PutProduct(store.ProductRecord{ID: productID, SKU: "ESP-001", Name: "Espresso", UnitPriceCents: 350, Stock: 20})
	s.PutCustomer(store.CustomerRecord{ID: customerID, Name: "Dana", StoreCreditCents: 1000})
	s.PutUser(store.UserRecord{ID: uuid.New(), Username: "ops", Role: "manager", Active: true})
	s.PutOrder(store.OrderRecord{ID: orderID, Status: "draft", Version: 1, CreatedAt: time.Now().UTC()})
	s.AppendPayment(store.PaymentRecord{ID: uuid.New(), OrderID: orderID, Method: "cash", AmountCents: 350})
	s.AppendReceipt(store.ReceiptRecord{ID: uuid.New(), SequenceNo: 7, OrderID: uuid.New(), IssuedAt: time.Now().UTC()})

	holds := []inventory.ReservationRecord{{
		ID: uuid.New(), ProductID: productID, OrderID: orderID, Quantity: 2, State: inventory.StateHeld,
	}}
	snap := s.Export(42, holds, time.Now().UTC())

	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, store.WriteSnapshot(path, snap))

	loaded, ok, err := store.ReadSnapshot(path)
	require.NoError(t, err)
	require.True(t, ok)

	restored := store.New()
	restored.Import(loaded)

	assert.EqualValues(t, 42, restored.Checkpoint())
	assert.EqualValues(t, 8, restored.NextReceiptSeq())

	product, ok := restored.ProductBySKU("ESP-001")
	require.True(t, ok)
	assert.Equal(t, 20, product.Stock)

	_, ok = restored.OrderByID(orderID)
	assert.True(t, ok)
	assert.Len(t, restored.PaymentsFor(orderID), 1)
	assert.Len(t, loaded.Reservations, 1)
}

func TestReadSnapshotMissingFile(t *testing.T) {
	_, ok, err := store.ReadSnapshot(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.False(t, ok)
}
