//go:build unit

package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"tillpoint/internal/infra/store"
	"tillpoint/internal/infra/wal"
	"tillpoint/internal/inventory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleFixture struct {
	log        *wal.Log
	st         *store.Store
	ledger     *inventory.Ledger
	productID  uuid.UUID
	customerID uuid.UUID
	orderID    uuid.UUID
	lineID     uuid.UUID
	resID      uuid.UUID
	receiptID  uuid.UUID
}

func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()

	log, err := wal.Open(filepath.Join(t.TempDir(), "journal.log"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })

	st := store.New()
	f := &saleFixture{
		log:        log,
		st:         st,
		ledger:     inventory.NewLedger(st, log),
		productID:  uuid.New(),
		customerID: uuid.New(),
		orderID:    uuid.New(),
		lineID:     uuid.New(),
		resID:      uuid.New(),
		receiptID:  uuid.New(),
	}
	st.PutProduct(store.ProductRecord{ID: f.productID, SKU: "ESP-001", Name: "Espresso", UnitPriceCents: 350, Stock: 20})
	st.PutCustomer(store.CustomerRecord{ID: f.customerID, Name: "Dana", StoreCreditCents: 1000})
	return f
}

func (f *saleFixture) append(t *testing.T, op wal.OpType, payload any) {
	t.Helper()
	_, err := f.log.Append(op, payload)
	require.NoError(t, err)
}

// journalSale writes the records a live two-espresso cash sale would have
// produced, up to but not including the stock commit records.
func (f *saleFixture) journalSale(t *testing.T) {
	t.Helper()
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	f.append(t, wal.OpOrderCreated, wal.OrderCreated{
		OrderID: f.orderID, CustomerID: &f.customerID,
		TaxRuleName: "standard", TaxRatePercent: 10,
		Version: 1, CreatedAt: now,
	})
	f.append(t, wal.OpStockReserved, wal.StockReserved{
		ReservationID: f.resID, ProductID: f.productID, OrderID: f.orderID, Quantity: 2,
	})
	f.append(t, wal.OpLineAdded, wal.LineAdded{
		OrderID: f.orderID, LineID: f.lineID, ProductID: f.productID,
		SKU: "ESP-001", ProductName: "Espresso", UnitPriceCents: 350,
		Quantity: 2, ReservationID: f.resID, Version: 2,
	})
	f.append(t, wal.OpPaymentBegun, wal.PaymentBegun{OrderID: f.orderID, Version: 3})
	f.append(t, wal.OpPaymentRecorded, wal.PaymentRecorded{
		PaymentID: uuid.New(), OrderID: f.orderID, Method: "store_credit",
		AmountCents: 500, RecordedAt: now,
	})
	f.append(t, wal.OpPaymentRecorded, wal.PaymentRecorded{
		PaymentID: uuid.New(), OrderID: f.orderID, Method: "cash",
		AmountCents: 270, RecordedAt: now,
	})
	f.append(t, wal.OpOrderFinalized, wal.OrderFinalized{
		OrderID: f.orderID, ReceiptID: f.receiptID, ReceiptSeq: 1,
		CustomerID: &f.customerID, CreditUsedCents: 500,
		CommitReservations: []uuid.UUID{f.resID},
		IssuedAt:           now, Version: 4,
	})
}

func TestRecoverReplaysFullSale(t *testing.T) {
	f := newSaleFixture(t)
	f.journalSale(t)
	// crash before the stock commit records were written

	replayed, err := store.Recover(f.st, f.ledger, f.log)
	require.NoError(t, err)
	assert.Equal(t, 7, replayed)
	assert.Equal(t, f.log.LastSeq(), f.st.Checkpoint())

	// the live order is gone, the receipt exists with exact totals
	_, ok := f.st.OrderByID(f.orderID)
	assert.False(t, ok)

	receipt, ok := f.st.ReceiptByOrderID(f.orderID)
	require.True(t, ok)
	assert.EqualValues(t, 1, receipt.SequenceNo)
	assert.EqualValues(t, 700, receipt.SubtotalCents)
	assert.EqualValues(t, 70, receipt.TaxCents)
	assert.EqualValues(t, 770, receipt.GrandTotalCents)
	require.Len(t, receipt.Payments, 2)

	// the finalize record alone settles the hold: stock is decremented
	product, ok := f.st.ProductByID(f.productID)
	require.True(t, ok)
	assert.Equal(t, 18, product.Stock)
	assert.Empty(t, f.ledger.Snapshot())

	// store credit was captured exactly once
	cust, ok := f.st.CustomerByID(f.customerID)
	require.True(t, ok)
	assert.EqualValues(t, 500, cust.StoreCreditCents)
}

func TestRecoverLeavesOpenDraftWithHold(t *testing.T) {
	f := newSaleFixture(t)
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	f.append(t, wal.OpOrderCreated, wal.OrderCreated{
		OrderID: f.orderID, TaxRuleName: "standard", TaxRatePercent: 10,
		Version: 1, CreatedAt: now,
	})
	f.append(t, wal.OpStockReserved, wal.StockReserved{
		ReservationID: f.resID, ProductID: f.productID, OrderID: f.orderID, Quantity: 2,
	})
	f.append(t, wal.OpLineAdded, wal.LineAdded{
		OrderID: f.orderID, LineID: f.lineID, ProductID: f.productID,
		SKU: "ESP-001", ProductName: "Espresso", UnitPriceCents: 350,
		Quantity: 2, ReservationID: f.resID, Version: 2,
	})

	_, err := store.Recover(f.st, f.ledger, f.log)
	require.NoError(t, err)

	ord, ok := f.st.OrderByID(f.orderID)
	require.True(t, ok)
	assert.Equal(t, "draft", ord.Status)
	require.Len(t, ord.Lines, 1)
	assert.Equal(t, f.resID, ord.Lines[0].ReservationID)

	// the hold survived; stock untouched
	available, err := f.ledger.Available(f.productID)
	require.NoError(t, err)
	assert.Equal(t, 18, available)
	product, _ := f.st.ProductByID(f.productID)
	assert.Equal(t, 20, product.Stock)
}

func TestRecoverReplaysCancellation(t *testing.T) {
	f := newSaleFixture(t)
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	f.append(t, wal.OpOrderCreated, wal.OrderCreated{
		OrderID: f.orderID, TaxRuleName: "standard", TaxRatePercent: 10,
		Version: 1, CreatedAt: now,
	})
	f.append(t, wal.OpStockReserved, wal.StockReserved{
		ReservationID: f.resID, ProductID: f.productID, OrderID: f.orderID, Quantity: 2,
	})
	f.append(t, wal.OpLineAdded, wal.LineAdded{
		OrderID: f.orderID, LineID: f.lineID, ProductID: f.productID,
		SKU: "ESP-001", ProductName: "Espresso", UnitPriceCents: 350,
		Quantity: 2, ReservationID: f.resID, Version: 2,
	})
	f.append(t, wal.OpOrderCancelled, wal.OrderCancelled{OrderID: f.orderID, Version: 3})
	// crash before the stock release record was written

	_, err := store.Recover(f.st, f.ledger, f.log)
	require.NoError(t, err)

	_, ok := f.st.OrderByID(f.orderID)
	assert.False(t, ok)

	available, err := f.ledger.Available(f.productID)
	require.NoError(t, err)
	assert.Equal(t, 20, available)
}

func TestRecoverSkipsRecordsAtOrBelowCheckpoint(t *testing.T) {
	f := newSaleFixture(t)
	f.journalSale(t)

	// pretend a snapshot already covers the whole journal
	f.st.SetCheckpoint(f.log.LastSeq())

	replayed, err := store.Recover(f.st, f.ledger, f.log)
	require.NoError(t, err)
	assert.Zero(t, replayed)

	product, _ := f.st.ProductByID(f.productID)
	assert.Equal(t, 20, product.Stock)
}

func TestRecoverIsIdempotentAcrossRestarts(t *testing.T) {
	f := newSaleFixture(t)
	f.journalSale(t)

	_, err := store.Recover(f.st, f.ledger, f.log)
	require.NoError(t, err)

	// a second recovery pass over the same journal changes nothing
	replayed, err := store.Recover(f.st, f.ledger, f.log)
	require.NoError(t, err)
	assert.Zero(t, replayed)

	product, _ := f.st.ProductByID(f.productID)
	assert.Equal(t, 18, product.Stock)
	cust, _ := f.st.CustomerByID(f.customerID)
	assert.EqualValues(t, 500, cust.StoreCreditCents)
}
