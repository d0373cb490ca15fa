//go:build unit

package commands_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tillpoint/internal/domain/order"
	"tillpoint/internal/infra/repository"
	"tillpoint/internal/infra/store"
	"tillpoint/internal/infra/wal"
	"tillpoint/internal/inventory"
	"tillpoint/internal/pkg/clock"
	"tillpoint/internal/pkg/errs"
	"tillpoint/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	coordinator *commands.TransactionCoordinator
	st          *store.Store
	ledger      *inventory.Ledger
	log         *wal.Log
	clk         *clock.MockClock
	productID   uuid.UUID
	customerID  uuid.UUID
}

func newEnv(t *testing.T) *env {
	t.Helper()

	log, err := wal.Open(filepath.Join(t.TempDir(), "journal.log"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })

	st := store.New()
	ledger := inventory.NewLedger(st, log)
	clk := clock.NewMockClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	e := &env{
		st:         st,
		ledger:     ledger,
		log:        log,
		clk:        clk,
		productID:  uuid.New(),
		customerID: uuid.New(),
	}
	st.PutProduct(store.ProductRecord{ID: e.productID, SKU: "ESP-001", Name: "Espresso", UnitPriceCents: 350, Stock: 20})
	st.PutCustomer(store.CustomerRecord{ID: e.customerID, Name: "Dana", StoreCreditCents: 1000})

	e.coordinator = commands.NewTransactionCoordinator(
		repository.NewOrderRepository(st),
		repository.NewProductRepository(st, ledger),
		repository.NewCustomerRepository(st),
		repository.NewPaymentRepository(st),
		repository.NewReceiptRepository(st),
		ledger,
		log,
		clk,
	)
	return e
}

func (e *env) draft(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := e.coordinator.CreateDraft(context.Background(), commands.CreateDraftInput{
		CustomerID:     &e.customerID,
		TaxRuleName:    "standard",
		TaxRatePercent: 10,
	})
	require.NoError(t, err)
	return id
}

func (e *env) draftWithLine(t *testing.T, qty int) uuid.UUID {
	t.Helper()
	orderID := e.draft(t)
	_, err := e.coordinator.AddLine(context.Background(), orderID, commands.AddLineInput{SKU: "ESP-001", Quantity: qty})
	require.NoError(t, err)
	return orderID
}

func TestFullSaleLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	orderID := e.draftWithLine(t, 2)
	require.NoError(t, e.coordinator.BeginPayment(ctx, orderID))

	// split payment: store credit then cash for the rest of the 770 total
	progress, err := e.coordinator.RecordPayment(ctx, orderID, commands.RecordPaymentInput{
		Method: "store_credit", AmountCents: 500,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 270, progress.RemainingCents)

	_, err = e.coordinator.RecordPayment(ctx, orderID, commands.RecordPaymentInput{
		Method: "cash", AmountCents: 270,
	})
	require.NoError(t, err)

	result, err := e.coordinator.Finalize(ctx, orderID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.ReceiptSeq)

	// the live order is gone, stock is sold, credit captured
	_, ok := e.st.OrderByID(orderID)
	assert.False(t, ok)
	product, _ := e.st.ProductByID(e.productID)
	assert.Equal(t, 18, product.Stock)
	cust, _ := e.st.CustomerByID(e.customerID)
	assert.EqualValues(t, 500, cust.StoreCreditCents)

	rcpt, ok := e.st.ReceiptByOrderID(orderID)
	require.True(t, ok)
	assert.EqualValues(t, 770, rcpt.GrandTotalCents)
	assert.Equal(t, result.ReceiptID, rcpt.ID)
	assert.Empty(t, e.ledger.Snapshot())
}

func TestAddLineRejectsInsufficientStock(t *testing.T) {
	e := newEnv(t)
	orderID := e.draft(t)

	_, err := e.coordinator.AddLine(context.Background(), orderID, commands.AddLineInput{SKU: "ESP-001", Quantity: 21})
	assert.ErrorIs(t, err, errs.ErrInsufficientStock)

	// nothing was held
	available, err := e.ledger.Available(e.productID)
	require.NoError(t, err)
	assert.Equal(t, 20, available)
}

func TestAddLineUnknownSKU(t *testing.T) {
	e := newEnv(t)
	orderID := e.draft(t)

	_, err := e.coordinator.AddLine(context.Background(), orderID, commands.AddLineInput{SKU: "NOPE", Quantity: 1})
	assert.ErrorIs(t, err, errs.ErrProductNotFound)
}

func TestRemoveLineReleasesHold(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	orderID := e.draft(t)

	lineID, err := e.coordinator.AddLine(ctx, orderID, commands.AddLineInput{SKU: "ESP-001", Quantity: 5})
	require.NoError(t, err)

	require.NoError(t, e.coordinator.RemoveLine(ctx, orderID, lineID))

	available, err := e.ledger.Available(e.productID)
	require.NoError(t, err)
	assert.Equal(t, 20, available)
}

func TestUpdateQuantityReReserves(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	orderID := e.draft(t)

	lineID, err := e.coordinator.AddLine(ctx, orderID, commands.AddLineInput{SKU: "ESP-001", Quantity: 18})
	require.NoError(t, err)

	// 18 held out of 20; raising to 20 only works because the old hold
	// counts as free during the swap
	require.NoError(t, e.coordinator.UpdateQuantity(ctx, orderID, lineID, 20))

	available, err := e.ledger.Available(e.productID)
	require.NoError(t, err)
	assert.Equal(t, 0, available)

	err = e.coordinator.UpdateQuantity(ctx, orderID, lineID, 21)
	assert.ErrorIs(t, err, errs.ErrInsufficientStock)

	// the failed update left the previous hold intact
	available, err = e.ledger.Available(e.productID)
	require.NoError(t, err)
	assert.Equal(t, 0, available)
}

func TestBeginPaymentRequiresLines(t *testing.T) {
	e := newEnv(t)
	orderID := e.draft(t)

	err := e.coordinator.BeginPayment(context.Background(), orderID)
	assert.ErrorIs(t, err, order.ErrEmptyOrder)
}

func TestLinesFrozenAfterBeginPayment(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	orderID := e.draftWithLine(t, 2)
	require.NoError(t, e.coordinator.BeginPayment(ctx, orderID))

	_, err := e.coordinator.AddLine(ctx, orderID, commands.AddLineInput{SKU: "ESP-001", Quantity: 1})
	assert.ErrorIs(t, err, order.ErrInvalidState)
}

func TestRecordPaymentBeforeBeginPayment(t *testing.T) {
	e := newEnv(t)
	orderID := e.draftWithLine(t, 2)

	_, err := e.coordinator.RecordPayment(context.Background(), orderID, commands.RecordPaymentInput{
		Method: "cash", AmountCents: 770,
	})
	assert.ErrorIs(t, err, order.ErrInvalidState)
}

func TestRecordPaymentRejectsOverpayment(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	orderID := e.draftWithLine(t, 2)
	require.NoError(t, e.coordinator.BeginPayment(ctx, orderID))

	_, err := e.coordinator.RecordPayment(ctx, orderID, commands.RecordPaymentInput{
		Method: "cash", AmountCents: 771,
	})
	assert.True(t, errs.Is(err, errs.ErrPaymentMismatch))
}

func TestRecordPaymentStoreCreditLimit(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	// 3 units -> 1155 total, above the customer's 1000 credit
	orderID := e.draftWithLine(t, 3)
	require.NoError(t, e.coordinator.BeginPayment(ctx, orderID))

	_, err := e.coordinator.RecordPayment(ctx, orderID, commands.RecordPaymentInput{
		Method: "store_credit", AmountCents: 1100,
	})
	assert.ErrorIs(t, err, errs.ErrInsufficientCredit)

	// two credit payments may not exceed the balance together
	_, err = e.coordinator.RecordPayment(ctx, orderID, commands.RecordPaymentInput{
		Method: "store_credit", AmountCents: 800,
	})
	require.NoError(t, err)
	_, err = e.coordinator.RecordPayment(ctx, orderID, commands.RecordPaymentInput{
		Method: "store_credit", AmountCents: 300,
	})
	assert.ErrorIs(t, err, errs.ErrInsufficientCredit)
}

func TestStoreCreditRequiresCustomer(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	orderID, err := e.coordinator.CreateDraft(ctx, commands.CreateDraftInput{
		TaxRuleName:    "standard",
		TaxRatePercent: 10,
	})
	require.NoError(t, err)
	_, err = e.coordinator.AddLine(ctx, orderID, commands.AddLineInput{SKU: "ESP-001", Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, e.coordinator.BeginPayment(ctx, orderID))

	_, err = e.coordinator.RecordPayment(ctx, orderID, commands.RecordPaymentInput{
		Method: "store_credit", AmountCents: 100,
	})
	assert.True(t, errs.Is(err, errs.ErrInsufficientCredit))
}

func TestCardPaymentRequiresAuthRef(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	orderID := e.draftWithLine(t, 2)
	require.NoError(t, e.coordinator.BeginPayment(ctx, orderID))

	_, err := e.coordinator.RecordPayment(ctx, orderID, commands.RecordPaymentInput{
		Method: "card", AmountCents: 770,
	})
	assert.Error(t, err)

	bad := "x!"
	_, err = e.coordinator.RecordPayment(ctx, orderID, commands.RecordPaymentInput{
		Method: "card", AmountCents: 770, AuthRef: &bad,
	})
	assert.Error(t, err)

	ref := "AUTH-12345678"
	_, err = e.coordinator.RecordPayment(ctx, orderID, commands.RecordPaymentInput{
		Method: "card", AmountCents: 770, AuthRef: &ref,
	})
	assert.NoError(t, err)
}

func TestFinalizeRequiresExactSum(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	orderID := e.draftWithLine(t, 2)
	require.NoError(t, e.coordinator.BeginPayment(ctx, orderID))

	_, err := e.coordinator.RecordPayment(ctx, orderID, commands.RecordPaymentInput{
		Method: "cash", AmountCents: 700,
	})
	require.NoError(t, err)

	_, err = e.coordinator.Finalize(ctx, orderID)
	assert.ErrorIs(t, err, errs.ErrPaymentMismatch)

	// topping up to the exact total unblocks finalize
	_, err = e.coordinator.RecordPayment(ctx, orderID, commands.RecordPaymentInput{
		Method: "cash", AmountCents: 70,
	})
	require.NoError(t, err)
	_, err = e.coordinator.Finalize(ctx, orderID)
	assert.NoError(t, err)
}

func TestReceiptSequenceIsMonotonic(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	for want := uint64(1); want <= 3; want++ {
		orderID := e.draftWithLine(t, 1)
		require.NoError(t, e.coordinator.BeginPayment(ctx, orderID))
		_, err := e.coordinator.RecordPayment(ctx, orderID, commands.RecordPaymentInput{
			Method: "cash", AmountCents: 385,
		})
		require.NoError(t, err)

		result, err := e.coordinator.Finalize(ctx, orderID)
		require.NoError(t, err)
		assert.Equal(t, want, result.ReceiptSeq)
	}
}

func TestCancelReleasesHolds(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	orderID := e.draftWithLine(t, 5)

	require.NoError(t, e.coordinator.Cancel(ctx, orderID))

	_, ok := e.st.OrderByID(orderID)
	assert.False(t, ok)
	available, err := e.ledger.Available(e.productID)
	require.NoError(t, err)
	assert.Equal(t, 20, available)

	// cancelling again: the order no longer exists
	assert.ErrorIs(t, e.coordinator.Cancel(ctx, orderID), errs.ErrOrderNotFound)
}

func TestCancelDuringPendingPayment(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	orderID := e.draftWithLine(t, 2)
	require.NoError(t, e.coordinator.BeginPayment(ctx, orderID))
	_, err := e.coordinator.RecordPayment(ctx, orderID, commands.RecordPaymentInput{
		Method: "cash", AmountCents: 500,
	})
	require.NoError(t, err)

	require.NoError(t, e.coordinator.Cancel(ctx, orderID))

	available, err := e.ledger.Available(e.productID)
	require.NoError(t, err)
	assert.Equal(t, 20, available)
	assert.Empty(t, e.st.PaymentsFor(orderID))
}

func TestCancelIdleSweepsOnlyStaleOrders(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	stale := e.draftWithLine(t, 2)
	e.clk.Add(20 * time.Minute)
	fresh := e.draftWithLine(t, 1)

	swept, err := e.coordinator.CancelIdle(15 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, swept)

	_, ok := e.st.OrderByID(stale)
	assert.False(t, ok)
	_, ok = e.st.OrderByID(fresh)
	assert.True(t, ok)

	// activity on an order resets its idle clock
	e.clk.Add(10 * time.Minute)
	_, err = e.coordinator.AddLine(ctx, fresh, commands.AddLineInput{SKU: "ESP-001", Quantity: 1})
	require.NoError(t, err)
	e.clk.Add(10 * time.Minute)

	swept, err = e.coordinator.CancelIdle(15 * time.Minute)
	require.NoError(t, err)
	assert.Zero(t, swept)
}

func TestRestartResumesMidTransaction(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	orderID := e.draftWithLine(t, 2)
	require.NoError(t, e.coordinator.BeginPayment(ctx, orderID))
	_, err := e.coordinator.RecordPayment(ctx, orderID, commands.RecordPaymentInput{
		Method: "cash", AmountCents: 500,
	})
	require.NoError(t, err)

	// simulate a crash: rebuild state from the journal alone
	st2 := store.New()
	st2.PutProduct(store.ProductRecord{ID: e.productID, SKU: "ESP-001", Name: "Espresso", UnitPriceCents: 350, Stock: 20})
	st2.PutCustomer(store.CustomerRecord{ID: e.customerID, Name: "Dana", StoreCreditCents: 1000})
	ledger2 := inventory.NewLedger(st2, e.log)
	_, err = store.Recover(st2, ledger2, e.log)
	require.NoError(t, err)

	coordinator2 := commands.NewTransactionCoordinator(
		repository.NewOrderRepository(st2),
		repository.NewProductRepository(st2, ledger2),
		repository.NewCustomerRepository(st2),
		repository.NewPaymentRepository(st2),
		repository.NewReceiptRepository(st2),
		ledger2,
		e.log,
		e.clk,
	)
	require.NoError(t, coordinator2.ResumeOpenOrders(ctx))

	// the pending payment survived; pay the rest and complete the sale
	progress, err := coordinator2.RecordPayment(ctx, orderID, commands.RecordPaymentInput{
		Method: "cash", AmountCents: 270,
	})
	require.NoError(t, err)
	assert.Zero(t, progress.RemainingCents)

	result, err := coordinator2.Finalize(ctx, orderID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.ReceiptSeq)

	product, _ := st2.ProductByID(e.productID)
	assert.Equal(t, 18, product.Stock)
}
