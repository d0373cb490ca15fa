package commands

import (
	"tillpoint/internal/domain/catalog"
	"tillpoint/internal/domain/customer"
	"tillpoint/internal/domain/money"
	"tillpoint/internal/domain/order"
	"tillpoint/internal/domain/payment"
	"tillpoint/internal/domain/receipt"
	"tillpoint/internal/domain/user"
	"tillpoint/internal/infra/wal"
	"tillpoint/internal/inventory"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/commands/ports_mock.go -package=mock_commands

// DraftOrder pairs the order aggregate with the stock holds backing its
// lines. The mapping is persistence detail the aggregate itself does not
// carry.
type DraftOrder struct {
	Order        *order.Order
	Reservations map[uuid.UUID]uuid.UUID // line ID -> reservation ID
}

type OrderRepository interface {
	Find(orderID uuid.UUID) (DraftOrder, error)
	Save(draft DraftOrder) error
	Remove(orderID uuid.UUID)
	ListOpen() ([]DraftOrder, error)
}

type ProductReader interface {
	FindBySKU(sku string) (*catalog.Product, error)
	FindByID(productID uuid.UUID) (*catalog.Product, error)
}

type CustomerRepository interface {
	Find(customerID uuid.UUID) (*customer.Customer, error)
	DeductCredit(customerID uuid.UUID, amount money.Money) error
}

type PaymentRepository interface {
	Append(rec *payment.Record) error
	ListFor(orderID uuid.UUID) ([]*payment.Record, error)
}

type ReceiptRepository interface {
	Append(r *receipt.Receipt) error
	NextSequence() uint64
}

type UserReader interface {
	FindByUsername(username string) (*user.User, error)
	FindByID(userID uuid.UUID) (*user.User, error)
}

// StockLedger is the reservation surface the coordinator drives.
type StockLedger interface {
	Reserve(productID uuid.UUID, qty int, orderID uuid.UUID) (uuid.UUID, error)
	ReserveReplacing(oldID, productID uuid.UUID, qty int, orderID uuid.UUID) (uuid.UUID, error)
	Release(reservationID uuid.UUID) error
	Settle(orderID uuid.UUID, commitIDs []uuid.UUID) error
	ReleaseForOrder(orderID uuid.UUID) error
}

// Journal is the write-ahead log. Command handlers append the operation
// record before applying the matching state change.
type Journal interface {
	Append(op wal.OpType, payload any) (uint64, error)
}

var _ StockLedger = (*inventory.Ledger)(nil)
