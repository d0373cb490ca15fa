package wal

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OpType string

// Every state-changing operation of the engine has a WAL op. The record is
// appended and synced before the in-memory state changes; recovery replays
// records past the snapshot checkpoint.
const (
	OpOrderCreated        OpType = "order_created"
	OpLineAdded           OpType = "order_line_added"
	OpLineRemoved         OpType = "order_line_removed"
	OpLineQuantityUpdated OpType = "order_line_qty_updated"
	OpPaymentBegun        OpType = "order_payment_begun"
	OpPaymentRecorded     OpType = "payment_recorded"
	OpOrderFinalized      OpType = "order_finalized"
	OpOrderCancelled      OpType = "order_cancelled"
	OpStockReserved       OpType = "stock_reserved"
	OpStockCommitted      OpType = "stock_committed"
	OpStockReleased       OpType = "stock_released"
)

type Record struct {
	Seq     uint64          `json:"seq"`
	At      time.Time       `json:"at"`
	Op      OpType          `json:"op"`
	Payload json.RawMessage `json:"payload"`
}

func (r Record) Decode(into any) error {
	return json.Unmarshal(r.Payload, into)
}

// Order payloads carry the order's version after the operation; replay
// skips any record whose version the materialized order already reflects.

type OrderCreated struct {
	OrderID        uuid.UUID  `json:"order_id"`
	CustomerID     *uuid.UUID `json:"customer_id,omitempty"`
	TaxRuleName    string     `json:"tax_rule_name"`
	TaxRatePercent float64    `json:"tax_rate_percent"`
	DiscountPct    *float64   `json:"discount_pct,omitempty"`
	DiscountCents  *int64     `json:"discount_cents,omitempty"`
	DiscountPreTax bool       `json:"discount_pre_tax"`
	Version        uint64     `json:"version"`
	CreatedAt      time.Time  `json:"created_at"`
}

type LineAdded struct {
	OrderID        uuid.UUID `json:"order_id"`
	LineID         uuid.UUID `json:"line_id"`
	ProductID      uuid.UUID `json:"product_id"`
	SKU            string    `json:"sku"`
	ProductName    string    `json:"product_name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	ReservationID  uuid.UUID `json:"reservation_id"`
	Version        uint64    `json:"version"`
}

type LineRemoved struct {
	OrderID uuid.UUID `json:"order_id"`
	LineID  uuid.UUID `json:"line_id"`
	Version uint64    `json:"version"`
}

type LineQuantityUpdated struct {
	OrderID       uuid.UUID `json:"order_id"`
	LineID        uuid.UUID `json:"line_id"`
	Quantity      int       `json:"quantity"`
	ReservationID uuid.UUID `json:"reservation_id"`
	Version       uint64    `json:"version"`
}

type PaymentBegun struct {
	OrderID uuid.UUID `json:"order_id"`
	Version uint64    `json:"version"`
}

type PaymentRecorded struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	OrderID     uuid.UUID `json:"order_id"`
	Method      string    `json:"method"`
	AmountCents int64     `json:"amount_cents"`
	AuthRef     *string   `json:"auth_ref,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// OrderFinalized is the single commit point of a sale. Its reservation
// list lets replay settle stock holds even when the individual stock
// records after it never made it to disk.
type OrderFinalized struct {
	OrderID            uuid.UUID   `json:"order_id"`
	ReceiptID          uuid.UUID   `json:"receipt_id"`
	ReceiptSeq         uint64      `json:"receipt_seq"`
	CustomerID         *uuid.UUID  `json:"customer_id,omitempty"`
	CreditUsedCents    int64       `json:"credit_used_cents"`
	CommitReservations []uuid.UUID `json:"commit_reservations"`
	IssuedAt           time.Time   `json:"issued_at"`
	Version            uint64      `json:"version"`
}

type OrderCancelled struct {
	OrderID uuid.UUID `json:"order_id"`
	Version uint64    `json:"version"`
}

type StockReserved struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	ProductID     uuid.UUID `json:"product_id"`
	OrderID       uuid.UUID `json:"order_id"`
	Quantity      int       `json:"quantity"`
}

type StockCommitted struct {
	ReservationID uuid.UUID `json:"reservation_id"`
}

type StockReleased struct {
	ReservationID uuid.UUID `json:"reservation_id"`
}
