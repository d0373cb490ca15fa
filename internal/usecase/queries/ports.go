package queries

import (
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/queries/ports_mock.go -package=mock_queries

// Read models served straight from the store; no domain objects cross
// this boundary.

type OrderLineView struct {
	ID             uuid.UUID `json:"id"`
	SKU            string    `json:"sku"`
	ProductName    string    `json:"product_name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	SubtotalCents  int64     `json:"subtotal_cents"`
}

type OrderView struct {
	ID              uuid.UUID       `json:"id"`
	CustomerID      *uuid.UUID      `json:"customer_id,omitempty"`
	Status          string          `json:"status"`
	Lines           []OrderLineView `json:"lines"`
	SubtotalCents   int64           `json:"subtotal_cents"`
	DiscountCents   int64           `json:"discount_cents"`
	TaxCents        int64           `json:"tax_cents"`
	GrandTotalCents int64           `json:"grand_total_cents"`
	PaidCents       int64           `json:"paid_cents"`
	Version         uint64          `json:"version"`
	CreatedAt       time.Time       `json:"created_at"`
}

type ReceiptLineView struct {
	SKU            string `json:"sku"`
	ProductName    string `json:"product_name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	SubtotalCents  int64  `json:"subtotal_cents"`
}

type ReceiptPaymentView struct {
	Method      string  `json:"method"`
	AmountCents int64   `json:"amount_cents"`
	AuthRef     *string `json:"auth_ref,omitempty"`
}

type ReceiptView struct {
	ID              uuid.UUID            `json:"id"`
	SequenceNo      uint64               `json:"sequence_no"`
	OrderID         uuid.UUID            `json:"order_id"`
	CustomerID      *uuid.UUID           `json:"customer_id,omitempty"`
	Lines           []ReceiptLineView    `json:"lines"`
	SubtotalCents   int64                `json:"subtotal_cents"`
	DiscountCents   int64                `json:"discount_cents"`
	TaxCents        int64                `json:"tax_cents"`
	GrandTotalCents int64                `json:"grand_total_cents"`
	Payments        []ReceiptPaymentView `json:"payments"`
	IssuedAt        time.Time            `json:"issued_at"`
}

type ProductView struct {
	ID             uuid.UUID `json:"id"`
	SKU            string    `json:"sku"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Stock          int       `json:"stock"`
	Available      int       `json:"available"`
}

type OrderViewReader interface {
	Get(orderID uuid.UUID) (OrderView, error)
}

type ReceiptViewReader interface {
	ListBetween(from, to time.Time) ([]ReceiptView, error)
}

type ProductViewReader interface {
	BySKU(sku string) (ProductView, error)
	List() ([]ProductView, error)
	LowStock(threshold int) ([]ProductView, error)
}
