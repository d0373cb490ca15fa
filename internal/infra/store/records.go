package store

import (
	"time"

	"github.com/google/uuid"
)

// Plain persisted rows. The store is the engine's in-memory database;
// repositories convert rows to domain objects at the boundary, the same
// place a SQL row mapper would.

type ProductRecord struct {
	ID             uuid.UUID `json:"id"`
	SKU            string    `json:"sku"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Stock          int       `json:"stock"`
}

type CustomerRecord struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	ContactNumber    string    `json:"contact_number"`
	StoreCreditCents int64     `json:"store_credit_cents"`
}

type UserRecord struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"password_hash"`
	Active       bool      `json:"active"`
}

// OrderLineRecord keeps the stock reservation backing the line; the
// domain line does not know about reservations.
type OrderLineRecord struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	SKU            string    `json:"sku"`
	ProductName    string    `json:"product_name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	ReservationID  uuid.UUID `json:"reservation_id"`
}

type OrderRecord struct {
	ID             uuid.UUID         `json:"id"`
	CustomerID     *uuid.UUID        `json:"customer_id,omitempty"`
	Lines          []OrderLineRecord `json:"lines"`
	TaxRuleName    string            `json:"tax_rule_name"`
	TaxRatePercent float64           `json:"tax_rate_percent"`
	DiscountPct    *float64          `json:"discount_pct,omitempty"`
	DiscountCents  *int64            `json:"discount_cents,omitempty"`
	DiscountPreTax bool              `json:"discount_pre_tax"`
	Status         string            `json:"status"`
	Version        uint64            `json:"version"`
	CreatedAt      time.Time         `json:"created_at"`
}

func (o OrderRecord) LineByID(lineID uuid.UUID) (OrderLineRecord, bool) {
	for _, l := range o.Lines {
		if l.ID == lineID {
			return l, true
		}
	}
	return OrderLineRecord{}, false
}

type PaymentRecord struct {
	ID          uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"order_id"`
	Method      string    `json:"method"`
	AmountCents int64     `json:"amount_cents"`
	AuthRef     *string   `json:"auth_ref,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

type ReceiptLineRecord struct {
	SKU            string `json:"sku"`
	ProductName    string `json:"product_name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	SubtotalCents  int64  `json:"subtotal_cents"`
}

type ReceiptPaymentRecord struct {
	Method      string  `json:"method"`
	AmountCents int64   `json:"amount_cents"`
	AuthRef     *string `json:"auth_ref,omitempty"`
}

type ReceiptRecord struct {
	ID              uuid.UUID              `json:"id"`
	SequenceNo      uint64                 `json:"sequence_no"`
	OrderID         uuid.UUID              `json:"order_id"`
	CustomerID      *uuid.UUID             `json:"customer_id,omitempty"`
	Lines           []ReceiptLineRecord    `json:"lines"`
	SubtotalCents   int64                  `json:"subtotal_cents"`
	DiscountCents   int64                  `json:"discount_cents"`
	TaxCents        int64                  `json:"tax_cents"`
	GrandTotalCents int64                  `json:"grand_total_cents"`
	Payments        []ReceiptPaymentRecord `json:"payments"`
	IssuedAt        time.Time              `json:"issued_at"`
}
