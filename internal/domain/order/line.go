package order

import (
	"tillpoint/internal/domain/money"
	"tillpoint/internal/domain/pricing"

	"github.com/google/uuid"
)

// Line references a catalog product and snapshots its unit price at add
// time, so later catalog price changes never affect an open order.
type Line struct {
	id          uuid.UUID
	productID   uuid.UUID
	sku         string
	productName string
	unitPrice   money.Money
	quantity    int
}

func (l Line) ID() uuid.UUID          { return l.id }
func (l Line) ProductID() uuid.UUID   { return l.productID }
func (l Line) SKU() string            { return l.sku }
func (l Line) ProductName() string    { return l.productName }
func (l Line) UnitPrice() money.Money { return l.unitPrice }
func (l Line) Quantity() int          { return l.quantity }

func (l Line) Subtotal() money.Money {
	return l.unitPrice.MulQty(l.quantity)
}

func (l Line) pricingLine() pricing.Line {
	return pricing.Line{UnitPrice: l.unitPrice, Quantity: l.quantity}
}

// ReconstructLine rebuilds a line from persisted state.
func ReconstructLine(id, productID uuid.UUID, sku, productName string, unitPrice money.Money, quantity int) Line {
	return Line{
		id:          id,
		productID:   productID,
		sku:         sku,
		productName: productName,
		unitPrice:   unitPrice,
		quantity:    quantity,
	}
}
