package catalog

import (
	"errors"
	"strings"

	"tillpoint/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrEmptySKU      = errors.New("sku cannot be empty")
	ErrEmptyName     = errors.New("product name cannot be empty")
	ErrNegativeStock = errors.New("stock quantity cannot be negative")
)

// Product is owned by the catalog; orders reference it and snapshot its
// unit price at add time.
type Product struct {
	id        uuid.UUID
	sku       string
	name      string
	unitPrice money.Money
	stock     int
}

func NewProduct(id uuid.UUID, sku, name string, unitPrice money.Money, stock int) (*Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, ErrEmptySKU
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if unitPrice.IsNegative() {
		return nil, money.ErrNegativeAmount
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Product{
		id:        id,
		sku:       sku,
		name:      name,
		unitPrice: unitPrice,
		stock:     stock,
	}, nil
}

func (p *Product) ID() uuid.UUID          { return p.id }
func (p *Product) SKU() string            { return p.sku }
func (p *Product) Name() string           { return p.name }
func (p *Product) UnitPrice() money.Money { return p.unitPrice }
func (p *Product) Stock() int             { return p.stock }
