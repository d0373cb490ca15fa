//go:build unit

package builder

import (
	"tillpoint/internal/domain/catalog"
	"tillpoint/internal/domain/money"
	"tillpoint/internal/infra/store"
	"tillpoint/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProductBuilder struct {
	ID             uuid.UUID
	SKU            string
	Name           string
	UnitPriceCents int64
	Stock          int
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		ID:             uuid.New(),
		SKU:            "TEA-001",
		Name:           "Green Tea",
		UnitPriceCents: 350,
		Stock:          10,
	}
}

func (p *ProductBuilder) BuildDomain() (*catalog.Product, error) {
	return catalog.NewProduct(p.ID, p.SKU, p.Name, money.New(p.UnitPriceCents), p.Stock)
}

func (p *ProductBuilder) BuildRecord() store.ProductRecord {
	return store.ProductRecord{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		UnitPriceCents: p.UnitPriceCents,
		Stock:          p.Stock,
	}
}

func (p *ProductBuilder) BuildView(available int) queries.ProductView {
	return queries.ProductView{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		UnitPriceCents: p.UnitPriceCents,
		Stock:          p.Stock,
		Available:      available,
	}
}

func (p *ProductBuilder) WithSKU(sku string) *ProductBuilder {
	p.SKU = sku
	return p
}

func (p *ProductBuilder) WithName(name string) *ProductBuilder {
	p.Name = name
	return p
}

func (p *ProductBuilder) WithUnitPriceCents(cents int64) *ProductBuilder {
	p.UnitPriceCents = cents
	return p
}

func (p *ProductBuilder) WithStock(stock int) *ProductBuilder {
	p.Stock = stock
	return p
}
