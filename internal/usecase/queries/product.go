package queries

import (
	"context"

	"tillpoint/internal/pkg/errs"
)

type ProductQuery struct {
	reader ProductViewReader
}

func NewProductQuery(reader ProductViewReader) *ProductQuery {
	return &ProductQuery{reader: reader}
}

func (q *ProductQuery) BySKU(ctx context.Context, sku string) (ProductView, error) {
	if sku == "" {
		return ProductView{}, errs.New("sku must not be empty")
	}
	return q.reader.BySKU(sku)
}

func (q *ProductQuery) List(ctx context.Context) ([]ProductView, error) {
	return q.reader.List()
}

// LowStock lists products whose on-hand stock is at or below the
// threshold, most depleted first.
func (q *ProductQuery) LowStock(ctx context.Context, threshold int) ([]ProductView, error) {
	if threshold < 0 {
		return nil, errs.New("threshold must not be negative")
	}
	return q.reader.LowStock(threshold)
}
