package queries

import (
	"context"

	"github.com/google/uuid"
)

type OrderQuery struct {
	reader OrderViewReader
}

func NewOrderQuery(reader OrderViewReader) *OrderQuery {
	return &OrderQuery{reader: reader}
}

func (q *OrderQuery) Get(ctx context.Context, orderID uuid.UUID) (OrderView, error) {
	return q.reader.Get(orderID)
}
