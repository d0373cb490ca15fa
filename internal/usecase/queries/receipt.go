package queries

import (
	"context"
	"time"

	"tillpoint/internal/pkg/errs"
)

type ReceiptQuery struct {
	reader ReceiptViewReader
}

func NewReceiptQuery(reader ReceiptViewReader) *ReceiptQuery {
	return &ReceiptQuery{reader: reader}
}

// ListCompleted returns receipts issued in [from, to), oldest first.
func (q *ReceiptQuery) ListCompleted(ctx context.Context, from, to time.Time) ([]ReceiptView, error) {
	if !from.Before(to) {
		return nil, errs.New("range start must precede range end")
	}
	return q.reader.ListBetween(from, to)
}
