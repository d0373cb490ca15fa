package repository

import (
	"time"

	"tillpoint/internal/domain/receipt"
	"tillpoint/internal/infra/store"
	"tillpoint/internal/pkg/errs"
	"tillpoint/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type ReceiptRepository struct {
	store *store.Store
}

func NewReceiptRepository(st *store.Store) *ReceiptRepository {
	return &ReceiptRepository{store: st}
}

func (r *ReceiptRepository) Append(rcpt *receipt.Receipt) error {
	r.store.AppendReceipt(store.FromReceipt(rcpt))
	return nil
}

func (r *ReceiptRepository) NextSequence() uint64 {
	return r.store.NextReceiptSeq()
}

// ListBetween serves the read side; receipt records map onto views
// field-for-field.
func (r *ReceiptRepository) ListBetween(from, to time.Time) ([]queries.ReceiptView, error) {
	recs := r.store.ReceiptsBetween(from, to)
	views := make([]queries.ReceiptView, 0, len(recs))
	for _, rec := range recs {
		var view queries.ReceiptView
		if err := copier.Copy(&view, &rec); err != nil {
			return nil, errs.Wrap(err, "failed to map receipt view")
		}
		views = append(views, view)
	}
	return views, nil
}
