package repository

import (
	"tillpoint/internal/domain/payment"
	"tillpoint/internal/infra/store"

	"github.com/google/uuid"
)

type PaymentRepository struct {
	store *store.Store
}

func NewPaymentRepository(st *store.Store) *PaymentRepository {
	return &PaymentRepository{store: st}
}

func (r *PaymentRepository) Append(rec *payment.Record) error {
	r.store.AppendPayment(store.FromPayment(rec))
	return nil
}

func (r *PaymentRepository) ListFor(orderID uuid.UUID) ([]*payment.Record, error) {
	recs := r.store.PaymentsFor(orderID)
	out := make([]*payment.Record, 0, len(recs))
	for _, rec := range recs {
		p, err := store.ToPayment(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
