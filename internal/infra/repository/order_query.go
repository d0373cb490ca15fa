package repository

import (
	"tillpoint/internal/infra/store"
	"tillpoint/internal/pkg/errs"
	"tillpoint/internal/usecase/queries"

	"github.com/google/uuid"
)

// OrderQueryRepository materializes live-order read models. Totals are
// recomputed from the lines on every read.
type OrderQueryRepository struct {
	store *store.Store
}

func NewOrderQueryRepository(st *store.Store) *OrderQueryRepository {
	return &OrderQueryRepository{store: st}
}

func (r *OrderQueryRepository) Get(orderID uuid.UUID) (queries.OrderView, error) {
	rec, ok := r.store.OrderByID(orderID)
	if !ok {
		return queries.OrderView{}, errs.ErrOrderNotFound
	}

	totals, err := store.TotalsFor(rec)
	if err != nil {
		return queries.OrderView{}, errs.Wrap(err, "failed to compute order totals")
	}

	var paid int64
	for _, p := range r.store.PaymentsFor(orderID) {
		paid += p.AmountCents
	}

	view := queries.OrderView{
		ID:              rec.ID,
		CustomerID:      rec.CustomerID,
		Status:          rec.Status,
		SubtotalCents:   totals.Subtotal.Cents(),
		DiscountCents:   totals.DiscountAmount.Cents(),
		TaxCents:        totals.TaxAmount.Cents(),
		GrandTotalCents: totals.GrandTotal.Cents(),
		PaidCents:       paid,
		Version:         rec.Version,
		CreatedAt:       rec.CreatedAt,
	}
	for _, l := range rec.Lines {
		view.Lines = append(view.Lines, queries.OrderLineView{
			ID:             l.ID,
			SKU:            l.SKU,
			ProductName:    l.ProductName,
			UnitPriceCents: l.UnitPriceCents,
			Quantity:       l.Quantity,
			SubtotalCents:  l.UnitPriceCents * int64(l.Quantity),
		})
	}
	return view, nil
}
