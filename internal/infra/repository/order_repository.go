package repository

import (
	"tillpoint/internal/infra/store"
	"tillpoint/internal/pkg/errs"
	"tillpoint/internal/usecase/commands"

	"github.com/google/uuid"
)

type OrderRepository struct {
	store *store.Store
}

func NewOrderRepository(st *store.Store) *OrderRepository {
	return &OrderRepository{store: st}
}

func (r *OrderRepository) Find(orderID uuid.UUID) (commands.DraftOrder, error) {
	rec, ok := r.store.OrderByID(orderID)
	if !ok {
		return commands.DraftOrder{}, errs.ErrOrderNotFound
	}
	return toDraft(rec)
}

func (r *OrderRepository) Save(draft commands.DraftOrder) error {
	r.store.PutOrder(store.FromOrder(draft.Order, draft.Reservations))
	return nil
}

func (r *OrderRepository) Remove(orderID uuid.UUID) {
	r.store.RemoveOrder(orderID)
}

func (r *OrderRepository) ListOpen() ([]commands.DraftOrder, error) {
	recs := r.store.OpenOrders()
	out := make([]commands.DraftOrder, 0, len(recs))
	for _, rec := range recs {
		draft, err := toDraft(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, draft)
	}
	return out, nil
}

func toDraft(rec store.OrderRecord) (commands.DraftOrder, error) {
	ord, err := store.ToOrder(rec)
	if err != nil {
		return commands.DraftOrder{}, errs.Wrap(err, "failed to materialize order")
	}

	reservations := make(map[uuid.UUID]uuid.UUID, len(rec.Lines))
	for _, l := range rec.Lines {
		reservations[l.ID] = l.ReservationID
	}
	return commands.DraftOrder{Order: ord, Reservations: reservations}, nil
}
