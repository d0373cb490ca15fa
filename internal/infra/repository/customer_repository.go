package repository

import (
	"tillpoint/internal/domain/customer"
	"tillpoint/internal/domain/money"
	"tillpoint/internal/infra/store"
	"tillpoint/internal/pkg/errs"

	"github.com/google/uuid"
)

type CustomerRepository struct {
	store *store.Store
}

func NewCustomerRepository(st *store.Store) *CustomerRepository {
	return &CustomerRepository{store: st}
}

func (r *CustomerRepository) Find(customerID uuid.UUID) (*customer.Customer, error) {
	rec, ok := r.store.CustomerByID(customerID)
	if !ok {
		return nil, errs.ErrCustomerNotFound
	}
	return store.ToCustomer(rec)
}

func (r *CustomerRepository) DeductCredit(customerID uuid.UUID, amount money.Money) error {
	return r.store.DeductStoreCredit(customerID, amount.Cents())
}
