package repository

import (
	"sort"

	"tillpoint/internal/domain/catalog"
	"tillpoint/internal/infra/store"
	"tillpoint/internal/inventory"
	"tillpoint/internal/pkg/errs"
	"tillpoint/internal/usecase/queries"

	"github.com/google/uuid"
)

// ProductRepository serves both the command side (domain products for the
// coordinator) and the read side (catalog views with reservation-aware
// availability).
type ProductRepository struct {
	store  *store.Store
	ledger *inventory.Ledger
}

func NewProductRepository(st *store.Store, ledger *inventory.Ledger) *ProductRepository {
	return &ProductRepository{store: st, ledger: ledger}
}

func (r *ProductRepository) FindBySKU(sku string) (*catalog.Product, error) {
	rec, ok := r.store.ProductBySKU(sku)
	if !ok {
		return nil, errs.ErrProductNotFound
	}
	return store.ToProduct(rec)
}

func (r *ProductRepository) FindByID(productID uuid.UUID) (*catalog.Product, error) {
	rec, ok := r.store.ProductByID(productID)
	if !ok {
		return nil, errs.ErrProductNotFound
	}
	return store.ToProduct(rec)
}

func (r *ProductRepository) BySKU(sku string) (queries.ProductView, error) {
	rec, ok := r.store.ProductBySKU(sku)
	if !ok {
		return queries.ProductView{}, errs.ErrProductNotFound
	}
	return r.toView(rec)
}

func (r *ProductRepository) List() ([]queries.ProductView, error) {
	return r.views(r.store.ListProducts())
}

func (r *ProductRepository) LowStock(threshold int) ([]queries.ProductView, error) {
	var low []store.ProductRecord
	for _, rec := range r.store.ListProducts() {
		if rec.Stock <= threshold {
			low = append(low, rec)
		}
	}
	views, err := r.views(low)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Stock < views[j].Stock
	})
	return views, nil
}

func (r *ProductRepository) views(recs []store.ProductRecord) ([]queries.ProductView, error) {
	out := make([]queries.ProductView, 0, len(recs))
	for _, rec := range recs {
		v, err := r.toView(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *ProductRepository) toView(rec store.ProductRecord) (queries.ProductView, error) {
	available, err := r.ledger.Available(rec.ID)
	if err != nil {
		return queries.ProductView{}, err
	}
	return queries.ProductView{
		ID:             rec.ID,
		SKU:            rec.SKU,
		Name:           rec.Name,
		UnitPriceCents: rec.UnitPriceCents,
		Stock:          rec.Stock,
		Available:      available,
	}, nil
}
