package store

import (
	"tillpoint/internal/domain/catalog"
	"tillpoint/internal/domain/customer"
	"tillpoint/internal/domain/money"
	"tillpoint/internal/domain/order"
	"tillpoint/internal/domain/payment"
	"tillpoint/internal/domain/pricing"
	"tillpoint/internal/domain/receipt"
	"tillpoint/internal/domain/user"
	"tillpoint/internal/pkg/errs"

	"github.com/google/uuid"
)

// Row-to-domain converters. Kept next to the records so the repositories
// and the recovery replay share one mapping.

func ToProduct(rec ProductRecord) (*catalog.Product, error) {
	return catalog.NewProduct(rec.ID, rec.SKU, rec.Name, money.New(rec.UnitPriceCents), rec.Stock)
}

func FromProduct(p *catalog.Product) ProductRecord {
	return ProductRecord{
		ID:             p.ID(),
		SKU:            p.SKU(),
		Name:           p.Name(),
		UnitPriceCents: p.UnitPrice().Cents(),
		Stock:          p.Stock(),
	}
}

func ToCustomer(rec CustomerRecord) (*customer.Customer, error) {
	return customer.NewCustomer(rec.ID, rec.Name, rec.Email, rec.ContactNumber, money.New(rec.StoreCreditCents))
}

func FromCustomer(c *customer.Customer) CustomerRecord {
	return CustomerRecord{
		ID:               c.ID(),
		Name:             c.Name(),
		Email:            c.Email(),
		ContactNumber:    c.ContactNumber(),
		StoreCreditCents: c.StoreCredit().Cents(),
	}
}

func ToUser(rec UserRecord) (*user.User, error) {
	role, err := user.NewRole(rec.Role)
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(rec.ID, rec.Username, rec.FullName, role, rec.PasswordHash, rec.Active), nil
}

func FromUser(u *user.User) UserRecord {
	return UserRecord{
		ID:           u.ID(),
		Username:     u.Username(),
		FullName:     u.FullName(),
		Role:         string(u.Role()),
		PasswordHash: u.PasswordHash(),
		Active:       u.IsActive(),
	}
}

// TotalsFor recomputes an order record's totals from its lines and rules;
// totals are never cached on the record.
func TotalsFor(rec OrderRecord) (pricing.Totals, error) {
	tax, discount, err := RulesFor(rec)
	if err != nil {
		return pricing.Totals{}, err
	}

	lines := make([]pricing.Line, len(rec.Lines))
	for i, l := range rec.Lines {
		lines[i] = pricing.Line{
			UnitPrice: money.New(l.UnitPriceCents),
			Quantity:  l.Quantity,
		}
	}
	return pricing.Compute(lines, tax, discount)
}

// RulesFor rebuilds the pricing rules an order record carries.
func RulesFor(rec OrderRecord) (pricing.TaxRule, pricing.DiscountRule, error) {
	tax, err := pricing.NewTaxRule(rec.TaxRuleName, rec.TaxRatePercent)
	if err != nil {
		return pricing.TaxRule{}, pricing.DiscountRule{}, err
	}

	discount := pricing.NoDiscount()
	switch {
	case rec.DiscountPct != nil:
		discount, err = pricing.NewPercentageDiscount(*rec.DiscountPct, rec.DiscountPreTax)
	case rec.DiscountCents != nil:
		discount, err = pricing.NewFixedDiscount(money.New(*rec.DiscountCents), rec.DiscountPreTax)
	}
	if err != nil {
		return pricing.TaxRule{}, pricing.DiscountRule{}, err
	}
	return tax, discount, nil
}

func ToOrder(rec OrderRecord) (*order.Order, error) {
	tax, discount, err := RulesFor(rec)
	if err != nil {
		return nil, err
	}

	status := order.Status(rec.Status)
	if !status.IsValid() {
		return nil, errs.New("unknown order status: " + rec.Status)
	}

	lines := make([]order.Line, len(rec.Lines))
	for i, l := range rec.Lines {
		lines[i] = order.ReconstructLine(l.ID, l.ProductID, l.SKU, l.ProductName, money.New(l.UnitPriceCents), l.Quantity)
	}

	return order.ReconstructOrder(rec.ID, rec.CustomerID, lines, tax, discount, status, rec.Version, rec.CreatedAt)
}

// FromOrder flattens an order back to a record. reservations maps each
// line to the stock hold backing it.
func FromOrder(o *order.Order, reservations map[uuid.UUID]uuid.UUID) OrderRecord {
	rec := OrderRecord{
		ID:             o.ID(),
		CustomerID:     o.CustomerID(),
		TaxRuleName:    o.TaxRule().Name(),
		TaxRatePercent: o.TaxRule().RatePercent(),
		DiscountPreTax: o.Discount().AppliesBeforeTax(),
		Status:         string(o.Status()),
		Version:        o.Version(),
		CreatedAt:      o.CreatedAt(),
	}

	if d := o.Discount(); !d.IsZero() {
		if d.IsPercentage() {
			pct := d.PercentOff()
			rec.DiscountPct = &pct
		} else {
			cents := d.AmountOff().Cents()
			rec.DiscountCents = &cents
		}
	}

	for _, l := range o.Lines() {
		rec.Lines = append(rec.Lines, OrderLineRecord{
			ID:             l.ID(),
			ProductID:      l.ProductID(),
			SKU:            l.SKU(),
			ProductName:    l.ProductName(),
			UnitPriceCents: l.UnitPrice().Cents(),
			Quantity:       l.Quantity(),
			ReservationID:  reservations[l.ID()],
		})
	}
	return rec
}

func ToPayment(rec PaymentRecord) (*payment.Record, error) {
	method, err := payment.NewMethod(rec.Method)
	if err != nil {
		return nil, err
	}
	return payment.ReconstructRecord(rec.ID, rec.OrderID, method, money.New(rec.AmountCents), rec.AuthRef, rec.RecordedAt), nil
}

func FromPayment(p *payment.Record) PaymentRecord {
	return PaymentRecord{
		ID:          p.ID(),
		OrderID:     p.OrderID(),
		Method:      p.Method().String(),
		AmountCents: p.Amount().Cents(),
		AuthRef:     p.AuthRef(),
		RecordedAt:  p.CreatedAt(),
	}
}

func ToReceipt(rec ReceiptRecord) (*receipt.Receipt, error) {
	lines := make([]receipt.Line, len(rec.Lines))
	for i, l := range rec.Lines {
		lines[i] = receipt.Line{
			SKU:         l.SKU,
			ProductName: l.ProductName,
			UnitPrice:   money.New(l.UnitPriceCents),
			Quantity:    l.Quantity,
			Subtotal:    money.New(l.SubtotalCents),
		}
	}

	payments := make([]receipt.PaymentLine, len(rec.Payments))
	for i, p := range rec.Payments {
		method, err := payment.NewMethod(p.Method)
		if err != nil {
			return nil, err
		}
		payments[i] = receipt.PaymentLine{
			Method:  method,
			Amount:  money.New(p.AmountCents),
			AuthRef: p.AuthRef,
		}
	}

	totals := pricing.Totals{
		Subtotal:       money.New(rec.SubtotalCents),
		DiscountAmount: money.New(rec.DiscountCents),
		TaxAmount:      money.New(rec.TaxCents),
		GrandTotal:     money.New(rec.GrandTotalCents),
	}
	return receipt.Reconstruct(rec.ID, rec.SequenceNo, rec.OrderID, rec.CustomerID, lines, totals, payments, rec.IssuedAt), nil
}

func FromReceipt(r *receipt.Receipt) ReceiptRecord {
	rec := ReceiptRecord{
		ID:              r.ID(),
		SequenceNo:      r.SequenceNo(),
		OrderID:         r.OrderID(),
		CustomerID:      r.CustomerID(),
		SubtotalCents:   r.Totals().Subtotal.Cents(),
		DiscountCents:   r.Totals().DiscountAmount.Cents(),
		TaxCents:        r.Totals().TaxAmount.Cents(),
		GrandTotalCents: r.Totals().GrandTotal.Cents(),
		IssuedAt:        r.IssuedAt(),
	}
	for _, l := range r.Lines() {
		rec.Lines = append(rec.Lines, ReceiptLineRecord{
			SKU:            l.SKU,
			ProductName:    l.ProductName,
			UnitPriceCents: l.UnitPrice.Cents(),
			Quantity:       l.Quantity,
			SubtotalCents:  l.Subtotal.Cents(),
		})
	}
	for _, p := range r.Payments() {
		rec.Payments = append(rec.Payments, ReceiptPaymentRecord{
			Method:      p.Method.String(),
			AmountCents: p.Amount.Cents(),
			AuthRef:     p.AuthRef,
		})
	}
	return rec
}
