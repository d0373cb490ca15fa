package store

import (
	"tillpoint/internal/infra/wal"
	"tillpoint/internal/inventory"
	"tillpoint/internal/pkg/errs"
)

// Recover replays journal records past the snapshot checkpoint onto the
// store and the ledger. Replay is idempotent: order records carry the
// post-operation version and are skipped when the materialized order
// already reflects it, and ledger applies are no-ops for unknown holds.
func Recover(st *Store, ledger *inventory.Ledger, log *wal.Log) (int, error) {
	records, err := log.ReadAfter(st.Checkpoint())
	if err != nil {
		return 0, err
	}

	for _, rec := range records {
		if err := apply(st, ledger, rec); err != nil {
			return 0, errs.Wrap(err, "failed to replay journal record")
		}
		st.SetCheckpoint(rec.Seq)
	}
	return len(records), nil
}

func apply(st *Store, ledger *inventory.Ledger, rec wal.Record) error {
	switch rec.Op {
	case wal.OpOrderCreated:
		var p wal.OrderCreated
		if err := rec.Decode(&p); err != nil {
			return err
		}
		if _, ok := st.OrderByID(p.OrderID); ok {
			return nil
		}
		st.PutOrder(OrderRecord{
			ID:             p.OrderID,
			CustomerID:     p.CustomerID,
			TaxRuleName:    p.TaxRuleName,
			TaxRatePercent: p.TaxRatePercent,
			DiscountPct:    p.DiscountPct,
			DiscountCents:  p.DiscountCents,
			DiscountPreTax: p.DiscountPreTax,
			Status:         "draft",
			Version:        p.Version,
			CreatedAt:      p.CreatedAt,
		})

	case wal.OpLineAdded:
		var p wal.LineAdded
		if err := rec.Decode(&p); err != nil {
			return err
		}
		ord, ok := st.OrderByID(p.OrderID)
		if !ok || ord.Version >= p.Version {
			return nil
		}
		ord.Lines = append(ord.Lines, OrderLineRecord{
			ID:             p.LineID,
			ProductID:      p.ProductID,
			SKU:            p.SKU,
			ProductName:    p.ProductName,
			UnitPriceCents: p.UnitPriceCents,
			Quantity:       p.Quantity,
			ReservationID:  p.ReservationID,
		})
		ord.Version = p.Version
		st.PutOrder(ord)

	case wal.OpLineRemoved:
		var p wal.LineRemoved
		if err := rec.Decode(&p); err != nil {
			return err
		}
		ord, ok := st.OrderByID(p.OrderID)
		if !ok || ord.Version >= p.Version {
			return nil
		}
		for i, l := range ord.Lines {
			if l.ID == p.LineID {
				ord.Lines = append(ord.Lines[:i], ord.Lines[i+1:]...)
				break
			}
		}
		ord.Version = p.Version
		st.PutOrder(ord)

	case wal.OpLineQuantityUpdated:
		var p wal.LineQuantityUpdated
		if err := rec.Decode(&p); err != nil {
			return err
		}
		ord, ok := st.OrderByID(p.OrderID)
		if !ok || ord.Version >= p.Version {
			return nil
		}
		for i, l := range ord.Lines {
			if l.ID == p.LineID {
				ord.Lines[i].Quantity = p.Quantity
				ord.Lines[i].ReservationID = p.ReservationID
				break
			}
		}
		ord.Version = p.Version
		st.PutOrder(ord)

	case wal.OpPaymentBegun:
		var p wal.PaymentBegun
		if err := rec.Decode(&p); err != nil {
			return err
		}
		ord, ok := st.OrderByID(p.OrderID)
		if !ok || ord.Version >= p.Version {
			return nil
		}
		ord.Status = "pending_payment"
		ord.Version = p.Version
		st.PutOrder(ord)

	case wal.OpPaymentRecorded:
		var p wal.PaymentRecorded
		if err := rec.Decode(&p); err != nil {
			return err
		}
		st.AppendPayment(PaymentRecord{
			ID:          p.PaymentID,
			OrderID:     p.OrderID,
			Method:      p.Method,
			AmountCents: p.AmountCents,
			AuthRef:     p.AuthRef,
			RecordedAt:  p.RecordedAt,
		})

	case wal.OpOrderFinalized:
		var p wal.OrderFinalized
		if err := rec.Decode(&p); err != nil {
			return err
		}
		return applyFinalized(st, ledger, p)

	case wal.OpOrderCancelled:
		var p wal.OrderCancelled
		if err := rec.Decode(&p); err != nil {
			return err
		}
		ledger.ApplyReleasedForOrder(p.OrderID)
		st.RemoveOrder(p.OrderID)

	case wal.OpStockReserved:
		var p wal.StockReserved
		if err := rec.Decode(&p); err != nil {
			return err
		}
		ledger.ApplyReserved(p)

	case wal.OpStockCommitted:
		var p wal.StockCommitted
		if err := rec.Decode(&p); err != nil {
			return err
		}
		return ledger.ApplyCommitted(p.ReservationID)

	case wal.OpStockReleased:
		var p wal.StockReleased
		if err := rec.Decode(&p); err != nil {
			return err
		}
		ledger.ApplyReleased(p.ReservationID)

	default:
		return errs.New("unknown journal op: " + string(rec.Op))
	}
	return nil
}

// applyFinalized re-runs the finalize commit: settle holds, issue the
// receipt, capture store credit, drop the live order.
func applyFinalized(st *Store, ledger *inventory.Ledger, p wal.OrderFinalized) error {
	ord, ok := st.OrderByID(p.OrderID)
	if !ok {
		// already finalized before the checkpoint
		return nil
	}

	if err := ledger.ApplySettled(p.OrderID, p.CommitReservations); err != nil {
		return err
	}

	totals, err := TotalsFor(ord)
	if err != nil {
		return err
	}

	receipt := ReceiptRecord{
		ID:              p.ReceiptID,
		SequenceNo:      p.ReceiptSeq,
		OrderID:         p.OrderID,
		CustomerID:      p.CustomerID,
		SubtotalCents:   totals.Subtotal.Cents(),
		DiscountCents:   totals.DiscountAmount.Cents(),
		TaxCents:        totals.TaxAmount.Cents(),
		GrandTotalCents: totals.GrandTotal.Cents(),
		IssuedAt:        p.IssuedAt,
	}
	for _, l := range ord.Lines {
		receipt.Lines = append(receipt.Lines, ReceiptLineRecord{
			SKU:            l.SKU,
			ProductName:    l.ProductName,
			UnitPriceCents: l.UnitPriceCents,
			Quantity:       l.Quantity,
			SubtotalCents:  l.UnitPriceCents * int64(l.Quantity),
		})
	}
	for _, pay := range st.PaymentsFor(p.OrderID) {
		receipt.Payments = append(receipt.Payments, ReceiptPaymentRecord{
			Method:      pay.Method,
			AmountCents: pay.AmountCents,
			AuthRef:     pay.AuthRef,
		})
	}
	st.AppendReceipt(receipt)

	if p.CustomerID != nil && p.CreditUsedCents > 0 {
		if err := st.DeductStoreCredit(*p.CustomerID, p.CreditUsedCents); err != nil {
			return err
		}
	}

	st.RemoveOrder(p.OrderID)
	return nil
}
