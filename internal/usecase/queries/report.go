package queries

import (
	"context"
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"tillpoint/internal/pkg/errs"

	"github.com/google/uuid"
)

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// RangeFor resolves a convenience period around a reference instant to a
// half-open [from, to) interval. Weeks start on Monday.
func RangeFor(period Period, ref time.Time) (time.Time, time.Time, error) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	switch period {
	case PeriodDaily:
		return day, day.AddDate(0, 0, 1), nil
	case PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7), nil
	case PeriodMonthly:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return start, start.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, time.Time{}, errs.New("unknown report period: " + string(period))
	}
}

type SalesRow struct {
	ReceiptSeq      uint64     `json:"receipt_seq"`
	IssuedAt        time.Time  `json:"issued_at"`
	CustomerID      *uuid.UUID `json:"customer_id,omitempty"`
	ItemCount       int        `json:"item_count"`
	GrandTotalCents int64      `json:"grand_total_cents"`
	Methods         string     `json:"methods"`
}

type SalesReport struct {
	From          time.Time        `json:"from"`
	To            time.Time        `json:"to"`
	Rows          []SalesRow       `json:"rows"`
	ReceiptCount  int              `json:"receipt_count"`
	TotalCents    int64            `json:"total_cents"`
	ByMethodCents map[string]int64 `json:"by_method_cents"`
}

type SalesReportQuery struct {
	receipts ReceiptViewReader
}

func NewSalesReportQuery(receipts ReceiptViewReader) *SalesReportQuery {
	return &SalesReportQuery{receipts: receipts}
}

func (q *SalesReportQuery) Build(ctx context.Context, from, to time.Time) (SalesReport, error) {
	if !from.Before(to) {
		return SalesReport{}, errs.New("range start must precede range end")
	}

	views, err := q.receipts.ListBetween(from, to)
	if err != nil {
		return SalesReport{}, err
	}

	report := SalesReport{
		From:          from,
		To:            to,
		ReceiptCount:  len(views),
		ByMethodCents: make(map[string]int64),
	}
	for _, v := range views {
		var items int
		for _, l := range v.Lines {
			items += l.Quantity
		}

		methods := make([]string, 0, len(v.Payments))
		seen := make(map[string]bool)
		for _, p := range v.Payments {
			report.ByMethodCents[p.Method] += p.AmountCents
			if !seen[p.Method] {
				seen[p.Method] = true
				methods = append(methods, p.Method)
			}
		}
		sort.Strings(methods)

		report.Rows = append(report.Rows, SalesRow{
			ReceiptSeq:      v.SequenceNo,
			IssuedAt:        v.IssuedAt,
			CustomerID:      v.CustomerID,
			ItemCount:       items,
			GrandTotalCents: v.GrandTotalCents,
			Methods:         strings.Join(methods, "+"),
		})
		report.TotalCents += v.GrandTotalCents
	}
	return report, nil
}

// WriteCSV renders the report for export. Amounts are in decimal dollars
// to match what the printed receipts show.
func (q *SalesReportQuery) WriteCSV(w io.Writer, report SalesReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"receipt_no", "issued_at", "customer_id", "items", "total", "methods"}); err != nil {
		return errs.Wrap(err, "failed to write csv header")
	}
	for _, row := range report.Rows {
		customer := ""
		if row.CustomerID != nil {
			customer = row.CustomerID.String()
		}
		record := []string{
			strconv.FormatUint(row.ReceiptSeq, 10),
			row.IssuedAt.Format(time.RFC3339),
			customer,
			strconv.Itoa(row.ItemCount),
			centsToDecimal(row.GrandTotalCents),
			row.Methods,
		}
		if err := cw.Write(record); err != nil {
			return errs.Wrap(err, "failed to write csv row")
		}
	}

	methods := make([]string, 0, len(report.ByMethodCents))
	for m := range report.ByMethodCents {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	for _, m := range methods {
		if err := cw.Write([]string{"total_" + m, "", "", "", centsToDecimal(report.ByMethodCents[m]), ""}); err != nil {
			return errs.Wrap(err, "failed to write csv totals")
		}
	}
	if err := cw.Write([]string{"total", "", "", strconv.Itoa(report.ReceiptCount), centsToDecimal(report.TotalCents), ""}); err != nil {
		return errs.Wrap(err, "failed to write csv totals")
	}

	cw.Flush()
	return errs.Wrap(cw.Error(), "failed to flush csv")
}

func centsToDecimal(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
