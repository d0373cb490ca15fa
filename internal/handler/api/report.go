package api

import (
	"net/http"
	"strconv"
	"time"

	"tillpoint/internal/pkg/clock"
	"tillpoint/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	receipts *queries.ReceiptQuery
	sales    *queries.SalesReportQuery
	products *queries.ProductQuery
	clock    clock.Clock
}

func NewReportHandler(
	receipts *queries.ReceiptQuery,
	sales *queries.SalesReportQuery,
	products *queries.ProductQuery,
	clk clock.Clock,
) *ReportHandler {
	return &ReportHandler{
		receipts: receipts,
		sales:    sales,
		products: products,
		clock:    clk,
	}
}

// ListReceipts returns receipts issued in [from, to). Both bounds are
// RFC 3339 timestamps.
func (h *ReportHandler) ListReceipts(c *gin.Context) {
	from, to, ok := h.rangeFromQuery(c)
	if !ok {
		return
	}

	views, err := h.receipts.ListCompleted(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"receipts": views})
}

func (h *ReportHandler) SalesReport(c *gin.Context) {
	report, ok := h.buildSalesReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) SalesReportCSV(c *gin.Context) {
	report, ok := h.buildSalesReport(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="sales_report.csv"`)
	c.Status(http.StatusOK)
	if err := h.sales.WriteCSV(c.Writer, report); err != nil {
		_ = c.Error(err)
	}
}

func (h *ReportHandler) LowStock(c *gin.Context) {
	threshold := 5
	if raw := c.Query("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid threshold"})
			return
		}
		threshold = n
	}

	views, err := h.products.LowStock(c.Request.Context(), threshold)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": views, "threshold": threshold})
}

func (h *ReportHandler) buildSalesReport(c *gin.Context) (queries.SalesReport, bool) {
	var (
		from, to time.Time
		err      error
	)
	if period := c.Query("period"); period != "" {
		from, to, err = queries.RangeFor(queries.Period(period), h.clock.Now())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period, want daily, weekly or monthly"})
			return queries.SalesReport{}, false
		}
	} else {
		var ok bool
		from, to, ok = h.rangeFromQuery(c)
		if !ok {
			return queries.SalesReport{}, false
		}
	}

	report, err := h.sales.Build(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return queries.SalesReport{}, false
	}
	return report, true
}

func (h *ReportHandler) rangeFromQuery(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from, want RFC 3339 timestamp"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to, want RFC 3339 timestamp"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
