// Package httpapi exposes the reporting backend over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quickserve/go-sales-cache/report"
	"github.com/quickserve/go-sales-cache/salescache"
	"github.com/quickserve/go-sales-cache/store"
)

// ReportService is the gateway surface the handlers call.
type ReportService interface {
	Items(ctx context.Context) ([]store.ItemView, error)
	RecordSale(ctx context.Context, lines []store.SaleLine) (*store.Transaction, error)
	DailySummary(ctx context.Context, day time.Time) (report.DailySummary, error)
	AverageSales(ctx context.Context, start, end time.Time) (report.AverageSales, error)
	SalesReportCSV(ctx context.Context, start, end time.Time) ([]byte, error)
	TrendAnalysis(ctx context.Context, start, end time.Time) (*report.TrendSeries, error)
	SalesComparison(ctx context.Context, start1, end1, start2, end2 time.Time) (report.Comparison, error)
	Reseed(ctx context.Context) error
}

type handlers struct {
	reports ReportService
}

func (h *handlers) fetchItems(c *gin.Context) {
	items, err := h.reports.Items(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *handlers) addSales(c *gin.Context) {
	var lines []store.SaleLine
	if err := c.ShouldBindJSON(&lines); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.reports.RecordSale(c.Request.Context(), lines); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sales added successfully"})
}

func (h *handlers) salesSummary(c *gin.Context) {
	day, ok := dateTimeParam(c, "date")
	if !ok {
		return
	}
	summary, err := h.reports.DailySummary(c.Request.Context(), day)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *handlers) averageSales(c *gin.Context) {
	start, end, ok := rangeParams(c, "start_date", "end_date")
	if !ok {
		return
	}
	average, err := h.reports.AverageSales(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, average)
}

func (h *handlers) salesReport(c *gin.Context) {
	start, end, ok := rangeParams(c, "start_date", "end_date")
	if !ok {
		return
	}
	data, err := h.reports.SalesReportCSV(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="sales_report.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *handlers) trendAnalysis(c *gin.Context) {
	start, end, ok := rangeParams(c, "start_date", "end_date")
	if !ok {
		return
	}
	trend, err := h.reports.TrendAnalysis(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

func (h *handlers) salesComparison(c *gin.Context) {
	start1, end1, ok := rangeParams(c, "start_date_1", "end_date_1")
	if !ok {
		return
	}
	start2, end2, ok := rangeParams(c, "start_date_2", "end_date_2")
	if !ok {
		return
	}
	comparison, err := h.reports.SalesComparison(c.Request.Context(), start1, end1, start2, end2)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comparison)
}

func (h *handlers) addItems(c *gin.Context) {
	if err := h.reports.Reseed(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dummy data populated successfully"})
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrItemNotFound), errors.Is(err, report.ErrNoData):
		status = http.StatusNotFound
	case errors.Is(err, salescache.ErrInvalidSale):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// dateTimeParam parses a required query parameter that accepts either a bare
// date or a full timestamp.
func dateTimeParam(c *gin.Context, name string) (time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("missing %s", name)})
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s %q", name, value)})
	return time.Time{}, false
}

// dateParam parses a required YYYY-MM-DD query parameter.
func dateParam(c *gin.Context, name string) (time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("missing %s", name)})
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s %q", name, value)})
		return time.Time{}, false
	}
	return t, true
}

func rangeParams(c *gin.Context, startName, endName string) (time.Time, time.Time, bool) {
	start, ok := dateParam(c, startName)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := dateParam(c, endName)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
