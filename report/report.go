// Package report implements the pure aggregation functions behind the sales
// reports: grouped summaries, totals, averages, raw trend series and period
// comparisons. Everything operates on transactions preloaded with their bill
// items and catalog items; there is no I/O, so the functions are safe to call
// from any number of concurrent request handlers.
package report

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/quickserve/go-sales-cache/store"
)

// ErrNoData is returned when an average is requested over a range that
// contains no transactions. Division by zero is rejected explicitly rather
// than producing a silent zero.
var ErrNoData = errors.New("no transactions found")

// Summarize folds every bill item of every transaction into buckets keyed by
// item name, accumulating quantity and line totals at full precision.
func Summarize(txns []*store.Transaction) *Summary {
	summary := NewSummary()
	for _, txn := range txns {
		for _, bill := range txn.BillItems {
			b := summary.bucket(bill.Item.Name, bill.Item.Category)
			b.TotalQuantity += bill.Quantity
			b.TotalSalesAmount = b.TotalSalesAmount.Add(bill.TotalPrice())
		}
	}
	return summary
}

// Total sums every bucket's sales amount, rounded to two decimals.
func Total(s *Summary) decimal.Decimal {
	total := decimal.Zero
	for _, name := range s.names {
		total = total.Add(s.buckets[name].TotalSalesAmount)
	}
	return total.Round(2)
}

// Average divides the summarized total by the number of transactions, rounded
// to two decimals. Returns ErrNoData for an empty transaction set.
func Average(txns []*store.Transaction) (decimal.Decimal, error) {
	if len(txns) == 0 {
		return decimal.Zero, ErrNoData
	}
	total := Total(Summarize(txns))
	return total.Div(decimal.NewFromInt(int64(len(txns)))).Round(2), nil
}

// ItemTrend holds the parallel quantity/date series of one item, one element
// per bill-item occurrence in transaction order. No smoothing or regression
// is applied; this is the raw series a downstream consumer analyzes.
type ItemTrend struct {
	Quantities []int    `json:"quantity"`
	Dates      []string `json:"dates"`
}

// TrendSeries maps item names to their trend series, preserving first-seen
// order in iteration and in the JSON encoding.
type TrendSeries struct {
	names  []string
	series map[string]*ItemTrend
}

// Names returns the item names in first-seen order.
func (t *TrendSeries) Names() []string {
	return append([]string(nil), t.names...)
}

// Series returns the trend for one item name, if present.
func (t *TrendSeries) Series(name string) (*ItemTrend, bool) {
	s, ok := t.series[name]
	return s, ok
}

// MarshalJSON encodes the series as an object with keys in first-seen order.
func (t *TrendSeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range t.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(t.series[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Trend extracts per-item quantity/date series from the transactions, one
// element appended per bill item, dated by the owning transaction's business
// day.
func Trend(txns []*store.Transaction) *TrendSeries {
	trend := &TrendSeries{series: make(map[string]*ItemTrend)}
	for _, txn := range txns {
		day := txn.BusinessDayDate.Format("2006-01-02")
		for _, bill := range txn.BillItems {
			name := bill.Item.Name
			s, ok := trend.series[name]
			if !ok {
				s = &ItemTrend{}
				trend.series[name] = s
				trend.names = append(trend.names, name)
			}
			s.Quantities = append(s.Quantities, bill.Quantity)
			s.Dates = append(s.Dates, day)
		}
	}
	return trend
}

// Comparison holds two independently summarized periods. No alignment or
// delta computation happens between the buckets.
type Comparison struct {
	Period1 *Summary `json:"period_1"`
	Period2 *Summary `json:"period_2"`
}

// Compare summarizes two transaction sets independently.
func Compare(a, b []*store.Transaction) Comparison {
	return Comparison{
		Period1: Summarize(a),
		Period2: Summarize(b),
	}
}

// DailySummary is the payload of the daily sales summary report.
type DailySummary struct {
	Summary    *Summary `json:"summary"`
	TotalSales Amount   `json:"total_sales"`
}

// AverageSales is the payload of the average sales report.
type AverageSales struct {
	AverageSales Amount `json:"average_sales"`
}

// Amount renders a decimal as a plain two-decimal JSON number, the shape the
// report consumers expect for monetary fields.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal for JSON rendering.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// MarshalJSON renders the amount as an unquoted number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(2)), nil
}
