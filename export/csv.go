// Package export renders aggregated sales summaries as CSV reports. The
// formatted bytes are an opaque blob to the cache layer: they are stored and
// served verbatim under the same read-through contract as the JSON reports.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/quickserve/go-sales-cache/report"
)

// header is the fixed column set of the sales report. Changing it breaks
// every consumer parsing downloaded reports, so treat it as frozen.
var header = []string{"Item Name", "Category", "Total Quantity Sold", "Total Sales Amount"}

// Row is one parsed line of a sales report.
type Row struct {
	ItemName         string
	Category         string
	TotalQuantity    int
	TotalSalesAmount decimal.Decimal
}

// WriteCSV renders the summary as a CSV report, one row per item in the
// summary's first-seen order, amounts rounded to two decimals.
func WriteCSV(s *report.Summary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, name := range s.Names() {
		b, _ := s.Bucket(name)
		record := []string{
			name,
			b.Category,
			strconv.Itoa(b.TotalQuantity),
			b.TotalSalesAmount.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseCSV reads a sales report back into rows. Formatting a summary and
// parsing the output reproduces the same rows in the same order.
func ParseCSV(data []byte) ([]Row, error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("export: empty report")
	}
	if len(records[0]) != len(header) {
		return nil, fmt.Errorf("export: unexpected header %q", records[0])
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		quantity, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, fmt.Errorf("export: bad quantity %q: %w", record[2], err)
		}
		amount, err := decimal.NewFromString(record[3])
		if err != nil {
			return nil, fmt.Errorf("export: bad amount %q: %w", record[3], err)
		}
		rows = append(rows, Row{
			ItemName:         record[0],
			Category:         record[1],
			TotalQuantity:    quantity,
			TotalSalesAmount: amount,
		})
	}
	return rows, nil
}
