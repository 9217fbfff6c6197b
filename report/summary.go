package report

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// Bucket accumulates the sales of one item name. TotalSalesAmount is kept at
// full precision while accumulating; rounding to two decimals happens only
// when the bucket is rendered.
type Bucket struct {
	TotalQuantity    int
	Category         string
	TotalSalesAmount decimal.Decimal
}

// Summary maps item names to their sales buckets. Iteration order is the
// order names were first seen in the source transactions, and the JSON
// encoding preserves it, which also keeps the CSV export stable.
//
// Grouping is by item name, not item code: two catalog items sharing a name
// merge into one bucket. That matches the reports consumers already rely on.
type Summary struct {
	names   []string
	buckets map[string]*Bucket
}

// NewSummary returns an empty summary.
func NewSummary() *Summary {
	return &Summary{buckets: make(map[string]*Bucket)}
}

// Len returns the number of buckets.
func (s *Summary) Len() int {
	return len(s.names)
}

// Names returns the bucket names in first-seen order.
func (s *Summary) Names() []string {
	return append([]string(nil), s.names...)
}

// Bucket returns the bucket for name, if present.
func (s *Summary) Bucket(name string) (*Bucket, bool) {
	b, ok := s.buckets[name]
	return b, ok
}

// bucket returns the bucket for name, creating it on first sight.
func (s *Summary) bucket(name, category string) *Bucket {
	if b, ok := s.buckets[name]; ok {
		return b
	}
	b := &Bucket{Category: category}
	s.buckets[name] = b
	s.names = append(s.names, name)
	return b
}

// MarshalJSON encodes the summary as an object whose keys appear in
// first-seen order, with amounts rounded to two decimals.
func (s *Summary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		b := s.buckets[name]
		category, err := json.Marshal(b.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(`:{"total_quantity":`)
		buf.WriteString(strconv.Itoa(b.TotalQuantity))
		buf.WriteString(`,"category":`)
		buf.Write(category)
		buf.WriteString(`,"total_sales_amount":`)
		buf.WriteString(b.TotalSalesAmount.StringFixed(2))
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
