package export

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/quickserve/go-sales-cache/pkg/testsupport"
	"github.com/quickserve/go-sales-cache/report"
	"github.com/quickserve/go-sales-cache/store"
)

func sampleSummary() *report.Summary {
	burger := &store.Item{ID: 1, Name: "Burger", Price: decimal.RequireFromString("5.00"), Category: "Burger"}
	cola := &store.Item{ID: 2, Name: "Cola", Price: decimal.RequireFromString("2.50"), Category: "Drink"}

	txns := []*store.Transaction{
		{BillItems: []*store.BillItem{
			{Item: burger, ItemID: 1, UnitPrice: burger.Price, Quantity: 2},
			{Item: cola, ItemID: 2, UnitPrice: cola.Price, Quantity: 3},
		}},
		{BillItems: []*store.BillItem{
			{Item: burger, ItemID: 1, UnitPrice: burger.Price, Quantity: 1},
		}},
	}
	return report.Summarize(txns)
}

func TestWriteCSV_MatchesGolden(t *testing.T) {
	data, err := WriteCSV(sampleSummary())
	if err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	testsupport.CompareWithGolden(t, "testdata/sales_report.golden.csv", data)
}

func TestWriteCSV_EmptySummary(t *testing.T) {
	data, err := WriteCSV(report.NewSummary())
	if err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	want := "Item Name,Category,Total Quantity Sold,Total Sales Amount\n"
	if string(data) != want {
		t.Errorf("expected header-only report, got:\n%s", data)
	}
}

func TestRoundTrip(t *testing.T) {
	summary := sampleSummary()
	data, err := WriteCSV(summary)
	if err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	rows, err := ParseCSV(data)
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	names := summary.Names()
	if len(rows) != len(names) {
		t.Fatalf("expected %d rows, got %d", len(names), len(rows))
	}
	for i, row := range rows {
		if row.ItemName != names[i] {
			t.Errorf("row %d: expected %s, got %s", i, names[i], row.ItemName)
		}
		bucket, _ := summary.Bucket(names[i])
		if row.TotalQuantity != bucket.TotalQuantity {
			t.Errorf("row %d: expected quantity %d, got %d", i, bucket.TotalQuantity, row.TotalQuantity)
		}
		if !row.TotalSalesAmount.Equal(bucket.TotalSalesAmount.Round(2)) {
			t.Errorf("row %d: expected amount %s, got %s", i, bucket.TotalSalesAmount.Round(2), row.TotalSalesAmount)
		}
		if row.Category != bucket.Category {
			t.Errorf("row %d: expected category %s, got %s", i, bucket.Category, row.Category)
		}
	}
}

func TestParseCSV_Malformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "wrong header", data: "a,b\n"},
		{name: "bad quantity", data: "Item Name,Category,Total Quantity Sold,Total Sales Amount\nBurger,Burger,two,10.00\n"},
		{name: "bad amount", data: "Item Name,Category,Total Quantity Sold,Total Sales Amount\nBurger,Burger,2,ten\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseCSV([]byte(tc.data)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}
