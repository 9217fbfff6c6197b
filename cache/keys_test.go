package cache

import (
	"testing"
	"time"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestKeyBuilders_ExactFormats(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "items",
			got:  ItemsKey(),
			want: "items",
		},
		{
			name: "daily summary renders midnight timestamp",
			got:  SummaryKey(date("2024-07-31")),
			want: "sales_summary_2024-07-31 00:00:00",
		},
		{
			name: "daily summary truncates intra-day time",
			got:  SummaryKey(time.Date(2024, 7, 31, 13, 45, 12, 0, time.UTC)),
			want: "sales_summary_2024-07-31 00:00:00",
		},
		{
			name: "average",
			got:  AverageKey(date("2024-07-29"), date("2024-07-31")),
			want: "average_sales_2024-07-29_2024-07-31",
		},
		{
			name: "report",
			got:  ReportKey(date("2024-07-29"), date("2024-07-31")),
			want: "sales_report_2024-07-29_2024-07-31",
		},
		{
			name: "trend",
			got:  TrendKey(date("2024-07-29"), date("2024-07-31")),
			want: "trend_analysis_2024-07-29_2024-07-31",
		},
		{
			name: "comparison",
			got:  ComparisonKey(date("2024-07-29"), date("2024-07-29"), date("2024-08-02"), date("2024-08-04")),
			want: "sales_comparison_2024-07-29_2024-07-29_2024-08-02_2024-08-04",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("key = %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestKeyBuilders_Deterministic(t *testing.T) {
	start, end := date("2024-07-29"), date("2024-07-31")
	for i := 0; i < 3; i++ {
		if AverageKey(start, end) != AverageKey(start, end) {
			t.Fatal("AverageKey is not deterministic")
		}
		if SummaryKey(start) != SummaryKey(start) {
			t.Fatal("SummaryKey is not deterministic")
		}
	}
}
