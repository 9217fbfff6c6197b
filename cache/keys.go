package cache

import "time"

// One constructor per cache-key family. The exact key bytes are the hit/miss
// contract between the read and write paths, so every caller goes through
// these builders instead of concatenating strings in place.
const (
	itemsKey = "items"

	// The daily summary day renders as a full timestamp at midnight. The
	// upstream consumers were built against that stringification, so it is
	// preserved verbatim.
	summaryKeyLayout = "2006-01-02 15:04:05"
	dateKeyLayout    = "2006-01-02"
)

// ItemsKey is the single key covering the full item listing with derived
// remaining quantities. It is the only key a recorded sale invalidates.
func ItemsKey() string {
	return itemsKey
}

// SummaryKey keys the daily sales summary for one business day.
func SummaryKey(day time.Time) string {
	return "sales_summary_" + midnight(day).Format(summaryKeyLayout)
}

// AverageKey keys the average-sales report over an inclusive date range.
func AverageKey(start, end time.Time) string {
	return "average_sales_" + start.Format(dateKeyLayout) + "_" + end.Format(dateKeyLayout)
}

// ReportKey keys the CSV sales report over an inclusive date range.
func ReportKey(start, end time.Time) string {
	return "sales_report_" + start.Format(dateKeyLayout) + "_" + end.Format(dateKeyLayout)
}

// TrendKey keys the trend series over an inclusive date range.
func TrendKey(start, end time.Time) string {
	return "trend_analysis_" + start.Format(dateKeyLayout) + "_" + end.Format(dateKeyLayout)
}

// ComparisonKey keys the two-period sales comparison.
func ComparisonKey(start1, end1, start2, end2 time.Time) string {
	return "sales_comparison_" +
		start1.Format(dateKeyLayout) + "_" + end1.Format(dateKeyLayout) + "_" +
		start2.Format(dateKeyLayout) + "_" + end2.Format(dateKeyLayout)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
