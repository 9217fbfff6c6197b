package salescache

import (
	"context"
	"time"

	"github.com/quickserve/go-sales-cache/cache"
	"github.com/quickserve/go-sales-cache/export"
	"github.com/quickserve/go-sales-cache/report"
	"github.com/quickserve/go-sales-cache/store"
)

// ItemStore is the catalog surface the gateway reads through.
type ItemStore interface {
	List(ctx context.Context) ([]store.ItemView, error)
}

// TransactionStore is the sales surface the gateway reads through and
// writes to.
type TransactionStore interface {
	RecordSale(ctx context.Context, lines []store.SaleLine) (*store.Transaction, error)
	ListByBusinessDay(ctx context.Context, day time.Time) ([]*store.Transaction, error)
	ListByRange(ctx context.Context, start, end time.Time) ([]*store.Transaction, error)
}

// Seeder repopulates the store with demo data.
type Seeder interface {
	Seed(ctx context.Context) error
}

// Reports is the cache-aside gateway over the entity store and the
// aggregator. Every read derives its key from the request parameters through
// the cache package's builders, trusts a hit verbatim, and on a miss computes
// the aggregate and stores it with the cache's TTL. Concurrent misses on one
// key are coalesced by the cache backend; no extra locking here.
type Reports struct {
	items  ItemStore
	sales  TransactionStore
	seeder Seeder
	cache  cache.CacheService
}

// New wires the gateway. seeder may be nil when reseeding is not part of the
// deployment (Reseed then returns ErrSeedingDisabled).
func New(items ItemStore, sales TransactionStore, seeder Seeder, cacheService cache.CacheService) *Reports {
	return &Reports{
		items:  items,
		sales:  sales,
		seeder: seeder,
		cache:  cacheService,
	}
}

// Items returns the catalog with derived remaining quantities, cached under
// the single items key.
func (r *Reports) Items(ctx context.Context) ([]store.ItemView, error) {
	return cache.GetOrFetch(ctx, r.cache, cache.ItemsKey(), func(ctx context.Context) ([]store.ItemView, error) {
		return r.items.List(ctx)
	})
}

// RecordSale validates the sale lines, persists them atomically and then
// invalidates the items key, since remaining quantities changed. Report
// caches are deliberately left alone: historical reports tolerate staleness
// until their TTL runs out.
func (r *Reports) RecordSale(ctx context.Context, lines []store.SaleLine) (*store.Transaction, error) {
	if err := validateSale(lines); err != nil {
		return nil, err
	}
	txn, err := r.sales.RecordSale(ctx, lines)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Delete(ctx, cache.ItemsKey()); err != nil {
		return nil, err
	}
	return txn, nil
}

// DailySummary returns the per-item sales summary and the day's total for
// one business day.
func (r *Reports) DailySummary(ctx context.Context, day time.Time) (report.DailySummary, error) {
	return cache.GetOrFetch(ctx, r.cache, cache.SummaryKey(day), func(ctx context.Context) (report.DailySummary, error) {
		txns, err := r.sales.ListByBusinessDay(ctx, day)
		if err != nil {
			return report.DailySummary{}, err
		}
		summary := report.Summarize(txns)
		return report.DailySummary{
			Summary:    summary,
			TotalSales: report.NewAmount(report.Total(summary)),
		}, nil
	})
}

// AverageSales returns the average sales per transaction over an inclusive
// date range. An empty range yields report.ErrNoData, which propagates
// without being cached.
func (r *Reports) AverageSales(ctx context.Context, start, end time.Time) (report.AverageSales, error) {
	return cache.GetOrFetch(ctx, r.cache, cache.AverageKey(start, end), func(ctx context.Context) (report.AverageSales, error) {
		txns, err := r.sales.ListByRange(ctx, start, end)
		if err != nil {
			return report.AverageSales{}, err
		}
		average, err := report.Average(txns)
		if err != nil {
			return report.AverageSales{}, err
		}
		return report.AverageSales{AverageSales: report.NewAmount(average)}, nil
	})
}

// SalesReportCSV returns the CSV sales report over an inclusive date range.
// The rendered bytes are cached as an opaque blob.
func (r *Reports) SalesReportCSV(ctx context.Context, start, end time.Time) ([]byte, error) {
	return cache.GetOrFetch(ctx, r.cache, cache.ReportKey(start, end), func(ctx context.Context) ([]byte, error) {
		txns, err := r.sales.ListByRange(ctx, start, end)
		if err != nil {
			return nil, err
		}
		return export.WriteCSV(report.Summarize(txns))
	})
}

// TrendAnalysis returns the raw per-item quantity/date series over an
// inclusive date range.
func (r *Reports) TrendAnalysis(ctx context.Context, start, end time.Time) (*report.TrendSeries, error) {
	return cache.GetOrFetch(ctx, r.cache, cache.TrendKey(start, end), func(ctx context.Context) (*report.TrendSeries, error) {
		txns, err := r.sales.ListByRange(ctx, start, end)
		if err != nil {
			return nil, err
		}
		return report.Trend(txns), nil
	})
}

// SalesComparison returns independent summaries of two date ranges.
func (r *Reports) SalesComparison(ctx context.Context, start1, end1, start2, end2 time.Time) (report.Comparison, error) {
	key := cache.ComparisonKey(start1, end1, start2, end2)
	return cache.GetOrFetch(ctx, r.cache, key, func(ctx context.Context) (report.Comparison, error) {
		first, err := r.sales.ListByRange(ctx, start1, end1)
		if err != nil {
			return report.Comparison{}, err
		}
		second, err := r.sales.ListByRange(ctx, start2, end2)
		if err != nil {
			return report.Comparison{}, err
		}
		return report.Compare(first, second), nil
	})
}

// Reseed repopulates the store with demo data and flushes the whole cache,
// so nothing stale from the previous dataset survives.
func (r *Reports) Reseed(ctx context.Context) error {
	if r.seeder == nil {
		return ErrSeedingDisabled
	}
	if err := r.seeder.Seed(ctx); err != nil {
		return err
	}
	return r.cache.DeleteByPrefix(ctx, "")
}
