// Package cache provides the caching contract and key builders for the sales
// reporting backend.
//
// # Overview
//
// The package exports three things:
//
//   - CacheService: the read-through and invalidation operations the report
//     gateway depends on
//   - GetOrFetch: a type-safe generic wrapper over CacheService
//   - one key-builder function per cache-key family (ItemsKey, SummaryKey,
//     AverageKey, ReportKey, TrendKey, ComparisonKey)
//
// # Read-through contract
//
// GetOrFetch checks the cache first and trusts a hit verbatim; there is no
// staleness check beyond the store's own TTL expiry. On a miss the fetch
// function runs, its result is stored with the configured TTL and returned.
// Fetch errors are returned to the caller and nothing is cached.
//
//	summary, err := cache.GetOrFetch(ctx, svc, cache.SummaryKey(day),
//		func(ctx context.Context) (report.DailySummary, error) {
//			return computeSummary(ctx, day)
//		})
//
// # Key builders
//
// Every cache key in the system is produced by one of the typed builders.
// Hand-built string concatenation is what these replace: when the read and
// write paths each assemble their own key, the formats drift and the
// invalidation path silently stops matching. The builders make the exact key
// bytes a single point of truth, and the key formats themselves are frozen
// because deployed consumers were built against them (notably the daily
// summary day rendering as a midnight timestamp).
//
// # Backends
//
// NewCacheService returns the default in-process sturdyc-backed
// implementation. Anything satisfying CacheService can replace it.
package cache
