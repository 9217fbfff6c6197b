// Package salescache implements the cache-aside gateway of the reporting
// backend: it decorates the entity store and the pure aggregator with
// read-through caching per report family, and handles the one write path
// (sale recording) with its invalidation.
//
// # Read path
//
//  1. Derive the cache key from the request parameters via the cache
//     package's typed builders.
//  2. On a hit, return the cached value unchanged. A cached value is trusted
//     until it expires or is explicitly invalidated; there is no extra
//     staleness check.
//  3. On a miss, query the store, run the aggregator, store the result with
//     the cache TTL and return it.
//
// # Write path
//
// RecordSale persists the transaction and its bill items atomically, then
// invalidates only the items key: remaining quantities changed, so the item
// listing must recompute. Summary, average, report, trend and comparison
// entries are left to age out on their TTL — staleness tolerance for
// historical reports is a deliberate trade, not an oversight.
package salescache
