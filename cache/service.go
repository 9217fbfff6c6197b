package cache

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidResultType is returned when a cached value cannot be converted to
// the type the caller asked for. It indicates two callers sharing a key with
// different result types, which is always a bug in the key builders.
var ErrInvalidResultType = errors.New("cache: invalid result type")

// FetchFn is the function signature the cache expects when fetching from the
// source of truth on a miss.
type FetchFn[T any] func(ctx context.Context) (T, error)

// CacheService exposes the read-through and invalidation operations the
// report gateway needs. It is exported so callers can plug alternate cache
// backends behind the same contract.
type CacheService interface {
	// GetOrFetch returns the value cached under key, or invokes fetchFn,
	// stores the result with the configured TTL and returns it. fetchFn must
	// be a FetchFn[T] for some T.
	GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error)
	// Delete removes a single cached entry.
	Delete(ctx context.Context, key string) error
	// DeleteByPrefix removes every cached entry whose key starts with prefix.
	// An empty prefix flushes the whole cache.
	DeleteByPrefix(ctx context.Context, prefix string) error
	// InvalidateKeys removes a batch of entries in one call.
	InvalidateKeys(ctx context.Context, keys []string) error
}

// GetOrFetch is the type-safe wrapper around CacheService.GetOrFetch.
func GetOrFetch[T any](ctx context.Context, service CacheService, key string, fetchFn FetchFn[T]) (T, error) {
	var zero T
	result, err := service.GetOrFetch(ctx, key, fetchFn)
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %T cached under %q", ErrInvalidResultType, result, key)
	}
	return typed, nil
}
