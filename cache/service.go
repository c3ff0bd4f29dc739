package cache

import (
	"context"

	"github.com/ontoops/go-console-cache/keypath"
)

// FetchFn is the function signature Store expects when fetching from the
// backend on a cache miss or after invalidation.
type FetchFn[T any] func(ctx context.Context) (T, error)

// Store exposes the caching operations the console data layer is built on.
// There is exactly one Store per wiring; it is passed explicitly to every
// consumer rather than living in a package-level singleton, so lifetime
// and access stay visible in signatures.
//
// Invalidate marks matching entries stale: the previous value stays readable
// through Peek until the next GetOrFetch refetches it. Remove deletes an
// entry outright so no future read can resurrect it; deletions use it for
// the detail key of the removed entity.
type Store interface {
	GetOrFetch(ctx context.Context, key keypath.KeyPath, fetchFn any) (any, error)
	Peek(key keypath.KeyPath) (any, bool)
	Invalidate(ctx context.Context, prefix keypath.KeyPath) error
	Remove(ctx context.Context, key keypath.KeyPath) error
}

// GetOrFetch is a type-safe wrapper function that provides generic support
// for Store.
func GetOrFetch[T any](ctx context.Context, store Store, key keypath.KeyPath, fetchFn FetchFn[T]) (T, error) {
	result, err := store.GetOrFetch(ctx, key, fetchFn)
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

// Peek is the typed companion of Store.Peek. The second return is false when
// the entry is absent or holds a different type.
func Peek[T any](store Store, key keypath.KeyPath) (T, bool) {
	v, ok := store.Peek(key)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}
