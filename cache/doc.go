// Package cache defines the store contract shared by every console resource.
//
// # Overview
//
// The package exports the Store interface (read-through fetch, prefix
// invalidation, and removal keyed by keypath.KeyPath) plus a Config facade
// over the sturdyc-backed implementation in internal/cacheinfra.
//
// # Staleness model
//
// Invalidation is "mark stale and refetch on next read", not "delete
// immediately": a view that already holds a value keeps it (and can re-read
// it through Peek) until the next GetOrFetch resolves against the backend.
// Remove is the exception, used after deletions so the detail entry of a
// deleted entity can never be served again.
//
// # Basic usage
//
//	store, err := cache.NewStore(cache.DefaultConfig())
//	if err != nil { ... }
//
//	key := keypath.KeyFor("users", keypath.ScopeDetail, keypath.ID("42"))
//	user, err := cache.GetOrFetch(ctx, store, key, func(ctx context.Context) (apitypes.User, error) {
//		return api.FetchUser(ctx, "42")
//	})
//
// Two concurrent reads of the same key share one backend fetch; the
// deduplication is delegated to the underlying sturdyc client.
package cache
