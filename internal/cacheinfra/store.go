package cacheinfra

import (
	"context"
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/viccon/sturdyc"

	"github.com/ontoops/go-console-cache/keypath"
)

// keyEntry is the index record kept for every key the store has served.
// The index is what makes prefix invalidation possible: sturdyc itself only
// knows flat strings, so the structured path and the stale mark live here.
type keyEntry struct {
	path  keypath.KeyPath
	stale bool
}

// SturdycStore implements cache.Store on top of a sturdyc client plus a
// concurrent key index. Values are owned by sturdyc (TTL, sharding, eviction,
// stampede-protected fetches); the index owns structure and staleness.
type SturdycStore struct {
	client *sturdyc.Client[any]
	index  *xsync.MapOf[string, keyEntry]
}

// NewSturdycStore validates the configuration and initializes a sturdyc
// client with the provided settings.
func NewSturdycStore(cfg Config) (*SturdycStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[any](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.toSturdycOptions()...,
	)

	return &SturdycStore{
		client: client,
		index:  xsync.NewMapOf[string, keyEntry](),
	}, nil
}

// GetOrFetch returns the cached value for key, fetching it through fetchFn on
// a miss or after the key was invalidated. fetchFn must have the signature
// func(context.Context) (T, error); anything else is rejected before sturdyc
// sees it.
func (s *SturdycStore) GetOrFetch(ctx context.Context, key keypath.KeyPath, fetchFn any) (any, error) {
	if err := validateFetchFn(fetchFn); err != nil {
		return nil, err
	}

	flat := key.String()

	// A stale mark forces a refetch: drop the sturdyc entry so the next
	// GetOrFetch goes to the source. Compute clears the mark atomically so
	// concurrent readers trigger a single delete; sturdyc then deduplicates
	// the actual fetches.
	wasStale := false
	s.index.Compute(flat, func(old keyEntry, loaded bool) (keyEntry, bool) {
		wasStale = loaded && old.stale
		return keyEntry{path: key}, false
	})
	if wasStale {
		s.client.Delete(flat)
	}

	return s.client.GetOrFetch(ctx, flat, func(ctx context.Context) (any, error) {
		return callFetchFn(ctx, fetchFn)
	})
}

// Peek returns the current cached value without fetching, including values
// that have been marked stale but not yet refetched.
func (s *SturdycStore) Peek(key keypath.KeyPath) (any, bool) {
	return s.client.Get(key.String())
}

// Invalidate marks every indexed key under prefix as stale. It never touches
// the stored values, so already-mounted readers keep the previous value until
// their next read refetches. Invalidating the same prefix twice is a no-op
// the second time.
func (s *SturdycStore) Invalidate(_ context.Context, prefix keypath.KeyPath) error {
	s.index.Range(func(flat string, entry keyEntry) bool {
		if entry.path.HasPrefix(prefix) && !entry.stale {
			s.index.Store(flat, keyEntry{path: entry.path, stale: true})
		}
		return true
	})
	return nil
}

// Remove deletes the entry for key outright, value and index record both.
func (s *SturdycStore) Remove(_ context.Context, key keypath.KeyPath) error {
	flat := key.String()
	s.client.Delete(flat)
	s.index.Delete(flat)
	return nil
}

// FetchFnError reports a fetch function that does not satisfy the expected
// signature.
type FetchFnError struct {
	Reason string
}

func (e *FetchFnError) Error() string {
	return "invalid fetch function: " + e.Reason
}

// validateFetchFn ensures fetchFn matches func(context.Context) (T, error).
func validateFetchFn(fetchFn any) error {
	if fetchFn == nil {
		return &FetchFnError{Reason: "must not be nil"}
	}

	fnType := reflect.TypeOf(fetchFn)
	if fnType.Kind() != reflect.Func {
		return &FetchFnError{Reason: fmt.Sprintf("got %s, want func", fnType.Kind())}
	}
	if fnType.NumIn() != 1 || fnType.NumOut() != 2 {
		return &FetchFnError{Reason: "must have signature func(context.Context) (T, error)"}
	}

	contextType := reflect.TypeOf((*context.Context)(nil)).Elem()
	if !fnType.In(0).Implements(contextType) {
		return &FetchFnError{Reason: "first parameter must be context.Context"}
	}

	errorType := reflect.TypeOf((*error)(nil)).Elem()
	if !fnType.Out(1).Implements(errorType) {
		return &FetchFnError{Reason: "second return value must be error"}
	}

	return nil
}

// callFetchFn invokes a pre-validated fetch function, erasing its result type
// for sturdyc compatibility.
func callFetchFn(ctx context.Context, fetchFn any) (any, error) {
	if fn, ok := fetchFn.(func(context.Context) (any, error)); ok {
		return fn(ctx)
	}

	results := reflect.ValueOf(fetchFn).Call([]reflect.Value{reflect.ValueOf(ctx)})

	var result any
	if results[0].IsValid() && results[0].CanInterface() {
		result = results[0].Interface()
	}

	var err error
	if results[1].IsValid() && !results[1].IsNil() {
		err = results[1].Interface().(error)
	}

	return result, err
}
