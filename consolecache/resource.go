package consolecache

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ontoops/go-console-cache/apitypes"
	"github.com/ontoops/go-console-cache/cache"
	"github.com/ontoops/go-console-cache/keypath"
)

// Transport is the slice of the API client the resource layer needs.
// *restapi.Client satisfies it.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// Params are the filter/pagination parameters of a list or scope read. They
// are folded into the cache key after canonicalization, so insertion order
// never splits the cache.
type Params map[string]any

// listResult wraps the items+pagination tuple so a list read caches as one
// value.
type listResult[T any] struct {
	Items []T            `json:"items"`
	Page  *apitypes.Page `json:"page,omitempty"`
}

// Resource is the cached access path for one console namespace. Reads go
// through the shared store keyed by canonical key paths; writes pass through
// to the backend and, on success only, hand their namespace to the
// invalidation executor.
type Resource[T any] struct {
	manifest Manifest
	basePath string
	api      Transport
	store    cache.Store
	exec     *Executor
}

// NewResource wires a namespace manifest to its REST base path. The manifest
// must already be registered with the executor's registry; writes fail with
// ErrUnknownNamespace otherwise.
func NewResource[T any](manifest Manifest, basePath string, api Transport, store cache.Store, exec *Executor) *Resource[T] {
	return &Resource[T]{
		manifest: manifest.normalized(),
		basePath: basePath,
		api:      api,
		store:    store,
		exec:     exec,
	}
}

// Manifest returns the normalized manifest the resource was built with.
func (r *Resource[T]) Manifest() Manifest { return r.manifest }

// ListKey returns the canonical key path of a list read, exposed so views
// can Peek at a possibly-stale list while a refetch is in flight.
func (r *Resource[T]) ListKey(params Params) keypath.KeyPath {
	return keypath.KeyFor(r.manifest.Namespace, keypath.ScopeList, keypath.Params(map[string]any(params)))
}

// DetailKey returns the canonical key path of a detail read.
func (r *Resource[T]) DetailKey(id string) keypath.KeyPath {
	return r.manifest.DetailKey(id)
}

// List returns the (possibly cached) filtered collection.
func (r *Resource[T]) List(ctx context.Context, params Params) ([]T, *apitypes.Page, error) {
	key := r.ListKey(params)
	res, err := cache.GetOrFetch(ctx, r.store, key, func(ctx context.Context) (listResult[T], error) {
		var envelope apitypes.Envelope[[]T]
		if err := r.api.Get(ctx, r.basePath, queryFrom(params), &envelope); err != nil {
			return listResult[T]{}, err
		}
		return listResult[T]{Items: envelope.Data, Page: envelope.Pagination}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return res.Items, res.Page, nil
}

// Get returns the (possibly cached) entity with the given id.
func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	key := r.DetailKey(id)
	return cache.GetOrFetch(ctx, r.store, key, func(ctx context.Context) (T, error) {
		var envelope apitypes.Envelope[T]
		if err := r.api.Get(ctx, r.itemPath(id), nil, &envelope); err != nil {
			var zero T
			return zero, err
		}
		return envelope.Data, nil
	})
}

// Create posts a new entity and, once the backend confirms it, stales the
// namespace per its manifest.
func (r *Resource[T]) Create(ctx context.Context, body any) (T, error) {
	var envelope apitypes.Envelope[T]
	if err := r.api.Post(ctx, r.basePath, body, &envelope); err != nil {
		var zero T
		return zero, err
	}
	if err := r.exec.AfterCreate(ctx, r.manifest.Namespace); err != nil {
		return envelope.Data, err
	}
	return envelope.Data, nil
}

// Update puts changes to an entity and stales its namespace and detail key.
func (r *Resource[T]) Update(ctx context.Context, id string, body any) (T, error) {
	var envelope apitypes.Envelope[T]
	if err := r.api.Put(ctx, r.itemPath(id), body, &envelope); err != nil {
		var zero T
		return zero, err
	}
	if err := r.exec.AfterUpdate(ctx, r.manifest.Namespace, id); err != nil {
		return envelope.Data, err
	}
	return envelope.Data, nil
}

// Delete removes an entity. The detail cache entry is deleted, not merely
// staled, so the entity cannot be resurrected from cache.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	if err := r.api.Delete(ctx, r.itemPath(id)); err != nil {
		return err
	}
	return r.exec.AfterDelete(ctx, r.manifest.Namespace, id)
}

// Do runs a domain action (e.g. "execute", "pause", "roles") against an
// entity, decoding the response into out when it is non-nil. On success the
// invalidation executor treats it like an update of the entity.
func (r *Resource[T]) Do(ctx context.Context, id, action string, body, out any) error {
	path := r.basePath + "/" + action
	if id != "" {
		path = r.itemPath(id) + "/" + action
	}
	if err := r.api.Post(ctx, path, body, out); err != nil {
		return err
	}
	return r.exec.AfterAction(ctx, r.manifest.Namespace, id)
}

func (r *Resource[T]) itemPath(id string) string {
	return r.basePath + "/" + url.PathEscape(id)
}

// ScopeGet reads a sub-scope of a resource (stats, activity, violations...)
// through the cache. It is a package-level function because Go methods
// cannot introduce the scope's own result type parameter.
func ScopeGet[S, T any](ctx context.Context, r *Resource[T], scope keypath.Scope, id string, params Params) (S, error) {
	var discs []keypath.Discriminator
	switch {
	case id != "" && params != nil:
		discs = append(discs, keypath.IDAndParams(id, map[string]any(params)))
	case id != "":
		discs = append(discs, keypath.ID(id))
	case params != nil:
		discs = append(discs, keypath.Params(map[string]any(params)))
	}
	key := keypath.KeyFor(r.manifest.Namespace, scope, discs...)

	path := r.basePath + "/" + string(scope)
	if id != "" {
		path = r.itemPath(id) + "/" + string(scope)
	}

	return cache.GetOrFetch(ctx, r.store, key, func(ctx context.Context) (S, error) {
		var envelope apitypes.Envelope[S]
		if err := r.api.Get(ctx, path, queryFrom(params), &envelope); err != nil {
			var zero S
			return zero, err
		}
		return envelope.Data, nil
	})
}

func queryFrom(params Params) url.Values {
	if len(params) == 0 {
		return nil
	}
	values := make(url.Values, len(params))
	for k, v := range params {
		values.Set(k, fmt.Sprint(v))
	}
	return values
}
