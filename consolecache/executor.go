package consolecache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ontoops/go-console-cache/cache"
	"github.com/ontoops/go-console-cache/keypath"
)

// ErrUnknownNamespace reports a mutation against a namespace with no
// registered manifest. In the old hand-written scheme a missed invalidation
// would silently serve stale data; here it fails loudly at the first write.
var ErrUnknownNamespace = errors.New("consolecache: unknown namespace")

// Executor derives and applies the invalidation fan-out of a mutation from
// the manifest registry. It runs only after the backend confirms the write,
// so failed mutations never disturb the cache.
type Executor struct {
	registry *Registry
	store    cache.Store
	log      *slog.Logger
}

// NewExecutor wires the executor to a registry and the shared store.
func NewExecutor(registry *Registry, store cache.Store, log *slog.Logger) *Executor {
	if log == nil {
		log = slog.Default()
	}
	return &Executor{registry: registry, store: store, log: log}
}

// AfterCreate stales every list of the namespace (new rows shift pagination
// and filtered views), its extra scopes, and the declared fan-out.
func (e *Executor) AfterCreate(ctx context.Context, namespace string) error {
	m, err := e.manifest(namespace)
	if err != nil {
		return err
	}
	return e.apply(ctx, m, nil)
}

// AfterUpdate additionally stales the detail entry of the changed entity,
// including parameterized variants of it.
func (e *Executor) AfterUpdate(ctx context.Context, namespace, id string) error {
	m, err := e.manifest(namespace)
	if err != nil {
		return err
	}
	return e.apply(ctx, m, []keypath.KeyPath{m.DetailKey(id)})
}

// AfterDelete removes the detail entry outright, so a deleted entity can
// never be resurrected from cache, and stales everything else like an
// update would.
func (e *Executor) AfterDelete(ctx context.Context, namespace, id string) error {
	m, err := e.manifest(namespace)
	if err != nil {
		return err
	}

	detail := m.DetailKey(id)
	if err := e.store.Remove(ctx, detail); err != nil {
		return fmt.Errorf("remove %s: %w", detail, err)
	}
	// parameterized detail variants (e.g. detail with include flags) share
	// the detail prefix and are staled rather than enumerated
	return e.apply(ctx, m, []keypath.KeyPath{detail})
}

// AfterAction handles domain actions (role assignment, rule execution,
// worker pause). Shaped like an update; pass id "" for namespace-level
// actions.
func (e *Executor) AfterAction(ctx context.Context, namespace, id string) error {
	if id == "" {
		return e.AfterCreate(ctx, namespace)
	}
	return e.AfterUpdate(ctx, namespace, id)
}

func (e *Executor) manifest(namespace string) (Manifest, error) {
	m, ok := e.registry.Get(namespace)
	if !ok {
		return Manifest{}, fmt.Errorf("%w: %q", ErrUnknownNamespace, namespace)
	}
	return m, nil
}

// apply stales the manifest-derived prefixes plus any extras, in a stable
// order: own list, own extra scopes, explicit prefixes, fan-out namespaces,
// context-attached extras.
func (e *Executor) apply(ctx context.Context, m Manifest, prefixes []keypath.KeyPath) error {
	targets := make([]keypath.KeyPath, 0, 2+len(m.ExtraScopes)+len(m.Affects)+len(prefixes))
	targets = append(targets, m.ListPrefix())
	for _, scope := range m.ExtraScopes {
		targets = append(targets, keypath.AllKeysUnder(m.Namespace, scope))
	}
	targets = append(targets, prefixes...)
	for _, ns := range m.Affects {
		targets = append(targets, keypath.AllKeysUnder(ns))
	}
	targets = append(targets, extraInvalidationsFrom(ctx)...)

	for _, prefix := range targets {
		if err := e.store.Invalidate(ctx, prefix); err != nil {
			return fmt.Errorf("invalidate %s: %w", prefix, err)
		}
	}

	e.log.Debug("cache invalidated",
		"namespace", m.Namespace,
		"prefixes", len(targets),
	)
	return nil
}
