package consolecache

import (
	"fmt"
	"regexp"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ontoops/go-console-cache/keypath"
)

var namespacePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Manifest declares, per namespace, everything the invalidation executor
// needs to derive a mutation's fan-out. The console used to hand-list
// invalidation targets at every mutation call site; the manifest replaces
// that with a single table-driven declaration per resource.
type Manifest struct {
	// Namespace is the resource family, e.g. "users". Normalized to
	// snake_case on registration.
	Namespace string

	// DetailScope is the scope name of per-entity reads. Almost always
	// "detail"; datasources historically use "details".
	DetailScope keypath.Scope

	// ExtraScopes are additional read scopes of this namespace (stats,
	// activity, dashboard, ...) staled on every successful write.
	ExtraScopes []keypath.Scope

	// Affects lists other namespaces whose cached reads derive from this
	// one. A successful write stales everything under each of them.
	Affects []string
}

// Validate checks the manifest declaration.
func (m Manifest) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Namespace,
			validation.Required,
			validation.Match(namespacePattern).Error("must be snake_case"),
		),
		validation.Field(&m.DetailScope, validation.Required),
		validation.Field(&m.ExtraScopes, validation.Each(validation.Required)),
		validation.Field(&m.Affects,
			validation.Each(validation.Required, validation.Match(namespacePattern).Error("must be snake_case")),
		),
	)
}

// normalized returns a copy with namespace and fan-out names folded to
// snake_case and the default detail scope applied.
func (m Manifest) normalized() Manifest {
	out := m
	out.Namespace = toSnake(m.Namespace)
	if out.DetailScope == "" {
		out.DetailScope = keypath.ScopeDetail
	}
	out.Affects = make([]string, len(m.Affects))
	for i, ns := range m.Affects {
		out.Affects[i] = toSnake(ns)
	}
	return out
}

// DetailKey returns the canonical per-entity key for id.
func (m Manifest) DetailKey(id string) keypath.KeyPath {
	return keypath.KeyFor(m.Namespace, m.DetailScope, keypath.ID(id))
}

// ListPrefix returns the prefix covering every cached list of the namespace.
func (m Manifest) ListPrefix() keypath.KeyPath {
	return keypath.AllKeysUnder(m.Namespace, keypath.ScopeList)
}

// Registry holds the manifest of every namespace the console manages.
type Registry struct {
	byNamespace map[string]Manifest
}

// NewRegistry validates and indexes the given manifests. Declaring the same
// namespace twice is a wiring bug and is rejected.
func NewRegistry(manifests ...Manifest) (*Registry, error) {
	byNamespace := make(map[string]Manifest, len(manifests))
	for _, m := range manifests {
		m = m.normalized()
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("manifest %q: %w", m.Namespace, err)
		}
		if _, dup := byNamespace[m.Namespace]; dup {
			return nil, fmt.Errorf("manifest %q: declared twice", m.Namespace)
		}
		byNamespace[m.Namespace] = m
	}

	// fan-out targets must themselves be declared, otherwise a mutation
	// would silently skip part of its invalidation set
	for _, m := range byNamespace {
		for _, ns := range m.Affects {
			if _, ok := byNamespace[ns]; !ok {
				return nil, fmt.Errorf("manifest %q: affects unknown namespace %q", m.Namespace, ns)
			}
		}
	}

	return &Registry{byNamespace: byNamespace}, nil
}

// Get looks up the manifest for a namespace (normalized before lookup).
func (r *Registry) Get(namespace string) (Manifest, bool) {
	m, ok := r.byNamespace[toSnake(namespace)]
	return m, ok
}

// Namespaces returns the declared namespaces in sorted order.
func (r *Registry) Namespaces() []string {
	out := make([]string, 0, len(r.byNamespace))
	for ns := range r.byNamespace {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}
