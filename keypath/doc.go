// Package keypath implements the hierarchical cache-key registry used across
// the console data layer.
//
// # Overview
//
// Every cached read in the console is addressed by a key path: an ordered
// token sequence of the form
//
//	namespace :: scope :: [discriminators...]
//
// The namespace names a resource family (users, datasources, rules, ...),
// the scope names the kind of cached object inside it (list, detail, stats,
// ...), and the discriminator tail (an entity id, a parameter object, or
// both) makes the key unique within its scope.
//
// # Prefix invalidation
//
// A shorter path that is a segment-wise prefix of a longer one covers it:
// invalidating AllKeysUnder("users") must be understood to affect the entry
// cached under KeyFor("users", ScopeDetail, ID("42")). The registry models
// the relationship purely by construction; consumers check it with
// KeyPath.HasPrefix.
//
// # Determinism and injectivity
//
// KeyFor is a pure value constructor. Identical inputs always produce
// structurally equal paths, and semantically distinct queries never share a
// path. Parameter objects are canonicalized before they are folded into a
// segment, with map keys sorted and scalars normalized, so two logically equal
// filters built in different property orders address the same entry:
//
//	a := keypath.KeyFor("rules", keypath.ScopeList,
//		keypath.Params(map[string]any{"page": 1, "severity": "high"}))
//	b := keypath.KeyFor("rules", keypath.ScopeList,
//		keypath.Params(map[string]any{"severity": "high", "page": 1}))
//	// a.Equal(b) == true
//
// Key paths exist only for the lifetime of a single cache operation; nothing
// in this package performs I/O or holds state.
package keypath
