package keypath

import "strings"

// Separator delimits the segments of a rendered key path.
const Separator = "::"

// Scope names the kind of cached object a key path addresses within a
// namespace. The closed set of scopes a namespace supports is declared in its
// invalidation manifest; the registry itself does not validate membership.
type Scope string

// Scopes shared by most console namespaces. Domain-specific scopes (stats,
// executions, ...) are declared alongside and behave identically.
const (
	ScopeList        Scope = "list"
	ScopeDetail      Scope = "detail"
	ScopeDetails     Scope = "details"
	ScopeStats       Scope = "stats"
	ScopeActivity    Scope = "activity"
	ScopeExecutions  Scope = "executions"
	ScopeViolations  Scope = "violations"
	ScopeDashboard   Scope = "dashboard"
	ScopePerformance Scope = "performance"
	ScopeClasses     Scope = "classes"
	ScopeProperties  Scope = "properties"
)

type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenParams
)

// Token is one segment of a key path: either a plain identifier or a
// canonicalized parameter object. Tokens are immutable values; two tokens are
// interchangeable iff their kind and canonical text match.
type Token struct {
	kind tokenKind
	text string
}

// IdentToken builds an identifier segment.
func IdentToken(s string) Token {
	return Token{kind: tokenIdent, text: s}
}

// ParamsToken builds a parameter-object segment. The value is canonicalized
// immediately (sorted map keys, normalized scalars) so that logically equal
// parameter objects always render to the same segment regardless of how the
// caller assembled them.
func ParamsToken(v any) Token {
	return Token{kind: tokenParams, text: canonicalize(v)}
}

// IsParams reports whether the token is a parameter-object segment.
func (t Token) IsParams() bool { return t.kind == tokenParams }

// String returns the canonical rendering of the token.
func (t Token) String() string {
	if t.kind == tokenParams {
		return "params:" + t.text
	}
	return t.text
}

// Equal reports structural equality.
func (t Token) Equal(o Token) bool { return t.kind == o.kind && t.text == o.text }

// KeyPath is an ordered, immutable sequence of tokens addressing one cached
// query result. Key paths are compared structurally, never by reference, and
// are built on demand right before a cache read or an invalidation; they are
// never persisted.
type KeyPath []Token

// Discriminator is the tail of a key path: an entity id, a parameter object,
// or both. Modeling the tail as a closed union keeps KeyFor call sites
// statically checkable instead of accepting loosely typed variadic values.
type Discriminator interface {
	tokens() []Token
}

type idDiscriminator string

func (d idDiscriminator) tokens() []Token { return []Token{IdentToken(string(d))} }

type paramsDiscriminator struct{ v any }

func (d paramsDiscriminator) tokens() []Token { return []Token{ParamsToken(d.v)} }

type idAndParamsDiscriminator struct {
	id string
	v  any
}

func (d idAndParamsDiscriminator) tokens() []Token {
	return []Token{IdentToken(d.id), ParamsToken(d.v)}
}

// ID discriminates by entity identifier.
func ID(id string) Discriminator { return idDiscriminator(id) }

// Params discriminates by a filter/pagination parameter object.
func Params(v any) Discriminator { return paramsDiscriminator{v: v} }

// IDAndParams discriminates by identifier plus a parameter object, in that
// order.
func IDAndParams(id string, v any) Discriminator {
	return idAndParamsDiscriminator{id: id, v: v}
}

// KeyFor builds the canonical key path for a read against the given namespace
// and scope. It is pure and deterministic: identical inputs always yield
// structurally equal paths, and semantically distinct inputs never collide.
// The registry does not check that the namespace or scope exists; supplying a
// malformed one is a programming error, not a runtime failure.
func KeyFor(namespace string, scope Scope, discriminators ...Discriminator) KeyPath {
	path := make(KeyPath, 0, 2+len(discriminators))
	path = append(path, IdentToken(namespace), IdentToken(string(scope)))
	for _, d := range discriminators {
		path = append(path, d.tokens()...)
	}
	return path
}

// AllKeysUnder returns the prefix path covering every cached entry in the
// namespace, optionally narrowed to a single scope. Invalidating the prefix
// covers every key path that starts with it.
func AllKeysUnder(namespace string, scope ...Scope) KeyPath {
	path := KeyPath{IdentToken(namespace)}
	for _, s := range scope {
		path = append(path, IdentToken(string(s)))
	}
	return path
}

// Equal reports structural equality of two key paths.
func (p KeyPath) Equal(o KeyPath) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if !p[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is a segment-wise prefix of p. Matching is
// per token, never on partial segment text, so ["users","detail","4"] does
// not cover ["users","detail","42"].
func (p KeyPath) HasPrefix(prefix KeyPath) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if !p[i].Equal(prefix[i]) {
			return false
		}
	}
	return true
}

// Append returns a new key path with the extra tokens added. The receiver is
// never mutated.
func (p KeyPath) Append(tokens ...Token) KeyPath {
	out := make(KeyPath, 0, len(p)+len(tokens))
	out = append(out, p...)
	out = append(out, tokens...)
	return out
}

// Namespace returns the first segment, or "" for an empty path.
func (p KeyPath) Namespace() string {
	if len(p) == 0 {
		return ""
	}
	return p[0].text
}

// String renders the path as a flat cache key.
func (p KeyPath) String() string {
	parts := make([]string, len(p))
	for i, t := range p {
		parts[i] = t.String()
	}
	return strings.Join(parts, Separator)
}
