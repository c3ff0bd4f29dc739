package keypath

import (
	"strings"
	"testing"
)

func TestKeyFor_Determinism(t *testing.T) {
	tests := []struct {
		name  string
		build func() KeyPath
	}{
		{
			name:  "namespace and scope only",
			build: func() KeyPath { return KeyFor("users", ScopeList) },
		},
		{
			name:  "with id",
			build: func() KeyPath { return KeyFor("users", ScopeDetail, ID("42")) },
		},
		{
			name: "with params",
			build: func() KeyPath {
				return KeyFor("rules", ScopeList, Params(map[string]any{"severity": "high", "page": 2}))
			},
		},
		{
			name: "with id and params",
			build: func() KeyPath {
				return KeyFor("rules", ScopeExecutions, IDAndParams("7", map[string]any{"limit": 10}))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := tt.build(), tt.build()
			if !a.Equal(b) {
				t.Errorf("KeyFor not deterministic: %q vs %q", a, b)
			}
			if a.String() != b.String() {
				t.Errorf("rendered keys differ: %q vs %q", a, b)
			}
		})
	}
}

func TestKeyFor_Injectivity(t *testing.T) {
	paths := []KeyPath{
		KeyFor("users", ScopeList),
		KeyFor("users", ScopeList, Params(map[string]any{})),
		KeyFor("users", ScopeList, Params(map[string]any{"role": "admin"})),
		KeyFor("users", ScopeDetail, ID("42")),
		KeyFor("users", ScopeDetail, ID("43")),
		KeyFor("users", ScopeStats),
		KeyFor("datasources", ScopeList),
		KeyFor("rules", ScopeList),
		KeyFor("rules", ScopeList, Params(map[string]any{"rule_id": "X"})),
		KeyFor("rules", ScopeViolations, IDAndParams("X", map[string]any{"page": 1})),
		KeyFor("rules", ScopeViolations, IDAndParams("X", map[string]any{"page": 2})),
	}

	for i := range paths {
		for j := range paths {
			if i == j {
				continue
			}
			if paths[i].Equal(paths[j]) {
				t.Errorf("distinct queries collide: %q and %q", paths[i], paths[j])
			}
			if paths[i].String() == paths[j].String() {
				t.Errorf("distinct queries render identically: %q", paths[i])
			}
		}
	}
}

func TestKeyPath_HasPrefix(t *testing.T) {
	tests := []struct {
		name   string
		path   KeyPath
		prefix KeyPath
		want   bool
	}{
		{
			name:   "namespace covers detail",
			path:   KeyFor("users", ScopeDetail, ID("42")),
			prefix: AllKeysUnder("users"),
			want:   true,
		},
		{
			name:   "namespace and scope covers filtered list",
			path:   KeyFor("users", ScopeList, Params(map[string]any{"active": true})),
			prefix: AllKeysUnder("users", ScopeList),
			want:   true,
		},
		{
			name:   "path is its own prefix",
			path:   KeyFor("users", ScopeList),
			prefix: KeyFor("users", ScopeList),
			want:   true,
		},
		{
			name:   "different namespace",
			path:   KeyFor("datasources", ScopeList),
			prefix: AllKeysUnder("users"),
			want:   false,
		},
		{
			name:   "no partial segment match",
			path:   KeyFor("users", ScopeDetail, ID("42")),
			prefix: KeyFor("users", ScopeDetail, ID("4")),
			want:   false,
		},
		{
			name:   "longer than path",
			path:   AllKeysUnder("users"),
			prefix: KeyFor("users", ScopeList),
			want:   false,
		},
		{
			name:   "scope prefix does not cover other scope",
			path:   KeyFor("users", ScopeStats),
			prefix: AllKeysUnder("users", ScopeList),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.HasPrefix(tt.prefix); got != tt.want {
				t.Errorf("HasPrefix(%q, %q) = %v, want %v", tt.path, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestKeyPath_String(t *testing.T) {
	p := KeyFor("users", ScopeDetail, ID("42"))
	want := strings.Join([]string{"users", "detail", "42"}, Separator)
	if p.String() != want {
		t.Errorf("String() = %q, want %q", p.String(), want)
	}
}

func TestKeyPath_AppendDoesNotMutate(t *testing.T) {
	base := KeyFor("workers", ScopeList)
	long := base.Append(IdentToken("extra"))
	if len(base) != 2 {
		t.Fatalf("Append mutated receiver: %q", base)
	}
	if len(long) != 3 || !long.HasPrefix(base) {
		t.Fatalf("Append result malformed: %q", long)
	}
}

func TestKeyPath_Namespace(t *testing.T) {
	if got := KeyFor("entities", ScopeList).Namespace(); got != "entities" {
		t.Errorf("Namespace() = %q", got)
	}
	if got := (KeyPath{}).Namespace(); got != "" {
		t.Errorf("Namespace() on empty path = %q", got)
	}
}
