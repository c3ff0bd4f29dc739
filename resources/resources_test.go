package resources

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontoops/go-console-cache/apitypes"
	"github.com/ontoops/go-console-cache/cache"
	"github.com/ontoops/go-console-cache/consolecache"
	"github.com/ontoops/go-console-cache/keypath"
)

func TestManifests_RegisterCleanly(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	want := []string{
		"datasources", "entities", "ontology", "roles",
		"rules", "users", "visualizations", "workers",
	}
	assert.Equal(t, want, reg.Namespaces())
}

func TestManifests_FanOutTargetsDeclared(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	for _, ns := range reg.Namespaces() {
		m, ok := reg.Get(ns)
		require.True(t, ok)
		for _, affected := range m.Affects {
			_, ok := reg.Get(affected)
			assert.True(t, ok, "%s affects unknown namespace %s", ns, affected)
		}
	}
}

func TestDatasources_KeepHistoricalDetailsScope(t *testing.T) {
	key := datasourcesManifest.DetailKey("7")
	assert.True(t, key.Equal(keypath.KeyFor("datasources", keypath.ScopeDetails, keypath.ID("7"))))
}

// routeStore and routeTransport are minimal fakes for wiring-level tests;
// behaviour-level coverage lives in consolecache and pkg/di.
type routeStore struct{}

func (routeStore) GetOrFetch(ctx context.Context, key keypath.KeyPath, fetchFn any) (any, error) {
	fn, ok := fetchFn.(cache.FetchFn[[]apitypes.OntologyClass])
	if !ok {
		return nil, nil
	}
	return fn(ctx)
}
func (routeStore) Peek(keypath.KeyPath) (any, bool) { return nil, false }

func (routeStore) Invalidate(context.Context, keypath.KeyPath) error { return nil }

func (routeStore) Remove(ctx context.Context, k keypath.KeyPath) error { return nil }

type routeTransport struct {
	gets []string
}

func (rt *routeTransport) Get(_ context.Context, path string, _ url.Values, out any) error {
	rt.gets = append(rt.gets, path)
	if out != nil {
		return json.Unmarshal([]byte(`{"data":[]}`), out)
	}
	return nil
}
func (rt *routeTransport) Post(_ context.Context, path string, _, out any) error { return nil }

func (rt *routeTransport) Put(_ context.Context, path string, _, out any) error { return nil }

func (rt *routeTransport) Delete(_ context.Context, path string) error { return nil }

func TestOntology_ClassesRoute(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	var store cache.Store = routeStore{}
	exec := consolecache.NewExecutor(reg, store, nil)
	api := &routeTransport{}
	onto := NewOntology(api, store, exec)

	_, err = onto.Classes(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, api.gets, 1)
	assert.Equal(t, "/ontology/classes", api.gets[0])
}
