package resources

import (
	"github.com/ontoops/go-console-cache/apitypes"
	"github.com/ontoops/go-console-cache/cache"
	"github.com/ontoops/go-console-cache/consolecache"
	"github.com/ontoops/go-console-cache/keypath"
)

var entitiesManifest = consolecache.Manifest{
	Namespace:   "entities",
	DetailScope: keypath.ScopeDetail,
	// saved visualizations render query results over the graph
	Affects: []string{"visualizations"},
}

var visualizationsManifest = consolecache.Manifest{
	Namespace:   "visualizations",
	DetailScope: keypath.ScopeDetail,
}

// Entities is the cached accessor for knowledge-graph entities.
type Entities struct {
	*consolecache.Resource[apitypes.Entity]
}

// NewEntities wires the knowledge-graph namespace.
func NewEntities(api consolecache.Transport, store cache.Store, exec *consolecache.Executor) *Entities {
	return &Entities{Resource: consolecache.NewResource[apitypes.Entity](entitiesManifest, "/entities", api, store, exec)}
}

// Visualizations is the cached accessor for saved visualizations.
type Visualizations struct {
	*consolecache.Resource[apitypes.Visualization]
}

// NewVisualizations wires the visualizations namespace.
func NewVisualizations(api consolecache.Transport, store cache.Store, exec *consolecache.Executor) *Visualizations {
	return &Visualizations{Resource: consolecache.NewResource[apitypes.Visualization](visualizationsManifest, "/visualizations", api, store, exec)}
}
