package resources

import (
	"context"

	"github.com/ontoops/go-console-cache/apitypes"
	"github.com/ontoops/go-console-cache/cache"
	"github.com/ontoops/go-console-cache/consolecache"
	"github.com/ontoops/go-console-cache/keypath"
)

var ontologyManifest = consolecache.Manifest{
	Namespace:   "ontology",
	DetailScope: keypath.ScopeDetail,
	ExtraScopes: []keypath.Scope{keypath.ScopeClasses, keypath.ScopeProperties},
	// an import rewrites the class/property universe entities are typed by
	Affects: []string{"entities"},
}

// Ontology is the cached accessor for FIBO class and property metadata. The
// namespace has no per-entity CRUD: the class and property catalogs are read
// through their scopes and replaced wholesale by imports.
type Ontology struct {
	res *consolecache.Resource[apitypes.OntologyClass]
}

// NewOntology wires the ontology namespace.
func NewOntology(api consolecache.Transport, store cache.Store, exec *consolecache.Executor) *Ontology {
	return &Ontology{res: consolecache.NewResource[apitypes.OntologyClass](ontologyManifest, "/ontology", api, store, exec)}
}

// Classes returns the cached class catalog.
func (o *Ontology) Classes(ctx context.Context, params consolecache.Params) ([]apitypes.OntologyClass, error) {
	return consolecache.ScopeGet[[]apitypes.OntologyClass](ctx, o.res, keypath.ScopeClasses, "", params)
}

// Properties returns the cached property catalog.
func (o *Ontology) Properties(ctx context.Context, params consolecache.Params) ([]apitypes.OntologyProperty, error) {
	return consolecache.ScopeGet[[]apitypes.OntologyProperty](ctx, o.res, keypath.ScopeProperties, "", params)
}

// Import loads an ontology release. On success the class/property catalogs
// and the entire entities namespace are staled.
func (o *Ontology) Import(ctx context.Context, req apitypes.OntologyImportRequest) (apitypes.OntologyImportReport, error) {
	var envelope apitypes.Envelope[apitypes.OntologyImportReport]
	if err := o.res.Do(ctx, "", "import", req, &envelope); err != nil {
		return apitypes.OntologyImportReport{}, err
	}
	return envelope.Data, nil
}
