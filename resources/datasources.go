package resources

import (
	"context"

	"github.com/ontoops/go-console-cache/apitypes"
	"github.com/ontoops/go-console-cache/cache"
	"github.com/ontoops/go-console-cache/consolecache"
	"github.com/ontoops/go-console-cache/keypath"
)

// The datasources namespace predates the detail/details cleanup; its
// per-entity scope has always been "details" and the cached keys keep that
// spelling.
var datasourcesManifest = consolecache.Manifest{
	Namespace:   "datasources",
	DetailScope: keypath.ScopeDetails,
	ExtraScopes: []keypath.Scope{keypath.ScopeStats, keypath.ScopeActivity},
}

// Datasources is the cached accessor for ingested data sources.
type Datasources struct {
	*consolecache.Resource[apitypes.Datasource]
}

// NewDatasources wires the datasources namespace.
func NewDatasources(api consolecache.Transport, store cache.Store, exec *consolecache.Executor) *Datasources {
	return &Datasources{Resource: consolecache.NewResource[apitypes.Datasource](datasourcesManifest, "/datasources", api, store, exec)}
}

// Stats returns the cached ingestion aggregate.
func (d *Datasources) Stats(ctx context.Context) (apitypes.DatasourceStats, error) {
	return consolecache.ScopeGet[apitypes.DatasourceStats](ctx, d.Resource, keypath.ScopeStats, "", nil)
}

// Activity returns the cached ingestion history of one datasource.
func (d *Datasources) Activity(ctx context.Context, id string, params consolecache.Params) ([]apitypes.DatasourceActivity, error) {
	return consolecache.ScopeGet[[]apitypes.DatasourceActivity](ctx, d.Resource, keypath.ScopeActivity, id, params)
}

// Upload registers a datasource from an uploaded file. It counts as a
// create for cache purposes.
func (d *Datasources) Upload(ctx context.Context, req apitypes.UploadDatasourceRequest) (apitypes.Datasource, error) {
	var envelope apitypes.Envelope[apitypes.Datasource]
	if err := d.Do(ctx, "", "upload", req, &envelope); err != nil {
		return apitypes.Datasource{}, err
	}
	return envelope.Data, nil
}

// Resync asks the backend to re-ingest the datasource.
func (d *Datasources) Resync(ctx context.Context, id string) error {
	return d.Do(ctx, id, "resync", nil, nil)
}
