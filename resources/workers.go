package resources

import (
	"context"

	"github.com/ontoops/go-console-cache/apitypes"
	"github.com/ontoops/go-console-cache/cache"
	"github.com/ontoops/go-console-cache/consolecache"
	"github.com/ontoops/go-console-cache/keypath"
)

var workersManifest = consolecache.Manifest{
	Namespace:   "workers",
	DetailScope: keypath.ScopeDetail,
	ExtraScopes: []keypath.Scope{keypath.ScopeStats, keypath.ScopeActivity},
}

// Workers is the cached accessor for background task workers.
type Workers struct {
	*consolecache.Resource[apitypes.Worker]
}

// NewWorkers wires the workers namespace.
func NewWorkers(api consolecache.Transport, store cache.Store, exec *consolecache.Executor) *Workers {
	return &Workers{Resource: consolecache.NewResource[apitypes.Worker](workersManifest, "/workers", api, store, exec)}
}

// Stats returns the cached fleet aggregate.
func (w *Workers) Stats(ctx context.Context) (apitypes.WorkerStats, error) {
	return consolecache.ScopeGet[apitypes.WorkerStats](ctx, w.Resource, keypath.ScopeStats, "", nil)
}

// Activity returns the cached task history of one worker.
func (w *Workers) Activity(ctx context.Context, workerID string, params consolecache.Params) ([]apitypes.WorkerTask, error) {
	return consolecache.ScopeGet[[]apitypes.WorkerTask](ctx, w.Resource, keypath.ScopeActivity, workerID, params)
}

// Pause stops a worker from picking up new tasks.
func (w *Workers) Pause(ctx context.Context, workerID string) error {
	return w.Do(ctx, workerID, "pause", nil, nil)
}

// Resume lets a paused worker pick up tasks again.
func (w *Workers) Resume(ctx context.Context, workerID string) error {
	return w.Do(ctx, workerID, "resume", nil, nil)
}

// RetryTask re-enqueues a failed task of the worker.
func (w *Workers) RetryTask(ctx context.Context, workerID, taskID string) error {
	return w.Do(ctx, workerID, "tasks/"+taskID+"/retry", nil, nil)
}
