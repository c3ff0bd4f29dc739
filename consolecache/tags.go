package consolecache

import (
	"context"

	"github.com/ontoops/go-console-cache/keypath"
)

type extraInvalidationsKey struct{}

// WithExtraInvalidations attaches additional prefixes for the executor to
// stale alongside the manifest-derived set. It is the escape hatch for
// one-off mutations whose fan-out is not worth a manifest entry, e.g. a bulk
// import that also touches an unrelated report cache.
func WithExtraInvalidations(ctx context.Context, prefixes ...keypath.KeyPath) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(prefixes) == 0 {
		return ctx
	}

	combined := append(extraInvalidationsFrom(ctx), prefixes...)
	return context.WithValue(ctx, extraInvalidationsKey{}, combined)
}

func extraInvalidationsFrom(ctx context.Context) []keypath.KeyPath {
	if ctx == nil {
		return nil
	}
	if prefixes, ok := ctx.Value(extraInvalidationsKey{}).([]keypath.KeyPath); ok {
		return append([]keypath.KeyPath(nil), prefixes...)
	}
	return nil
}
