// Package resources declares the console's namespaces: their invalidation
// manifests and a typed accessor per resource family. Each accessor embeds a
// consolecache.Resource, so plain CRUD comes from the embedding and only the
// domain scopes and actions are written out here.
package resources
