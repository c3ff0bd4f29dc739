package resources

import (
	"github.com/ontoops/go-console-cache/consolecache"
)

// Manifests returns the invalidation manifest of every namespace the console
// manages. The fan-out between namespaces lives here and nowhere else; a new
// resource joins the protocol by adding its manifest and its accessor file.
func Manifests() []consolecache.Manifest {
	return []consolecache.Manifest{
		usersManifest,
		rolesManifest,
		datasourcesManifest,
		rulesManifest,
		ontologyManifest,
		entitiesManifest,
		workersManifest,
		visualizationsManifest,
	}
}

// NewRegistry builds the manifest registry for the full console resource set.
func NewRegistry() (*consolecache.Registry, error) {
	return consolecache.NewRegistry(Manifests()...)
}
