package resources

import (
	"context"

	"github.com/ontoops/go-console-cache/apitypes"
	"github.com/ontoops/go-console-cache/cache"
	"github.com/ontoops/go-console-cache/consolecache"
	"github.com/ontoops/go-console-cache/keypath"
)

var usersManifest = consolecache.Manifest{
	Namespace:   "users",
	DetailScope: keypath.ScopeDetail,
	ExtraScopes: []keypath.Scope{keypath.ScopeStats},
	// role assignment changes what the permissions pages display
	Affects: []string{"roles"},
}

var rolesManifest = consolecache.Manifest{
	Namespace:   "roles",
	DetailScope: keypath.ScopeDetail,
}

// Users is the cached accessor for operator accounts.
type Users struct {
	*consolecache.Resource[apitypes.User]
}

// NewUsers wires the users namespace.
func NewUsers(api consolecache.Transport, store cache.Store, exec *consolecache.Executor) *Users {
	return &Users{Resource: consolecache.NewResource[apitypes.User](usersManifest, "/users", api, store, exec)}
}

// Stats returns the cached account aggregate.
func (u *Users) Stats(ctx context.Context) (apitypes.UserStats, error) {
	return consolecache.ScopeGet[apitypes.UserStats](ctx, u.Resource, keypath.ScopeStats, "", nil)
}

// AssignRole grants a role to a user. On success the executor stales the
// user lists, the user's detail, the stats aggregate, and the whole roles
// namespace.
func (u *Users) AssignRole(ctx context.Context, userID, roleID string) error {
	return u.Do(ctx, userID, "roles", apitypes.AssignRoleRequest{RoleID: roleID}, nil)
}

// Roles is the cached accessor for permission sets.
type Roles struct {
	*consolecache.Resource[apitypes.Role]
}

// NewRoles wires the roles namespace.
func NewRoles(api consolecache.Transport, store cache.Store, exec *consolecache.Executor) *Roles {
	return &Roles{Resource: consolecache.NewResource[apitypes.Role](rolesManifest, "/roles", api, store, exec)}
}
