// Package consolecache coordinates cache consistency across the console's
// CRUD resources.
//
// # Overview
//
// Every namespace (users, datasources, rules, ...) declares a Manifest: its
// detail scope, its extra read scopes, and the other namespaces its writes
// affect. The Executor derives the invalidation fan-out of every mutation
// from that table, replacing the hand-listed invalidation calls the console
// grew across dozens of mutation hooks. The declaration lives in one place
// and drift shows up as a failing manifest test instead of stale UI data.
//
// Resource[T] is the cached access path for one namespace:
//
//	res := consolecache.NewResource[apitypes.User](manifest, "/users", api, store, exec)
//
//	users, page, err := res.List(ctx, consolecache.Params{"active": true})
//	user, err := res.Get(ctx, "42")
//	_, err = res.Update(ctx, "42", patch)   // stales users::list*, users::detail::42, ...
//	err = res.Delete(ctx, "42")             // removes users::detail::42 outright
//
// # Invalidation protocol
//
// On a successful write the executor stales, in order: the namespace's list
// prefix, its extra scopes, the entity's detail prefix (updates/deletes), the
// full prefix of every affected namespace, and any prefixes attached to the
// context with WithExtraInvalidations. Deletions additionally remove the
// exact detail key. Failed writes touch nothing.
//
// Consistency is eventual: staled entries refetch on their next read, and
// two concurrent mutations may cause two redundant refetches; request
// deduplication is left to the underlying store.
package consolecache
