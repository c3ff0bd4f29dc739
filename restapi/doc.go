// Package restapi is the HTTP client for the console backend.
//
// Endpoints are resource-oriented (list/detail/create/update/delete plus
// domain actions); responses carry a data payload and, for paginated lists,
// pagination metadata. Authentication uses a bearer access token; on a 401
// the client exchanges the refresh token at the dedicated refresh endpoint
// and retries the original request exactly once. Refresh exchanges are
// serialized, so a burst of concurrently rejected requests results in a
// single refresh call.
//
// This package is cache-free: the cache registry and the invalidation
// protocol live in consolecache and only observe the outcome of a request.
package restapi
