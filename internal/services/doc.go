// Package services implements the HTTP client for the duet REST API.
//
// [API] is the interface consumed by the session store, the cache layer and
// the task engine; [Client] is the concrete implementation. The client is a
// thin JSON wrapper: it attaches the bearer credential, applies a polite
// client-side rate limit, and maps HTTP status codes onto the sentinel errors
// in internal/shared. It performs no caching and no retries of its own.
package services
