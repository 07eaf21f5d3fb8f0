// Package tasks implements the data layer between the UI and the API client.
//
// The core abstraction is [Engine], which maps backend resources onto cached,
// keyed reads (via internal/cache) and wires mutations to cache invalidation:
// a successful like invalidates "matches" and "discover", a match deletion
// invalidates "matches" only. Long-running operations (Last.fm sync, discover
// prefetch) emit [ProgressUpdate] values via channels for non-blocking status
// reporting to CLI/TUI layers.
package tasks
