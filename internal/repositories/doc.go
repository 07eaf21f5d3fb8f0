// Package repositories provides the persistence layer for the offline cache.
//
// The backend owns all records; these tables hold read-only snapshots of the
// most recent /matches and /discover responses so `duet matches list
// --offline` and friends work without a network connection. Each snapshot
// replaces the previous one wholesale, mirroring the server's view at fetch
// time.
package repositories
