// Package session holds the client's record of who is logged in.
//
// [Store] is the single authoritative in-memory session state, synchronized
// with a persisted token via [TokenStore] so a restart resumes the session
// without re-authentication. The store is constructed explicitly and injected
// into its consumers; there is no package-level singleton, which keeps tests
// isolated per instance.
package session
