// Package models defines domain entities shared between the API client, the local cache, and the UI.
//
// The package contains two categories of types:
//
// 1. Server-owned records, held client-side as cache copies only:
//   - [User] : the authenticated account with profile attributes
//   - [Match] : a mutual like between two users
//   - [Like] : a directional like relation
//   - [UserProfile] : a discovery candidate with music-taste overlap data
//
// 2. Request/response shapes for the REST API:
//   - [CreateUser], [UpdateUser], [LoginRequest], [AuthResponse]
//   - [LikeResult], [SyncResult], [Ack]
//
// Field names and JSON tags mirror the backend wire format exactly; timestamps
// are RFC 3339 strings as sent by the server.
package models
