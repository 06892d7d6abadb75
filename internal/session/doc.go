// Package session owns the authenticated connection to an analytics
// system: the API client, the table tree and the variable catalog.
//
// Bootstrap runs once at login: fetch raw table metadata, build the table
// tree with its consistency checks, fetch raw variable metadata in pages,
// classify variables into typed handles and attach them to their owning
// tables. Everything the session holds is read-only after bootstrap, so
// selections, cubes and grids can share it without locks.
//
// A session can be serialized to JSON and restored later; restoring
// re-runs bootstrap against the server so the tree and catalog are never
// persisted stale.
package session
