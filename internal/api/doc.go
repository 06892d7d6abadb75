// Package api is the HTTP client for the remote analytics server.
//
// The client covers the endpoints the library consumes: simple login,
// system info, table and variable metadata (paged), selector code lists
// (paged, fetched lazily), synchronous query counts, synchronous cube
// calculation and synchronous exports. All calls take a context and block
// on the caller's goroutine; cancellation and timeouts are inherited from
// the context and the injected http.Client.
//
// Every request carries a UUIDv7 correlation id so server logs can be
// matched to client debug logs. Server-stated counts that disagree with
// the returned payload are *ResultsError, fatal to bootstrap.
package api
