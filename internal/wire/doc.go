// Package wire provides the request and response model for the remote
// analytics server.
//
// This package contains type definitions only. All other internal packages
// import wire; wire imports nothing internal. This keeps the wire model the
// foundational layer with no circular dependencies.
//
// Key conventions:
//   - All JSON tags use snake_case
//   - Value lists inside criteria are joined with the ASCII tab character
//   - Dates are "2006-01-02" in range rules and "20060102" in list rules
//   - Datetimes are "2006-01-02T15:04:05" (seconds precision, no timezone)
//   - Open-ended date bounds use the sentinels "Earliest" and "Latest"
package wire
