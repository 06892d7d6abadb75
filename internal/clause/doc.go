// Package clause provides the immutable selection-clause algebra.
//
// A Clause is a node in an immutable tree representing a fragment of a
// selection: leaf criteria against a single variable, boolean compositions
// (AND, OR, NOT), table-change operations (ANY, THE) that move a clause up
// or down the table tree, and sub-selection wrappers around previously
// materialized selections.
//
// Clause is a sealed interface using the marker method pattern. Only types
// in this package implement it, which enables exhaustive type switches in
// the wire-model fold and keeps the variant set closed.
//
// INVARIANTS:
//   - Every clause has a well-defined resolve table
//   - All operands of a boolean operation share the operation's table
//   - An ANY operation's operand resolves strictly below the operation's
//     table; a THE operation's operand resolves strictly above it
//
// Clause construction is a pure functional tree build with no shared
// mutable state; routing failures are returned as *OperationError values so
// bulk construction can surface aggregated diagnostics.
package clause
