// Package tabletree models the rooted tree of related entity tables that
// underpins clause routing, cube validation and data grid validation.
//
// Tables are stored in a flat arena owned by the Tree; parent, children,
// ancestor and descendant relations are index sequences into that arena.
// This keeps the tree copy-cheap and avoids back-reference ownership cycles.
//
// INVARIANTS:
//   - Exactly one master table (no parent); every other table has one parent
//   - Ancestors(T) == [T.Parent, T.Parent.Parent, ..., master]
//   - Descendants(T) is the depth-first listing of T's subtree minus T
//   - The set of tables reachable from the master equals the raw table set,
//     each exactly once
//
// Trees are built once by Build during session bootstrap and are immutable
// thereafter.
package tabletree
