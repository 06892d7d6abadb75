// Package vars provides typed handles to server-side variables and the
// operator surface that turns comparisons into selection clauses.
//
// Variable is a sealed interface over the closed set of variable kinds:
// Selector, CombinedCategories, Numeric, Text, Array, FlagArray, Date,
// DateTime and Reference. Each kind exposes only the operators the server
// supports for it; every operator builds a leaf clause and never compares
// structurally.
//
// Variables are created once during session bootstrap by classifying raw
// server metadata, grouped into a Catalog addressable by server name and by
// display description, and are immutable thereafter. Raw metadata whose
// discriminant maps to no kind is logged and skipped, never fatal.
//
// Selector values can be validated lazily against the server's code list
// via an injected CodeFetcher; codes are never fetched eagerly and never
// cached across sessions.
package vars
