// Package ifspec implements the domain layer for interface specifications.
//
// This package follows Domain-Driven Design (DDD) principles:
//   - Contains only pure Go code with standard library imports (no external dependencies)
//   - Defines the Spec contract consumed by the adapter registry
//   - Implements ancestry linearisation and the specificity order used for ranking
//   - Has no knowledge of infrastructure concerns (file I/O, YAML parsing, registries)
//
// # Core Types
//
// Spec is the opaque handle the adapter registry indexes on. A Spec has a
// name, an ordered ancestor chain from itself through its bases to the
// universal top Any, and an is-or-extends relation. Identity is Go
// interface-value identity; all implementations are pointers.
//
// Interface is the concrete specification type. Interfaces are immutable
// after construction; their ancestor chain is linearised once in New.
// Base-less interfaces implicitly extend Any.
//
// Declaration is a composite, query-side specification for objects that
// provide several interfaces at once. Declarations are never registered;
// they only appear in queries.
//
// Null is the wildcard sentinel. At a required key position it matches any
// query spec and ranks strictly after Any; in the provided position it
// designates a handler slot. Null is distinct from Any: the acceptable specs
// at a trie depth are ancestors(query) followed by Null.
//
// # Specificity
//
// For a query spec q and a registered spec r, the rank of r is the index of
// r in ancestors(q) (RankIn). Lower ranks are more specific. Null ranks one
// position past the end of the chain.
package ifspec
