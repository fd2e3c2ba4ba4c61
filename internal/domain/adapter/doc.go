// Package adapter implements the domain layer for the adapter registry: a
// lookup engine mapping (required specs, provided spec, name) keys to opaque
// values over an arbitrary interface inheritance lattice.
//
// This package follows Domain-Driven Design (DDD) principles:
//   - Contains only pure Go code with standard library imports (no external dependencies)
//   - Defines the Registry entity, the lookup trie, and the query engine
//   - Has no knowledge of infrastructure concerns (file I/O, YAML parsing, caches)
//
// # Core Types
//
// Registry is the single in-process object. It holds two tries keyed by the
// required-spec sequence: one for adapters (leaf buckets map provided spec to
// a per-name value map) and one for subscriptions (leaf buckets map provided
// spec to an append-only value list). Values are opaque; the registry only
// inspects them for nil-ness (Register with nil unregisters) and equality
// (Unsubscribe).
//
// Factory is the calling convention for the adaptation helpers: QueryAdapter,
// QueryMultiAdapter, AdapterHook, and Subscribers invoke stored values
// through it. A factory returning nil declines adaptation.
//
// Builder provides a fluent API for composing registrations.
//
// # Matching and Ranking
//
// A registered required spec r matches query spec q when r appears in
// ancestors(q), or when r is ifspec.Null (which matches everything and ranks
// one position past Any). A registered provided spec p matches query
// provided P when p is-or-extends P: an adapter producing a narrower
// interface also serves queries for the broader one.
//
// Lookup minimises the specificity tuple (required ranks, then provided
// rank) lexicographically. Subscriptions returns all matching values sorted
// by the same tuple in descending order, so broad registrations come before
// narrow ones, preserving insertion order within a bucket.
//
// # Concurrency
//
// The registry is single-writer, many-reader, with no internal locks. Hosts
// needing concurrent mutation wrap it (see internal/application/adapter).
// Every mutating call increments Generation as its last observable effect;
// consumers key their caches on it.
package adapter
