// Package adapter implements the application layer for the adapter registry.
//
// This package serves as a facade that bridges the domain layer to
// infrastructure concerns:
//   - Loads interface hierarchies and registrations from YAML documents
//   - Resolves factory ids against a catalog of registered Go factories
//   - Wraps the domain registry in a reader-writer lock for concurrent hosts
//   - Caches lookups keyed by registry generation and traces them
//
// # Architecture
//
// The application layer depends on:
//   - Domain layer (internal/domain/adapter, internal/domain/ifspec): pure
//     domain types and logic
//   - Infrastructure: yaml.v3 parsing, internal/cachemanager,
//     internal/tracing, internal/watcher, internal/pubsub
//
// This separation keeps the domain layer free of I/O concerns.
//
// # Service
//
// Service is the main entry point. It provides:
//   - LoadFile / LoadBytes: build a fresh registry from a YAML document and
//     swap it in under the write lock
//   - Lookup, LookupAll, Subscriptions: read operations with caching and
//     tracing
//   - Register, Subscribe, Unsubscribe: write passthroughs
//   - Watch: rebuild automatically when the document changes on disk
//
// # YAML Documents
//
// A registry document declares interfaces (with bases), adapters, and
// subscriptions. Spec names resolve against the declared interfaces; the
// name "*" denotes the Null wildcard and "Any" the universal top. Factory
// ids resolve against the catalog; unknown ids register the id string
// itself as the opaque value, which keeps resolution inspectable from the
// CLI without Go code.
//
// # Import Aliasing
//
// Note: This package has the same name as the domain adapter package. When
// importing both, use aliasing to disambiguate:
//
//	import (
//	    domadapter "github.com/zjrosen/lattice/internal/domain/adapter"
//	    appadapter "github.com/zjrosen/lattice/internal/application/adapter"
//	)
package adapter
