package tracing

import (
	"go.opentelemetry.io/otel/attribute"
)

// Span names for lattice operations. The lookup service emits the lookup,
// lookup-all, and subscriptions spans; nothing emits SpanReload.
const (
	SpanLookup        = "lattice.lookup"
	SpanLookupAll     = "lattice.lookup_all"
	SpanSubscriptions = "lattice.subscriptions"
	SpanReload        = "lattice.reload"
)

// LookupAttrs builds the standard attribute set for a lookup span.
func LookupAttrs(required []string, provided, name string, generation uint64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.StringSlice("lookup.required", required),
		attribute.String("lookup.provided", provided),
		attribute.String("lookup.name", name),
		attribute.Int("lookup.arity", len(required)),
		attribute.Int64("registry.generation", int64(generation)),
	}
}

// HitAttr records whether a lookup produced a value.
func HitAttr(hit bool) attribute.KeyValue {
	return attribute.Bool("lookup.hit", hit)
}
