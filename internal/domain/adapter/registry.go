package adapter

import (
	"reflect"

	"github.com/zjrosen/lattice/internal/domain/ifspec"
)

// SpecResolver maps an object to the specification it provides. The
// adaptation helpers use it to turn objects into query specs.
type SpecResolver func(obj any) ifspec.Spec

// Option configures a Registry.
type Option func(*Registry)

// WithSpecResolver replaces the default object-to-spec resolver.
func WithSpecResolver(fn SpecResolver) Option {
	return func(r *Registry) {
		r.resolve = fn
	}
}

// defaultSpecResolver consults ifspec.Provider when the object implements
// it and falls back to Any otherwise.
func defaultSpecResolver(obj any) ifspec.Spec {
	if p, ok := obj.(ifspec.Provider); ok {
		return p.Providing()
	}
	return ifspec.Any
}

// Registry maps (required specs, provided spec, name) keys to opaque values
// over the interface lattice. It is single-writer, many-reader: mutating
// calls must not race with readers unless the host synchronises externally.
type Registry struct {
	adapters      *trie[map[string]any]
	subscriptions *trie[[]any]
	generation    uint64
	resolve       SpecResolver
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		adapters:      newTrie[map[string]any](),
		subscriptions: newTrie[[]any](),
		resolve:       defaultSpecResolver,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Generation returns the mutation counter. It strictly increases with each
// mutating call and never decreases; consumers key their caches on it.
func (r *Registry) Generation() uint64 {
	return r.generation
}

// Register stores value under the exact (required, provided, name) key.
// A nil value unregisters the current entry at that key and prunes the
// trie. Nil specs normalise to ifspec.Null.
func (r *Registry) Register(required []ifspec.Spec, provided ifspec.Spec, name string, value any) {
	defer r.bump()

	required = normalizeSpecs(required)
	provided = normalizeSpec(provided)

	if value == nil {
		leaf := r.adapters.leaf(required)
		if leaf == nil {
			return
		}
		names := leaf.buckets[provided]
		if names == nil {
			return
		}
		delete(names, name)
		if len(names) == 0 {
			delete(leaf.buckets, provided)
		}
		r.adapters.prune(required)
		return
	}

	leaf := r.adapters.ensureLeaf(required)
	if leaf.buckets == nil {
		leaf.buckets = make(map[ifspec.Spec]map[string]any)
	}
	names := leaf.buckets[provided]
	if names == nil {
		names = make(map[string]any)
		leaf.buckets[provided] = names
	}
	names[name] = value
}

// Registered returns the value stored under the exact key, or nil. No
// lattice walking: a key registered for a base interface is not visible
// through a derived one here.
func (r *Registry) Registered(required []ifspec.Spec, provided ifspec.Spec, name string) any {
	required = normalizeSpecs(required)
	provided = normalizeSpec(provided)

	leaf := r.adapters.leaf(required)
	if leaf == nil {
		return nil
	}
	names := leaf.buckets[provided]
	if names == nil {
		return nil
	}
	return names[name]
}

// Subscribe appends value to the subscription list at the exact key.
// Values are retained in insertion order and duplicates are allowed. A nil
// provided spec designates a handler bucket. Nil values are ignored.
func (r *Registry) Subscribe(required []ifspec.Spec, provided ifspec.Spec, value any) {
	defer r.bump()

	if value == nil {
		return
	}
	required = normalizeSpecs(required)
	provided = normalizeSpec(provided)

	leaf := r.subscriptions.ensureLeaf(required)
	if leaf.buckets == nil {
		leaf.buckets = make(map[ifspec.Spec][]any)
	}
	leaf.buckets[provided] = append(leaf.buckets[provided], value)
}

// Unsubscribe removes subscriptions at the exact key. With a non-nil value
// the first equal entry is removed; a missing entry is a no-op. With a nil
// value the whole bucket for provided is cleared. Empty chains are pruned.
func (r *Registry) Unsubscribe(required []ifspec.Spec, provided ifspec.Spec, value any) {
	defer r.bump()

	required = normalizeSpecs(required)
	provided = normalizeSpec(provided)

	leaf := r.subscriptions.leaf(required)
	if leaf == nil {
		return
	}
	list, ok := leaf.buckets[provided]
	if !ok {
		return
	}

	if value == nil {
		delete(leaf.buckets, provided)
		r.subscriptions.prune(required)
		return
	}

	for i, v := range list {
		if equalValue(v, value) {
			list = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(leaf.buckets, provided)
	} else {
		leaf.buckets[provided] = list
	}
	r.subscriptions.prune(required)
}

// bump increments the generation counter. It runs as the last observable
// effect of every mutating call, no-op mutations included.
func (r *Registry) bump() {
	r.generation++
}

// equalValue compares opaque values for Unsubscribe. Comparable types use
// ==; funcs compare by code pointer, which treats closures of the same
// literal as equal.
func equalValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra := reflect.ValueOf(a)
	rb := reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	if ra.Type().Comparable() {
		return a == b
	}
	switch ra.Kind() {
	case reflect.Func, reflect.Slice, reflect.Map:
		return ra.Pointer() == rb.Pointer()
	default:
		return false
	}
}

// normalizeSpec maps nil to the Null sentinel.
func normalizeSpec(s ifspec.Spec) ifspec.Spec {
	if s == nil {
		return ifspec.Null
	}
	return s
}

// normalizeSpecs maps nil entries to Null, copying only when needed.
func normalizeSpecs(specs []ifspec.Spec) []ifspec.Spec {
	for i, s := range specs {
		if s != nil {
			continue
		}
		out := make([]ifspec.Spec, len(specs))
		copy(out, specs[:i])
		for j := i; j < len(specs); j++ {
			out[j] = normalizeSpec(specs[j])
		}
		return out
	}
	return specs
}
