package adapter

import (
	"fmt"
	"sort"

	"github.com/zjrosen/lattice/internal/domain/ifspec"
)

// NamedValue is one (name, value) pair returned by LookupAll. Result order
// is unspecified; callers sort.
type NamedValue struct {
	Name  string
	Value any
}

// match is one trie leaf reachable from a query, with the rank of the
// registered spec chosen at each depth.
type match[P any] struct {
	ranks []int
	leaf  *node[P]
}

// collectMatches enumerates the leaves reachable from the query. At depth i
// the acceptable specs are ancestors(required[i]) followed by Null, which
// ranks one position past the end of the chain.
func collectMatches[P any](t *trie[P], required []ifspec.Spec) []match[P] {
	root := t.roots[len(required)]
	if root == nil {
		return nil
	}

	var out []match[P]
	var walk func(n *node[P], depth int, ranks []int)
	walk = func(n *node[P], depth int, ranks []int) {
		if depth == len(required) {
			cp := make([]int, len(ranks))
			copy(cp, ranks)
			out = append(out, match[P]{ranks: cp, leaf: n})
			return
		}
		chain := required[depth].Ancestors()
		for idx, s := range chain {
			if c := n.child(s); c != nil {
				walk(c, depth+1, append(ranks, idx))
			}
		}
		if required[depth] != ifspec.Null {
			if c := n.child(ifspec.Null); c != nil {
				walk(c, depth+1, append(ranks, len(chain)))
			}
		}
	}
	walk(root, 0, make([]int, 0, len(required)))
	return out
}

// providedRank ranks a registered provided spec p against the query
// provided P. p is eligible when it is-or-extends P; the rank is the
// position of P in ancestors(p), so an exact match ranks 0 and
// narrower-than-necessary registrations rank worse.
func providedRank(p, query ifspec.Spec) (int, bool) {
	return ifspec.RankIn(query, p.Ancestors())
}

// compareTuples orders specificity tuples lexicographically. Tuples from
// one query always have equal length (arity + 1).
func compareTuples(a, b []int) int {
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Lookup returns the registered value whose key most specifically covers
// the query, or deflt when nothing matches. The winner minimises the
// specificity tuple (required ranks, then provided rank) lexicographically.
func (r *Registry) Lookup(required []ifspec.Spec, provided ifspec.Spec, name string, deflt any) any {
	required = normalizeSpecs(required)
	query := normalizeSpec(provided)

	var best any
	var bestTuple []int
	var bestProvided string

	for _, m := range collectMatches(r.adapters, required) {
		for p, names := range m.leaf.buckets {
			value, ok := names[name]
			if !ok {
				continue
			}
			rank, ok := providedRank(p, query)
			if !ok {
				continue
			}
			tuple := append(append(make([]int, 0, len(m.ranks)+1), m.ranks...), rank)
			if best == nil || wins(tuple, p.Name(), bestTuple, bestProvided) {
				best = value
				bestTuple = tuple
				bestProvided = p.Name()
			}
		}
	}

	if best == nil {
		return deflt
	}
	return best
}

// wins reports whether a candidate beats the current best. Equal tuples can
// arise from distinct provided specs at the same depth; map iteration order
// is not deterministic, so exact-rank ties break on the provided spec name.
func wins(tuple []int, provided string, bestTuple []int, bestProvided string) bool {
	switch compareTuples(tuple, bestTuple) {
	case -1:
		return true
	case 0:
		return provided < bestProvided
	default:
		return false
	}
}

// Lookup1 is Lookup with a singleton required sequence.
func (r *Registry) Lookup1(required ifspec.Spec, provided ifspec.Spec, name string, deflt any) any {
	return r.Lookup([]ifspec.Spec{required}, provided, name, deflt)
}

// LookupAll returns one (name, value) pair per distinct name, where each
// value is the winner of Lookup for that name.
func (r *Registry) LookupAll(required []ifspec.Spec, provided ifspec.Spec) []NamedValue {
	required = normalizeSpecs(required)
	query := normalizeSpec(provided)

	type entry struct {
		tuple    []int
		provided string
		names    map[string]any
	}
	var entries []entry

	for _, m := range collectMatches(r.adapters, required) {
		for p, names := range m.leaf.buckets {
			rank, ok := providedRank(p, query)
			if !ok {
				continue
			}
			tuple := append(append(make([]int, 0, len(m.ranks)+1), m.ranks...), rank)
			entries = append(entries, entry{tuple: tuple, provided: p.Name(), names: names})
		}
	}

	// Broad registrations first so that folding overwrites each name with
	// progressively more specific winners.
	sort.Slice(entries, func(i, j int) bool {
		switch compareTuples(entries[i].tuple, entries[j].tuple) {
		case 1:
			return true
		case 0:
			return entries[i].provided > entries[j].provided
		default:
			return false
		}
	})

	winners := make(map[string]any)
	for _, e := range entries {
		for name, value := range e.names {
			winners[name] = value
		}
	}

	out := make([]NamedValue, 0, len(winners))
	for name, value := range winners {
		out = append(out, NamedValue{Name: name, Value: value})
	}
	return out
}

// Subscriptions returns the concatenation of every subscription list whose
// key matches the query. Less specific registrations come first; insertion
// order is preserved within a single bucket.
func (r *Registry) Subscriptions(required []ifspec.Spec, provided ifspec.Spec) []any {
	required = normalizeSpecs(required)
	query := normalizeSpec(provided)

	type entry struct {
		tuple    []int
		provided string
		values   []any
	}
	var entries []entry

	for _, m := range collectMatches(r.subscriptions, required) {
		for p, values := range m.leaf.buckets {
			rank, ok := providedRank(p, query)
			if !ok {
				continue
			}
			tuple := append(append(make([]int, 0, len(m.ranks)+1), m.ranks...), rank)
			entries = append(entries, entry{tuple: tuple, provided: p.Name(), values: values})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		switch compareTuples(entries[i].tuple, entries[j].tuple) {
		case 1:
			return true
		case 0:
			return entries[i].provided < entries[j].provided
		default:
			return false
		}
	})

	var out []any
	for _, e := range entries {
		out = append(out, e.values...)
	}
	return out
}

// Subscribers materialises each matching subscription by calling its value
// as a factory with objs. Factories returning nil are skipped. For handlers
// (provided Null) the factories run for side effects only and the result is
// empty.
func (r *Registry) Subscribers(objs []any, provided ifspec.Spec) []any {
	query := normalizeSpec(provided)

	specs := make([]ifspec.Spec, len(objs))
	for i, obj := range objs {
		specs[i] = r.resolve(obj)
	}

	var out []any
	for _, v := range r.Subscriptions(specs, query) {
		result := callFactory(v, objs)
		if query == ifspec.Null {
			continue
		}
		if result != nil {
			out = append(out, result)
		}
	}
	return out
}

// QueryAdapter looks up an adapter factory for the object's spec and calls
// it with the object. A miss, or a factory returning nil, yields deflt.
func (r *Registry) QueryAdapter(obj any, provided ifspec.Spec, name string, deflt any) any {
	value := r.Lookup1(r.resolve(obj), provided, name, nil)
	if value == nil {
		return deflt
	}
	result := callFactory(value, []any{obj})
	if result == nil {
		return deflt
	}
	return result
}

// QueryMultiAdapter is QueryAdapter over several objects: the factory is
// called with all of them.
func (r *Registry) QueryMultiAdapter(objs []any, provided ifspec.Spec, name string, deflt any) any {
	specs := make([]ifspec.Spec, len(objs))
	for i, obj := range objs {
		specs[i] = r.resolve(obj)
	}
	value := r.Lookup(specs, provided, name, nil)
	if value == nil {
		return deflt
	}
	result := callFactory(value, objs)
	if result == nil {
		return deflt
	}
	return result
}

// AdapterHook is QueryAdapter with its first two arguments swapped. It
// exists to be installed as the call hook of an interface so that adapting
// through the interface triggers a registry lookup.
func (r *Registry) AdapterHook(provided ifspec.Spec, obj any, name string, deflt any) any {
	return r.QueryAdapter(obj, provided, name, deflt)
}

// callFactory invokes a stored value through the Factory interface. A value
// that is not a factory is a programmer error; the panic propagates to the
// caller like any other factory failure.
func callFactory(value any, objs []any) any {
	f, ok := value.(Factory)
	if !ok {
		panic(fmt.Sprintf("adapter: registered value %T does not implement Factory", value))
	}
	return f.Adapt(objs...)
}
