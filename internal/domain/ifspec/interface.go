package ifspec

// Interface is the concrete specification type. Interfaces are immutable
// after construction: the ancestor chain is linearised once in New and the
// extends set is precomputed from it.
type Interface struct {
	name      string
	bases     []*Interface
	ancestors []Spec
	extends   map[Spec]struct{}
}

// Any is the universal top specification. Every interface transitively
// extends Any, and Any terminates every ancestor chain.
var Any = newAny()

func newAny() *Interface {
	i := &Interface{name: "Any"}
	i.ancestors = []Spec{i}
	i.extends = map[Spec]struct{}{Spec(i): {}}
	return i
}

// New creates an interface extending the given bases. With no bases the
// interface extends Any directly.
func New(name string, bases ...*Interface) *Interface {
	if len(bases) == 0 {
		bases = []*Interface{Any}
	}
	i := &Interface{
		name:  name,
		bases: bases,
	}
	chains := make([][]Spec, len(bases))
	for bi, b := range bases {
		chains[bi] = b.Ancestors()
	}
	i.ancestors = linearize(i, chains)
	i.extends = make(map[Spec]struct{}, len(i.ancestors))
	for _, s := range i.ancestors {
		i.extends[s] = struct{}{}
	}
	return i
}

// Name returns the interface name.
func (i *Interface) Name() string {
	return i.name
}

// Bases returns the direct bases the interface was declared with.
func (i *Interface) Bases() []*Interface {
	return i.bases
}

// Ancestors returns the linearised chain from the interface itself to Any.
func (i *Interface) Ancestors() []Spec {
	return i.ancestors
}

// Extends reports whether the interface equals other or transitively
// extends it.
func (i *Interface) Extends(other Spec) bool {
	_, ok := i.extends[other]
	return ok
}

// linearize builds the ancestor chain: head first, then the concatenation
// of the base chains deduplicated keeping the last occurrence. Keeping the
// last occurrence pushes shared bases after everything that extends them,
// so diamonds resolve with Any at the end of the chain.
func linearize(head Spec, baseChains [][]Spec) []Spec {
	seq := []Spec{head}
	for _, chain := range baseChains {
		seq = append(seq, chain...)
	}

	last := make(map[Spec]int, len(seq))
	for idx, s := range seq {
		last[s] = idx
	}

	out := make([]Spec, 0, len(last))
	for idx, s := range seq {
		if last[s] == idx {
			out = append(out, s)
		}
	}
	return out
}
