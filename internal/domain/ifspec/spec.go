package ifspec

// Spec is an interface specification: the opaque key the adapter registry
// indexes on. Implementations must be pointers so that identity comparisons
// and map keys behave as expected.
type Spec interface {
	// Name returns the human-readable name of the specification.
	Name() string

	// Ancestors returns the ordered chain from the spec itself through its
	// bases to Any. The chain is the authoritative linearisation; callers
	// must not re-derive it.
	Ancestors() []Spec

	// Extends reports whether the spec equals other or transitively
	// extends it.
	Extends(other Spec) bool
}

// Provider advertises the specification an object provides. The adaptation
// helpers consult it when resolving objects to query specs.
type Provider interface {
	Providing() Spec
}

// Null is the wildcard sentinel. Registered at a required position it
// matches every query spec at that position and ranks last among acceptable
// choices; in the provided position it designates a handler bucket.
var Null Spec = newNull()

type nullSpec struct {
	chain []Spec
}

func newNull() *nullSpec {
	n := &nullSpec{}
	n.chain = []Spec{n}
	return n
}

// Name returns the sentinel display name.
func (n *nullSpec) Name() string {
	return "<null>"
}

// Ancestors returns the single-element chain containing only the sentinel.
func (n *nullSpec) Ancestors() []Spec {
	return n.chain
}

// Extends reports true only for the sentinel itself; Null extends nothing
// and nothing extends Null.
func (n *nullSpec) Extends(other Spec) bool {
	return Spec(n) == other
}

// RankIn returns the position of r within chain, or false when r does not
// appear. Lower positions are more specific.
func RankIn(r Spec, chain []Spec) (int, bool) {
	for i, s := range chain {
		if s == r {
			return i, true
		}
	}
	return 0, false
}
