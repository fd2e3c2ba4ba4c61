package ifspec

import "strings"

// Declaration is a composite query-side specification for an object that
// provides several interfaces at once. Declarations appear only in queries;
// registered specs are always interfaces or Null.
type Declaration struct {
	name      string
	declared  []*Interface
	ancestors []Spec
	extends   map[Spec]struct{}
}

// Declare builds a declaration over the given interfaces. The ancestor
// chain is the declaration itself followed by the merged chains of the
// declared interfaces in declaration order.
func Declare(ifaces ...*Interface) *Declaration {
	names := make([]string, len(ifaces))
	chains := make([][]Spec, len(ifaces))
	for i, iface := range ifaces {
		names[i] = iface.Name()
		chains[i] = iface.Ancestors()
	}

	d := &Declaration{
		name:     "Declaration(" + strings.Join(names, ", ") + ")",
		declared: ifaces,
	}
	if len(ifaces) == 0 {
		chains = [][]Spec{Any.Ancestors()}
	}
	d.ancestors = linearize(d, chains)
	d.extends = make(map[Spec]struct{}, len(d.ancestors))
	for _, s := range d.ancestors {
		d.extends[s] = struct{}{}
	}
	return d
}

// Name returns the synthesized declaration name.
func (d *Declaration) Name() string {
	return d.name
}

// Declared returns the interfaces the declaration was built from.
func (d *Declaration) Declared() []*Interface {
	return d.declared
}

// Ancestors returns the merged chain, the declaration itself first.
func (d *Declaration) Ancestors() []Spec {
	return d.ancestors
}

// Extends reports whether the declaration provides other.
func (d *Declaration) Extends(other Spec) bool {
	_, ok := d.extends[other]
	return ok
}
