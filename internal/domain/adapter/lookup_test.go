package adapter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/lattice/internal/domain/ifspec"
)

// content is a test object advertising its spec via ifspec.Provider.
type content struct {
	spec ifspec.Spec
	name string
}

func (c *content) Providing() ifspec.Spec {
	return c.spec
}

func TestRegistry_QueryAdapterCallsFactory(t *testing.T) {
	ir1, _, ip1, _ := scenarioSpecs()
	reg := New()

	reg.Register(reqs(ir1), ip1, "", FactoryFunc(func(objs ...any) any {
		return "adapted:" + objs[0].(*content).name
	}))

	obj := &content{spec: ir1, name: "doc"}
	require.Equal(t, "adapted:doc", reg.QueryAdapter(obj, ip1, "", nil))
}

func TestRegistry_QueryAdapterFactoryDeclines(t *testing.T) {
	ir1, _, ip1, _ := scenarioSpecs()
	reg := New()

	reg.Register(reqs(ir1), ip1, "", FactoryFunc(func(objs ...any) any {
		return nil
	}))

	obj := &content{spec: ir1}
	marker := "fallback"
	require.Equal(t, marker, reg.QueryAdapter(obj, ip1, "", marker))
}

func TestRegistry_QueryAdapterMissReturnsDefault(t *testing.T) {
	ir1, _, ip1, _ := scenarioSpecs()
	reg := New()

	obj := &content{spec: ir1}
	require.Equal(t, 42, reg.QueryAdapter(obj, ip1, "", 42))
	require.Nil(t, reg.QueryAdapter(obj, ip1, "", nil))
}

func TestRegistry_QueryAdapterResolvesDerivedSpec(t *testing.T) {
	ir1, ir2, ip1, _ := scenarioSpecs()
	reg := New()

	reg.Register(reqs(ir1), ip1, "", FactoryFunc(func(objs ...any) any {
		return "base"
	}))

	obj := &content{spec: ir2}
	require.Equal(t, "base", reg.QueryAdapter(obj, ip1, "", nil))
}

func TestRegistry_QueryMultiAdapter(t *testing.T) {
	ir1, _, ip1, ip2 := scenarioSpecs()
	reg := New()

	reg.Register(reqs(ir1, ip1), ip2, "", FactoryFunc(func(objs ...any) any {
		left := objs[0].(*content)
		right := objs[1].(*content)
		return left.name + "+" + right.name
	}))

	a := &content{spec: ir1, name: "a"}
	b := &content{spec: ip1, name: "b"}
	require.Equal(t, "a+b", reg.QueryMultiAdapter([]any{a, b}, ip2, "", nil))
	require.Nil(t, reg.QueryMultiAdapter([]any{a}, ip2, "", nil), "arity mismatch misses")
}

func TestRegistry_AdapterHookSwapsArguments(t *testing.T) {
	ir1, _, ip1, _ := scenarioSpecs()
	reg := New()

	reg.Register(reqs(ir1), ip1, "", FactoryFunc(func(objs ...any) any {
		return "hooked"
	}))

	obj := &content{spec: ir1}
	require.Equal(t, "hooked", reg.AdapterHook(ip1, obj, "", nil))
}

func TestRegistry_QueryAdapterNonFactoryPanics(t *testing.T) {
	ir1, _, ip1, _ := scenarioSpecs()
	reg := New()

	reg.Register(reqs(ir1), ip1, "", "not a factory")

	obj := &content{spec: ir1}
	require.Panics(t, func() {
		reg.QueryAdapter(obj, ip1, "", nil)
	})
}

func TestRegistry_DefaultResolverFallsBackToAny(t *testing.T) {
	_, _, ip1, _ := scenarioSpecs()
	reg := New()

	reg.Register(reqs(ifspec.Any), ip1, "", FactoryFunc(func(objs ...any) any {
		return "anything"
	}))

	require.Equal(t, "anything", reg.QueryAdapter("plain string", ip1, "", nil))
}

func TestRegistry_LookupAllFoldsToMostSpecificWinner(t *testing.T) {
	ir1, ir2, ip1, _ := scenarioSpecs()
	reg := New()

	reg.Register(reqs(ir1), ip1, "", "base")
	reg.Register(reqs(ir2), ip1, "", "derived")
	reg.Register(reqs(ir1), ip1, "bob", "named-base")

	all := reg.LookupAll(reqs(ir2), ip1)
	require.Len(t, all, 2)

	winners := make(map[string]any, len(all))
	for _, nv := range all {
		winners[nv.Name] = nv.Value
	}
	require.Equal(t, "derived", winners[""])
	require.Equal(t, "named-base", winners["bob"])
}

func TestRegistry_LookupAllEmptyRegistry(t *testing.T) {
	ir1, _, ip1, _ := scenarioSpecs()
	reg := New()

	require.Empty(t, reg.LookupAll(reqs(ir1), ip1))
}

func TestRegistry_Lookup1MatchesLookup(t *testing.T) {
	ir1, ir2, ip1, _ := scenarioSpecs()
	reg := New()

	reg.Register(reqs(ir1), ip1, "", 11)

	require.Equal(t, reg.Lookup(reqs(ir2), ip1, "", nil), reg.Lookup1(ir2, ip1, "", nil))
}
