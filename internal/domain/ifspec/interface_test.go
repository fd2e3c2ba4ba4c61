package ifspec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_NoBasesExtendsAny(t *testing.T) {
	iface := New("IBase")

	require.Equal(t, "IBase", iface.Name())
	require.Equal(t, []Spec{iface, Any}, iface.Ancestors())
	require.True(t, iface.Extends(iface))
	require.True(t, iface.Extends(Any))
}

func TestNew_SingleInheritanceChain(t *testing.T) {
	ir1 := New("IR1")
	ir2 := New("IR2", ir1)

	require.Equal(t, []Spec{ir2, ir1, Any}, ir2.Ancestors())
	require.True(t, ir2.Extends(ir1))
	require.False(t, ir1.Extends(ir2))
}

func TestNew_DiamondKeepsSharedBaseLast(t *testing.T) {
	ia := New("IA")
	ib := New("IB", ia)
	ic := New("IC", ia)
	id := New("ID", ib, ic)

	// The shared base IA must come after both IB and IC, and Any stays last.
	require.Equal(t, []Spec{id, ib, ic, ia, Any}, id.Ancestors())
}

func TestNew_BasesAccessor(t *testing.T) {
	ia := New("IA")
	ib := New("IB", ia)

	require.Equal(t, []*Interface{ia}, ib.Bases())
}

func TestAny_IsItsOwnChain(t *testing.T) {
	require.Equal(t, []Spec{Any}, Any.Ancestors())
	require.True(t, Any.Extends(Any))
	require.False(t, Any.Extends(Null))
}

func TestNull_ExtendsOnlyItself(t *testing.T) {
	iface := New("IFoo")

	require.Equal(t, []Spec{Null}, Null.Ancestors())
	require.True(t, Null.Extends(Null))
	require.False(t, Null.Extends(Any))
	require.False(t, iface.Extends(Null))
}

func TestRankIn(t *testing.T) {
	ir1 := New("IR1")
	ir2 := New("IR2", ir1)

	rank, ok := RankIn(ir1, ir2.Ancestors())
	require.True(t, ok)
	require.Equal(t, 1, rank)

	rank, ok = RankIn(ir2, ir2.Ancestors())
	require.True(t, ok)
	require.Equal(t, 0, rank)

	_, ok = RankIn(ir2, ir1.Ancestors())
	require.False(t, ok)
}

func TestDeclare_MergesChains(t *testing.T) {
	ia := New("IA")
	ib := New("IB")
	decl := Declare(ia, ib)

	require.Equal(t, "Declaration(IA, IB)", decl.Name())
	require.Equal(t, []Spec{decl, ia, ib, Any}, decl.Ancestors())
	require.True(t, decl.Extends(ia))
	require.True(t, decl.Extends(ib))
	require.True(t, decl.Extends(Any))
	require.Equal(t, []*Interface{ia, ib}, decl.Declared())
}

func TestDeclare_Empty(t *testing.T) {
	decl := Declare()

	require.Equal(t, []Spec{decl, Any}, decl.Ancestors())
	require.True(t, decl.Extends(Any))
}

func TestDeclare_SharedBaseSortsAfterSharers(t *testing.T) {
	ia := New("IA")
	ib := New("IB", ia)
	ic := New("IC", ia)
	decl := Declare(ib, ic)

	require.Equal(t, []Spec{decl, ib, ic, ia, Any}, decl.Ancestors())
}
