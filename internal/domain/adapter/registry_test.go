package adapter

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/lattice/internal/domain/ifspec"
)

// Fixture interfaces shared by the lookup scenarios: IR2 extends IR1,
// IP2 extends IP1.
func scenarioSpecs() (ir1, ir2, ip1, ip2 *ifspec.Interface) {
	ir1 = ifspec.New("IR1")
	ir2 = ifspec.New("IR2", ir1)
	ip1 = ifspec.New("IP1")
	ip2 = ifspec.New("IP2", ip1)
	return
}

func reqs(specs ...ifspec.Spec) []ifspec.Spec {
	return specs
}

func TestRegistry_LookupFollowsRequiredAndProvidedLattice(t *testing.T) {
	ir1, ir2, ip1, ip2 := scenarioSpecs()
	reg := New()

	reg.Register(reqs(ir1), ip2, "", 12)

	require.Equal(t, 12, reg.Lookup(reqs(ir1), ip2, "", nil))
	require.Equal(t, 12, reg.Lookup(reqs(ir2), ip2, "", nil), "derived required spec reaches base registration")
	require.Equal(t, 12, reg.Lookup(reqs(ir1), ip1, "", nil), "adapter providing IP2 also provides the broader IP1")
	require.Nil(t, reg.Lookup(reqs(ifspec.Any), ip1, "", nil), "Any does not extend IR1")
}

func TestRegistry_LookupByName(t *testing.T) {
	ir1, _, ip1, ip2 := scenarioSpecs()
	reg := New()

	reg.Register(reqs(ir1), ip2, "", 12)
	reg.Register(reqs(ir1), ip2, "bob", "Bob's 12")

	require.Equal(t, "Bob's 12", reg.Lookup(reqs(ir1), ip1, "bob", nil))
	require.Equal(t, 12, reg.Lookup(reqs(ir1), ip1, "", nil))

	all := reg.LookupAll(reqs(ir1), ip1)
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	require.Equal(t, []NamedValue{{Name: "", Value: 12}, {Name: "bob", Value: "Bob's 12"}}, all)
}

func TestRegistry_MoreSpecificProvidedWins(t *testing.T) {
	ir1, _, ip1, ip2 := scenarioSpecs()
	reg := New()

	reg.Register(reqs(ir1), ip2, "", 12)
	reg.Register(reqs(ir1), ip1, "", 11)

	require.Equal(t, 11, reg.Lookup(reqs(ir1), ip1, "", nil), "exact provided beats narrower-than-necessary")
	require.Equal(t, 12, reg.Lookup(reqs(ir1), ip2, "", nil), "IP1 registration cannot serve IP2")
}

func TestRegistry_MoreSpecificRequiredWins(t *testing.T) {
	ir1, ir2, ip1, ip2 := scenarioSpecs()
	reg := New()

	reg.Register(reqs(ir1), ip2, "", 12)
	reg.Register(reqs(ir1), ip1, "", 11)
	reg.Register(reqs(ir2), ip1, "", 21)

	require.Equal(t, 21, reg.Lookup(reqs(ir2), ip1, "", nil))
	require.Equal(t, 11, reg.Lookup(reqs(ir1), ip1, "", nil))
}

func TestRegistry_NullRequiredIsWildcardOfLastResort(t *testing.T) {
	ir1, ir2, ip1, ip2 := scenarioSpecs()
	reg := New()

	reg.Register(reqs(ir1), ip2, "", 12)
	reg.Register(reqs(ir1), ip1, "", 11)
	reg.Register(reqs(ir2), ip1, "", 21)
	reg.Register(reqs(nil), ip1, "", 1)

	iq := ifspec.New("IQ")
	require.Equal(t, 1, reg.Lookup(reqs(iq), ip1, "", nil), "fresh interface falls through to the wildcard")
	require.Equal(t, 21, reg.Lookup(reqs(ir2), ip1, "", nil), "wildcard never shadows a specific registration")
}

func TestRegistry_NullRanksAfterAny(t *testing.T) {
	_, _, ip1, _ := scenarioSpecs()
	reg := New()

	reg.Register(reqs(nil), ip1, "", "wildcard")
	reg.Register(reqs(ifspec.Any), ip1, "", "top")

	iq := ifspec.New("IQ")
	require.Equal(t, "top", reg.Lookup(reqs(iq), ip1, "", nil))

	reg.Register(reqs(ifspec.Any), ip1, "", nil)
	require.Equal(t, "wildcard", reg.Lookup(reqs(iq), ip1, "", nil))
}

func TestRegistry_RegisteredIsExactKeyOnly(t *testing.T) {
	ir1, ir2, ip1, ip2 := scenarioSpecs()
	reg := New()

	reg.Register(reqs(ir1), ip2, "", 12)

	require.Equal(t, 12, reg.Registered(reqs(ir1), ip2, ""))
	require.Nil(t, reg.Registered(reqs(ir2), ip2, ""), "no lattice walk")
	require.Nil(t, reg.Registered(reqs(ir1), ip1, ""))
	require.Nil(t, reg.Registered(reqs(ir1), ip2, "bob"))
}

func TestRegistry_RegisterNilUnregisters(t *testing.T) {
	ir1, _, _, ip2 := scenarioSpecs()
	reg := New()

	reg.Register(reqs(ir1), ip2, "", 12)
	require.Equal(t, 12, reg.Registered(reqs(ir1), ip2, ""))

	reg.Register(reqs(ir1), ip2, "", nil)
	require.Nil(t, reg.Registered(reqs(ir1), ip2, ""))
	require.Nil(t, reg.Lookup(reqs(ir1), ip2, "", nil))
}

func TestRegistry_UnregisterUnknownKeyIsNoOp(t *testing.T) {
	ir1, _, _, ip2 := scenarioSpecs()
	reg := New()

	reg.Register(reqs(ir1), ip2, "", nil)
	require.Nil(t, reg.Registered(reqs(ir1), ip2, ""))
	require.Zero(t, reg.adapters.size())
}

func TestRegistry_UnregisterPrunesEmptyBranches(t *testing.T) {
	ir1, ir2, ip1, ip2 := scenarioSpecs()
	reg := New()

	reg.Register(reqs(ir1, ir2), ip2, "", "multi")
	reg.Register(reqs(ir1), ip1, "bob", "named")
	require.Equal(t, "multi", reg.Lookup(reqs(ir1, ir2), ip2, "", nil))

	reg.Register(reqs(ir1, ir2), ip2, "", nil)
	reg.Register(reqs(ir1), ip1, "bob", nil)

	require.Zero(t, reg.adapters.size(), "net-empty registrations leave no nodes behind")
	require.Empty(t, reg.LookupAll(reqs(ir1, ir2), ip2))
}

func TestRegistry_NullAdapterLivesAtArityZero(t *testing.T) {
	_, _, ip1, _ := scenarioSpecs()
	reg := New()

	reg.Register(nil, ip1, "", "null-adapter")

	require.Equal(t, "null-adapter", reg.Lookup(nil, ip1, "", nil))
	require.Equal(t, "null-adapter", reg.Registered(nil, ip1, ""))
}

func TestRegistry_ArityMismatchMisses(t *testing.T) {
	ir1, ir2, ip1, _ := scenarioSpecs()
	reg := New()

	reg.Register(reqs(ir1), ip1, "", 11)

	require.Nil(t, reg.Lookup(reqs(ir1, ir2), ip1, "", nil))
	require.Nil(t, reg.Registered(reqs(ir1, ir2), ip1, ""))
	require.Empty(t, reg.Subscriptions(reqs(ir1, ir2), ip1))
}

func TestRegistry_LookupMissReturnsDefaultByIdentity(t *testing.T) {
	ir1, _, ip1, _ := scenarioSpecs()
	reg := New()

	marker := &struct{ name string }{name: "default"}
	got := reg.Lookup(reqs(ir1), ip1, "", marker)
	require.Same(t, marker, got)
}

func TestRegistry_GenerationBumpsOnEveryMutation(t *testing.T) {
	ir1, _, ip1, _ := scenarioSpecs()
	reg := New()
	require.Zero(t, reg.Generation())

	reg.Register(reqs(ir1), ip1, "", 11)
	require.Equal(t, uint64(1), reg.Generation())

	reg.Subscribe(reqs(ir1), ip1, "sub")
	require.Equal(t, uint64(2), reg.Generation())

	reg.Unsubscribe(reqs(ir1), ip1, "sub")
	require.Equal(t, uint64(3), reg.Generation())

	// Readers never bump.
	reg.Lookup(reqs(ir1), ip1, "", nil)
	reg.Registered(reqs(ir1), ip1, "")
	reg.Subscriptions(reqs(ir1), ip1)
	require.Equal(t, uint64(3), reg.Generation())
}

func TestRegistry_LookupWithDeclarationQuery(t *testing.T) {
	ir1, _, ip1, _ := scenarioSpecs()
	other := ifspec.New("IOther")
	reg := New()

	reg.Register(reqs(ir1), ip1, "", 11)

	decl := ifspec.Declare(other, ir1)
	require.Equal(t, 11, reg.Lookup(reqs(decl), ip1, "", nil))
}
