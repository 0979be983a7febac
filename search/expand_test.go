package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtctrl/rtctrl"
)

func TestExpandMarksBottomWhenRootIsImmediatelyAccepting(t *testing.T) {
	ta := rtctrl.NewTA("plant").
		WithLocations("p0").
		WithAlphabet("a").
		WithInitial("p0").
		WithAccepting("p0")
	ata := &rtctrl.ATA{
		Alphabet:  []string{"a"},
		Locations: []string{"q0", "sink"},
		Initial:   "q0",
		Sink:      "sink",
		Accepting: map[string]bool{"q0": true},
	}
	root := NewRoot(ta, ata, 2)
	o := &Options{TA: ta, ATA: ata, K: 2, IncrementalLabel: true,
		ControllerActions: map[string]bool{}, EnvironmentActions: map[string]bool{}}

	Expand(root, o)

	require.True(t, root.IsExpanded())
	assert.Equal(t, Bad, root.State)
	assert.Equal(t, Bottom, root.GetLabel())
	assert.Equal(t, "bad", root.LabelReason)
	assert.Empty(t, root.Children)
}

func TestExpandMarksTopWhenATAConfigurationIsUnsatisfiableFromTheStart(t *testing.T) {
	ta := rtctrl.NewTA("plant").WithLocations("p0").WithAlphabet("a").WithInitial("p0")
	ata := &rtctrl.ATA{
		Alphabet:  []string{"a"},
		Locations: []string{"sink"},
		Initial:   "sink",
		Sink:      "sink",
		Accepting: map[string]bool{},
	}
	root := NewRoot(ta, ata, 2)
	o := &Options{TA: ta, ATA: ata, K: 2, IncrementalLabel: true,
		ControllerActions: map[string]bool{}, EnvironmentActions: map[string]bool{}}

	Expand(root, o)

	require.True(t, root.IsExpanded())
	assert.Equal(t, Good, root.State)
	assert.Equal(t, Top, root.GetLabel())
	assert.Equal(t, "unsatisfiable", root.LabelReason)
}

func TestExpandIsIdempotent(t *testing.T) {
	ta := rtctrl.NewTA("plant").WithLocations("p0").WithAlphabet("a").
		WithInitial("p0").WithAccepting("p0")
	ata := &rtctrl.ATA{
		Initial: "q0", Sink: "sink", Locations: []string{"q0", "sink"},
		Accepting: map[string]bool{"q0": true},
	}
	root := NewRoot(ta, ata, 2)
	o := &Options{TA: ta, ATA: ata, K: 2, IncrementalLabel: true,
		ControllerActions: map[string]bool{}, EnvironmentActions: map[string]bool{}}

	Expand(root, o)
	firstLabel := root.GetLabel()
	Expand(root, o) // must be a no-op: already expanded
	assert.Equal(t, firstLabel, root.GetLabel())
}

func region(loc, clock string, idx int) rtctrl.RegionSymbol {
	return rtctrl.RegionSymbol{Kind: rtctrl.TARegionState, Location: loc, Clock: clock, Region: idx}
}

func TestDominatedByAncestorChecksEveryWordAgainstEveryAncestor(t *testing.T) {
	earlier := rtctrl.Word{{region("p0", "x", 2)}} // region 2 is integer-valued, x == 1
	later := rtctrl.Word{{region("p0", "x", 4)}}   // region 4 is integer-valued, x == 2

	parent := &Node{Words: []rtctrl.Word{earlier}}
	child := &Node{Parent: parent, Words: []rtctrl.Word{later}}

	assert.True(t, dominatedByAncestor(child))

	sameAsAncestor := &Node{Parent: parent, Words: []rtctrl.Word{earlier}}
	assert.True(t, dominatedByAncestor(sameAsAncestor), "equal words dominate too")

	unrelated := rtctrl.Word{{region("p0", "y", 4)}} // different clock identity
	differentShape := &Node{Parent: parent, Words: []rtctrl.Word{unrelated}}
	assert.False(t, dominatedByAncestor(differentShape))
}

func TestBuildChildrenGroupsByIntegerPartitionAndIncludesZeroDelta(t *testing.T) {
	ta := rtctrl.NewTA("plant").
		WithLocations("p0", "p1").
		WithClocks("x").
		WithAlphabet("a").
		WithInitial("p0").
		WithTransition(rtctrl.Transition{From: "p0", To: "p1", Symbol: "a"})
	ata := &rtctrl.ATA{
		Alphabet:  []string{"a"},
		Locations: []string{"q0", "sink"},
		Initial:   "q0",
		Sink:      "sink",
		Accepting: map[string]bool{},
		Transitions: map[string]map[string]*rtctrl.ATAFormula{
			"q0":   {"a": rtctrl.ATATrueF()},
			"sink": {"a": rtctrl.Loc("sink")},
		},
	}
	root := NewRoot(ta, ata, 2)
	o := &Options{TA: ta, ATA: ata, K: 2,
		ControllerActions: map[string]bool{}, EnvironmentActions: map[string]bool{}}

	children := buildChildren(root, o)
	require.NotEmpty(t, children)
	seenIDs := map[string]bool{}
	seenZeroDelta := false
	for _, c := range children {
		require.NotEmpty(t, c.IncomingActions)
		assert.Equal(t, root, c.Parent)
		assert.NotEmpty(t, c.ID)
		assert.False(t, seenIDs[c.ID], "each child gets a distinct ID")
		seenIDs[c.ID] = true
		for _, w := range c.Words {
			require.NoError(t, rtctrl.IsValidCanonicalWord(w, o.K))
			assert.Equal(t, rtctrl.RegA(c.Words[0]).Key(), rtctrl.RegA(w).Key(), "all words of a child share one integer partition")
		}
		for _, ia := range c.IncomingActions {
			if ia.Delta == 0 {
				seenZeroDelta = true
			}
		}
	}
	assert.True(t, seenZeroDelta, "the successor taken without any time elapsing is included")
}

