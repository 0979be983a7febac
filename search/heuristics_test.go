package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rtctrl/rtctrl"
)

func TestBFSHeuristicIncreasesMonotonically(t *testing.T) {
	h := &BFSHeuristic{}
	a := h.Cost(nil)
	b := h.Cost(nil)
	c := h.Cost(nil)
	assert.True(t, a < b)
	assert.True(t, b < c)
}

func TestDFSHeuristicDecreasesMonotonically(t *testing.T) {
	h := &DFSHeuristic{}
	a := h.Cost(nil)
	b := h.Cost(nil)
	assert.True(t, b < a)
}

func TestTimeHeuristicSumsDeltasUpParentChain(t *testing.T) {
	root := &Node{}
	mid := &Node{Parent: root, IncomingActions: []IncomingAction{{Delta: 2, Action: "a"}}}
	leaf := &Node{Parent: mid, IncomingActions: []IncomingAction{{Delta: 3, Action: "b"}, {Delta: 1, Action: "c"}}}

	var th TimeHeuristic
	assert.Equal(t, int64(0), th.Cost(root))
	assert.Equal(t, int64(2), th.Cost(mid))
	assert.Equal(t, int64(2+3+1), th.Cost(leaf))
}

func TestPreferEnvironmentActionHeuristic(t *testing.T) {
	h := PreferEnvironmentActionHeuristic{EnvironmentActions: map[string]bool{"e": true}}
	withEnv := &Node{IncomingActions: []IncomingAction{{Action: "c"}, {Action: "e"}}}
	withoutEnv := &Node{IncomingActions: []IncomingAction{{Action: "c"}}}
	assert.Equal(t, int64(0), h.Cost(withEnv))
	assert.Equal(t, int64(1), h.Cost(withoutEnv))
}

func TestNumCanonicalWordsHeuristicCountsWords(t *testing.T) {
	var h NumCanonicalWordsHeuristic
	empty := &Node{}
	assert.Equal(t, int64(0), h.Cost(empty))

	withWords := &Node{Words: []rtctrl.Word{{}, {}, {}}}
	assert.Equal(t, int64(3), h.Cost(withWords))
}

func TestExprHeuristicEvaluatesCompiledExpression(t *testing.T) {
	root := &Node{}
	leaf := &Node{Parent: root, Words: []rtctrl.Word{{}, {}}, IncomingActions: []IncomingAction{{Delta: 4, Action: "e"}}}

	h, err := NewExprHeuristic("timeCost + numWords", map[string]bool{"e": true})
	assert.NoError(t, err)
	assert.Equal(t, int64(4+2), h.Cost(leaf))
}

func TestExprHeuristicSeesEnvironmentReached(t *testing.T) {
	root := &Node{}
	leaf := &Node{Parent: root, IncomingActions: []IncomingAction{{Delta: 1, Action: "e"}}}

	h, err := NewExprHeuristic("environmentReached ? 0 : 1", map[string]bool{"e": true})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), h.Cost(leaf))
}

func TestNewExprHeuristicRejectsInvalidExpression(t *testing.T) {
	_, err := NewExprHeuristic("not ( valid", nil)
	assert.Error(t, err)
}

func TestCompositeHeuristicIsWeightedSum(t *testing.T) {
	root := &Node{}
	mid := &Node{Parent: root, IncomingActions: []IncomingAction{{Delta: 5, Action: "a"}}}

	c := CompositeHeuristic{Terms: []WeightedHeuristic{
		{Weight: 2, Heuristic: TimeHeuristic{}},
		{Weight: 1, Heuristic: &BFSHeuristic{}},
	}}
	got := c.Cost(mid)
	assert.Equal(t, int64(2*5+1*1), got)
}
