package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctrlEnv = &Options{
	ControllerActions:  map[string]bool{"c": true},
	EnvironmentActions: map[string]bool{"e": true},
}

func TestDecideLeafMapsStateToLabel(t *testing.T) {
	bad := &Node{State: Bad}
	l, _ := decide(bad, ctrlEnv)
	assert.Equal(t, Bottom, l)

	good := &Node{State: Good}
	l, _ = decide(good, ctrlEnv)
	assert.Equal(t, Top, l)

	dead := &Node{State: Dead}
	l, _ = decide(dead, ctrlEnv)
	assert.Equal(t, Top, l)

	unknown := &Node{State: Unknown}
	l, _ = decide(unknown, ctrlEnv)
	assert.Equal(t, Unlabeled, l)
}

func TestDecideControllerWinsWhenItsDeltaIsSmaller(t *testing.T) {
	ctrlChild := &Node{IncomingActions: []IncomingAction{{Delta: 1, Action: "c"}}}
	ctrlChild.setLabel(Top, "t")
	envChild := &Node{IncomingActions: []IncomingAction{{Delta: 2, Action: "e"}}}
	envChild.setLabel(Bottom, "b")
	n := &Node{Children: []*Node{ctrlChild, envChild}}

	l, reason := decide(n, ctrlEnv)
	assert.Equal(t, Top, l)
	assert.Equal(t, "first-good-ctrl", reason)
}

func TestDecideEnvironmentWinsWhenItsDeltaIsSmaller(t *testing.T) {
	n := &Node{}
	top := &Node{IncomingActions: []IncomingAction{{Delta: 5, Action: "c"}}}
	top.setLabel(Top, "t")
	bottom := &Node{IncomingActions: []IncomingAction{{Delta: 1, Action: "e"}}}
	bottom.setLabel(Bottom, "b")
	n.Children = []*Node{top, bottom}

	l, reason := decide(n, ctrlEnv)
	assert.Equal(t, Bottom, l)
	assert.Equal(t, "first-bad-env", reason)
}

func TestDecideTiedDeltasFavorEnvironment(t *testing.T) {
	n := &Node{}
	top := &Node{IncomingActions: []IncomingAction{{Delta: 1, Action: "c"}}}
	top.setLabel(Top, "t")
	bottom := &Node{IncomingActions: []IncomingAction{{Delta: 1, Action: "e"}}}
	bottom.setLabel(Bottom, "b")
	n.Children = []*Node{top, bottom}

	l, _ := decide(n, ctrlEnv)
	assert.Equal(t, Bottom, l, "first_good_ctrl < first_bad_env is required strictly, so a tie goes to the environment")
}

func TestDecideWaitsWhilePendingChildCouldStillBeatAConfirmedBottom(t *testing.T) {
	n := &Node{}
	bottom := &Node{IncomingActions: []IncomingAction{{Delta: 5, Action: "e"}}}
	bottom.setLabel(Bottom, "b")
	pendingCtrl := &Node{IncomingActions: []IncomingAction{{Delta: 1, Action: "c"}}} // unlabelled
	n.Children = []*Node{bottom, pendingCtrl}

	l, _ := decide(n, ctrlEnv)
	assert.Equal(t, Unlabeled, l, "a pending controller move with a smaller delta could still overturn BOTTOM")
}

func TestDecideConfirmsBottomWhenNoPendingControllerCouldBeatIt(t *testing.T) {
	n := &Node{}
	bottom := &Node{IncomingActions: []IncomingAction{{Delta: 1, Action: "e"}}}
	bottom.setLabel(Bottom, "b")
	pendingCtrl := &Node{IncomingActions: []IncomingAction{{Delta: 5, Action: "c"}}} // unlabelled, too slow
	n.Children = []*Node{bottom, pendingCtrl}

	l, reason := decide(n, ctrlEnv)
	assert.Equal(t, Bottom, l)
	assert.Equal(t, "first-bad-env", reason)
}

func TestDecideWaitsWhilePendingEnvironmentCouldStillBeatAConfirmedTop(t *testing.T) {
	n := &Node{}
	top := &Node{IncomingActions: []IncomingAction{{Delta: 5, Action: "c"}}}
	top.setLabel(Top, "t")
	pendingEnv := &Node{IncomingActions: []IncomingAction{{Delta: 1, Action: "e"}}} // unlabelled
	n.Children = []*Node{top, pendingEnv}

	l, _ := decide(n, ctrlEnv)
	assert.Equal(t, Unlabeled, l)
}

func TestDecideIgnoresCanceledChildren(t *testing.T) {
	n := &Node{}
	top := &Node{IncomingActions: []IncomingAction{{Delta: 3, Action: "c"}}}
	top.setLabel(Top, "t")
	canceled := &Node{IncomingActions: []IncomingAction{{Delta: 1, Action: "e"}}}
	canceled.setLabel(Canceled, "canceled")
	n.Children = []*Node{top, canceled}

	l, _ := decide(n, ctrlEnv)
	assert.Equal(t, Top, l, "a canceled sibling carries no weight either way")
}

func TestBatchLabelMatchesDecideAppliedBottomUp(t *testing.T) {
	leafBad := &Node{State: Bad}
	leafGood := &Node{State: Good}
	root := &Node{
		Children: []*Node{leafBad, leafGood},
	}
	leafBad.IncomingActions = []IncomingAction{{Delta: 2, Action: "e"}}
	leafGood.IncomingActions = []IncomingAction{{Delta: 1, Action: "c"}}

	got := BatchLabel(root, ctrlEnv)
	assert.Equal(t, Bottom, leafBad.GetLabel())
	assert.Equal(t, Top, leafGood.GetLabel())
	assert.Equal(t, Top, got, "controller's delta 1 beats environment's delta 2")
}

func TestPropagateStopsAtFirstUnlabelledAncestor(t *testing.T) {
	root := &Node{}
	mid := &Node{Parent: root}
	leaf := &Node{Parent: mid, State: Bad, IncomingActions: []IncomingAction{{Delta: 1, Action: "e"}}}
	mid.Children = []*Node{leaf}
	// root has a second, still-pending child whose controller delta (0) is
	// smaller than mid's confirmed BOTTOM delta (1), so it could still win.
	otherPending := &Node{Parent: root, IncomingActions: []IncomingAction{{Delta: 0, Action: "c"}}}
	root.Children = []*Node{mid, otherPending}
	mid.IncomingActions = []IncomingAction{{Delta: 1, Action: "e"}}

	require.True(t, leaf.setLabel(Bottom, "bad"))
	propagate(leaf, ctrlEnv)

	assert.Equal(t, Bottom, mid.GetLabel(), "mid has only one (now-labelled) child, so it resolves")
	assert.Equal(t, Unlabeled, root.GetLabel(), "root still has a pending child and cannot resolve yet")
}
