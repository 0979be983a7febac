// Package search builds and labels the two-player game tree over
// canonical AB-words: node expansion, monotonic-domination
// pruning (via the product package), batch and incremental TOP/
// BOTTOM/CANCELED labelling, scheduling heuristics, and the
// priority-queue/worker-pool scheduler.
package search

import (
	"sync"

	"github.com/google/uuid"

	"github.com/rtctrl/rtctrl"
)

// State is a node's reachability verdict, independent of the two-player
// label.
type State int

const (
	Unknown State = iota
	Good
	Bad
	Dead
)

func (s State) String() string {
	return [...]string{"UNKNOWN", "GOOD", "BAD", "DEAD"}[s]
}

// Label is a node's game-theoretic verdict.
type Label int

const (
	Unlabeled Label = iota
	Top
	Bottom
	Canceled
)

func (l Label) String() string {
	return [...]string{"UNLABELED", "TOP", "BOTTOM", "CANCELED"}[l]
}

// IncomingAction is one (region-increment, action-symbol) pair that
// produced at least one word in a node's word-set during its parent's
// expansion.
type IncomingAction struct {
	Delta  int
	Action string
}

// Node is one vertex of the search tree: a set of canonical AB-words
// reachable under a shared ancestry, exclusively owning its children and
// holding a non-owning back-reference to its parent. Nodes are destroyed
// only when the whole tree is discarded.
type Node struct {
	mu sync.Mutex

	// ID uniquely identifies this node across the tree's lifetime,
	// independent of its position; Graphviz export uses it as the stable
	// node name instead of a traversal-order counter.
	ID string

	Words           []rtctrl.Word
	Parent          *Node
	Children        []*Node
	IncomingActions []IncomingAction

	State       State
	Label       Label
	LabelReason string

	isExpanded bool
}

// NewRoot builds the root node from the TA and ATA initial configurations.
func NewRoot(ta *rtctrl.TA, ata *rtctrl.ATA, K int) *Node {
	w := rtctrl.GetCanonicalWord(ta.Config0(), ata.Config0(), K)
	return &Node{ID: uuid.NewString(), Words: []rtctrl.Word{w}}
}

// IsExpanded reports whether Expand has already run for this node.
func (n *Node) IsExpanded() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.isExpanded
}

func (n *Node) setExpanded(v bool) {
	n.mu.Lock()
	n.isExpanded = v
	n.mu.Unlock()
}

// GetLabel reads the node's label under its lock.
func (n *Node) GetLabel() Label {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.Label
}

// setLabel writes label and reason under the node's lock. It refuses to
// overwrite a definite (non-UNLABELED) label with another definite value —
// labels are monotonic, set once.
func (n *Node) setLabel(l Label, reason string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Label != Unlabeled {
		return false
	}
	n.Label = l
	n.LabelReason = reason
	return true
}

// cancel sets label to CANCELED if currently UNLABELED, cooperative and
// monotonic: once set, never cleared.
func (n *Node) cancel() bool {
	return n.setLabel(Canceled, "canceled")
}

// cancelSubtree marks every un-labelled descendant of n CANCELED, the
// early-termination behavior of incremental labelling once a definite
// verdict is reached.
func cancelSubtree(n *Node) {
	n.mu.Lock()
	children := n.Children
	n.mu.Unlock()
	for _, c := range children {
		if c.cancel() {
			cancelSubtree(c)
		}
	}
}
