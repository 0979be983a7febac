package search

import (
	"sync/atomic"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Heuristic assigns a scheduling cost to a node about to be queued for
// expansion; the expansion driver enqueues with priority = cost, and the
// scheduler runs lower priorities first, so lower cost runs sooner.
type Heuristic interface {
	Cost(n *Node) int64
}

// BFSHeuristic assigns a fresh, monotonically increasing counter per call,
// giving earliest-queued-first (breadth-first) ordering.
type BFSHeuristic struct {
	counter int64
}

func (h *BFSHeuristic) Cost(*Node) int64 { return atomic.AddInt64(&h.counter, 1) }

// DFSHeuristic assigns a fresh, monotonically decreasing counter per call,
// giving most-recently-queued-first (depth-first) ordering.
type DFSHeuristic struct {
	counter int64
}

func (h *DFSHeuristic) Cost(*Node) int64 { return atomic.AddInt64(&h.counter, -1) }

// TimeHeuristic costs a node by the sum of its incoming actions' region
// increments plus its parent's time-cost; the root costs zero.
type TimeHeuristic struct{}

func (TimeHeuristic) Cost(n *Node) int64 {
	var cost int64
	cur := n
	for cur != nil {
		for _, ia := range cur.IncomingActions {
			cost += int64(ia.Delta)
		}
		cur = cur.Parent
	}
	return cost
}

// PreferEnvironmentActionHeuristic costs 0 if any of a node's incoming
// actions is an environment action, else 1 — environment-reached nodes are
// explored first.
type PreferEnvironmentActionHeuristic struct {
	EnvironmentActions map[string]bool
}

func (h PreferEnvironmentActionHeuristic) Cost(n *Node) int64 {
	for _, ia := range n.IncomingActions {
		if h.EnvironmentActions[ia.Action] {
			return 0
		}
	}
	return 1
}

// NumCanonicalWordsHeuristic costs a node by the number of words it holds.
type NumCanonicalWordsHeuristic struct{}

func (NumCanonicalWordsHeuristic) Cost(n *Node) int64 { return int64(len(n.Words)) }

// ExprHeuristic costs a node by evaluating a user-supplied expr-lang
// expression against a small numeric view of the node, letting an operator
// tune scheduling order without a Go recompile.
type ExprHeuristic struct {
	EnvironmentActions map[string]bool
	program            *vm.Program
}

// NewExprHeuristic compiles expression once; every subsequent Cost call
// reruns the compiled program instead of re-parsing.
func NewExprHeuristic(expression string, environmentActions map[string]bool) (*ExprHeuristic, error) {
	program, err := expr.Compile(expression)
	if err != nil {
		return nil, err
	}
	return &ExprHeuristic{EnvironmentActions: environmentActions, program: program}, nil
}

func (h *ExprHeuristic) Cost(n *Node) int64 {
	timeCost := int64(0)
	environmentReached := false
	for cur := n; cur != nil; cur = cur.Parent {
		for _, ia := range cur.IncomingActions {
			timeCost += int64(ia.Delta)
			if h.EnvironmentActions[ia.Action] {
				environmentReached = true
			}
		}
	}
	env := map[string]interface{}{
		"numWords":           len(n.Words),
		"timeCost":           timeCost,
		"environmentReached": environmentReached,
	}
	out, err := expr.Run(h.program, env)
	if err != nil {
		return 0
	}
	switch v := out.(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// WeightedHeuristic is one (weight, sub-heuristic) term of a
// CompositeHeuristic.
type WeightedHeuristic struct {
	Weight    int64
	Heuristic Heuristic
}

// CompositeHeuristic is the weighted sum of a vector of sub-heuristics.
type CompositeHeuristic struct {
	Terms []WeightedHeuristic
}

func (c CompositeHeuristic) Cost(n *Node) int64 {
	var total int64
	for _, t := range c.Terms {
		total += t.Weight * t.Heuristic.Cost(n)
	}
	return total
}
