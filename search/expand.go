package search

import (
	"sort"

	"github.com/google/uuid"

	"github.com/rtctrl/rtctrl"
	"github.com/rtctrl/rtctrl/product"
)

// Options bundles everything the expansion driver needs beyond the tree
// itself: the TA/ATA being composed, the controller/environment action
// partition, K, and the incremental-labelling switches.
type Options struct {
	TA                 *rtctrl.TA
	ATA                *rtctrl.ATA
	ControllerActions  map[string]bool
	EnvironmentActions map[string]bool
	K                  int
	IncrementalLabel   bool
	TerminateEarly     bool
	Heuristic          Heuristic
	Scheduler          *Scheduler
}

// hasSatisfiableATAConfiguration reports whether any word in n has a
// candidate whose ATA configuration has at least one active location that
// is not the sink.
func hasSatisfiableATAConfiguration(n *Node, o *Options) bool {
	for _, w := range n.Words {
		_, ataCfg := rtctrl.GetCandidate(w, o.TA.Initial, o.K)
		for loc := range ataCfg {
			if loc != o.ATA.Sink {
				return true
			}
		}
	}
	return false
}

// isBad reports whether some word in n has a candidate whose TA
// configuration is accepting and whose ATA configuration is accepting.
func isBad(n *Node, o *Options) bool {
	for _, w := range n.Words {
		taCfg, ataCfg := rtctrl.GetCandidate(w, o.TA.Initial, o.K)
		if o.TA.IsAccepting(taCfg) && o.ATA.IsAccepting(ataCfg) {
			return true
		}
	}
	return false
}

// dominatedByAncestor reports whether every word in n is dominated by some
// word of some ancestor of n.
func dominatedByAncestor(n *Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		allDominated := true
		for _, w := range n.Words {
			if !product.DominatesAny(w, p.Words) {
				allDominated = false
				break
			}
		}
		if allDominated {
			return true
		}
	}
	return false
}

// Expand runs the node-expansion algorithm on n. It is idempotent:
// a node already expanded, or already labelled, returns immediately.
func Expand(n *Node, o *Options) {
	n.mu.Lock()
	if n.isExpanded || n.Label != Unlabeled {
		n.mu.Unlock()
		return
	}
	n.mu.Unlock()

	if isBad(n, o) {
		n.mu.Lock()
		n.State = Bad
		n.mu.Unlock()
		if o.IncrementalLabel {
			if n.setLabel(Bottom, "bad") {
				propagate(n, o)
			}
		}
		n.setExpanded(true)
		return
	}

	if !hasSatisfiableATAConfiguration(n, o) {
		n.mu.Lock()
		n.State = Good
		n.mu.Unlock()
		if o.IncrementalLabel {
			if n.setLabel(Top, "unsatisfiable") {
				propagate(n, o)
			}
		}
		n.setExpanded(true)
		return
	}

	if n.Parent != nil && dominatedByAncestor(n) {
		n.mu.Lock()
		n.State = Good
		n.mu.Unlock()
		if o.IncrementalLabel {
			if n.setLabel(Top, "dominated") {
				propagate(n, o)
			}
		}
		n.setExpanded(true)
		return
	}

	children := buildChildren(n, o)

	n.mu.Lock()
	if n.Label == Canceled {
		n.isExpanded = true
		n.mu.Unlock()
		return
	}
	n.Children = children
	n.isExpanded = true
	n.mu.Unlock()

	if len(children) == 0 {
		n.mu.Lock()
		n.State = Dead
		n.mu.Unlock()
		if o.IncrementalLabel {
			if n.setLabel(Top, "dead") {
				propagate(n, o)
			}
		}
		return
	}

	for _, c := range children {
		child := c
		if o.Scheduler == nil {
			Expand(child, o)
			continue
		}
		cost := int64(0)
		if o.Heuristic != nil {
			cost = o.Heuristic.Cost(child)
		}
		o.Scheduler.AddJob(cost, func() { Expand(child, o) })
	}
}

// buildChildren collects, for every word, its time
// successors, every TA-alphabet symbol, and the resulting action
// successors as (Δ, w″) pairs, then buckets them by reg_a(w″)
// into children.
func buildChildren(n *Node, o *Options) []*Node {
	type bucketed struct {
		regA   string
		word   rtctrl.Word
		delta  int
		action string
	}
	var all []bucketed

	for _, w := range n.Words {
		succs := rtctrl.GetTimeSuccessors(w, o.K)
		succs = append([]rtctrl.TimeSuccessor{{Delta: 0, Word: w}}, succs...)
		for _, ts := range succs {
			for _, a := range o.TA.Alphabet {
				for _, wpp := range product.GetNextCanonicalWords(ts.Word, o.TA, o.ATA, o.K, a) {
					all = append(all, bucketed{
						regA:   rtctrl.RegA(wpp).Key(),
						word:   wpp,
						delta:  ts.Delta,
						action: a,
					})
				}
			}
		}
	}

	buckets := map[string][]bucketed{}
	var order []string
	for _, b := range all {
		if _, ok := buckets[b.regA]; !ok {
			order = append(order, b.regA)
		}
		buckets[b.regA] = append(buckets[b.regA], b)
	}
	sort.Strings(order)

	var children []*Node
	for _, key := range order {
		items := buckets[key]
		wordSeen := map[string]bool{}
		var words []rtctrl.Word
		incomingSeen := map[IncomingAction]bool{}
		var incoming []IncomingAction
		for _, it := range items {
			wk := it.word.Key()
			if !wordSeen[wk] {
				wordSeen[wk] = true
				words = append(words, it.word)
			}
			ia := IncomingAction{Delta: it.delta, Action: it.action}
			if !incomingSeen[ia] {
				incomingSeen[ia] = true
				incoming = append(incoming, ia)
			}
		}
		sort.Slice(incoming, func(i, j int) bool {
			if incoming[i].Delta != incoming[j].Delta {
				return incoming[i].Delta < incoming[j].Delta
			}
			return incoming[i].Action < incoming[j].Action
		})
		children = append(children, &Node{
			ID:              uuid.NewString(),
			Words:           words,
			Parent:          n,
			IncomingActions: incoming,
		})
	}
	return children
}
