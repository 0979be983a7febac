// Package controller extracts a supervising timed automaton from a
// labelled search tree: the controller plays exactly the moves that kept
// every reachable node TOP.
package controller

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rtctrl/rtctrl"
	"github.com/rtctrl/rtctrl/search"
)

// wordSetKey is the location name for a set of canonical words: the
// sorted, deduplicated concatenation of their individual keys.
func wordSetKey(words []rtctrl.Word) string {
	keys := make([]string, 0, len(words))
	seen := map[string]bool{}
	for _, w := range words {
		k := w.Key()
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return strings.Join(keys, "||")
}

// clockGuard builds the guard that restricts the supervisor's action to
// exactly the region reachable by letting delta time-successors elapse
// from reg_a(w): every clock named in that integer partition gets the
// constraint carving out its region index after delta steps.
func clockGuard(w rtctrl.Word, delta, K int) rtctrl.Guard {
	ra := rtctrl.RegA(w)
	if len(ra) == 0 {
		return nil
	}
	var g rtctrl.Guard
	for _, s := range ra[0] {
		if s.Kind != rtctrl.TARegionState {
			continue
		}
		next := rtctrl.GetNthTimeSuccessorIndex(s.Region, K, delta)
		g = append(g, rtctrl.ConstraintsFromRegionIndex(s.Clock, next, K)...)
	}
	return g
}

// Extract builds the controller TA from a fully labelled tree rooted at
// root. It fails with rtctrl.ErrInvalidInput if root is not labelled TOP.
// Only the TOP-labelled subtree is traversed: every other branch is a
// move the controller must never make, so it contributes no transition.
func Extract(root *search.Node, plant *rtctrl.TA, K int) (*rtctrl.TA, error) {
	if root.GetLabel() != search.Top {
		return nil, fmt.Errorf("%w: controller extraction requires a TOP-labelled root, got %s", rtctrl.ErrInvalidInput, root.GetLabel())
	}

	ctrl := rtctrl.NewTA(plant.Name + ".controller").
		WithClocks(plant.Clocks...).
		WithAlphabet(plant.Alphabet...).
		WithInitial(wordSetKey(root.Words))

	seen := map[string]bool{}
	var visit func(n *search.Node)
	visit = func(n *search.Node) {
		loc := wordSetKey(n.Words)
		if seen[loc] {
			return
		}
		seen[loc] = true
		ctrl.Locations = append(ctrl.Locations, loc)
		ctrl.WithAccepting(loc)

		for _, c := range n.Children {
			if c.GetLabel() != search.Top {
				continue
			}
			childLoc := wordSetKey(c.Words)
			for _, ia := range c.IncomingActions {
				guard := clockGuard(anyWord(n.Words), ia.Delta, K)
				ctrl.WithTransition(rtctrl.Transition{
					From:   loc,
					To:     childLoc,
					Symbol: ia.Action,
					Guard:  guard,
				})
			}
			visit(c)
		}
	}
	visit(root)

	return ctrl, nil
}

func anyWord(words []rtctrl.Word) rtctrl.Word {
	if len(words) == 0 {
		return rtctrl.Word{}
	}
	return words[0]
}
