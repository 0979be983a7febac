package search

import "math"

// decide applies the two-player labelling formula to n's
// current children, using only currently-known information: each child's
// (Δ, action) pairs are fixed at child-creation time (buildChildren
// produces the full, final children list and their IncomingActions before
// any child is expanded), so a child that is not yet labelled still
// contributes a *potential* delta to whichever side (controller/
// environment) its incoming actions belong to. decide returns a definite
// label as soon as the known (confirmed) and potential (pending) deltas
// can no longer change the outcome; otherwise it returns Unlabeled,
// meaning n must wait for more children to resolve.
//
// This is what lets incremental labelling cancel sibling subtrees before
// they finish expanding, while still
// being provably equivalent to post-hoc batch labelling, which
// calls the same formula with no pending children (see BatchLabel).
func decide(n *Node, o *Options) (Label, string) {
	if len(n.Children) == 0 {
		switch n.State {
		case Bad:
			return Bottom, "bad"
		case Good:
			return Top, "unsatisfiable-or-dominated"
		case Dead:
			return Top, "dead"
		default:
			return Unlabeled, ""
		}
	}

	const absent = math.MaxInt64
	confirmedTop, confirmedBottom := int64(absent), int64(absent)
	pendingCtrl, pendingEnv := int64(absent), int64(absent)

	for _, c := range n.Children {
		lbl := c.GetLabel()
		isCtrl, isEnv := false, false
		minDelta := int64(absent)
		for _, ia := range c.IncomingActions {
			if o.ControllerActions[ia.Action] {
				isCtrl = true
			}
			if o.EnvironmentActions[ia.Action] {
				isEnv = true
			}
			if int64(ia.Delta) < minDelta {
				minDelta = int64(ia.Delta)
			}
		}
		switch lbl {
		case Top:
			if isCtrl && minDelta < confirmedTop {
				confirmedTop = minDelta
			}
		case Bottom:
			if isEnv && minDelta < confirmedBottom {
				confirmedBottom = minDelta
			}
		case Canceled:
			// ignored: logically irrelevant once aborted
		default: // Unlabeled: still pending
			if isCtrl && minDelta < pendingCtrl {
				pendingCtrl = minDelta
			}
			if isEnv && minDelta < pendingEnv {
				pendingEnv = minDelta
			}
		}
	}

	if confirmedTop != absent &&
		(confirmedBottom == absent || confirmedTop < confirmedBottom) &&
		(pendingEnv == absent || confirmedTop < pendingEnv) {
		return Top, "first-good-ctrl"
	}
	if confirmedBottom == absent && pendingEnv == absent {
		return Top, "no-bad-env"
	}
	if confirmedBottom != absent &&
		(confirmedTop == absent || confirmedTop >= confirmedBottom) &&
		(pendingCtrl == absent || pendingCtrl >= confirmedBottom) {
		return Bottom, "first-bad-env"
	}
	return Unlabeled, ""
}

// propagate recomputes n's label from decide and, if that yields a
// definite verdict, sets it and recurses to n.Parent. n itself may already
// carry that label (the usual case: a leaf labelled just before the call);
// propagation then goes on to n.Parent all the same. It stops at the first
// ancestor that stays Unlabeled or was already labelled. When
// o.TerminateEarly is set, a definite label also cancels that node's
// still-pending descendants.
func propagate(n *Node, o *Options) {
	for cur := n; cur != nil; {
		label, reason := decide(cur, o)
		if label == Unlabeled {
			return
		}
		if !cur.setLabel(label, reason) && cur != n {
			return
		}
		if o.TerminateEarly {
			cancelSubtree(cur)
		}
		cur = cur.Parent
	}
}

// BatchLabel labels the fully-built subtree rooted at n bottom-up. It must
// be called after every reachable node has been Expand-ed (State set), and
// it produces exactly the same labels as incremental labelling would on
// the same tree, since decide falls back to the
// base two-player formula whenever no children are still pending.
func BatchLabel(n *Node, o *Options) Label {
	for _, c := range n.Children {
		BatchLabel(c, o)
	}
	label, reason := decide(n, o)
	n.setLabel(label, reason)
	return n.GetLabel()
}
