package search

import (
	"context"
	"fmt"

	"github.com/rtctrl/rtctrl"
)

// Config is the top-level input to Build: the TA/ATA pair being composed,
// the controller/environment action partition (asserted
// disjoint), K, and the scheduling/labelling flags.
type Config struct {
	TA                 *rtctrl.TA
	ATA                *rtctrl.ATA
	ControllerActions  []string
	EnvironmentActions []string
	K                  int
	IncrementalLabel   bool
	TerminateEarly     bool
	Heuristic          Heuristic
	Workers            int
}

// Build constructs the root node and drives its expansion to completion,
// returning the finished (labelled, if
// IncrementalLabel; state-only otherwise) tree root. Call BatchLabel(root,
// opts) afterward if IncrementalLabel was false and a label is still
// wanted.
func Build(ctx context.Context, cfg Config) (*Node, *Options, error) {
	ctrl := toSet(cfg.ControllerActions)
	env := toSet(cfg.EnvironmentActions)
	for a := range ctrl {
		if env[a] {
			return nil, nil, fmt.Errorf("%w: action %q is both controller and environment", rtctrl.ErrInvalidInput, a)
		}
	}

	workers := cfg.Workers
	if workers < 0 {
		workers = 0
	}
	var sched *Scheduler
	if workers > 1 {
		sched = NewScheduler(workers)
	}

	o := &Options{
		TA:                 cfg.TA,
		ATA:                cfg.ATA,
		ControllerActions:  ctrl,
		EnvironmentActions: env,
		K:                  cfg.K,
		IncrementalLabel:   cfg.IncrementalLabel,
		TerminateEarly:     cfg.TerminateEarly,
		Heuristic:          cfg.Heuristic,
		Scheduler:          sched,
	}

	root := NewRoot(cfg.TA, cfg.ATA, cfg.K)

	if sched == nil {
		Expand(root, o)
		return root, o, nil
	}

	sched.AddJob(0, func() { Expand(root, o) })
	sched.Start(ctx)
	return root, o, nil
}

func toSet(ss []string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}

// Walk visits every node of the tree rooted at n in pre-order.
func Walk(n *Node, visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		Walk(c, visit)
	}
}

// Size counts the nodes of the tree rooted at n, n included. Useful for
// diagnostics and for bounding test fixtures without walking the tree by
// hand at every call site.
func Size(n *Node) int {
	total := 0
	Walk(n, func(*Node) { total++ })
	return total
}
