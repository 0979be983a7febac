package rtctrl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ATAOp enumerates the boolean ATA-formula constructors a transition's
// right-hand side can be built from: TRUE, FALSE, a LOCATION reference, a
// clock CONSTRAINT atom, a clock RESET of a subformula, and AND/OR.
type ATAOp int

const (
	ATATrue ATAOp = iota
	ATAFalse
	ATALocation
	ATAConstraint
	ATAReset
	ATAAnd
	ATAOr
)

// ATAFormula is a node in the boolean DAG over a single clock that labels
// an ATA transition.
type ATAFormula struct {
	Op          ATAOp
	Location    string
	Constraint  ClockConstraint
	Sub         *ATAFormula
	Left, Right *ATAFormula
}

func ATATrueF() *ATAFormula  { return &ATAFormula{Op: ATATrue} }
func ATAFalseF() *ATAFormula { return &ATAFormula{Op: ATAFalse} }

func Loc(name string) *ATAFormula { return &ATAFormula{Op: ATALocation, Location: name} }

func Constraint(c ClockConstraint) *ATAFormula { return &ATAFormula{Op: ATAConstraint, Constraint: c} }

func Reset(f *ATAFormula) *ATAFormula { return &ATAFormula{Op: ATAReset, Sub: f} }

// AAnd applies the usual identity/absorbing-element simplifications for
// conjunction instead of allocating a bare AND node for every call site.
func AAnd(a, b *ATAFormula) *ATAFormula {
	if a.Op == ATAFalse || b.Op == ATAFalse {
		return ATAFalseF()
	}
	if a.Op == ATATrue {
		return b
	}
	if b.Op == ATATrue {
		return a
	}
	return &ATAFormula{Op: ATAAnd, Left: a, Right: b}
}

// AOr is create_disjunction.
func AOr(a, b *ATAFormula) *ATAFormula {
	if a.Op == ATATrue || b.Op == ATATrue {
		return ATATrueF()
	}
	if a.Op == ATAFalse {
		return b
	}
	if b.Op == ATAFalse {
		return a
	}
	return &ATAFormula{Op: ATAOr, Left: a, Right: b}
}

func (f *ATAFormula) String() string {
	switch f.Op {
	case ATATrue:
		return "true"
	case ATAFalse:
		return "false"
	case ATALocation:
		return f.Location
	case ATAConstraint:
		return f.Constraint.String()
	case ATAReset:
		return fmt.Sprintf("reset(%s)", f.Sub)
	case ATAAnd:
		return fmt.Sprintf("(%s & %s)", f.Left, f.Right)
	case ATAOr:
		return fmt.Sprintf("(%s | %s)", f.Left, f.Right)
	}
	return "?"
}

// Atom is one (location, reset-flag) pair chosen by a minimal model.
type Atom struct {
	Location string
	Reset    bool
}

// Model is a set of atoms a minimal model of a transition formula selects.
type Model map[Atom]struct{}

func newModel(atoms ...Atom) Model {
	m := make(Model, len(atoms))
	for _, a := range atoms {
		m[a] = struct{}{}
	}
	return m
}

func (m Model) key() string {
	keys := make([]string, 0, len(m))
	for a := range m {
		keys = append(keys, fmt.Sprintf("%s:%v", a.Location, a.Reset))
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

func (m Model) isSubsetOf(o Model) bool {
	for a := range m {
		if _, ok := o[a]; !ok {
			return false
		}
	}
	return true
}

func union(a, b Model) Model {
	out := make(Model, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}

func cross(as, bs []Model) []Model {
	out := make([]Model, 0, len(as)*len(bs))
	for _, a := range as {
		for _, b := range bs {
			out = append(out, union(a, b))
		}
	}
	return out
}

func dedupeModels(ms []Model) []Model {
	seen := map[string]bool{}
	out := make([]Model, 0, len(ms))
	for _, m := range ms {
		k := m.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, m)
	}
	return out
}

// filterMinimal drops any model that is a strict superset of another model
// in the same list, leaving only the ⊆-minimal ones.
func filterMinimal(ms []Model) []Model {
	ms = dedupeModels(ms)
	out := make([]Model, 0, len(ms))
	for i, m := range ms {
		minimal := true
		for j, n := range ms {
			if i == j {
				continue
			}
			if n.isSubsetOf(m) && len(n) < len(m) {
				minimal = false
				break
			}
		}
		if minimal {
			out = append(out, m)
		}
	}
	return out
}

// MinimalModels enumerates the ⊆-minimal satisfying assignments of f, a
// boolean DAG over the single clock value v (equivalent to taking the DNF
// of f and keeping only the ⊆-minimal terms).
func (f *ATAFormula) MinimalModels(v decimal.Decimal) []Model {
	switch f.Op {
	case ATATrue:
		return []Model{newModel()}
	case ATAFalse:
		return nil
	case ATALocation:
		return []Model{newModel(Atom{Location: f.Location, Reset: false})}
	case ATAConstraint:
		if f.Constraint.Holds(v) {
			return []Model{newModel()}
		}
		return nil
	case ATAReset:
		sub := f.Sub.MinimalModels(v)
		out := make([]Model, 0, len(sub))
		for _, m := range sub {
			reset := make(Model, len(m))
			for a := range m {
				reset[Atom{Location: a.Location, Reset: true}] = struct{}{}
			}
			out = append(out, reset)
		}
		return filterMinimal(out)
	case ATAAnd:
		l, r := f.Left.MinimalModels(v), f.Right.MinimalModels(v)
		if len(l) == 0 || len(r) == 0 {
			return nil
		}
		return filterMinimal(cross(l, r))
	case ATAOr:
		l, r := f.Left.MinimalModels(v), f.Right.MinimalModels(v)
		return filterMinimal(append(append([]Model{}, l...), r...))
	}
	panic(fmt.Errorf("%w: unhandled ATA operator %d", ErrLogic, f.Op))
}
