// Package translate implements the Ouaknine-Worrell construction turning
// an MTL formula in positive normal form into an alternating timed
// automaton over a single clock.
package translate

import (
	"fmt"
	"sort"

	"github.com/rtctrl/rtctrl"
)

// InitialLocation is the reserved ATA location every translated automaton
// starts in. It is never a closure subformula's Key, since formula keys
// never contain a bare identifier without an operator symbol touching it
// — but Translate still rejects an alphabet that collides with it.
const InitialLocation = "q0"

// SinkLocation is the reserved absorbing, non-accepting location every
// unsatisfiable branch of every transition routes to.
const SinkLocation = "sink"

// Translate builds the ATA for phi. If alphabet is empty, phi.GetAlphabet()
// is used. Translate fails with rtctrl.ErrInvalidInput if alphabet
// collides with the reserved initial location's name, and with
// rtctrl.ErrNotInPNF if phi (or any of its subformulas) applies NEG to a
// non-atomic operand.
func Translate(phi *rtctrl.Formula, alphabet ...string) (*rtctrl.ATA, error) {
	sigma := alphabet
	if len(sigma) == 0 {
		sigma = phi.GetAlphabet()
	}
	for _, a := range sigma {
		if a == InitialLocation {
			return nil, fmt.Errorf("%w: alphabet symbol %q collides with the reserved initial location", rtctrl.ErrInvalidInput, a)
		}
	}

	untils := phi.GetSubformulasOfType(rtctrl.MTLUntil)
	duals := phi.GetSubformulasOfType(rtctrl.MTLDualUntil)

	locations := []string{InitialLocation, SinkLocation}
	for _, u := range untils {
		locations = append(locations, u.Key())
	}
	for _, d := range duals {
		locations = append(locations, d.Key())
	}
	sort.Strings(locations)

	accepting := map[string]bool{}
	for _, d := range duals {
		accepting[d.Key()] = true
	}

	transitions := map[string]map[string]*rtctrl.ATAFormula{
		InitialLocation: {},
		SinkLocation:    {},
	}
	for _, a := range sigma {
		f, err := initFormula(phi, a, true)
		if err != nil {
			return nil, err
		}
		transitions[InitialLocation][a] = f
		transitions[SinkLocation][a] = rtctrl.Loc(SinkLocation)
	}

	for _, u := range untils {
		transitions[u.Key()] = map[string]*rtctrl.ATAFormula{}
		for _, a := range sigma {
			initAlpha, err := initFormula(u.Left, a, false)
			if err != nil {
				return nil, err
			}
			initBeta, err := initFormula(u.Right, a, false)
			if err != nil {
				return nil, err
			}
			waited := rtctrl.AAnd(initBeta, inInterval(u.Interval))
			keepWaiting := rtctrl.AAnd(initAlpha, rtctrl.Loc(u.Key()))
			transitions[u.Key()][a] = rtctrl.AOr(waited, keepWaiting)
		}
	}

	for _, d := range duals {
		transitions[d.Key()] = map[string]*rtctrl.ATAFormula{}
		for _, a := range sigma {
			initAlpha, err := initFormula(d.Left, a, false)
			if err != nil {
				return nil, err
			}
			initBeta, err := initFormula(d.Right, a, false)
			if err != nil {
				return nil, err
			}
			satisfied := rtctrl.AOr(initBeta, notInInterval(d.Interval))
			keepWaiting := rtctrl.AOr(initAlpha, rtctrl.Loc(d.Key()))
			transitions[d.Key()][a] = rtctrl.AAnd(satisfied, keepWaiting)
		}
	}

	return &rtctrl.ATA{
		Alphabet:    sigma,
		Locations:   locations,
		Initial:     InitialLocation,
		Sink:        SinkLocation,
		Accepting:   accepting,
		Transitions: transitions,
	}, nil
}

// initFormula is init(psi, a): it rewrites an MTL formula
// in PNF into the boolean ATA-formula that decides, for the current
// symbol a, whether psi's obligation continues. top distinguishes the
// single outermost call building delta(q0, a) — where a closure formula's
// LOCATION reference can be bare because q0 carries no prior clock value
// to leak — from every other (nested) call, which must RESET the clock of
// any closure formula it newly activates so that formula's interval check
// starts counting from zero.
func initFormula(f *rtctrl.Formula, a string, top bool) (*rtctrl.ATAFormula, error) {
	switch f.Op {
	case rtctrl.MTLTrue:
		return rtctrl.ATATrueF(), nil
	case rtctrl.MTLFalse:
		return rtctrl.ATAFalseF(), nil
	case rtctrl.MTLAP:
		if f.AP == a {
			return rtctrl.ATATrueF(), nil
		}
		return rtctrl.ATAFalseF(), nil
	case rtctrl.MTLNeg:
		switch f.Left.Op {
		case rtctrl.MTLAP:
			if f.Left.AP == a {
				return rtctrl.ATAFalseF(), nil
			}
			return rtctrl.ATATrueF(), nil
		case rtctrl.MTLTrue:
			return rtctrl.ATAFalseF(), nil
		case rtctrl.MTLFalse:
			return rtctrl.ATATrueF(), nil
		default:
			return nil, fmt.Errorf("%w: NEG applied to non-atomic formula %q", rtctrl.ErrNotInPNF, f.Left)
		}
	case rtctrl.MTLAnd:
		l, err := initFormula(f.Left, a, top)
		if err != nil {
			return nil, err
		}
		r, err := initFormula(f.Right, a, top)
		if err != nil {
			return nil, err
		}
		return rtctrl.AAnd(l, r), nil
	case rtctrl.MTLOr:
		l, err := initFormula(f.Left, a, top)
		if err != nil {
			return nil, err
		}
		r, err := initFormula(f.Right, a, top)
		if err != nil {
			return nil, err
		}
		return rtctrl.AOr(l, r), nil
	case rtctrl.MTLUntil, rtctrl.MTLDualUntil:
		if top {
			return rtctrl.Loc(f.Key()), nil
		}
		return rtctrl.Reset(rtctrl.Loc(f.Key())), nil
	}
	return nil, fmt.Errorf("%w: unhandled MTL operator %d", rtctrl.ErrLogic, f.Op)
}

// inInterval builds the ATA-formula form of "the clock's value lies in I",
// a conjunction of at most two atomic constraints.
func inInterval(iv rtctrl.Interval) *rtctrl.ATAFormula {
	f := rtctrl.ATATrueF()
	if iv.Lower.Kind != rtctrl.Infinite {
		op := rtctrl.Ge
		if iv.Lower.Kind == rtctrl.Open {
			op = rtctrl.Gt
		}
		f = rtctrl.AAnd(f, rtctrl.Constraint(rtctrl.ClockConstraint{Op: op, K: iv.Lower.Value}))
	}
	if iv.Upper.Kind != rtctrl.Infinite {
		op := rtctrl.Le
		if iv.Upper.Kind == rtctrl.Open {
			op = rtctrl.Lt
		}
		f = rtctrl.AAnd(f, rtctrl.Constraint(rtctrl.ClockConstraint{Op: op, K: iv.Upper.Value}))
	}
	return f
}

// notInInterval builds ¬in(I), a disjunction of the negation of each
// finite bound (De Morgan dual of inInterval).
func notInInterval(iv rtctrl.Interval) *rtctrl.ATAFormula {
	var disjuncts []*rtctrl.ATAFormula
	if iv.Lower.Kind != rtctrl.Infinite {
		op := rtctrl.Lt
		if iv.Lower.Kind == rtctrl.Open {
			op = rtctrl.Le
		}
		disjuncts = append(disjuncts, rtctrl.Constraint(rtctrl.ClockConstraint{Op: op, K: iv.Lower.Value}))
	}
	if iv.Upper.Kind != rtctrl.Infinite {
		op := rtctrl.Gt
		if iv.Upper.Kind == rtctrl.Open {
			op = rtctrl.Ge
		}
		disjuncts = append(disjuncts, rtctrl.Constraint(rtctrl.ClockConstraint{Op: op, K: iv.Upper.Value}))
	}
	if len(disjuncts) == 0 {
		return rtctrl.ATAFalseF()
	}
	f := disjuncts[0]
	for _, d := range disjuncts[1:] {
		f = rtctrl.AOr(f, d)
	}
	return f
}
