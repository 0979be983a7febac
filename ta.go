package rtctrl

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ConstraintOp is one of the six atomic clock-constraint relations: <, ≤,
// =, ≠, ≥, >.
type ConstraintOp int

const (
	Lt ConstraintOp = iota
	Le
	Eq
	Ne
	Ge
	Gt
)

func (op ConstraintOp) String() string {
	return [...]string{"<", "<=", "==", "!=", ">=", ">"}[op]
}

// ClockConstraint is the atomic guard "clock ⊙ k".
type ClockConstraint struct {
	Clock string
	Op    ConstraintOp
	K     int
}

func (c ClockConstraint) String() string { return fmt.Sprintf("%s %s %d", c.Clock, c.Op, c.K) }

// Holds evaluates the constraint against a clock valuation.
func (c ClockConstraint) Holds(v decimal.Decimal) bool {
	k := decimal.NewFromInt(int64(c.K))
	switch c.Op {
	case Lt:
		return v.LessThan(k)
	case Le:
		return v.LessThanOrEqual(k)
	case Eq:
		return v.Equal(k)
	case Ne:
		return !v.Equal(k)
	case Ge:
		return v.GreaterThanOrEqual(k)
	case Gt:
		return v.GreaterThan(k)
	}
	panic(fmt.Errorf("%w: unhandled constraint operator %d", ErrLogic, c.Op))
}

// Guard is a conjunction of atomic clock constraints, one TA transition's
// enabling condition.
type Guard []ClockConstraint

// Holds reports whether every constraint in the guard is satisfied by the
// given clock valuation.
func (g Guard) Holds(vals map[string]decimal.Decimal) bool {
	for _, c := range g {
		v, ok := vals[c.Clock]
		if !ok {
			return false
		}
		if !c.Holds(v) {
			return false
		}
	}
	return true
}

// Transition is one guarded, resetting edge of a TA.
type Transition struct {
	From, To string
	Symbol   string
	Guard    Guard
	Reset    []string
}

// TA is a timed automaton: a finite set of locations, real clocks, and
// guarded/resetting transitions labelled over a finite alphabet, the plant
// being supervised.
type TA struct {
	Name        string
	Locations   []string
	Clocks      []string
	Alphabet    []string
	Initial     string
	Accepting   map[string]bool
	Transitions []Transition
}

// NewTA builds an empty TA ready for the fluent With* builders below.
func NewTA(name string) *TA {
	return &TA{Name: name, Accepting: map[string]bool{}}
}

func (t *TA) WithLocations(locs ...string) *TA {
	t.Locations = append(t.Locations, locs...)
	return t
}

func (t *TA) WithClocks(clocks ...string) *TA {
	t.Clocks = append(t.Clocks, clocks...)
	return t
}

func (t *TA) WithAlphabet(symbols ...string) *TA {
	t.Alphabet = append(t.Alphabet, symbols...)
	return t
}

func (t *TA) WithInitial(loc string) *TA {
	t.Initial = loc
	return t
}

func (t *TA) WithAccepting(locs ...string) *TA {
	for _, l := range locs {
		t.Accepting[l] = true
	}
	return t
}

func (t *TA) WithTransition(tr Transition) *TA {
	t.Transitions = append(t.Transitions, tr)
	return t
}

// Config is a concrete TA state: the current location and a clock
// valuation for every declared clock.
type Config struct {
	Location string
	Clocks   map[string]decimal.Decimal
}

func (c Config) clone() Config {
	cp := make(map[string]decimal.Decimal, len(c.Clocks))
	for k, v := range c.Clocks {
		cp[k] = v
	}
	return Config{Location: c.Location, Clocks: cp}
}

// Config0 returns the TA's initial configuration, every clock at zero.
func (t *TA) Config0() Config {
	clocks := make(map[string]decimal.Decimal, len(t.Clocks))
	for _, c := range t.Clocks {
		clocks[c] = decimal.Zero
	}
	return Config{Location: t.Initial, Clocks: clocks}
}

// Successors returns every TA configuration reachable from cfg by firing a
// transition labelled symbol whose guard is satisfied, in Transitions
// declaration order.
func (t *TA) Successors(cfg Config, symbol string) []Config {
	var out []Config
	for _, tr := range t.Transitions {
		if tr.From != cfg.Location || tr.Symbol != symbol {
			continue
		}
		if !tr.Guard.Holds(cfg.Clocks) {
			continue
		}
		next := cfg.clone()
		next.Location = tr.To
		for _, c := range tr.Reset {
			next.Clocks[c] = decimal.Zero
		}
		out = append(out, next)
	}
	return out
}

// Elapse advances every clock in cfg by d, the TA side of letting time pass
// between two discrete action steps.
func (t *TA) Elapse(cfg Config, d decimal.Decimal) Config {
	next := cfg.clone()
	for c, v := range next.Clocks {
		next.Clocks[c] = v.Add(d)
	}
	return next
}

// IsAccepting reports whether cfg's location is one of the TA's accepting
// locations.
func (t *TA) IsAccepting(cfg Config) bool { return t.Accepting[cfg.Location] }

// SortedClocks returns a sorted copy of t.Clocks, for a stable iteration
// order over the TA's clocks. Nothing in this module calls it.
func (t *TA) SortedClocks() []string {
	out := append([]string{}, t.Clocks...)
	sort.Strings(out)
	return out
}
