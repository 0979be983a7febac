package rtctrl

// Selector is a generic comparison-operator bag, adapted from the query
// selectors the original token-matching layer used ($eq/$gt/$gte/$lt/$lte).
// GuardFromSelector below turns one into a conjunctive Guard over a single
// clock, so a caller building a TA by hand can write (with two, five ints
// holding 2 and 5)
// GuardFromSelector("x", Selector[int]{GreaterThanOrEquals: &two, LessThan: &five})
// instead of listing ClockConstraint literals.
type Selector[T any] struct {
	Equals              *T
	GreaterThan         *T
	GreaterThanOrEquals *T
	LessThan            *T
	LessThanOrEquals    *T
}

// GuardFromSelector expands a Selector[int] into the Guard (conjunction of
// atomic clock constraints) it denotes.
func GuardFromSelector(clock string, s Selector[int]) Guard {
	var g Guard
	if s.Equals != nil {
		g = append(g, ClockConstraint{Clock: clock, Op: Eq, K: *s.Equals})
	}
	if s.GreaterThan != nil {
		g = append(g, ClockConstraint{Clock: clock, Op: Gt, K: *s.GreaterThan})
	}
	if s.GreaterThanOrEquals != nil {
		g = append(g, ClockConstraint{Clock: clock, Op: Ge, K: *s.GreaterThanOrEquals})
	}
	if s.LessThan != nil {
		g = append(g, ClockConstraint{Clock: clock, Op: Lt, K: *s.LessThan})
	}
	if s.LessThanOrEquals != nil {
		g = append(g, ClockConstraint{Clock: clock, Op: Le, K: *s.LessThanOrEquals})
	}
	return g
}
