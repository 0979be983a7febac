package rtctrl

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ATA is an alternating timed automaton over a single clock: a finite set
// of locations (the MTL closure plus a reserved initial location and a
// reserved sink), a transition function returning a boolean ATAFormula per
// (location, symbol), and a Büchi acceptance condition over minimal
// models.
type ATA struct {
	Alphabet    []string
	Locations   []string
	Initial     string
	Sink        string
	Accepting   map[string]bool
	Transitions map[string]map[string]*ATAFormula
}

// ATAConfig is a finite mapping from active ATA locations to clock
// valuations.
type ATAConfig map[string]decimal.Decimal

func (c ATAConfig) clone() ATAConfig {
	cp := make(ATAConfig, len(c))
	for k, v := range c {
		cp[k] = v
	}
	return cp
}

// Key returns a deterministic string identifying the active-location set
// and clock values, for use as a map key / dedup key.
func (c ATAConfig) Key() string {
	locs := make([]string, 0, len(c))
	for l := range c {
		locs = append(locs, l)
	}
	sort.Strings(locs)
	s := ""
	for _, l := range locs {
		s += l + "=" + c[l].String() + ";"
	}
	return s
}

// Config0 returns the ATA's initial configuration: just the reserved
// initial location at clock zero.
func (a *ATA) Config0() ATAConfig {
	return ATAConfig{a.Initial: decimal.Zero}
}

// IsAccepting reports whether every active location in cfg is one of the
// ATA's accepting locations (the Büchi condition, specialized to a single
// configuration rather than a run — a configuration "accepts" the
// remainder of a word iff it can keep doing so forever, which the search
// layer checks via has_satisfiable_ata_configuration rather than here).
func (a *ATA) IsAccepting(cfg ATAConfig) bool {
	for l := range cfg {
		if !a.Accepting[l] {
			return false
		}
	}
	return true
}

// HasSink reports whether the sink location is active in cfg. The sink's
// presence in every branch of every word held by a search-tree node
// witnesses that the obligation is unsatisfiable from that node onward.
func (a *ATA) HasSink(cfg ATAConfig) bool {
	_, ok := cfg[a.Sink]
	return ok
}

// Successors computes every ATA configuration reachable from cfg on
// symbol a: for each active location, take one of
// its transition formula's minimal models (if none exist the location's
// obligation under this symbol is unsatisfiable, so it falls through to
// the sink, keeping the ATA total); the candidate successor configuration
// is the union of the chosen atoms, with RESET atoms zeroing the clock and
// plain atoms inheriting the originating location's current clock value.
// The full result is every combination across active locations' choices.
func (a *ATA) Successors(cfg ATAConfig, symbol string) []ATAConfig {
	locs := make([]string, 0, len(cfg))
	for l := range cfg {
		locs = append(locs, l)
	}
	sort.Strings(locs)

	choices := make([][]Model, len(locs))
	for i, l := range locs {
		f, ok := a.Transitions[l][symbol]
		if !ok {
			f = Loc(a.Sink)
		}
		ms := f.MinimalModels(cfg[l])
		if len(ms) == 0 {
			ms = []Model{newModel(Atom{Location: a.Sink, Reset: false})}
		}
		choices[i] = ms
	}

	var combos [][]Model
	var build func(i int, acc []Model)
	build = func(i int, acc []Model) {
		if i == len(locs) {
			combos = append(combos, append([]Model{}, acc...))
			return
		}
		for _, m := range choices[i] {
			build(i+1, append(acc, m))
		}
	}
	build(0, nil)

	seen := map[string]bool{}
	var out []ATAConfig
	for _, combo := range combos {
		next := ATAConfig{}
		// first pass: non-reset atoms inherit their origin's clock value
		for i, m := range combo {
			for atom := range m {
				if atom.Reset {
					continue
				}
				next[atom.Location] = cfg[locs[i]]
			}
		}
		// second pass: reset atoms win regardless of order
		for _, m := range combo {
			for atom := range m {
				if atom.Reset {
					next[atom.Location] = decimal.Zero
				}
			}
		}
		k := next.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, next)
	}
	return out
}

// Elapse advances every active location's clock in cfg by d.
func (a *ATA) Elapse(cfg ATAConfig, d decimal.Decimal) ATAConfig {
	next := cfg.clone()
	for l, v := range next {
		next[l] = v.Add(d)
	}
	return next
}
