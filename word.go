package rtctrl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// SymbolKind distinguishes a region symbol coming from the TA side of the
// product (a location/clock pair) from one coming from the ATA side (an
// active location, single implicit clock).
type SymbolKind int

const (
	TARegionState SymbolKind = iota
	ATARegionState
)

// RegionSymbol is one (location, clock, region-index) or (ATA-location,
// region-index) triple, an element of a canonical AB-word's partition.
type RegionSymbol struct {
	Kind     SymbolKind
	Location string
	Clock    string
	Region   int
}

// Key is the canonical string form used for equality, ordering within a
// partition, and map-keying.
func (s RegionSymbol) Key() string {
	if s.Kind == TARegionState {
		return fmt.Sprintf("T|%s|%s|%d", s.Location, s.Clock, s.Region)
	}
	return fmt.Sprintf("A|%s|%d", s.Location, s.Region)
}

// Partition is a non-empty set of region symbols sharing one fractional
// class, one Sᵢ of a canonical AB-word.
type Partition []RegionSymbol

func sortPartition(p Partition) {
	sort.Slice(p, func(i, j int) bool { return p[i].Key() < p[j].Key() })
}

// isIntegerPartition reports whether every symbol in p has an even
// (integer) region index.
func isIntegerPartition(p Partition) bool {
	if len(p) == 0 {
		return false
	}
	for _, s := range p {
		if s.Region%2 != 0 {
			return false
		}
	}
	return true
}

func (p Partition) key() string {
	keys := make([]string, len(p))
	for i, s := range p {
		keys[i] = s.Key()
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

// Word is a canonical AB-word: an ordered partition of region symbols,
// S1..Sn, S1 holding the integer-valued symbols and S2..Sn holding the
// fractional-valued symbols in strictly increasing order of fractional
// part. A word with no integer-valued symbols has no S1 and starts with a
// fractional partition.
type Word []Partition

// Key is the canonical string form of the whole word, used for equality
// and as a search-tree/visited-set map key.
func (w Word) Key() string {
	parts := make([]string, len(w))
	for i, p := range w {
		parts[i] = p.key()
	}
	return strings.Join(parts, "#")
}

func (w Word) Equal(o Word) bool { return w.Key() == o.Key() }

// IsValidCanonicalWord checks the structural invariants a canonical
// AB-word must satisfy: no empty partitions, every symbol within
// a partition shares the same parity (fractional class), no region index
// exceeds the 2K+1 bound, and integer (even-index) symbols occur only in
// the first partition.
func IsValidCanonicalWord(w Word, K int) error {
	for i, p := range w {
		if len(p) == 0 {
			return fmt.Errorf("%w: empty partition at index %d", ErrInvalidCanonicalWord, i)
		}
		parity := p[0].Region % 2
		for _, s := range p {
			if s.Region%2 != parity {
				return fmt.Errorf("%w: mixed fractional class in partition %d", ErrInvalidCanonicalWord, i)
			}
			if s.Region < 0 || s.Region > 2*K+1 {
				return fmt.Errorf("%w: region index %d out of bounds for K=%d", ErrInvalidCanonicalWord, s.Region, K)
			}
			if s.Region%2 == 0 && i != 0 {
				return fmt.Errorf("%w: integer symbol outside first partition (index %d)", ErrInvalidCanonicalWord, i)
			}
		}
	}
	return nil
}

// checkValid panics with ErrInvalidCanonicalWord when Debug is enabled and
// w violates its invariants.
func checkValid(w Word, K int) {
	if !Debug {
		return
	}
	if err := IsValidCanonicalWord(w, K); err != nil {
		panic(err)
	}
}

func floorAndFracSign(v decimal.Decimal, K int) (n int, hasFrac bool) {
	kk := decimal.NewFromInt(int64(K))
	if v.GreaterThan(kk) {
		return K + 1, true
	}
	whole := v.IntPart()
	frac := v.Sub(decimal.NewFromInt(whole))
	return int(whole), !frac.IsZero()
}

func fracPart(v decimal.Decimal, K int, saturated bool) decimal.Decimal {
	if saturated {
		return decimal.NewFromInt(1)
	}
	whole := v.IntPart()
	return v.Sub(decimal.NewFromInt(whole))
}

// GetCanonicalWord builds the canonical AB-word denoting the product
// configuration (taCfg, ataCfg) under bound K: every
// clock/location value is projected to a region symbol, symbols are
// grouped by (floor(value), sign(frac(value))), the integer group (if any)
// becomes S1, and the remaining groups are ordered by increasing actual
// fractional part.
func GetCanonicalWord(taCfg Config, ataCfg ATAConfig, K int) Word {
	type tagged struct {
		sym  RegionSymbol
		n    int
		frac bool
		fv   decimal.Decimal
	}
	var all []tagged
	for clock, v := range taCfg.Clocks {
		idx := RegionIndex(v, K)
		n, frac := floorAndFracSign(v, K)
		sat := idx == 2*K+1
		all = append(all, tagged{
			sym:  RegionSymbol{Kind: TARegionState, Location: taCfg.Location, Clock: clock, Region: idx},
			n:    n, frac: frac, fv: fracPart(v, K, sat),
		})
	}
	for loc, v := range ataCfg {
		idx := RegionIndex(v, K)
		n, frac := floorAndFracSign(v, K)
		sat := idx == 2*K+1
		all = append(all, tagged{
			sym:  RegionSymbol{Kind: ATARegionState, Location: loc, Region: idx},
			n:    n, frac: frac, fv: fracPart(v, K, sat),
		})
	}

	type groupKey struct {
		n    int
		frac bool
	}
	groups := map[groupKey][]tagged{}
	var order []groupKey
	for _, t := range all {
		k := groupKey{t.n, t.frac}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], t)
	}

	var integer Partition
	type fracGroup struct {
		fv   decimal.Decimal
		part Partition
	}
	var fracGroups []fracGroup
	for _, k := range order {
		ts := groups[k]
		part := make(Partition, len(ts))
		for i, t := range ts {
			part[i] = t.sym
		}
		if !k.frac {
			integer = append(integer, part...)
			continue
		}
		fracGroups = append(fracGroups, fracGroup{fv: ts[0].fv, part: part})
	}
	sort.Slice(fracGroups, func(i, j int) bool { return fracGroups[i].fv.LessThan(fracGroups[j].fv) })

	var w Word
	if len(integer) > 0 {
		sortPartition(integer)
		w = append(w, integer)
	}
	for _, fg := range fracGroups {
		sortPartition(fg.part)
		w = append(w, fg.part)
	}
	checkValid(w, K)
	return w
}

// GetTimeSuccessor advances w by the least amount of time that changes its
// region shape: every symbol in the last (most
// fractional) partition has its region index incremented; if that
// increment crosses from odd to even (the clocks involved hit their next
// integer value), that partition becomes the new first (integer)
// partition and every other partition keeps its order, otherwise the
// shape is unchanged.
func GetTimeSuccessor(w Word, K int) Word {
	if len(w) == 0 {
		return w
	}
	n := len(w) - 1
	last := w[n]
	newLast := make(Partition, len(last))
	crossed := false
	for i, s := range last {
		r := s.Region
		if r < 2*K+1 {
			r++
		}
		if r%2 == 0 {
			crossed = true
		}
		ns := s
		ns.Region = r
		newLast[i] = ns
	}
	sortPartition(newLast)

	rest := append(Word{}, w[:n]...)
	var out Word
	if crossed {
		out = append(Word{newLast}, rest...)
	} else {
		out = append(append(Word{}, rest...), newLast)
	}
	checkValid(out, K)
	return out
}

// TimeSuccessor pairs a canonical word with the number of GetTimeSuccessor
// steps (Δ) it took to reach it from some starting word.
type TimeSuccessor struct {
	Delta int
	Word  Word
}

// GetTimeSuccessors enumerates every distinct canonical word reachable
// from w by repeated application of GetTimeSuccessor, stopping once the
// sequence reaches its fixed point: GetTimeSuccessor returns its input
// unchanged, which happens once every symbol of the last partition is at
// 2K+1 (symbols of earlier partitions may still be below it). The sequence
// is finite because the number of distinct region-index assignments for a
// bounded set of symbols under bound K is finite.
func GetTimeSuccessors(w Word, K int) []TimeSuccessor {
	var out []TimeSuccessor
	cur := w
	delta := 0
	for {
		next := GetTimeSuccessor(cur, K)
		if next.Key() == cur.Key() {
			return out
		}
		delta++
		out = append(out, TimeSuccessor{Delta: delta, Word: next})
		cur = next
	}
}

// RegA projects w to reg_a(w): the integer (first) partition alone, or the
// empty word if w currently has no integer-valued symbols.
func RegA(w Word) Word {
	if len(w) == 0 || !isIntegerPartition(w[0]) {
		return Word{}
	}
	return Word{w[0]}
}
