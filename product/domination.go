package product

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/rtctrl/rtctrl"
)

// componentKey identifies a region symbol's "slot" (which clock of which
// TA location, or which ATA location) independent of its current region
// index, so two words can be compared component-wise even though their
// partition grouping differs.
func componentKey(s rtctrl.RegionSymbol) string {
	if s.Kind == rtctrl.TARegionState {
		return "T|" + s.Location + "|" + s.Clock
	}
	return "A|" + s.Location
}

func vectorOf(w rtctrl.Word) map[string]int {
	v := map[string]int{}
	for _, p := range w {
		for _, s := range p {
			v[componentKey(s)] = s.Region
		}
	}
	return v
}

func integerComponents(w rtctrl.Word) map[string]bool {
	out := map[string]bool{}
	if len(w) == 0 {
		return out
	}
	for _, s := range w[0] {
		if s.Region%2 == 0 {
			out[componentKey(s)] = true
		}
	}
	return out
}

// Dominates reports whether a monotonically dominates b:
// a and b track the same set of region-symbol identities (same
// locations/clocks/ATA-formulas), every region index in a is at most the
// corresponding index in b (a is the earlier-in-time configuration), and
// a's integer partition is a superset of b's — a carries no fewer
// "already settled to an integer" obligations than b does. Unlike a
// coverability-style vector comparison where the larger vector dominates,
// here the *smaller* (earlier) vector dominates, since everything
// reachable from the later configuration b is also reachable from the
// earlier one a by simply letting more time pass.
func Dominates(a, b rtctrl.Word) bool {
	va, vb := vectorOf(a), vectorOf(b)
	if len(va) != len(vb) {
		return false
	}
	keys := make([]string, 0, len(va))
	for k := range va {
		if _, ok := vb[k]; !ok {
			return false
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	av := make([]float64, len(keys))
	bv := make([]float64, len(keys))
	for i, k := range keys {
		av[i] = float64(va[k])
		bv[i] = float64(vb[k])
	}
	da := mat.NewVecDense(len(keys), av)
	db := mat.NewVecDense(len(keys), bv)

	for i := 0; i < da.Len(); i++ {
		if da.AtVec(i) > db.AtVec(i) {
			return false
		}
	}

	bInt := integerComponents(b)
	aInt := integerComponents(a)
	for k := range bInt {
		if !aInt[k] {
			return false
		}
	}
	return true
}

// DominatesAny reports whether any word in as dominates w.
func DominatesAny(w rtctrl.Word, as []rtctrl.Word) bool {
	for _, a := range as {
		if Dominates(a, w) {
			return true
		}
	}
	return false
}
