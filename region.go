package rtctrl

import "github.com/shopspring/decimal"

// RegionIndex computes ρ(v), the region index of clock value v under
// bound K: 2n for v = n exactly, 2n+1 for n < v < n+1, and 2K+1 (the
// saturated, unbounded region) for any v > K.
func RegionIndex(v decimal.Decimal, K int) int {
	kk := decimal.NewFromInt(int64(K))
	if v.GreaterThan(kk) {
		return 2*K + 1
	}
	n := v.IntPart()
	frac := v.Sub(decimal.NewFromInt(n))
	if frac.IsZero() {
		return int(2 * n)
	}
	return int(2*n + 1)
}

// regionFloor inverts RegionIndex's integer part: the n such that the
// region denotes either {n} or (n, n+1), or K+1 for the saturated region.
func regionFloor(region, K int) int {
	if region == 2*K+1 {
		return K + 1
	}
	if region%2 == 0 {
		return region / 2
	}
	return (region - 1) / 2
}

// ConstraintsFromRegionIndex returns the guard on clock that exactly
// carves out the region rho denotes, under bound K.
func ConstraintsFromRegionIndex(clock string, rho, K int) Guard {
	if rho == 2*K+1 {
		return Guard{{Clock: clock, Op: Gt, K: K}}
	}
	if rho%2 == 0 {
		return Guard{{Clock: clock, Op: Eq, K: rho / 2}}
	}
	n := (rho - 1) / 2
	return Guard{
		{Clock: clock, Op: Gt, K: n},
		{Clock: clock, Op: Lt, K: n + 1},
	}
}

// GetNthTimeSuccessorIndex advances a single region index n steps along
// the time-successor relation used by region.go's clock-level reasoning
// (the word-level GetTimeSuccessor in word.go composes this across every
// symbol in a canonical word's last partition at once).
func GetNthTimeSuccessorIndex(rho, K, n int) int {
	for i := 0; i < n; i++ {
		if rho < 2*K+1 {
			rho++
		}
	}
	return rho
}
