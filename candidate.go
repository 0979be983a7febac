package rtctrl

import "github.com/shopspring/decimal"

// candidateEpsilon is the fractional step assigned to the i-th fractional
// partition of a canonical word when reconstructing a concrete candidate
// configuration. It only needs to be small enough that i*candidateEpsilon
// stays below 1 for the largest i any word in a single search uses, which
// holds comfortably for any realistic number of clocks/ATA locations.
var candidateEpsilon = decimal.New(1, -6)

// GetCandidate reconstructs one concrete (TA, ATA) configuration pair
// denoted by the canonical word w: the integer
// partition (if present) is assigned fractional offset 0, and the i-th
// fractional partition (1-indexed among the fractional partitions) is
// assigned offset i·ε, so that GetCanonicalWord(GetCandidate(w, ...), K)
// reproduces w exactly.
func GetCandidate(w Word, taInitial string, K int) (Config, ATAConfig) {
	taClocks := map[string]decimal.Decimal{}
	ataCfg := ATAConfig{}
	loc := taInitial

	fracIndex := 0
	for i, p := range w {
		var frac decimal.Decimal
		if i == 0 && isIntegerPartition(p) {
			frac = decimal.Zero
		} else {
			fracIndex++
			frac = candidateEpsilon.Mul(decimal.NewFromInt(int64(fracIndex)))
		}
		for _, s := range p {
			floor := regionFloor(s.Region, K)
			val := decimal.NewFromInt(int64(floor)).Add(frac)
			switch s.Kind {
			case TARegionState:
				loc = s.Location
				taClocks[s.Clock] = val
			case ATARegionState:
				ataCfg[s.Location] = val
			}
		}
	}
	return Config{Location: loc, Clocks: taClocks}, ataCfg
}
