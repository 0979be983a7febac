package rtctrl_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtctrl/rtctrl"
)

func mustDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestGetCanonicalWordGroupsByFractionalClass(t *testing.T) {
	K := 3
	ta := rtctrl.Config{
		Location: "l0",
		Clocks: map[string]decimal.Decimal{
			"x": mustDec("1"),
			"y": mustDec("1.5"),
		},
	}
	ata := rtctrl.ATAConfig{"phi": mustDec("0")}

	w := rtctrl.GetCanonicalWord(ta, ata, K)
	require.NoError(t, rtctrl.IsValidCanonicalWord(w, K))
	require.Len(t, w, 2)
	// first partition: integer-valued symbols (x=1, phi=0)
	assert.Len(t, w[0], 2)
	// second partition: fractional symbol (y=1.5)
	assert.Len(t, w[1], 1)
	assert.Equal(t, "y", w[1][0].Clock)
}

func TestGetTimeSuccessorOfFractionalClockReachesNextInteger(t *testing.T) {
	K := 3
	ta := rtctrl.Config{Location: "l0", Clocks: map[string]decimal.Decimal{"x": mustDec("1.2")}}
	ata := rtctrl.ATAConfig{}
	w := rtctrl.GetCanonicalWord(ta, ata, K)
	require.Len(t, w, 1)

	succ := rtctrl.GetTimeSuccessor(w, K)
	require.NoError(t, rtctrl.IsValidCanonicalWord(succ, K))
	// x was in region 3 (1<x<2); its time successor is region 4 (x==2).
	assert.Equal(t, 4, succ[0][0].Region)
}

func TestGetTimeSuccessorCrossesIntoIntegerPartition(t *testing.T) {
	K := 3
	// region index 2K (=> 2n, integer... use an odd region just below the
	// next integer boundary: region 2n+1 increments to 2n+2, crossing.
	w := rtctrl.Word{
		{rtctrl.RegionSymbol{Kind: rtctrl.TARegionState, Location: "l0", Clock: "x", Region: 1}},
	}
	succ := rtctrl.GetTimeSuccessor(w, K)
	require.Len(t, succ, 1)
	assert.Equal(t, 2, succ[0][0].Region)
}

func TestGetTimeSuccessorsTerminates(t *testing.T) {
	K := 2
	w := rtctrl.Word{
		{rtctrl.RegionSymbol{Kind: rtctrl.TARegionState, Location: "l0", Clock: "x", Region: 0}},
	}
	seq := rtctrl.GetTimeSuccessors(w, K)
	assert.NotEmpty(t, seq)
	last := seq[len(seq)-1]
	assert.Equal(t, 2*K+1, last.Word[len(last.Word)-1][0].Region)
}

func TestRegAProjectsIntegerPartitionOnly(t *testing.T) {
	K := 3
	ta := rtctrl.Config{
		Location: "l0",
		Clocks: map[string]decimal.Decimal{
			"x": mustDec("1"),
			"y": mustDec("1.5"),
		},
	}
	w := rtctrl.GetCanonicalWord(ta, rtctrl.ATAConfig{}, K)
	r := rtctrl.RegA(w)
	require.Len(t, r, 1)
	assert.True(t, func() bool {
		for _, s := range r[0] {
			if s.Region%2 != 0 {
				return false
			}
		}
		return true
	}())
}

func TestRegAEmptyWhenNoIntegerSymbols(t *testing.T) {
	w := rtctrl.Word{
		{rtctrl.RegionSymbol{Kind: rtctrl.TARegionState, Location: "l0", Clock: "x", Region: 1}},
	}
	assert.Empty(t, rtctrl.RegA(w))
}

func TestCandidateRoundTrip(t *testing.T) {
	K := 3
	ta := rtctrl.Config{
		Location: "l0",
		Clocks: map[string]decimal.Decimal{
			"x": mustDec("1"),
			"y": mustDec("1.5"),
		},
	}
	ata := rtctrl.ATAConfig{"phi": mustDec("0")}
	w := rtctrl.GetCanonicalWord(ta, ata, K)

	taCfg, ataCfg := rtctrl.GetCandidate(w, "l0", K)
	w2 := rtctrl.GetCanonicalWord(taCfg, ataCfg, K)
	assert.Equal(t, w.Key(), w2.Key())
}
