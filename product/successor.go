// Package product computes the synchronous product of a TA and an ATA at
// the level of canonical AB-words, and the monotonic
// domination check that lets the search tree prune a branch whose
// continuation is already covered by an ancestor's.
package product

import (
	"github.com/rtctrl/rtctrl"
)

// GetNextCanonicalWords computes the symbolic action successor of w under
// symbol, the set of canonical words reachable by: (1) reconstructing one
// concrete candidate configuration denoted by w, (2) taking every TA
// transition and every ATA transition labelled symbol from that candidate,
// (3) re-abstracting every resulting (TA, ATA) pair back into a canonical
// word. The result is deduplicated by word key.
func GetNextCanonicalWords(w rtctrl.Word, ta *rtctrl.TA, ata *rtctrl.ATA, K int, symbol string) []rtctrl.Word {
	taCfg, ataCfg := rtctrl.GetCandidate(w, ta.Initial, K)

	taNext := ta.Successors(taCfg, symbol)
	ataNext := ata.Successors(ataCfg, symbol)
	if len(taNext) == 0 || len(ataNext) == 0 {
		return nil
	}

	seen := map[string]bool{}
	var out []rtctrl.Word
	for _, tn := range taNext {
		for _, an := range ataNext {
			nw := rtctrl.GetCanonicalWord(tn, an, K)
			k := nw.Key()
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, nw)
		}
	}
	return out
}
