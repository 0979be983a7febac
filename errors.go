package rtctrl

import "errors"

// Error taxonomy: invalid-input, not-in-PNF, invalid-canonical-word and
// logic-error are surfaced to the caller of the top-level search
// constructor or Build; they are never retried and never swallowed.
var (
	// ErrInvalidInput covers disjoint-action-set violations, a reserved
	// initial-symbol collision during MTL->ATA translation, and controller
	// extraction requested on a non-TOP root.
	ErrInvalidInput = errors.New("invalid-input")

	// ErrNotInPNF is returned when the MTL->ATA translator's init
	// encounters a NEG applied to a non-atomic formula.
	ErrNotInPNF = errors.New("not-in-PNF")

	// ErrInvalidCanonicalWord indicates an internal bug: a value that
	// should be a valid canonical AB-word does not satisfy its invariants.
	// Checked only when Debug is true.
	ErrInvalidCanonicalWord = errors.New("invalid-canonical-word")

	// ErrLogic marks an unreachable branch of a structural recursion.
	ErrLogic = errors.New("logic-error")
)

// Debug gates the expensive canonical-word invariant checks every
// word-producing operator can run. It is off by default, and no test in
// this module turns it on; when it is on, a violation panics with
// ErrInvalidCanonicalWord instead of silently producing a malformed word.
var Debug = false
