package grammar

import "github.com/dekarrin/dialect/internal/dialecterr"

// defaultRoundCapFloor is the smallest round cap roundCapFor derives when a
// caller passes roundCap <= 0 to a fixed-point driven operation; above this
// floor the derived cap scales with grammar size per spec.md §5 ("a hard
// round cap proportional to |productions| x |symbols|"), so pass 0 unless a
// caller has an explicit reason (cmd/dialect's --round-cap) to override it.
const defaultRoundCapFloor = 64

// runFixedPoint repeatedly calls round until it reports no further change,
// bounded by cap rounds. round must be monotone (each call only grows state,
// never shrinks it) for termination to be guaranteed by the finite universe
// of symbols/productions, per spec.md §5.
func runFixedPoint(round func() bool, cap int) error {
	if cap <= 0 {
		cap = defaultRoundCapFloor
	}
	for rounds := 0; ; rounds++ {
		if rounds > cap {
			return dialecterr.Newf(dialecterr.Internal, "fixed-point computation did not converge within %d rounds", cap)
		}
		if !round() {
			return nil
		}
	}
}

// roundCapFor derives a defensive round cap proportional to grammar size,
// per spec.md §5. A caller-supplied override (e.g. from cmd/dialect's
// --round-cap flag or internal/config's round_cap key) always wins over this
// heuristic.
func (g *Grammar) roundCapFor(override int) int {
	if override > 0 {
		return override
	}
	cap := len(g.productions) * (len(g.states) + 1)
	if cap < defaultRoundCapFloor {
		cap = defaultRoundCapFloor
	}
	return cap
}
