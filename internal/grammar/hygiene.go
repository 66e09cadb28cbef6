package grammar

// The hygiene pipeline is parameterised over three roles (spec.md §4.3),
// modeled as plain function values rather than a class hierarchy (spec.md §9
// "Marker/Algo/Eraser polymorphism"): a marker seeds the initial `marked`
// bits for one analysis, an algo runs a fixed-point propagation over that
// seed, and an eraser deletes productions that fail the algo's retention
// predicate. clean() below wires the NonGenerating and Unreachable variants
// in the fixed order spec.md mandates. computeNullable, computeFirst and
// computeFollow in analysis.go reuse the same runFixedPoint driver but not
// these roles: computeNullable seeds its own marking (epsilon only), and
// FIRST/FOLLOW detect convergence by set growth rather than by marks.

// hygieneMarker seeds the initial marking for one hygiene analysis.
type hygieneMarker func(g *Grammar)

// hygieneAlgo runs one fixed-point round of propagation, returning true if
// any symbol's mark changed as a result.
type hygieneAlgo func(g *Grammar) bool

// hygieneEraser reports whether a production survives this analysis's
// retention predicate.
type hygieneEraser func(g *Grammar, p Production) bool

// markGenerating is the Generating marker: mark exactly the terminals.
func markGenerating(g *Grammar) {
	g.ClearAllMarks()
	for _, t := range g.Terminals() {
		g.Mark(t, true)
	}
}

// algoNonGenerating is the NonGenerating fixed-point round: for each
// production whose lhs is unmarked but whose entire rhs is marked, mark the
// lhs.
func algoNonGenerating(g *Grammar) bool {
	changed := false
	for _, p := range g.productions {
		if g.Marked(p.LHS) {
			continue
		}
		if rhsMarked(g, p) {
			g.Mark(p.LHS, true)
			changed = true
		}
	}
	return changed
}

// eraseNonGenerating drops productions whose lhs is unmarked, or whose rhs
// is not fully marked.
func eraseNonGenerating(g *Grammar, p Production) bool {
	return g.Marked(p.LHS) && rhsMarked(g, p)
}

// markReachability is the Reachability marker: mark exactly the start
// symbol.
func markReachability(g *Grammar) {
	g.ClearAllMarks()
	g.Mark(g.StartSymbol(), true)
}

// algoUnreachable is the Unreachable fixed-point round: for each production
// whose lhs is marked, mark every symbol in its rhs.
func algoUnreachable(g *Grammar) bool {
	changed := false
	for _, p := range g.productions {
		if !g.Marked(p.LHS) {
			continue
		}
		for _, s := range p.RHS {
			if !g.Marked(s) {
				g.Mark(s, true)
				changed = true
			}
		}
	}
	return changed
}

// eraseUnreachable drops productions whose lhs is unmarked.
func eraseUnreachable(g *Grammar, p Production) bool {
	return g.Marked(p.LHS)
}

// rhsMarked reports whether every symbol of p's rhs is currently marked.
// Since epsilon is itself classified as a terminal (it never appears as an
// lhs) and the Generating marker marks every terminal up front, an epsilon
// production's single-symbol rhs is marked from the very first round,
// correctly making its lhs generating immediately.
func rhsMarked(g *Grammar, p Production) bool {
	for _, s := range p.RHS {
		if !g.Marked(s) {
			return false
		}
	}
	return true
}

// runHygienePass drives one full mark/propagate/erase cycle and refreshes
// classifications afterward, per spec.md §4.3's "After each pass, refresh
// must be called to re-derive terminal/start classifications."
func runHygienePass(g *Grammar, mark hygieneMarker, algo hygieneAlgo, erase hygieneEraser, roundCap int) error {
	mark(g)
	if err := runFixedPoint(func() bool { return algo(g) }, g.roundCapFor(roundCap)); err != nil {
		return err
	}
	g.RetainProductions(func(p Production) bool { return erase(g, p) })
	g.Refresh()
	return nil
}

// Clean removes non-generating productions, then unreachable productions,
// per spec.md §4.3: non-generating hygiene must run first because
// unreachability is only meaningful once non-productive rules are gone.
// Clean is idempotent: running it again on an already-clean grammar is a
// no-op. roundCap <= 0 uses the size-derived default.
func (g *Grammar) Clean(roundCap int) error {
	if err := runHygienePass(g, markGenerating, algoNonGenerating, eraseNonGenerating, roundCap); err != nil {
		return err
	}
	if err := runHygienePass(g, markReachability, algoUnreachable, eraseUnreachable, roundCap); err != nil {
		return err
	}
	return nil
}
