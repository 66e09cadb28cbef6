package grammar

import "github.com/dekarrin/dialect/internal/util"

// Augment inserts the synthetic production S' -> S $ at position 0, refreshes
// classifications, and seeds FOLLOW(S') = {$}. Per spec.md §4.4 this must run
// exactly once, before any FOLLOW iteration (and, in this implementation,
// before FIRST's terminal-seeding step too, since $ must already be a
// classified terminal for FIRST($) = {$} to be seeded correctly).
func (g *Grammar) Augment() {
	startProd := Production{LHS: Start, RHS: []Symbol{g.StartSymbol(), End}}
	g.AddProductionAt(0, startProd)
	g.Refresh()
	g.followSet(Start).Add(End)
}

// computeNullable is the NULLABLE fixed-point of spec.md §4.4: mark epsilon,
// then repeatedly mark (and flag nullable) any lhs whose rhs is entirely
// marked, until no change.
func (g *Grammar) computeNullable(roundCap int) error {
	g.ClearAllMarks()
	g.Mark(Epsilon, true)

	round := func() bool {
		changed := false
		for _, p := range g.productions {
			if g.Marked(p.LHS) {
				continue
			}
			if rhsMarked(g, p) {
				g.Mark(p.LHS, true)
				g.SetNullable(p.LHS, true)
				changed = true
			}
		}
		return changed
	}
	return runFixedPoint(round, g.roundCapFor(roundCap))
}

// firstOfSequence computes FIRST(X1 X2 ... Xn) under the prefix rule shared
// by FIRST(A), FOLLOW's gamma term, and the parse-table builder's FIRST(α)
// (spec.md §4.4, §4.5): union FIRST of each symbol while it is nullable,
// stopping at (and including) the first non-nullable symbol. The second
// return value reports whether the whole sequence is nullable (true for the
// empty sequence).
func firstOfSequence(g *Grammar, syms []Symbol) (*util.OrderedSet[Symbol], bool) {
	result := util.NewOrderedSet[Symbol]()
	for _, x := range syms {
		for _, f := range g.First(x) {
			result.Add(f)
		}
		if !g.Nullable(x) {
			return result, false
		}
	}
	return result, true
}

// computeFirst is the FIRST fixed-point of spec.md §4.4. It must run after
// computeNullable and before computeFollow.
func (g *Grammar) computeFirst(roundCap int) error {
	for _, t := range g.Terminals() {
		if !t.IsEpsilon() {
			g.firstSet(t).Add(t)
		}
	}

	round := func() bool {
		changed := false
		for _, nt := range g.NonTerminals() {
			for _, p := range g.Rule(nt) {
				seq, _ := firstOfSequence(g, p.RHS)
				if g.firstSet(nt).AddAll(seq) {
					changed = true
				}
			}
		}
		return changed
	}
	return runFixedPoint(round, g.roundCapFor(roundCap))
}

// computeFollow is the FOLLOW fixed-point of spec.md §4.4. Augment must have
// already run. It must run after computeFirst.
func (g *Grammar) computeFollow(roundCap int) error {
	round := func() bool {
		changed := false
		for _, p := range g.productions {
			for i, xi := range p.RHS {
				if g.Terminal(xi) {
					continue
				}
				gamma := p.RHS[i+1:]
				firstGamma, gammaNullable := firstOfSequence(g, gamma)

				if g.followSet(xi).AddAll(firstGamma) {
					changed = true
				}
				if len(gamma) == 0 || gammaNullable {
					if g.followSet(xi).AddAll(g.followSet(p.LHS)) {
						changed = true
					}
				}
			}
		}
		return changed
	}
	return runFixedPoint(round, g.roundCapFor(roundCap))
}

// Analyze runs NULLABLE, then FIRST, then FOLLOW to a fixed point, in that
// order (spec.md §5, "Analyses must run Nullable before FIRST before
// FOLLOW"). The grammar must already be cleaned and augmented. roundCap <= 0
// uses the size-derived default.
func (g *Grammar) Analyze(roundCap int) error {
	if err := g.computeNullable(roundCap); err != nil {
		return err
	}
	if err := g.computeFirst(roundCap); err != nil {
		return err
	}
	if err := g.computeFollow(roundCap); err != nil {
		return err
	}
	return nil
}
