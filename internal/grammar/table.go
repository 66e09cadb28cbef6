package grammar

import "github.com/dekarrin/dialect/internal/dialecterr"

// ParseTable maps (non-terminal, terminal) pairs to the production the
// strong-LL(1) parser should apply there. A cell is occupied iff its
// Production's lhs is not the reserved Dead symbol (spec.md §3).
type ParseTable struct {
	cells map[string]map[string]Production
}

func newParseTable() *ParseTable {
	return &ParseTable{cells: map[string]map[string]Production{}}
}

// Get returns the production at [nt][t], or the Dead-lhs sentinel production
// if the cell is unoccupied.
func (t *ParseTable) Get(nt, term Symbol) Production {
	row, ok := t.cells[nt.id]
	if !ok {
		return deadProduction
	}
	p, ok := row[term.id]
	if !ok {
		return deadProduction
	}
	return p
}

// Occupied reports whether [nt][t] currently holds a production.
func (t *ParseTable) Occupied(nt, term Symbol) bool {
	return !t.Get(nt, term).LHS.IsDead()
}

// set writes p into [nt][t], reporting true if doing so overwrote a
// different production that was already there (a conflict).
func (t *ParseTable) set(nt, term Symbol, p Production) (conflict bool) {
	row, ok := t.cells[nt.id]
	if !ok {
		row = map[string]Production{}
		t.cells[nt.id] = row
	}
	if existing, occupied := row[term.id]; occupied && !existing.LHS.IsDead() && !existing.Equal(p) {
		conflict = true
	}
	row[term.id] = p
	return conflict
}

// BuildTable constructs the LL(1) parse table for the analyzed, augmented
// grammar g, per spec.md §4.5. The table is always fully populated by
// last-write-wins even when conflicts occur (spec.md §9's Open Question (a)
// leaves this behavior unspecified but permitted); the returned error
// signals that at least one conflict occurred, so callers must check it
// before trusting the table for a strong-LL(1) parse rather than relying on
// which production a conflicted cell happens to hold.
func BuildTable(g *Grammar) (*ParseTable, error) {
	table := newParseTable()
	conflict := false

	for _, nt := range g.NonTerminals() {
		for _, p := range g.Rule(nt) {
			firstAlpha, alphaNullable := firstOfSequence(g, p.RHS)

			for _, t := range firstAlpha.Elements() {
				if table.set(nt, t, p) {
					conflict = true
				}
			}

			if alphaNullable {
				for _, t := range g.Follow(nt) {
					if table.set(nt, t, p) {
						conflict = true
					}
				}
			}
		}
	}

	if conflict {
		return table, dialecterr.New(dialecterr.NotStrongLL1, "grammar is not strong LL(1): parse table has conflicting cells")
	}
	return table, nil
}

// PredictSet returns every production nt -> α for which lookahead t is a
// legal choice at this specific occurrence of nt: either t is in FIRST(α),
// or α is fully nullable and t is in the local follow of this occurrence,
// i.e. FIRST of whatever the caller says actually comes after nt in the
// current derivation (below, left to right, always ending in a non-nullable
// symbol so the FIRST computation is total).
//
// This deliberately does not reuse g.Follow(nt): that FOLLOW set is a single
// grammar-wide union across every place nt appears on a right-hand side, so
// BuildTable must use it to populate one shared table cell that serves every
// occurrence at once. A grammar can be LL(1) without being strong-LL(1)
// precisely when two occurrences of nt have different, narrower local
// follows whose union is what collides with FIRST(α) in the static table --
// the conflict is an artifact of merging occurrences, not a real ambiguity
// in any single derivation. The dynamic fallback parser (spec.md §4.7) runs
// one step at a time with the real stack in hand, so it can use the tighter,
// occurrence-specific local follow instead and resolve exactly the
// conflicts a precomputed table cannot.
func (g *Grammar) PredictSet(nt, t Symbol, below []Symbol) []Production {
	var out []Production
	localFollow, _ := firstOfSequence(g, below)
	for _, p := range g.Rule(nt) {
		firstAlpha, alphaNullable := firstOfSequence(g, p.RHS)
		if firstAlpha.Has(t) {
			out = append(out, p)
			continue
		}
		if alphaNullable && localFollow.Has(t) {
			out = append(out, p)
		}
	}
	return out
}
