// Package grammar implements the core of dialect: the Symbol/Production/
// Grammar data model, the mark-erase hygiene pipeline, the NULLABLE/FIRST/
// FOLLOW fixed-point analyses, and LL(1) parse-table construction. See
// SPEC_FULL.md §3-§5 for the design this package follows.
package grammar

import (
	"fmt"

	"github.com/dekarrin/dialect/internal/dialecterr"
	"github.com/dekarrin/dialect/internal/util"
)

// symbolState is the side-table entry for one symbol identity, holding
// everything about a symbol that mutates during analysis (spec.md §9).
type symbolState struct {
	terminal bool
	start    bool
	marked   bool
	nullable bool
	firsts   *util.OrderedSet[Symbol]
	follows  *util.OrderedSet[Symbol]
}

// Grammar is an ordered sequence of productions plus the side-table state
// for every symbol that appears in them. The first production's lhs is the
// grammar's start symbol (spec.md §3). All mutable analysis state is owned
// by the Grammar value; nothing lives in the Symbol values themselves.
type Grammar struct {
	productions []Production
	states      map[string]*symbolState
}

// New builds a Grammar from the productions handed across the boundary by
// the grammar-file collaborator (spec.md §6). It rejects use of any reserved
// identity in user productions, then runs Refresh once to establish the
// initial classification invariants.
func New(raw []RawProduction) (*Grammar, error) {
	if len(raw) == 0 {
		return nil, dialecterr.New(dialecterr.GrammarParse, "grammar has no productions")
	}

	g := &Grammar{states: map[string]*symbolState{}}

	for _, rp := range raw {
		if err := checkReserved(rp.LHS); err != nil {
			return nil, err
		}
		lhs := NewSymbol(rp.LHS)

		if len(rp.RHS) == 0 {
			return nil, dialecterr.Newf(dialecterr.GrammarParse, "production for %q has empty right-hand side", rp.LHS)
		}

		rhs := make([]Symbol, 0, len(rp.RHS))
		for _, id := range rp.RHS {
			if id != EpsilonID {
				if err := checkReserved(id); err != nil {
					return nil, err
				}
			}
			rhs = append(rhs, NewSymbol(id))
		}

		g.productions = append(g.productions, Production{LHS: lhs, RHS: rhs})
	}

	g.Refresh()
	return g, nil
}

func checkReserved(id string) error {
	switch id {
	case DeadID, EpsilonID, StartID, EndID:
		return dialecterr.Newf(dialecterr.GrammarParse, "reserved identity %q may not appear in a user production", id)
	}
	if id == "" {
		return dialecterr.New(dialecterr.GrammarParse, "empty symbol identity is not allowed")
	}
	return nil
}

// state returns the side-table entry for sym, creating it if this is the
// first time sym has been seen.
func (g *Grammar) state(sym Symbol) *symbolState {
	st, ok := g.states[sym.id]
	if !ok {
		st = &symbolState{}
		g.states[sym.id] = st
	}
	return st
}

// Productions returns the grammar's productions in their original order.
func (g *Grammar) Productions() []Production {
	return g.productions
}

// StartSymbol returns the lhs of the first production.
func (g *Grammar) StartSymbol() Symbol {
	if len(g.productions) == 0 {
		return Dead
	}
	return g.productions[0].LHS
}

// AddProductionAt inserts p at position idx, shifting later productions
// down. Used by augmentation to insert S' -> S $ at position 0.
func (g *Grammar) AddProductionAt(idx int, p Production) {
	g.productions = append(g.productions, Production{})
	copy(g.productions[idx+1:], g.productions[idx:])
	g.productions[idx] = p
}

// RetainProductions replaces the production list with only those for which
// keep returns true, preserving relative order. Used by the hygiene erasers.
func (g *Grammar) RetainProductions(keep func(Production) bool) {
	kept := g.productions[:0:0]
	for _, p := range g.productions {
		if keep(p) {
			kept = append(kept, p)
		}
	}
	g.productions = kept
}

// Refresh establishes the classification invariants of spec.md §3/§4.2 in
// one pass: every symbol that appears as some lhs is a non-terminal, every
// other symbol seen anywhere is a terminal, and every symbol equal to the
// current start symbol has start=true. It must be re-run after any
// structural mutation (hygiene, augmentation) and is idempotent.
func (g *Grammar) Refresh() {
	lhsSet := map[string]bool{}
	for _, p := range g.productions {
		lhsSet[p.LHS.id] = true
	}

	start := g.StartSymbol()

	seen := map[string]bool{}
	classify := func(s Symbol) {
		if seen[s.id] {
			return
		}
		seen[s.id] = true
		st := g.state(s)
		st.terminal = !lhsSet[s.id]
	}

	for _, p := range g.productions {
		classify(p.LHS)
		for _, s := range p.RHS {
			classify(s)
		}
	}

	// start flag applies to every known symbol, not just ones touched this
	// pass, since a prior start symbol may no longer be lhs of production 0.
	for id, st := range g.states {
		st.start = id == start.id
	}
}

// Terminal reports whether sym is currently classified as a terminal.
// Symbols never seen by the grammar report true (an unseen symbol cannot be
// a lhs), matching the "every other symbol is terminal" half of the
// invariant.
func (g *Grammar) Terminal(sym Symbol) bool {
	st, ok := g.states[sym.id]
	if !ok {
		return true
	}
	return st.terminal
}

// IsStart reports whether sym equals the grammar's current start symbol.
func (g *Grammar) IsStart(sym Symbol) bool {
	st, ok := g.states[sym.id]
	if !ok {
		return sym.id == g.StartSymbol().id
	}
	return st.start
}

// Marked reports the transient mark bit used by hygiene and the fixed-point
// analyses.
func (g *Grammar) Marked(sym Symbol) bool {
	st, ok := g.states[sym.id]
	return ok && st.marked
}

// Mark sets the transient mark bit for sym.
func (g *Grammar) Mark(sym Symbol, marked bool) {
	g.state(sym).marked = marked
}

// ClearAllMarks resets the mark bit on every known symbol. Hygiene markers
// call this before seeding their own initial marking.
func (g *Grammar) ClearAllMarks() {
	for _, st := range g.states {
		st.marked = false
	}
}

// Nullable reports whether sym has been found to derive the empty string.
func (g *Grammar) Nullable(sym Symbol) bool {
	if sym.IsEpsilon() {
		return true
	}
	st, ok := g.states[sym.id]
	return ok && st.nullable
}

// SetNullable sets sym's nullable flag.
func (g *Grammar) SetNullable(sym Symbol, nullable bool) {
	g.state(sym).nullable = nullable
}

// First returns the current FIRST set of sym, in insertion order. The
// returned slice is a snapshot; mutating it does not affect the grammar.
func (g *Grammar) First(sym Symbol) []Symbol {
	st := g.states[sym.id]
	if st == nil || st.firsts == nil {
		return nil
	}
	return st.firsts.Elements()
}

// firstSet returns (creating if needed) the live OrderedSet backing sym's
// FIRST set, for use by the fixed-point analysis itself.
func (g *Grammar) firstSet(sym Symbol) *util.OrderedSet[Symbol] {
	st := g.state(sym)
	if st.firsts == nil {
		st.firsts = util.NewOrderedSet[Symbol]()
	}
	return st.firsts
}

// Follow returns the current FOLLOW set of sym, in insertion order.
func (g *Grammar) Follow(sym Symbol) []Symbol {
	st := g.states[sym.id]
	if st == nil || st.follows == nil {
		return nil
	}
	return st.follows.Elements()
}

func (g *Grammar) followSet(sym Symbol) *util.OrderedSet[Symbol] {
	st := g.state(sym)
	if st.follows == nil {
		st.follows = util.NewOrderedSet[Symbol]()
	}
	return st.follows
}

// NonTerminals returns every non-terminal symbol currently known to the
// grammar, ordered by identity for determinism.
func (g *Grammar) NonTerminals() []Symbol {
	var out []Symbol
	for _, id := range util.OrderedKeys(g.states) {
		if !g.states[id].terminal {
			out = append(out, NewSymbol(id))
		}
	}
	return out
}

// Terminals returns every terminal symbol currently known to the grammar
// (including epsilon and $, if present), ordered by identity for
// determinism.
func (g *Grammar) Terminals() []Symbol {
	var out []Symbol
	for _, id := range util.OrderedKeys(g.states) {
		if g.states[id].terminal {
			out = append(out, NewSymbol(id))
		}
	}
	return out
}

// Rule returns every production whose lhs equals nonterminal, in grammar
// order.
func (g *Grammar) Rule(nonterminal Symbol) []Production {
	var out []Production
	for _, p := range g.productions {
		if p.LHS.Equal(nonterminal) {
			out = append(out, p)
		}
	}
	return out
}

// String gives a short debug rendering; the full verbose grammar-state dump
// lives in internal/trace, which formats the same accessors this type
// exposes.
func (g *Grammar) String() string {
	return fmt.Sprintf("Grammar(start=%s, %d productions)", g.StartSymbol(), len(g.productions))
}
