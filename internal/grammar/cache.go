package grammar

import (
	"sort"

	"github.com/dekarrin/dialect/internal/dialecterr"
)

// Snapshot is the plain-data projection of an analyzed, table-built Grammar,
// containing no grammar.Symbol values, so that internal/cache can encode it
// with github.com/dekarrin/rezi without depending on this package's
// unexported side-table representation. Productions is the grammar's
// production list after Clean and Augment (so index 0 is the synthetic
// S' -> S $ rule); TableCells references productions by index rather than by
// value, since rezi encodes plain slices/maps/ints more naturally than a
// recursive Symbol/Production graph.
type Snapshot struct {
	Productions  []RawProduction
	NonTerminals []string
	Terminals    []string
	Nullable     []string
	First        map[string][]string
	Follow       map[string][]string
	TableCells   map[string]map[string]int
	Conflict     bool
}

// ToSnapshot captures g (already Clean, Augmented, and Analyzed) and its
// built table as a Snapshot.
func (g *Grammar) ToSnapshot(table *ParseTable, conflict bool) Snapshot {
	s := Snapshot{
		Productions: make([]RawProduction, len(g.productions)),
		First:       map[string][]string{},
		Follow:      map[string][]string{},
		TableCells:  map[string]map[string]int{},
		Conflict:    conflict,
	}

	prodIndex := map[string]int{}
	for i, p := range g.productions {
		rhs := make([]string, len(p.RHS))
		for j, sym := range p.RHS {
			rhs[j] = sym.id
		}
		s.Productions[i] = RawProduction{LHS: p.LHS.id, RHS: rhs}
		prodIndex[p.String()] = i
	}

	for _, nt := range g.NonTerminals() {
		s.NonTerminals = append(s.NonTerminals, nt.id)
	}
	for _, t := range g.Terminals() {
		s.Terminals = append(s.Terminals, t.id)
	}
	for id, st := range g.states {
		if st.nullable {
			s.Nullable = append(s.Nullable, id)
		}
	}
	sort.Strings(s.Nullable)

	allSyms := append(append([]string{}, s.NonTerminals...), s.Terminals...)
	for _, id := range allSyms {
		sym := NewSymbol(id)
		s.First[id] = idsOf(g.First(sym))
		s.Follow[id] = idsOf(g.Follow(sym))
	}

	for _, nt := range g.NonTerminals() {
		row := map[string]int{}
		for _, t := range g.Terminals() {
			if !table.Occupied(nt, t) {
				continue
			}
			p := table.Get(nt, t)
			if idx, ok := prodIndex[p.String()]; ok {
				row[t.id] = idx
			}
		}
		if len(row) > 0 {
			s.TableCells[nt.id] = row
		}
	}

	return s
}

func idsOf(syms []Symbol) []string {
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = s.id
	}
	return out
}

// FromSnapshot rebuilds a Grammar and ParseTable directly from a previously
// captured Snapshot, skipping Clean/Augment/Analyze/BuildTable entirely.
// The returned error mirrors what BuildTable would have returned:
// dialecterr.NotStrongLL1 if the snapshot recorded a conflict, nil
// otherwise.
func FromSnapshot(s Snapshot) (*Grammar, *ParseTable, error) {
	g := &Grammar{states: map[string]*symbolState{}}
	for _, rp := range s.Productions {
		rhs := make([]Symbol, len(rp.RHS))
		for i, id := range rp.RHS {
			rhs[i] = NewSymbol(id)
		}
		g.productions = append(g.productions, Production{LHS: NewSymbol(rp.LHS), RHS: rhs})
	}
	g.Refresh()

	for _, id := range s.Nullable {
		g.SetNullable(NewSymbol(id), true)
	}
	for id, firsts := range s.First {
		set := g.firstSet(NewSymbol(id))
		for _, f := range firsts {
			set.Add(NewSymbol(f))
		}
	}
	for id, follows := range s.Follow {
		set := g.followSet(NewSymbol(id))
		for _, f := range follows {
			set.Add(NewSymbol(f))
		}
	}

	table := newParseTable()
	for ntID, row := range s.TableCells {
		nt := NewSymbol(ntID)
		for termID, idx := range row {
			if idx < 0 || idx >= len(g.productions) {
				continue
			}
			table.set(nt, NewSymbol(termID), g.productions[idx])
		}
	}

	var err error
	if s.Conflict {
		err = dialecterr.New(dialecterr.NotStrongLL1, "grammar is not strong LL(1): parse table has conflicting cells")
	}
	return g, table, err
}
