package parse

import (
	"github.com/dekarrin/dialect/internal/dialecterr"
	"github.com/dekarrin/dialect/internal/grammar"
)

// LL1Parser runs the strong-LL(1) table-driven parser first, falling back to
// the dynamic predictor only when table construction itself reported a
// conflict. dialecterr.NotStrongLL1 is the only error kind ever recovered
// here (spec.md §7); every other error, including a dialecterr.NotLL1 raised
// by the fallback itself, propagates to the caller unchanged.
type LL1Parser struct {
	grammar     *grammar.Grammar
	table       *grammar.ParseTable
	strongFails bool
}

// NewLL1Parser wraps the (Grammar, ParseTable, error) triple returned by
// grammar.Prepare. tableErr is expected to be nil or a NotStrongLL1 error;
// any other kind is returned unchanged and the parser is not usable.
func NewLL1Parser(g *grammar.Grammar, table *grammar.ParseTable, tableErr error) (*LL1Parser, error) {
	if tableErr == nil {
		return &LL1Parser{grammar: g, table: table}, nil
	}
	if kind, ok := dialecterr.KindOf(tableErr); ok && kind == dialecterr.NotStrongLL1 {
		return &LL1Parser{grammar: g, table: table, strongFails: true}, nil
	}
	return nil, tableErr
}

// Run parses input, using the strong table when available and falling back
// to dynamic prediction when the table has a conflict.
func (p *LL1Parser) Run(input []grammar.Symbol) (Outcome, error) {
	if !p.strongFails {
		return RunStrong(p.grammar, p.table, input)
	}
	return RunDynamic(p.grammar, input)
}

// UsesFallback reports whether this parser resolved to the dynamic predictor
// because the strong-LL(1) table had a conflict.
func (p *LL1Parser) UsesFallback() bool {
	return p.strongFails
}
