package parse

import (
	"testing"

	"github.com/dekarrin/dialect/internal/dialecterr"
	"github.com/dekarrin/dialect/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func rp(lhs string, rhs ...string) grammar.RawProduction {
	return grammar.RawProduction{LHS: lhs, RHS: rhs}
}

func syms(ids ...string) []grammar.Symbol {
	out := make([]grammar.Symbol, len(ids))
	for i, id := range ids {
		out[i] = grammar.NewSymbol(id)
	}
	return out
}

func Test_LL1Parser_strongTable_arithmeticGrammar(t *testing.T) {
	testCases := []struct {
		name   string
		input  []grammar.Symbol
		expect bool
	}{
		{name: "single identifier", input: syms("i"), expect: true},
		{name: "sum of two identifiers", input: syms("i", "+", "i"), expect: true},
		{name: "parenthesized product", input: syms("(", "i", "*", "i", ")"), expect: true},
		{name: "unbalanced parens", input: syms("(", "i"), expect: false},
		{name: "dangling operator", input: syms("i", "+"), expect: false},
	}

	raw := []grammar.RawProduction{
		rp("E", "T", "X"),
		rp("X", "+", "T", "X"),
		rp("X", grammar.EpsilonID),
		rp("T", "F", "Y"),
		rp("Y", "*", "F", "Y"),
		rp("Y", grammar.EpsilonID),
		rp("F", "(", "E", ")"),
		rp("F", "i"),
	}

	g, table, tableErr := grammar.Prepare(raw, 0)
	if !assert.NoError(t, tableErr) {
		return
	}
	parser, err := NewLL1Parser(g, table, tableErr)
	if !assert.NoError(t, err) {
		return
	}
	assert.False(t, parser.UsesFallback())

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			outcome, err := parser.Run(tc.input)
			assert.NoError(err)
			assert.Equal(tc.expect, outcome.Accepted)
		})
	}
}

func Test_LL1Parser_epsilonGrammar(t *testing.T) {
	// S -> a S b | ε
	raw := []grammar.RawProduction{
		rp("S", "a", "S", "b"),
		rp("S", grammar.EpsilonID),
	}

	g, table, tableErr := grammar.Prepare(raw, 0)
	if !assert.NoError(t, tableErr) {
		return
	}
	parser, err := NewLL1Parser(g, table, tableErr)
	if !assert.NoError(t, err) {
		return
	}

	testCases := []struct {
		name   string
		input  []grammar.Symbol
		expect bool
	}{
		{name: "empty input", input: syms(), expect: true},
		{name: "one nested pair", input: syms("a", "b"), expect: true},
		{name: "two nested pairs", input: syms("a", "a", "b", "b"), expect: true},
		{name: "unbalanced a", input: syms("a", "a", "b"), expect: false},
		{name: "wrong order", input: syms("b", "a"), expect: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			outcome, err := parser.Run(tc.input)
			assert.NoError(err)
			assert.Equal(tc.expect, outcome.Accepted)
		})
	}
}

func Test_LL1Parser_fallsBackToDynamicPredictor(t *testing.T) {
	assert := assert.New(t)

	// S -> A | B with A -> a and B -> a: a genuine strong-LL(1) conflict at
	// cell (S, a). The dynamic predictor faces the same ambiguity, which
	// exercises NotLL1 propagating out of the fallback itself.
	raw := []grammar.RawProduction{
		rp("S", "A"),
		rp("S", "B"),
		rp("A", "a"),
		rp("B", "a"),
	}

	g, table, tableErr := grammar.Prepare(raw, 0)
	kind, ok := dialecterr.KindOf(tableErr)
	if !assert.True(ok) || !assert.Equal(dialecterr.NotStrongLL1, kind) {
		return
	}

	parser, err := NewLL1Parser(g, table, tableErr)
	if !assert.NoError(err) {
		return
	}
	assert.True(parser.UsesFallback())

	// the dynamic predictor faces the exact same ambiguity here (both S->A
	// and S->B are candidates for lookahead 'a'), so the fallback itself
	// must report NotLL1 rather than silently pick one.
	_, err = parser.Run(syms("a"))
	kind, ok = dialecterr.KindOf(err)
	assert.True(ok)
	assert.Equal(dialecterr.NotLL1, kind)
}

func Test_LL1Parser_dynamicFallbackResolvesViaLocalFollow(t *testing.T) {
	assert := assert.New(t)

	// S -> A c | x A b ; A -> b | ε.
	// A's grammar-wide FOLLOW is {c, b}: 'c' from the S -> A c occurrence,
	// 'b' from the S -> x A b occurrence. Since FIRST(A -> b) = {b} collides
	// with 'b' being in that global FOLLOW, BuildTable reports a conflict
	// at cell (A, b) even though the "A c" occurrence is not ambiguous on its
	// own: there, the real local follow of A is just {c}, so lookahead 'b' can
	// only mean A -> b; in "x A b", the local follow really is {b}, so
	// lookahead 'b' there is genuinely ambiguous. A context-free table can't
	// tell these apart; the dynamic predictor, using the live stack, can.
	raw := []grammar.RawProduction{
		rp("S", "A", "c"),
		rp("S", "x", "A", "b"),
		rp("A", "b"),
		rp("A", grammar.EpsilonID),
	}

	g, table, tableErr := grammar.Prepare(raw, 0)
	kind, ok := dialecterr.KindOf(tableErr)
	if !assert.True(ok) || !assert.Equal(dialecterr.NotStrongLL1, kind) {
		return
	}

	parser, err := NewLL1Parser(g, table, tableErr)
	if !assert.NoError(err) {
		return
	}
	assert.True(parser.UsesFallback())

	// reached via S -> A c: local follow of A is {c}, so 'b' unambiguously
	// picks A -> b despite the conflicted table cell.
	outcome, err := parser.Run(syms("b", "c"))
	assert.NoError(err)
	assert.True(outcome.Accepted)

	// same occurrence of A, lookahead 'c' instead of 'b': local follow of A
	// is {c}, so 'c' unambiguously picks A -> ε.
	outcome, err = parser.Run(syms("c"))
	assert.NoError(err)
	assert.True(outcome.Accepted)

	// reached via S -> x A b: local follow of A really is {b}, so lookahead
	// 'b' is genuinely ambiguous between A -> b and A -> ε. No amount of
	// context resolves this one; the fallback must report NotLL1 here.
	_, err = parser.Run(syms("x", "b"))
	kind, ok = dialecterr.KindOf(err)
	assert.True(ok)
	assert.Equal(dialecterr.NotLL1, kind)
}

func Test_LL1Parser_propagatesNonStrongLL1Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := NewLL1Parser(nil, nil, dialecterr.New(dialecterr.GrammarParse, "boom"))
	assert.Error(err)
	kind, ok := dialecterr.KindOf(err)
	assert.True(ok)
	assert.Equal(dialecterr.GrammarParse, kind)
}
