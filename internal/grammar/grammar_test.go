package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rp(lhs string, rhs ...string) RawProduction {
	return RawProduction{LHS: lhs, RHS: rhs}
}

func Test_New(t *testing.T) {
	testCases := []struct {
		name      string
		raw       []RawProduction
		expectErr bool
	}{
		{
			name:      "empty grammar",
			raw:       nil,
			expectErr: true,
		},
		{
			name: "reserved identity as lhs",
			raw: []RawProduction{
				rp("$", "a"),
			},
			expectErr: true,
		},
		{
			name: "reserved identity in rhs",
			raw: []RawProduction{
				rp("S", "$"),
			},
			expectErr: true,
		},
		{
			name: "empty rhs",
			raw: []RawProduction{
				{LHS: "S", RHS: nil},
			},
			expectErr: true,
		},
		{
			name: "single terminal production",
			raw: []RawProduction{
				rp("S", "a"),
			},
		},
		{
			name: "epsilon production",
			raw: []RawProduction{
				rp("S", EpsilonID),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g, err := New(tc.raw)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.NotNil(g)
			assert.Equal(len(tc.raw), len(g.Productions()))
		})
	}
}

func Test_Grammar_Refresh_classifiesSymbols(t *testing.T) {
	assert := assert.New(t)

	g, err := New([]RawProduction{
		rp("S", "a", "A"),
		rp("A", "b"),
	})
	assert.NoError(err)

	assert.False(g.Terminal(NewSymbol("S")))
	assert.False(g.Terminal(NewSymbol("A")))
	assert.True(g.Terminal(NewSymbol("a")))
	assert.True(g.Terminal(NewSymbol("b")))
	assert.True(g.IsStart(NewSymbol("S")))
	assert.False(g.IsStart(NewSymbol("A")))
}

func Test_Grammar_Clean_removesNonGeneratingAndUnreachable(t *testing.T) {
	assert := assert.New(t)

	// B is non-generating (only derives itself via C forever), and D is
	// unreachable from S.
	g, err := New([]RawProduction{
		rp("S", "a"),
		rp("S", "B"),
		rp("B", "C"),
		rp("C", "B"),
		rp("D", "d"),
	})
	assert.NoError(err)

	err = g.Clean(0)
	assert.NoError(err)

	var lhss []string
	for _, p := range g.Productions() {
		lhss = append(lhss, p.LHS.ID())
	}
	assert.ElementsMatch([]string{"S"}, lhss)
}

func Test_Grammar_Clean_isIdempotent(t *testing.T) {
	assert := assert.New(t)

	g, err := New([]RawProduction{
		rp("S", "a"),
		rp("S", "B"),
		rp("B", "C"),
		rp("C", "B"),
	})
	assert.NoError(err)

	assert.NoError(g.Clean(0))
	first := len(g.Productions())
	assert.NoError(g.Clean(0))
	assert.Equal(first, len(g.Productions()))
}

func Test_Grammar_Augment(t *testing.T) {
	assert := assert.New(t)

	g, err := New([]RawProduction{
		rp("S", "a"),
	})
	assert.NoError(err)

	g.Augment()

	assert.True(g.StartSymbol().Equal(Start))
	first := g.Productions()[0]
	assert.True(first.LHS.Equal(Start))
	assert.Equal([]Symbol{NewSymbol("S"), End}, first.RHS)
	assert.Contains(g.Follow(Start), End)
}

func Test_Grammar_Analyze_epsilonGrammar(t *testing.T) {
	// S -> a S b | ε
	assert := assert.New(t)

	g, err := New([]RawProduction{
		rp("S", "a", "S", "b"),
		rp("S", EpsilonID),
	})
	assert.NoError(err)
	assert.NoError(g.Clean(0))
	g.Augment()
	assert.NoError(g.Analyze(0))

	assert.True(g.Nullable(NewSymbol("S")))
	assert.ElementsMatch([]Symbol{NewSymbol("a")}, g.First(NewSymbol("S")))
	assert.ElementsMatch([]Symbol{NewSymbol("b"), End}, g.Follow(NewSymbol("S")))
}

func Test_Grammar_Analyze_orderingMattersForFollow(t *testing.T) {
	// FOLLOW must see augmentation's seeded FOLLOW(S')={$} propagate to
	// FOLLOW(S) via S' -> S $.
	assert := assert.New(t)

	g, err := New([]RawProduction{
		rp("S", "a"),
	})
	assert.NoError(err)
	assert.NoError(g.Clean(0))
	g.Augment()
	assert.NoError(g.Analyze(0))

	assert.Contains(g.Follow(NewSymbol("S")), End)
}
