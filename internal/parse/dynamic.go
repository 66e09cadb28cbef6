package parse

import (
	"github.com/dekarrin/dialect/internal/dialecterr"
	"github.com/dekarrin/dialect/internal/grammar"
	"github.com/dekarrin/dialect/internal/trace"
	"github.com/dekarrin/dialect/internal/util"
)

// predictResult is the discriminated outcome of one prediction step (spec.md
// §9's design note: "model as an explicit result value, not exceptions").
type predictResult int

const (
	noMatch predictResult = iota
	matched
	ambiguous
)

// predict chooses the single production to apply at (nt, t) by consulting
// grammar.PredictSet directly, per production, instead of a precomputed
// table. below is the actual remaining stack contents underneath nt, left to
// right, so PredictSet can resolve nullable alternatives against this
// occurrence's real local follow rather than nt's grammar-wide FOLLOW set.
// Zero candidates is noMatch, exactly one is matched, more than one is
// ambiguous: with one symbol of lookahead the grammar is genuinely not LL(1)
// at this point in the derivation, not merely not strong-LL(1).
func predict(g *grammar.Grammar, nt, t grammar.Symbol, below []grammar.Symbol) (predictResult, grammar.Production) {
	candidates := g.PredictSet(nt, t, below)
	switch len(candidates) {
	case 0:
		return noMatch, grammar.Production{}
	case 1:
		return matched, candidates[0]
	default:
		return ambiguous, grammar.Production{}
	}
}

// belowTop returns the contents of stack underneath its top element, in
// left-to-right derivation order. Stack.Of holds bottom-to-top, with $
// always at index 0, so this reverses everything below the last element.
func belowTop(of []grammar.Symbol) []grammar.Symbol {
	below := of[:len(of)-1]
	out := make([]grammar.Symbol, len(below))
	for i, s := range below {
		out[len(below)-1-i] = s
	}
	return out
}

// RunDynamic runs the dynamic fallback parser of spec.md §4.7: identical
// stack discipline to RunStrong, but a non-terminal stack top is resolved by
// calling predict at each step instead of consulting a precomputed table.
// It is invoked only after strong-LL(1) table construction reports a
// conflict (dialecterr.NotStrongLL1); an ambiguous prediction here means the
// grammar is not LL(1) at all, which is reported as dialecterr.NotLL1 rather
// than recovered.
func RunDynamic(g *grammar.Grammar, input []grammar.Symbol) (Outcome, error) {
	stack := util.Stack[grammar.Symbol]{}
	stack.Push(grammar.End)
	stack.Push(g.StartSymbol())

	pos := 0
	current := func() grammar.Symbol {
		if pos >= len(input) {
			return grammar.End
		}
		return input[pos]
	}

	var steps []trace.Step

	for {
		in := current()

		if stack.Empty() {
			accepted := in.Equal(grammar.End)
			return Outcome{Accepted: accepted, Steps: steps, RemainingInput: input[pos:]}, nil
		}

		top := stack.Peek()

		if top.Equal(grammar.End) || g.Terminal(top) {
			stack.Pop()
			switch {
			case top.IsEpsilon():
				steps = append(steps, trace.Step{In: in.String(), Top: top.String(), Action: "pop ε"})
			case top.Equal(in):
				steps = append(steps, trace.Step{In: in.String(), Top: top.String(), Action: "match"})
				if pos < len(input) {
					pos++
				}
			default:
				steps = append(steps, trace.Step{In: in.String(), Top: top.String(), Action: "reject: expected match"})
				return Outcome{
					Accepted:       false,
					Steps:          steps,
					RemainingInput: input[pos:],
					RemainingStack: append(append([]grammar.Symbol{}, stack.Of...), top),
				}, nil
			}
			continue
		}

		result, p := predict(g, top, in, belowTop(stack.Of))
		switch result {
		case noMatch:
			steps = append(steps, trace.Step{In: in.String(), Top: top.String(), Action: "reject: no prediction"})
			return Outcome{
				Accepted:       false,
				Steps:          steps,
				RemainingInput: input[pos:],
				RemainingStack: stack.Of,
			}, nil
		case ambiguous:
			return Outcome{Steps: steps}, dialecterr.Newf(dialecterr.NotLL1,
				"grammar is not LL(1): more than one production predicted for (%s, %s)", top, in)
		}

		stack.Pop()
		for i := len(p.RHS) - 1; i >= 0; i-- {
			stack.Push(p.RHS[i])
		}
		steps = append(steps, trace.Step{In: in.String(), Top: top.String(), Action: "apply " + p.String()})
	}
}
