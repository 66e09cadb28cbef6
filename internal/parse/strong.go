// Package parse implements the table-driven predictive parser of spec.md
// §4.6 and its dynamic fallback of §4.7, wired together by LL1Parser in
// parser.go.
package parse

import (
	"github.com/dekarrin/dialect/internal/grammar"
	"github.com/dekarrin/dialect/internal/trace"
	"github.com/dekarrin/dialect/internal/util"
)

// Outcome is the result of one parse attempt: whether it accepted, the full
// step trace, and (on rejection) the remaining input and stack contents for
// the failure dump.
type Outcome struct {
	Accepted       bool
	Steps          []trace.Step
	RemainingInput []grammar.Symbol
	RemainingStack []grammar.Symbol
}

func (o Outcome) dump() trace.Dump {
	in := make([]string, len(o.RemainingInput))
	for i, s := range o.RemainingInput {
		in[i] = s.String()
	}
	st := make([]string, len(o.RemainingStack))
	for i, s := range o.RemainingStack {
		st[len(st)-1-i] = s.String()
	}
	return trace.Dump{RemainingInput: in, RemainingStack: st}
}

// Dump renders the failure-state content of o for a rejected parse.
func (o Outcome) Dump() string {
	return trace.RenderDump(o.dump())
}

// Trace renders the full step trace of o.
func (o Outcome) Trace() string {
	return trace.RenderTrace(o.Steps)
}

// RunStrong runs the strong-LL(1) table-driven parser of spec.md §4.6 over
// input using table. The stack starts with [$, start] pushed so that start
// ends on top; input is consumed left to right with a virtual $ appended at
// exhaustion.
//
// Per step: if the stack top is a terminal (including $), pop it first, then
// decide: if it is epsilon, the pop alone was the action and the input
// pointer does not advance; otherwise the popped terminal must equal the
// current input symbol or the parse rejects immediately (spec.md §4.6's
// corrected pop-then-check ordering: the pop is never undone, unlike the
// buggy always-advance behavior of the original implementation this design
// replaces). If the stack top is a non-terminal, the table cell for
// (top, current input symbol) is looked up; an unoccupied cell rejects,
// otherwise the production's rhs is pushed in reverse so its leftmost symbol
// ends on top.
//
// Accept iff the stack empties exactly when input is exhausted.
func RunStrong(g *grammar.Grammar, table *grammar.ParseTable, input []grammar.Symbol) (Outcome, error) {
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

		if !table.Occupied(top, in) {
			steps = append(steps, trace.Step{In: in.String(), Top: top.String(), Action: "reject: no table entry"})
			return Outcome{
				Accepted:       false,
				Steps:          steps,
				RemainingInput: input[pos:],
				RemainingStack: stack.Of,
			}, nil
		}

		p := table.Get(top, in)
		stack.Pop()
		for i := len(p.RHS) - 1; i >= 0; i-- {
			stack.Push(p.RHS[i])
		}
		steps = append(steps, trace.Step{In: in.String(), Top: top.String(), Action: "apply " + p.String()})
	}
}
