// Package trace holds the plain data types produced by a parse (spec.md
// §6, "Outputs") and renders them for a human reader using
// github.com/dekarrin/rosed for column alignment. The core (internal/grammar,
// internal/parse) never formats output itself; it hands back Step and Dump
// values, keeping the semantic content of a trace separate from its
// presentation, which spec.md explicitly does not fix.
package trace

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/google/uuid"
)

// Step is one entry of the parse trace: the current input symbol (empty if
// none), the symbol on top of the parse stack, and the action taken (a
// production, a terminal match, or an epsilon pop).
type Step struct {
	In     string
	Top    string
	Action string
}

func (s Step) String() string {
	in := s.In
	if in == "" {
		in = "-"
	}
	return fmt.Sprintf("... in: %s top: %s action: %s", in, s.Top, s.Action)
}

// Dump is the state-dump content emitted on rejection (spec.md §6): the
// remaining input and stack contents, each in the order they would be
// consumed or popped (input left to right, stack top first).
type Dump struct {
	RemainingInput []string
	RemainingStack []string
}

func (d Dump) render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "input empty: %s\n", yesNo(len(d.RemainingInput) == 0))
	for _, s := range d.RemainingInput {
		fmt.Fprintf(&sb, " -- %s\n", s)
	}
	fmt.Fprintf(&sb, "stack empty: %s\n", yesNo(len(d.RemainingStack) == 0))
	for _, s := range d.RemainingStack {
		fmt.Fprintf(&sb, " -- %s\n", s)
	}
	return sb.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// GrammarState is the semantic content of the verbose grammar-state dump of
// spec.md §6: start symbol, non-terminals, terminals, productions, the
// nullable set, and FIRST/FOLLOW per symbol.
type GrammarState struct {
	Start         string
	NonTerminals  []string
	Terminals     []string
	Productions   []string
	Nullable      []string
	FirstOf       map[string][]string
	FollowOf      map[string][]string
	orderedSyms   []string
}

// NewGrammarState builds a GrammarState from plain slices/maps already
// ordered the way the caller wants them displayed.
func NewGrammarState(start string, nonTerms, terms, prods, nullable []string, first, follow map[string][]string) GrammarState {
	return GrammarState{
		Start:        start,
		NonTerminals: nonTerms,
		Terminals:    terms,
		Productions:  prods,
		Nullable:     nullable,
		FirstOf:      first,
		FollowOf:     follow,
		orderedSyms:  append(append([]string{}, nonTerms...), terms...),
	}
}

// RunID is a process-unique identifier stamped on each verbose dump header,
// so that repeated invocations of the CLI against the same grammar (e.g. in
// -i/--interactive mode, or piped into a log aggregator) can be correlated
// across separate dumps. It carries no persisted meaning.
func RunID() string {
	return uuid.NewString()
}

// RenderGrammarState formats gs as the verbose grammar-state dump.
func RenderGrammarState(runID string, gs GrammarState) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "--- grammar state (run %s) ---\n", runID)
	fmt.Fprintf(&sb, "start symbol: %s\n\n", gs.Start)

	sb.WriteString(rosed.Edit("productions:\n"+strings.Join(gs.Productions, "\n")).String())
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "non-terminals: %s\n", strings.Join(gs.NonTerminals, " "))
	fmt.Fprintf(&sb, "terminals: %s\n", strings.Join(gs.Terminals, " "))
	fmt.Fprintf(&sb, "nullable: %s\n\n", strings.Join(gs.Nullable, " "))

	data := [][]string{{"symbol", "FIRST", "FOLLOW"}}
	for _, sym := range gs.orderedSyms {
		data = append(data, []string{
			sym,
			strings.Join(gs.FirstOf[sym], " "),
			strings.Join(gs.FollowOf[sym], " "),
		})
	}
	sb.WriteString(rosed.Edit("").
		InsertTableOpts(0, data, 100, rosed.Options{TableBorders: true}).
		String())

	return sb.String()
}

// RenderTrace formats a full sequence of parse steps.
func RenderTrace(steps []Step) string {
	lines := make([]string, len(steps))
	for i, s := range steps {
		lines[i] = s.String()
	}
	return strings.Join(lines, "\n")
}

// RenderDump formats the failure state dump.
func RenderDump(d Dump) string {
	return d.render()
}

const (
	// SuccessBanner is emitted verbatim on a successful parse (spec.md §6).
	SuccessBanner = "*** success: input recognized by grammar ***"

	// FailureBanner is emitted verbatim on a failed parse (spec.md §6).
	FailureBanner = "*** failure: input not recognized by grammar ***"
)
