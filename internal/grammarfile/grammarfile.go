// Package grammarfile reads the line-oriented grammar source format
// (SPEC_FULL.md §6.1) and produces the []grammar.RawProduction interchange
// value the core consumes. It is a collaborator, not part of the core: it
// never constructs a grammar.Symbol itself.
package grammarfile

import (
	"bufio"
	"io"
	"strings"

	"github.com/dekarrin/dialect/internal/dialecterr"
	"github.com/dekarrin/dialect/internal/grammar"
)

// epsilonEscape is the token an author writes to mean the literal epsilon
// identity, since a raw space can never appear as a token (whitespace is the
// lexer's token separator).
const epsilonEscape = "%e"

// Parse reads a grammar source from r and returns the raw productions in
// file order. Malformed input is reported as dialecterr.GrammarParse.
//
// Accepted syntax, one rule per logical line:
//
//	A -> a B c
//	   | b
//	   | %e
//
// "->" separates the lhs from its first alternative; a line beginning with
// "|" (after leading whitespace) continues the previous lhs with another
// alternative. Blank lines and lines whose first non-whitespace character is
// "#" are ignored. Every token must be exactly one character long, except
// the reserved epsilon escape "%e".
func Parse(r io.Reader) ([]grammar.RawProduction, error) {
	scanner := bufio.NewScanner(r)

	var out []grammar.RawProduction
	var currentLHS string
	haveLHS := false
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if strings.HasPrefix(trimmed, "|") {
			if !haveLHS {
				return nil, dialecterr.Newf(dialecterr.GrammarParse, "line %d: continuation %q with no preceding rule", lineNo, trimmed)
			}
			rhs, err := parseRHS(trimmed[1:], lineNo)
			if err != nil {
				return nil, err
			}
			out = append(out, grammar.RawProduction{LHS: currentLHS, RHS: rhs})
			continue
		}

		lhs, rest, err := parseHead(trimmed, lineNo)
		if err != nil {
			return nil, err
		}
		rhs, err := parseRHS(rest, lineNo)
		if err != nil {
			return nil, err
		}
		currentLHS = lhs
		haveLHS = true
		out = append(out, grammar.RawProduction{LHS: currentLHS, RHS: rhs})
	}

	if err := scanner.Err(); err != nil {
		return nil, dialecterr.Wrap(dialecterr.GrammarParse, err, "reading grammar source")
	}
	if len(out) == 0 {
		return nil, dialecterr.New(dialecterr.GrammarParse, "grammar source has no rules")
	}

	return out, nil
}

// parseHead splits "A -> a B c" into ("A", "a B c").
func parseHead(line string, lineNo int) (lhs string, rest string, err error) {
	parts := strings.SplitN(line, "->", 2)
	if len(parts) != 2 {
		return "", "", dialecterr.Newf(dialecterr.GrammarParse, "line %d: missing '->'", lineNo)
	}
	lhs = strings.TrimSpace(parts[0])
	if len([]rune(lhs)) != 1 {
		return "", "", dialecterr.Newf(dialecterr.GrammarParse, "line %d: left-hand side %q must be exactly one character", lineNo, lhs)
	}
	return lhs, parts[1], nil
}

// parseRHS splits a whitespace-separated token list, decoding the epsilon
// escape and rejecting any token that is not exactly one character.
func parseRHS(s string, lineNo int) ([]string, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, dialecterr.Newf(dialecterr.GrammarParse, "line %d: rule has no right-hand side", lineNo)
	}
	rhs := make([]string, 0, len(fields))
	for _, tok := range fields {
		if tok == epsilonEscape {
			rhs = append(rhs, grammar.EpsilonID)
			continue
		}
		if len([]rune(tok)) != 1 {
			return nil, dialecterr.Newf(dialecterr.GrammarParse, "line %d: token %q must be exactly one character (use %s for epsilon)", lineNo, tok, epsilonEscape)
		}
		rhs = append(rhs, tok)
	}
	return rhs, nil
}
