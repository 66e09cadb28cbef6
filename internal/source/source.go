// Package source reads an input string to be matched against a grammar and
// tokenizes it into one grammar.Symbol per rune (SPEC_FULL.md §6.2). It is a
// collaborator, not part of the core.
package source

import (
	"io"
	"os"
	"strings"

	"github.com/dekarrin/dialect/internal/dialecterr"
	"github.com/dekarrin/dialect/internal/grammar"
)

// FromFile opens path (or reads stdin if path is "-") and tokenizes its
// first line into terminal symbols. Opening failures are reported as
// dialecterr.IOOpen.
func FromFile(path string) ([]grammar.Symbol, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, dialecterr.Wrapf(dialecterr.IOOpen, err, "opening input file %q", path)
		}
		defer f.Close()
		r = f
	}

	line, err := readFirstLine(r)
	if err != nil {
		return nil, dialecterr.Wrapf(dialecterr.IOOpen, err, "reading input file %q", path)
	}
	return FromString(line), nil
}

// FromString tokenizes s directly, one grammar.Symbol per rune. Used both by
// FromFile and by the interactive REPL, where a line is already in memory.
func FromString(s string) []grammar.Symbol {
	s = strings.TrimRight(s, "\r\n")
	runes := []rune(s)
	out := make([]grammar.Symbol, len(runes))
	for i, r := range runes {
		out[i] = grammar.NewSymbol(string(r))
	}
	return out
}

func readFirstLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return sb.String(), nil
			}
			sb.WriteByte(buf[0])
		}
		if err != nil {
			if err == io.EOF {
				return sb.String(), nil
			}
			return sb.String(), err
		}
	}
}
