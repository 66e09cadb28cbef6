/*
Dialect checks whether an input string is recognized by a context-free
grammar, via LL(1) table-driven prediction with a dynamic fallback for
grammars that are LL(1) but not strong-LL(1).

Usage:

	dialect [flags] <cfg-file> <input-file|->

The flags are:

	-q, --quiet
		Suppress the verbose grammar-state dump that otherwise precedes the
		parse trace.

	-i, --interactive
		After building the parse table, drop into a readline-driven prompt
		that reads successive input lines and reports accept/reject for each,
		without rebuilding the table.

	--cache DIR
		Enable the on-disk compiled-grammar cache, rooted at DIR.

	--round-cap N
		Override the fixed-point round cap used by grammar hygiene and
		analysis.

	-V, --version
		Print the current version and exit.

A .dialectrc.toml file, searched for first in the current directory and then
$HOME, may set defaults for any of quiet, interactive, cache_dir, and
round_cap; an explicit flag always wins over the config file.
*/
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/pflag"

	"github.com/dekarrin/dialect/internal/cache"
	"github.com/dekarrin/dialect/internal/config"
	"github.com/dekarrin/dialect/internal/dialecterr"
	"github.com/dekarrin/dialect/internal/grammar"
	"github.com/dekarrin/dialect/internal/grammarfile"
	"github.com/dekarrin/dialect/internal/parse"
	"github.com/dekarrin/dialect/internal/source"
	"github.com/dekarrin/dialect/internal/trace"
	"github.com/dekarrin/dialect/internal/version"
)

const (
	exitSuccess = iota
	exitUsage
	exitIO
	exitGrammarParse
	exitRejected
	exitInternal
)

var (
	flagVersion     = pflag.BoolP("version", "V", false, "print the current version and exit")
	flagQuiet       = pflag.BoolP("quiet", "q", false, "suppress the verbose grammar-state dump")
	flagInteractive = pflag.BoolP("interactive", "i", false, "drop into an interactive prompt after building the table")
	flagCacheDir    = pflag.String("cache", "", "enable the on-disk compiled-grammar cache, rooted at DIR")
	flagRoundCap    = pflag.Int("round-cap", 0, "override the fixed-point round cap")
)

func main() {
	returnCode := exitSuccess

	defer func() {
		if p := recover(); p != nil {
			fmt.Fprintf(os.Stderr, "dialect: unrecoverable panic: %v\n", p)
			os.Exit(exitInternal)
		}
		os.Exit(returnCode)
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("dialect %s\n", version.Current)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dialect: reading config: %s\n", err)
		returnCode = exitIO
		return
	}

	quiet := cfg.Quiet
	if pflag.Lookup("quiet").Changed {
		quiet = *flagQuiet
	}
	interactive := cfg.Interactive
	if pflag.Lookup("interactive").Changed {
		interactive = *flagInteractive
	}
	cacheDir := cfg.CacheDir
	if pflag.Lookup("cache").Changed {
		cacheDir = *flagCacheDir
	}
	roundCap := cfg.RoundCap
	if pflag.Lookup("round-cap").Changed {
		roundCap = *flagRoundCap
	}

	args := pflag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: dialect [flags] <cfg-file> <input-file|->")
		returnCode = exitUsage
		return
	}
	cfgFile, inputFile := args[0], args[1]

	g, table, tableErr, parseErr := loadGrammar(cfgFile, cacheDir, roundCap)
	if parseErr != nil {
		fmt.Fprintf(os.Stderr, "dialect: %s\n", dialecterr.Diagnostic(parseErr))
		returnCode = exitCodeFor(parseErr)
		return
	}

	parser, err := parse.NewLL1Parser(g, table, tableErr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dialect: %s\n", dialecterr.Diagnostic(err))
		returnCode = exitCodeFor(err)
		return
	}

	if !quiet {
		fmt.Println(trace.RenderGrammarState(trace.RunID(), grammarStateOf(g)))
		if parser.UsesFallback() {
			fmt.Println("note: grammar is not strong LL(1); using dynamic fallback prediction")
		}
	}

	if interactive {
		returnCode = runInteractive(parser)
		return
	}

	input, err := source.FromFile(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dialect: %s\n", dialecterr.Diagnostic(err))
		returnCode = exitCodeFor(err)
		return
	}

	returnCode = runOnce(parser, input, quiet)
}

func loadGrammar(cfgFile, cacheDir string, roundCap int) (*grammar.Grammar, *grammar.ParseTable, error, error) {
	data, err := os.ReadFile(cfgFile)
	if err != nil {
		if cfgFile == "-" {
			return nil, nil, nil, dialecterr.New(dialecterr.IOOpen, "reading grammar from stdin is not supported for the config file argument")
		}
		return nil, nil, nil, dialecterr.Wrapf(dialecterr.IOOpen, err, "opening grammar file %q", cfgFile)
	}

	var c *cache.Cache
	var key string
	if cacheDir != "" {
		c, err = cache.New(cacheDir)
		if err != nil {
			return nil, nil, nil, err
		}
		key = cache.Key(data)
		if g, table, tableErr, ok := c.Load(key); ok {
			return g, table, tableErr, nil
		}
	}

	raw, err := grammarfile.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, nil, err
	}

	g, table, tableErr := grammar.Prepare(raw, roundCap)
	if g == nil {
		return nil, nil, nil, tableErr
	}

	if c != nil {
		conflict := tableErr != nil
		if kind, ok := dialecterr.KindOf(tableErr); ok && kind != dialecterr.NotStrongLL1 {
			conflict = false
		}
		_ = c.Store(key, g, table, conflict)
	}

	return g, table, tableErr, nil
}

func runOnce(parser *parse.LL1Parser, input []grammar.Symbol, quiet bool) int {
	outcome, err := parser.Run(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dialect: %s\n", dialecterr.Diagnostic(err))
		return exitCodeFor(err)
	}

	if !quiet {
		fmt.Println(outcome.Trace())
	}

	if outcome.Accepted {
		fmt.Println(trace.SuccessBanner)
		return exitSuccess
	}

	fmt.Println(trace.FailureBanner)
	if !quiet {
		fmt.Println(outcome.Dump())
	}
	return exitRejected
}

func runInteractive(parser *parse.LL1Parser) int {
	rl, err := readline.NewEx(&readline.Config{Prompt: "dialect> "})
	if err != nil {
		fmt.Fprintf(os.Stderr, "dialect: could not start interactive prompt: %s\n", err)
		return exitInternal
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			return exitSuccess
		}
		if line == "" {
			continue
		}
		input := source.FromString(line)
		runOnce(parser, input, false)
	}
}

func exitCodeFor(err error) int {
	kind, ok := dialecterr.KindOf(err)
	if !ok {
		return exitInternal
	}
	switch kind {
	case dialecterr.GrammarParse:
		return exitGrammarParse
	case dialecterr.IOOpen:
		return exitIO
	case dialecterr.NotLL1:
		return exitGrammarParse
	case dialecterr.InputRejected:
		return exitRejected
	case dialecterr.Internal:
		return exitInternal
	default:
		return exitInternal
	}
}

func grammarStateOf(g *grammar.Grammar) trace.GrammarState {
	var nonTerms, terms, prods, nullable []string
	first := map[string][]string{}
	follow := map[string][]string{}

	for _, nt := range g.NonTerminals() {
		nonTerms = append(nonTerms, nt.String())
	}
	for _, t := range g.Terminals() {
		terms = append(terms, t.String())
	}
	for _, p := range g.Productions() {
		prods = append(prods, p.String())
	}
	for _, sym := range append(append([]grammar.Symbol{}, g.NonTerminals()...), g.Terminals()...) {
		if g.Nullable(sym) {
			nullable = append(nullable, sym.String())
		}
		for _, f := range g.First(sym) {
			first[sym.String()] = append(first[sym.String()], f.String())
		}
		for _, f := range g.Follow(sym) {
			follow[sym.String()] = append(follow[sym.String()], f.String())
		}
	}

	return trace.NewGrammarState(g.StartSymbol().String(), nonTerms, terms, prods, nullable, first, follow)
}
