package grammar

// Prepare runs the full RAW -> REFRESHED -> CLEAN -> AUGMENTED -> ANALYSED ->
// TABLED pipeline of spec.md §4.8 over raw and returns the resulting Grammar
// together with its LL(1) parse table.
//
// If the grammar is not strong-LL(1), Prepare still returns a fully built
// Grammar and a fully populated (last-write-wins) ParseTable alongside a
// dialecterr.NotStrongLL1 error; the caller (parse.LL1Parser) is the sole
// place that error is meant to be recovered, by falling back to the dynamic
// predictor. Every other error returned here (GrammarParse, Internal) is
// fatal and the returned Grammar/ParseTable should not be used.
func Prepare(raw []RawProduction, roundCap int) (*Grammar, *ParseTable, error) {
	g, err := New(raw)
	if err != nil {
		return nil, nil, err
	}

	if err := g.Clean(roundCap); err != nil {
		return nil, nil, err
	}

	g.Augment()

	if err := g.Analyze(roundCap); err != nil {
		return nil, nil, err
	}

	table, tableErr := BuildTable(g)
	return g, table, tableErr
}
