package grammar

import "strings"

// RawProduction is the interchange type crossing the boundary from the
// grammar-file collaborator (spec.md §6): a left-hand-side identity string
// and an ordered right-hand-side of one-character symbol identities. The
// first RawProduction's LHS is taken as the grammar's start symbol.
type RawProduction struct {
	LHS string
	RHS []string
}

// Production is a pair (lhs, rhs) where rhs is an ordered sequence of
// Symbols. An epsilon production has a single-element rhs whose only symbol
// IsEpsilon.
type Production struct {
	LHS Symbol
	RHS []Symbol
}

// IsEpsilon reports whether this is an epsilon production.
func (p Production) IsEpsilon() bool {
	return len(p.RHS) == 1 && p.RHS[0].IsEpsilon()
}

// Equal reports whether p and o have the same lhs and identical rhs symbols
// in the same order.
func (p Production) Equal(o Production) bool {
	if !p.LHS.Equal(o.LHS) {
		return false
	}
	if len(p.RHS) != len(o.RHS) {
		return false
	}
	for i := range p.RHS {
		if !p.RHS[i].Equal(o.RHS[i]) {
			return false
		}
	}
	return true
}

// deadProduction is the sentinel occupying every unset ParseTable cell. A
// cell is occupied iff its Production's LHS is not Dead (spec.md §3).
var deadProduction = Production{LHS: Dead}

// String renders the production as "A -> X Y Z" or "A -> ε" for tracing and
// the verbose grammar dump. Formatting is not itself part of the interface
// (spec.md §6); only the semantic content it carries is.
func (p Production) String() string {
	var sb strings.Builder
	sb.WriteString(p.LHS.String())
	sb.WriteString(" -> ")
	if p.IsEpsilon() {
		sb.WriteString("ε")
		return sb.String()
	}
	for i, s := range p.RHS {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}
