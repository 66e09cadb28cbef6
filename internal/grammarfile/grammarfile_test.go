package grammarfile

import (
	"strings"
	"testing"

	"github.com/dekarrin/dialect/internal/dialecterr"
	"github.com/dekarrin/dialect/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_Parse(t *testing.T) {
	testCases := []struct {
		name      string
		source    string
		expect    []grammar.RawProduction
		expectErr bool
	}{
		{
			name:      "empty source",
			source:    "",
			expectErr: true,
		},
		{
			name: "single rule",
			source: `
				S -> a
			`,
			expect: []grammar.RawProduction{
				{LHS: "S", RHS: []string{"a"}},
			},
		},
		{
			name: "continuation alternatives",
			source: `
				S -> a B c
				   | b
				   | %e
			`,
			expect: []grammar.RawProduction{
				{LHS: "S", RHS: []string{"a", "B", "c"}},
				{LHS: "S", RHS: []string{"b"}},
				{LHS: "S", RHS: []string{grammar.EpsilonID}},
			},
		},
		{
			name: "comments and blank lines ignored",
			source: `
				# a comment
				S -> a

				# another
				A -> b
			`,
			expect: []grammar.RawProduction{
				{LHS: "S", RHS: []string{"a"}},
				{LHS: "A", RHS: []string{"b"}},
			},
		},
		{
			name: "continuation with no preceding rule",
			source: `
				| b
			`,
			expectErr: true,
		},
		{
			name: "multi-character token rejected",
			source: `
				S -> ab
			`,
			expectErr: true,
		},
		{
			name: "missing arrow",
			source: `
				S a
			`,
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			out, err := Parse(strings.NewReader(tc.source))
			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, out)
		})
	}
}

func Test_Parse_reportsGrammarParseKind(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse(strings.NewReader(""))
	kind, ok := dialecterr.KindOf(err)
	assert.True(ok)
	assert.Equal(dialecterr.GrammarParse, kind)
}
