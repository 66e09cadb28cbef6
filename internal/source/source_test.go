package source

import (
	"testing"

	"github.com/dekarrin/dialect/internal/dialecterr"
	"github.com/dekarrin/dialect/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_FromString(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []grammar.Symbol
	}{
		{
			name:   "empty string",
			input:  "",
			expect: []grammar.Symbol{},
		},
		{
			name:  "simple word",
			input: "abc",
			expect: []grammar.Symbol{
				grammar.NewSymbol("a"),
				grammar.NewSymbol("b"),
				grammar.NewSymbol("c"),
			},
		},
		{
			name:  "trailing newline stripped",
			input: "ab\n",
			expect: []grammar.Symbol{
				grammar.NewSymbol("a"),
				grammar.NewSymbol("b"),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, FromString(tc.input))
		})
	}
}

func Test_FromFile_missingFileIsIOOpen(t *testing.T) {
	assert := assert.New(t)

	_, err := FromFile("/nonexistent/path/does/not/exist")
	assert.Error(err)
	kind, ok := dialecterr.KindOf(err)
	assert.True(ok)
	assert.Equal(dialecterr.IOOpen, kind)
}
