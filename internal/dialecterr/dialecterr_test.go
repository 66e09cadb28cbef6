package dialecterr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_KindOf(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		expectKind Kind
		expectOK   bool
	}{
		{
			name:       "direct dialectError",
			err:        New(GrammarParse, "bad grammar"),
			expectKind: GrammarParse,
			expectOK:   true,
		},
		{
			name:       "wrapped dialectError",
			err:        Wrap(IOOpen, errors.New("permission denied"), "opening file"),
			expectKind: IOOpen,
			expectOK:   true,
		},
		{
			name:     "foreign error",
			err:      errors.New("just a plain error"),
			expectOK: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expectOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			kind, ok := KindOf(tc.err)
			assert.Equal(tc.expectOK, ok)
			if tc.expectOK {
				assert.Equal(tc.expectKind, kind)
			}
		})
	}
}

func Test_dialectError_Unwrap(t *testing.T) {
	assert := assert.New(t)

	cause := errors.New("root cause")
	err := Wrap(Internal, cause, "wrapped")
	assert.True(errors.Is(err, cause))
}

func Test_Diagnostic(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("", Diagnostic(nil))
	assert.Equal("some message", Diagnostic(New(NotLL1, "some message")))
}
