// Package dialecterr defines the error kinds that cross the boundary between
// the grammar/parse core and its callers: the grammar-file collaborator, the
// input-reader collaborator, and the CLI.
//
// Only NotStrongLL1 is ever recovered, by parse.LL1Parser; every other kind
// is meant to propagate all the way to the CLI, which maps Kind to an exit
// code. The core itself never calls os.Exit or logs.
package dialecterr

import "fmt"

// Kind identifies which of the error categories a dialectError belongs to.
type Kind int

const (
	// GrammarParse means the grammar-file collaborator could not produce a
	// production list.
	GrammarParse Kind = iota

	// IOOpen means a referenced file could not be opened.
	IOOpen

	// NotStrongLL1 means parse-table construction found at least one
	// conflict. Recovered locally by parse.LL1Parser.
	NotStrongLL1

	// NotLL1 means the dynamic predictor found a non-terminal/terminal pair
	// with more than one candidate production.
	NotLL1

	// InputRejected means the parser consumed or exhausted input without
	// reaching accept.
	InputRejected

	// Internal means a defensive invariant (such as the fixed-point round
	// cap) was violated.
	Internal
)

func (k Kind) String() string {
	switch k {
	case GrammarParse:
		return "grammar parse error"
	case IOOpen:
		return "I/O error"
	case NotStrongLL1:
		return "not strong-LL(1)"
	case NotLL1:
		return "not LL(1)"
	case InputRejected:
		return "input rejected"
	case Internal:
		return "internal error"
	default:
		return "unknown error"
	}
}

// dialectError is the concrete error type behind every constructor in this
// package. It is unexported; callers interact with it through Kind, error,
// and Unwrap.
type dialectError struct {
	kind Kind
	msg  string
	wrap error
}

func (e *dialectError) Error() string {
	if e.msg == "" {
		return e.kind.String()
	}
	return e.msg
}

// Unwrap gives the error that this error wraps, if any.
func (e *dialectError) Unwrap() error {
	return e.wrap
}

// Kind returns the error category. If err is not one produced by this
// package, KindOf(err) (not this method) should be used instead.
func (e *dialectError) Kind() Kind {
	return e.kind
}

// New returns an error of the given kind with the given message.
func New(kind Kind, msg string) error {
	return &dialectError{kind: kind, msg: msg}
}

// Newf is like New but builds the message with fmt.Sprintf.
func Newf(kind Kind, format string, a ...interface{}) error {
	return New(kind, fmt.Sprintf(format, a...))
}

// Wrap returns an error of the given kind with the given message that wraps
// cause.
func Wrap(kind Kind, cause error, msg string) error {
	return &dialectError{kind: kind, msg: msg, wrap: cause}
}

// Wrapf is like Wrap but builds the message with fmt.Sprintf.
func Wrapf(kind Kind, cause error, format string, a ...interface{}) error {
	return Wrap(kind, cause, fmt.Sprintf(format, a...))
}

// KindOf returns the Kind of err if it (or something it wraps) is a
// dialecterr error, and false otherwise.
func KindOf(err error) (Kind, bool) {
	for err != nil {
		if de, ok := err.(*dialectError); ok {
			return de.kind, true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = unwrapper.Unwrap()
	}
	return 0, false
}

// Diagnostic returns the CLI-facing text for err: its own message if it is a
// dialectError, or err.Error() otherwise.
func Diagnostic(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
