package instr

import "github.com/pkg/errors"

// ErrMalformed is the sentinel wrapped by every parse failure. Callers
// test against it with errors.Is; the wrapped message carries the
// offending line number and text.
var ErrMalformed = errors.New("malformed instruction")

// malformedf wraps ErrMalformed with a line-numbered explanation,
// attaching context with github.com/pkg/errors rather than
// constructing a new error type per failure site.
func malformedf(line int, format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformed, "line %d: "+format, append([]interface{}{line}, args...)...)
}
