package stylesheet

import "errors"

// Sentinel errors for stylesheet compilation.
var (
	ErrCompile               = errors.New("stylesheet compilation failed")
	ErrUnknownHighlightStyle = errors.New("unknown highlight style")
	ErrCompilerClosed        = errors.New("stylesheet compiler is closed")
	ErrSassUnavailable       = errors.New("cannot start dart-sass")
)

// CompileError carries the Sass compiler's diagnostic.
// It matches ErrCompile with errors.Is.
type CompileError struct {
	Diagnostic string
	err        error
}

func (e *CompileError) Error() string {
	return ErrCompile.Error() + ": " + e.Diagnostic
}

// Unwrap returns the sentinel and the underlying compiler error.
func (e *CompileError) Unwrap() []error {
	if e.err == nil {
		return []error{ErrCompile}
	}
	return []error{ErrCompile, e.err}
}

func newCompileError(err error) *CompileError {
	return &CompileError{Diagnostic: err.Error(), err: err}
}
