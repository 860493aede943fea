package fileutil

// SetExecutable replaces the executable lookup for the duration of a test.
func SetExecutable(fn func() (string, error)) (restore func()) {
	prev := executable
	executable = fn
	return func() { executable = prev }
}
