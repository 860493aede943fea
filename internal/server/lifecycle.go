package server

import "sync/atomic"

// Lifecycle holds the process-wide terminating flag.
//
// The signal path calls MarkTerminating; the health handler reads
// Terminating. Nothing else should hold a reference to it.
type Lifecycle struct {
	terminating atomic.Bool
}

// MarkTerminating flips the flag. Further calls are no-ops.
func (l *Lifecycle) MarkTerminating() {
	l.terminating.Store(true)
}

func (l *Lifecycle) Terminating() bool {
	return l.terminating.Load()
}
