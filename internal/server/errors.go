package server

import "errors"

var (
	ErrHandlerPanic  = errors.New("handler panicked")
	ErrNilListener   = errors.New("nil listener")
	ErrNoMetrics     = errors.New("metrics handler not configured")
	ErrShutdownForce = errors.New("grace period expired, connections closed")
)
